package parse

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04", "3:04 PM", "3:04PM", "3 PM", "3PM"}

// ParseSlot combines a booking date (2006-01-02) and a time of day in 24h or 12h form
// into one instant in loc.
func ParseSlot(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %q", date)
	}

	clock = strings.ToUpper(strings.TrimSpace(clock))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, clock)
		if err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse time: %q", clock)
}
