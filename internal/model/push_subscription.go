package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// An empty BookingIDs list subscribes to every booking.
type PushSubscription struct {
	Endpoint   string    `json:"endpoint"`
	P256DH     string    `json:"p256dh"`
	Auth       string    `json:"auth"`
	BookingIDs []string  `json:"bookingIds,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s *PushSubscription) EntityID() string   { return s.Endpoint }
func (s *PushSubscription) AssignID(id string) { s.Endpoint = id }

// Covers reports whether the subscription wants updates for bookingID.
func (s PushSubscription) Covers(bookingID string) bool {
	if len(s.BookingIDs) == 0 {
		return true
	}
	for _, id := range s.BookingIDs {
		if id == bookingID {
			return true
		}
	}
	return false
}
