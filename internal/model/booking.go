package model

import "time"

// BookingStatus is the closed set of states a service booking moves through.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known booking states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// IsUpcoming reports whether a booking in this state still lies ahead of the user.
// Every valid status is either upcoming or past, never both.
func (s BookingStatus) IsUpcoming() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking is a service appointment with a fixer.
type Booking struct {
	ID            string        `json:"id"`
	FixerID       string        `json:"fixerId"`
	FixerName     string        `json:"fixerName"`
	Service       string        `json:"service"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Address       string        `json:"address"`
	Price         float64       `json:"price"`
	Notes         string        `json:"notes,omitempty"`
	PaymentMethod string        `json:"paymentMethod,omitempty"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	ConfirmedAt   *time.Time    `json:"confirmedAt,omitempty"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
	CancelledAt   *time.Time    `json:"cancelledAt,omitempty"`
}

func (b *Booking) EntityID() string   { return b.ID }
func (b *Booking) AssignID(id string) { b.ID = id }

// IsUpcoming reports whether the booking belongs in the "upcoming" bucket.
func (b Booking) IsUpcoming() bool {
	return b.Status.IsUpcoming()
}
