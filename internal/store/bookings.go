package store

import (
	"encoding/json"
	"fmt"
	"time"

	"local-market-backend/internal/model"
	"local-market-backend/internal/query"
)

// BookingObserver is told about every booking status change.
type BookingObserver interface {
	BookingChanged(b model.Booking)
}

// BookingStore holds the user's service bookings, oldest first.
type BookingStore struct {
	*Collection[model.Booking, *model.Booking]
	observer BookingObserver
	now      func() time.Time
}

func NewBookingStore(opts Options) *BookingStore {
	return &BookingStore{
		Collection: NewCollection[model.Booking](KeyBookings, opts),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SetObserver registers o for status change events. It is not safe to call concurrently
// with transitions.
func (s *BookingStore) SetObserver(o BookingObserver) {
	s.observer = o
}

// Create appends a new booking. An empty status means pending.
func (s *BookingStore) Create(b model.Booking) (model.Booking, error) {
	if b.Status == "" {
		b.Status = model.BookingPending
	}
	if !b.Status.Valid() {
		return model.Booking{}, invalidField("status", fmt.Sprintf("unknown booking status %q", b.Status))
	}
	b.CreatedAt = s.now()
	b.ConfirmedAt, b.CompletedAt, b.CancelledAt = nil, nil, nil
	return s.Add(b, Append), nil
}

// Edit merges editable fields from a partial JSON document. Status and timestamps only
// change through transitions.
func (s *BookingStore) Edit(id string, partial []byte) (model.Booking, Result, error) {
	res, err := s.Modify(id, func(b *model.Booking) error {
		orig := *b
		if err := json.Unmarshal(partial, b); err != nil {
			return invalidField("body", err.Error())
		}
		b.Status = orig.Status
		b.CreatedAt = orig.CreatedAt
		b.ConfirmedAt, b.CompletedAt, b.CancelledAt = orig.ConfirmedAt, orig.CompletedAt, orig.CancelledAt
		return nil
	})
	b, _ := s.Get(id)
	return b, res, err
}

// Cancel moves a pending or confirmed booking to cancelled.
func (s *BookingStore) Cancel(id string) (model.Booking, Result, error) {
	return s.transition(id, model.CancelBooking)
}

// Confirm moves a pending booking to confirmed.
func (s *BookingStore) Confirm(id string) (model.Booking, Result, error) {
	return s.transition(id, model.ConfirmBooking)
}

// Complete moves a confirmed booking to completed.
func (s *BookingStore) Complete(id string) (model.Booking, Result, error) {
	return s.transition(id, model.CompleteBooking)
}

func (s *BookingStore) transition(id string, apply func(*model.Booking, time.Time) error) (model.Booking, Result, error) {
	now := s.now()
	res, err := s.Modify(id, func(b *model.Booking) error {
		return apply(b, now)
	})
	if res != Updated {
		return model.Booking{}, res, err
	}
	b, _ := s.Get(id)
	if s.observer != nil {
		s.observer.BookingChanged(b)
	}
	return b, res, nil
}

// Partition splits the bookings into upcoming and past.
func (s *BookingStore) Partition() (upcoming, past []model.Booking) {
	return query.Partition(s.List(), model.Booking.IsUpcoming)
}

func (s *BookingStore) Upcoming() []model.Booking {
	upcoming, _ := s.Partition()
	return upcoming
}

func (s *BookingStore) Past() []model.Booking {
	_, past := s.Partition()
	return past
}
