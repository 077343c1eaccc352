package model

import (
	"time"

	"local-market-backend/internal/httperr"
)

// CanCancel reports whether a booking in the current state may be cancelled.
func CanCancel(current BookingStatus) error {
	if !current.IsUpcoming() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanConfirm reports whether a booking in the current state may be confirmed.
func CanConfirm(current BookingStatus) error {
	if current != BookingPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete reports whether a booking in the current state may be completed.
func CanComplete(current BookingStatus) error {
	if current != BookingConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CancelBooking moves b to cancelled.
func CancelBooking(b *Booking, now time.Time) error {
	if err := CanCancel(b.Status); err != nil {
		return err
	}
	b.Status = BookingCancelled
	b.CancelledAt = &now
	return nil
}

// ConfirmBooking moves b to confirmed.
func ConfirmBooking(b *Booking, now time.Time) error {
	if err := CanConfirm(b.Status); err != nil {
		return err
	}
	b.Status = BookingConfirmed
	b.ConfirmedAt = &now
	return nil
}

// CompleteBooking moves b to completed.
func CompleteBooking(b *Booking, now time.Time) error {
	if err := CanComplete(b.Status); err != nil {
		return err
	}
	b.Status = BookingCompleted
	b.CompletedAt = &now
	return nil
}
