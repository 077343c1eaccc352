package checkout

import (
	"context"
	"errors"
	"fmt"

	"local-market-backend/config"
	"local-market-backend/internal/httperr"
	"local-market-backend/internal/model"
	"local-market-backend/internal/parse"
	"local-market-backend/internal/store"
)

var ErrBookingNotFound = errors.New("checkout: booking not found")

// Resolution is the meaning of one checkout navigation.
type Resolution struct {
	Outcome parse.Outcome  `json:"outcome"`
	Booking *model.Booking `json:"booking,omitempty"`
}

// Service ties checkout sessions to bookings.
type Service struct {
	gateway  Gateway
	bookings *store.BookingStore
	currency string
	prefixes parse.CheckoutPrefixes
}

func NewService(cfg *config.CheckoutConfig, gateway Gateway, bookings *store.BookingStore) *Service {
	return &Service{
		gateway:  gateway,
		bookings: bookings,
		currency: cfg.Currency,
		prefixes: parse.CheckoutPrefixes{
			Success: cfg.SuccessURL,
			Cancel:  cfg.CancelURL,
			Pending: cfg.PendingURL,
		},
	}
}

// Start opens a checkout page for a pending booking.
func (s *Service) Start(ctx context.Context, bookingID string) (Session, error) {
	b, ok := s.bookings.Get(bookingID)
	if !ok {
		return Session{}, ErrBookingNotFound
	}
	if b.Status != model.BookingPending {
		return Session{}, httperr.ErrBusiness("invalid_state")
	}
	title := b.Service
	if b.FixerName != "" {
		title = fmt.Sprintf("%s - %s", b.Service, b.FixerName)
	}
	return s.gateway.CreateSession(ctx, Order{
		BookingID: b.ID,
		Title:     title,
		Amount:    b.Price,
		Currency:  s.currency,
	})
}

// Resolve interprets a URL the checkout view navigated to. A success confirms the booking
// named by the URL's external_reference; resolving the same success twice is harmless.
func (s *Service) Resolve(rawURL string) (Resolution, error) {
	res, err := parse.CheckoutURL(rawURL, s.prefixes)
	if err != nil {
		return Resolution{}, err
	}
	if res.Outcome == parse.OutcomeNone || res.Reference == "" {
		return Resolution{Outcome: res.Outcome}, nil
	}

	b, ok := s.bookings.Get(res.Reference)
	if !ok {
		return Resolution{}, ErrBookingNotFound
	}
	if res.Outcome == parse.OutcomeSuccess && b.Status == model.BookingPending {
		b, _, err = s.bookings.Confirm(b.ID)
		if err != nil {
			return Resolution{}, err
		}
	}
	return Resolution{Outcome: res.Outcome, Booking: &b}, nil
}
