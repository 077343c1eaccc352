// Package checkout opens hosted payment pages for bookings and interprets where the
// embedded browser lands afterwards.
package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"local-market-backend/config"
)

// Order is what the user pays for.
type Order struct {
	BookingID string
	Title     string
	Amount    float64
	Currency  string
}

// Session is a created checkout page.
type Session struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	BookingID string `json:"bookingId"`
}

// Gateway creates hosted checkout pages.
type Gateway interface {
	CreateSession(ctx context.Context, order Order) (Session, error)
}

// NewGateway builds the gateway selected in cfg.
func NewGateway(cfg *config.CheckoutConfig) (Gateway, error) {
	switch strings.ToLower(cfg.Gateway) {
	case "", "simulated":
		return NewSimulated(cfg.PageURL), nil
	case "mercadopago":
		return NewMercadoPago(cfg)
	}
	return nil, fmt.Errorf("unknown checkout gateway %q", cfg.Gateway)
}

// MercadoPago creates checkout preferences through the MercadoPago API.
type MercadoPago struct {
	client   preference.Client
	backURLs preference.BackURLsRequest
}

func NewMercadoPago(cfg *config.CheckoutConfig) (*MercadoPago, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("checkout.access_token is required for the mercadopago gateway")
	}
	mpCfg, err := mpconfig.New(cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to configure mercadopago: %w", err)
	}
	return &MercadoPago{
		client: preference.NewClient(mpCfg),
		backURLs: preference.BackURLsRequest{
			Success: cfg.SuccessURL,
			Failure: cfg.CancelURL,
			Pending: cfg.PendingURL,
		},
	}, nil
}

func (m *MercadoPago) CreateSession(ctx context.Context, order Order) (Session, error) {
	backURLs := m.backURLs
	req := preference.Request{
		Items: []preference.ItemRequest{{
			ID:         order.BookingID,
			Title:      order.Title,
			Quantity:   1,
			UnitPrice:  order.Amount,
			CurrencyID: order.Currency,
		}},
		BackURLs:          &backURLs,
		ExternalReference: order.BookingID,
	}

	resp, err := m.client.Create(ctx, req)
	if err != nil {
		return Session{}, fmt.Errorf("failed to create mercadopago preference: %w", err)
	}
	return Session{ID: resp.ID, URL: resp.InitPoint, BookingID: order.BookingID}, nil
}

// Simulated stands in for a real payment provider in development and tests. Its page URL
// carries the booking as external_reference, like the real return URLs do.
type Simulated struct {
	pageURL string
	ids     func() string
}

func NewSimulated(pageURL string) *Simulated {
	return &Simulated{pageURL: pageURL, ids: uuid.NewString}
}

func (s *Simulated) CreateSession(_ context.Context, order Order) (Session, error) {
	u, err := url.Parse(s.pageURL)
	if err != nil {
		return Session{}, fmt.Errorf("invalid checkout page url %q: %w", s.pageURL, err)
	}
	id := s.ids()
	q := u.Query()
	q.Set("session", id)
	q.Set("external_reference", order.BookingID)
	q.Set("amount", fmt.Sprintf("%.2f", order.Amount))
	q.Set("currency", order.Currency)
	u.RawQuery = q.Encode()
	return Session{ID: id, URL: u.String(), BookingID: order.BookingID}, nil
}
