package checkout

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-market-backend/config"
	"local-market-backend/internal/httperr"
	"local-market-backend/internal/model"
	"local-market-backend/internal/parse"
	"local-market-backend/internal/store"
)

var testCfg = config.CheckoutConfig{
	Gateway:    "simulated",
	Currency:   "MAD",
	PageURL:    "https://checkout.local/pay",
	SuccessURL: "https://app.local/checkout/success",
	CancelURL:  "https://app.local/checkout/cancel",
	PendingURL: "https://app.local/checkout/pending",
}

// fakeGateway records the last order.
type fakeGateway struct {
	last Order
	err  error
}

func (f *fakeGateway) CreateSession(_ context.Context, o Order) (Session, error) {
	f.last = o
	if f.err != nil {
		return Session{}, f.err
	}
	return Session{ID: "s1", URL: "https://pay/s1", BookingID: o.BookingID}, nil
}

func newService(t *testing.T, gw Gateway) (*Service, *store.BookingStore) {
	t.Helper()
	bookings := store.NewBookingStore(store.Options{})
	cfg := testCfg
	return NewService(&cfg, gw, bookings), bookings
}

func TestService_Start(t *testing.T) {
	gw := &fakeGateway{}
	svc, bookings := newService(t, gw)
	pending, err := bookings.Create(model.Booking{Service: "Wiring", FixerName: "Sara", Price: 45})
	require.NoError(t, err)
	done, err := bookings.Create(model.Booking{Service: "Paint", Status: model.BookingCompleted})
	require.NoError(t, err)

	session, err := svc.Start(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, session.BookingID)
	assert.Equal(t, Order{BookingID: pending.ID, Title: "Wiring - Sara", Amount: 45, Currency: "MAD"}, gw.last)

	_, err = svc.Start(context.Background(), done.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = svc.Start(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrBookingNotFound))

	gw.err = errors.New("gateway down")
	_, err = svc.Start(context.Background(), pending.ID)
	assert.Error(t, err)
}

func TestService_Resolve(t *testing.T) {
	svc, bookings := newService(t, &fakeGateway{})
	b, err := bookings.Create(model.Booking{Service: "Wiring"})
	require.NoError(t, err)

	testCases := []struct {
		name     string
		url      string
		outcome  parse.Outcome
		status   model.BookingStatus
		wantErr  bool
		noRecord bool
	}{
		{name: "ordinary page", url: "https://checkout.local/pay?step=2", outcome: parse.OutcomeNone, noRecord: true},
		{name: "cancel leaves booking pending", url: "https://app.local/checkout/cancel?external_reference=" + b.ID, outcome: parse.OutcomeCancel, status: model.BookingPending},
		{name: "pending leaves booking pending", url: "https://app.local/checkout/pending?external_reference=" + b.ID, outcome: parse.OutcomePending, status: model.BookingPending},
		{name: "success confirms", url: "https://app.local/checkout/success?external_reference=" + b.ID, outcome: parse.OutcomeSuccess, status: model.BookingConfirmed},
		{name: "success again is harmless", url: "https://app.local/checkout/success?external_reference=" + b.ID, outcome: parse.OutcomeSuccess, status: model.BookingConfirmed},
		{name: "unknown booking", url: "https://app.local/checkout/success?external_reference=nope", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Resolve(tc.url)
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrBookingNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.outcome, res.Outcome)
			if tc.noRecord {
				assert.Nil(t, res.Booking)
				return
			}
			require.NotNil(t, res.Booking)
			assert.Equal(t, tc.status, res.Booking.Status)
		})
	}
}

func TestSimulated_CreateSession(t *testing.T) {
	gw := NewSimulated("https://checkout.local/pay")
	gw.ids = func() string { return "sess-1" }

	session, err := gw.CreateSession(context.Background(), Order{BookingID: "b1", Amount: 12.5, Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", session.ID)

	u, err := url.Parse(session.URL)
	require.NoError(t, err)
	assert.Equal(t, "checkout.local", u.Host)
	assert.Equal(t, "b1", u.Query().Get("external_reference"))
	assert.Equal(t, "12.50", u.Query().Get("amount"))
}

func TestNewGateway(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     config.CheckoutConfig
		wantErr bool
	}{
		{name: "simulated", cfg: config.CheckoutConfig{Gateway: "simulated", PageURL: "https://p"}},
		{name: "mercadopago", cfg: config.CheckoutConfig{Gateway: "mercadopago", AccessToken: "TEST-123"}},
		{name: "mercadopago without token", cfg: config.CheckoutConfig{Gateway: "mercadopago"}, wantErr: true},
		{name: "unknown", cfg: config.CheckoutConfig{Gateway: "paypal"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gw, err := NewGateway(&tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, gw)
		})
	}
}
