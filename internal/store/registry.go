package store

import (
	"context"
	"errors"
	"log"
	"time"

	"local-market-backend/internal/model"
)

// Storage keys of the persisted stores.
const (
	KeyBookings      = "bookings"
	KeyAddresses     = "addresses"
	KeyBarters       = "barters"
	KeySavedFixers   = "saved_fixers"
	KeySettings      = "settings"
	KeySubscriptions = "push_subscriptions"
)

func applicationKey(kind model.ApplicationKind) string {
	return "applications." + string(kind)
}

// Seed is the initial content installed into stores that have never been persisted.
type Seed struct {
	Bookings    []model.Booking
	Addresses   []model.Address
	Barters     []model.Barter
	SavedFixers []string
}

// Registry owns one instance of every store. Handlers receive it explicitly instead of
// reaching for globals.
type Registry struct {
	Bookings      *BookingStore
	Addresses     *AddressStore
	Barters       *BarterStore
	SavedFixers   *IDSet
	FixerApps     *ApplicationStore
	SellerApps    *ApplicationStore
	Settings      *SettingsStore
	Subscriptions *SubscriptionStore
}

// NewRegistry creates every store with the same storage and scheduler.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		Bookings:      NewBookingStore(opts),
		Addresses:     NewAddressStore(opts),
		Barters:       NewBarterStore(opts),
		SavedFixers:   NewIDSet(KeySavedFixers, opts),
		FixerApps:     NewApplicationStore(model.ApplicationFixer, opts),
		SellerApps:    NewApplicationStore(model.ApplicationSeller, opts),
		Settings:      NewSettingsStore(opts),
		Subscriptions: NewSubscriptionStore(opts),
	}
}

// Stores lists every store for flushing.
func (r *Registry) Stores() []Flushable {
	return []Flushable{
		r.Bookings, r.Addresses, r.Barters, r.SavedFixers,
		r.FixerApps, r.SellerApps, r.Settings, r.Subscriptions,
	}
}

// Applications returns the store for kind, or nil for an unknown kind.
func (r *Registry) Applications(kind model.ApplicationKind) *ApplicationStore {
	switch kind {
	case model.ApplicationFixer:
		return r.FixerApps
	case model.ApplicationSeller:
		return r.SellerApps
	}
	return nil
}

// Load reads every store, installing seed data where nothing was persisted yet.
func (r *Registry) Load(ctx context.Context, seed Seed) error {
	return errors.Join(
		r.Bookings.Load(ctx, seed.Bookings),
		r.Addresses.Load(ctx, seed.Addresses),
		r.Barters.Load(ctx, seed.Barters),
		r.SavedFixers.Load(ctx, seed.SavedFixers),
		r.FixerApps.Load(ctx, nil),
		r.SellerApps.Load(ctx, nil),
		r.Settings.Load(ctx, model.DefaultSettings()),
		r.Subscriptions.Load(ctx, nil),
	)
}

// FlushAll writes every dirty store and waits for the writes to finish.
func (r *Registry) FlushAll(ctx context.Context) error {
	var errs []error
	for _, s := range r.Stores() {
		if err := s.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dirty lists the names of stores with unflushed changes.
func (r *Registry) Dirty() []string {
	var names []string
	for _, s := range r.Stores() {
		if s.Dirty() {
			names = append(names, s.Name())
		}
	}
	return names
}

// Run sweeps dirty stores every interval until ctx is cancelled. It picks up flushes the
// background flusher dropped or failed.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	log.Printf("Starting store sweep every %s", interval)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Store sweep shutting down.")
			return
		case <-timer.C:
			if dirty := r.Dirty(); len(dirty) > 0 {
				log.Printf("Sweeping %d dirty stores: %v", len(dirty), dirty)
				if err := r.FlushAll(ctx); err != nil {
					log.Printf("Error sweeping stores: %v", err)
				}
			}
			timer.Reset(interval)
		}
	}
}

// Close flushes every store one last time.
func (r *Registry) Close(ctx context.Context) error {
	return r.FlushAll(ctx)
}
