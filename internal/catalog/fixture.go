package catalog

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"local-market-backend/internal/model"
	"local-market-backend/internal/store"
)

// Fixture is the YAML file holding the mock catalog and the first-run seed data.
type Fixture struct {
	Categories []model.Category `yaml:"categories"`
	Fixers     []model.Fixer    `yaml:"fixers"`
	Products   []model.Product  `yaml:"products"`
	Seed       seedFixture      `yaml:"seed"`
}

type seedFixture struct {
	Bookings []struct {
		ID        string  `yaml:"id"`
		FixerID   string  `yaml:"fixer_id"`
		FixerName string  `yaml:"fixer_name"`
		Service   string  `yaml:"service"`
		Date      string  `yaml:"date"`
		Time      string  `yaml:"time"`
		Address   string  `yaml:"address"`
		Price     float64 `yaml:"price"`
		Status    string  `yaml:"status"`
	} `yaml:"bookings"`
	Addresses []struct {
		ID        string `yaml:"id"`
		Label     string `yaml:"label"`
		Street    string `yaml:"street"`
		City      string `yaml:"city"`
		IsDefault bool   `yaml:"is_default"`
	} `yaml:"addresses"`
	Barters []struct {
		ID          string   `yaml:"id"`
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		Category    string   `yaml:"category"`
		Images      []string `yaml:"images"`
		LookingFor  string   `yaml:"looking_for"`
		Location    string   `yaml:"location"`
		UserName    string   `yaml:"user_name"`
	} `yaml:"barters"`
	SavedFixers []string `yaml:"saved_fixers"`
}

// LoadFixture reads and decodes the fixture file at path.
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fx Fixture
	if err := yaml.NewDecoder(f).Decode(&fx); err != nil {
		return nil, fmt.Errorf("failed to decode catalog fixture %s: %w", path, err)
	}
	return &fx, nil
}

// seed converts the fixture seed section into store records stamped with now. A booking
// with an unknown status fails the whole seed.
func (s seedFixture) seed(now time.Time) (store.Seed, error) {
	out := store.Seed{SavedFixers: append([]string(nil), s.SavedFixers...)}
	for _, b := range s.Bookings {
		status := model.BookingStatus(b.Status)
		if status == "" {
			status = model.BookingPending
		}
		if !status.Valid() {
			return store.Seed{}, fmt.Errorf("seed booking %q: unknown booking status %q", b.ID, b.Status)
		}
		out.Bookings = append(out.Bookings, model.Booking{
			ID: b.ID, FixerID: b.FixerID, FixerName: b.FixerName, Service: b.Service,
			Date: b.Date, Time: b.Time, Address: b.Address, Price: b.Price,
			Status: status, CreatedAt: now,
		})
	}
	for _, a := range s.Addresses {
		out.Addresses = append(out.Addresses, model.Address{
			ID: a.ID, Label: a.Label, Street: a.Street, City: a.City, IsDefault: a.IsDefault,
		})
	}
	for _, b := range s.Barters {
		out.Barters = append(out.Barters, model.Barter{
			ID: b.ID, Title: b.Title, Description: b.Description, Category: b.Category,
			Images: b.Images, LookingFor: b.LookingFor, Location: b.Location,
			User: model.BarterUser{Name: b.UserName}, CreatedAt: now,
		})
	}
	return out, nil
}
