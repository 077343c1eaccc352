package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-market-backend/config"
	"local-market-backend/internal/model"
)

const testFixture = `
categories:
  - { id: plumbing, name: Plumbing }
fixers:
  - { id: f1, name: Ahmed, category: plumbing, services: [Leak repair], hourly_rate: 30, rating: 4.5 }
products:
  - { id: p1, title: Drill, category: tools, price: 65, seller: Omar }
seed:
  bookings:
    - { id: b1, fixer_id: f1, service: Leak repair }
  addresses:
    - { id: a1, street: 1 Palm St, is_default: true }
  barters:
    - { id: x1, title: Guitar, description: Old, images: [g.jpg], user_name: Omar }
  saved_fixers: [f1]
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestService_LoadFixture(t *testing.T) {
	svc := NewService(&config.CatalogConfig{FixturePath: writeFixture(t, testFixture)})
	require.NoError(t, svc.Load())

	assert.Len(t, svc.Categories(), 1)
	assert.Len(t, svc.Products(), 1)

	fixer, ok := svc.FixerByID("f1")
	require.True(t, ok)
	assert.Equal(t, 30.0, fixer.HourlyRate)
	_, ok = svc.FixerByID("nope")
	assert.False(t, ok)

	seed := svc.Seed()
	require.Len(t, seed.Bookings, 1)
	assert.Equal(t, model.BookingPending, seed.Bookings[0].Status)
	assert.False(t, seed.Bookings[0].CreatedAt.IsZero())
	require.Len(t, seed.Addresses, 1)
	assert.True(t, seed.Addresses[0].IsDefault)
	require.Len(t, seed.Barters, 1)
	assert.Equal(t, "Omar", seed.Barters[0].User.Name)
	assert.Equal(t, []string{"f1"}, seed.SavedFixers)

	assert.ElementsMatch(t, []string{"Plumbing", "Leak repair"}, svc.SearchTerms())
}

func TestService_LoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "none.yaml")},
		{name: "malformed yaml", path: writeFixture(t, "fixers: [")},
		{name: "unknown seed booking status", path: writeFixture(t, "seed:\n  bookings:\n    - { id: b1, fixer_id: f1, status: confrimed }\n")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(&config.CatalogConfig{FixturePath: tc.path})
			assert.Error(t, svc.Load())
		})
	}
}

func TestService_ShippedFixtureLoads(t *testing.T) {
	svc := NewService(&config.CatalogConfig{FixturePath: "../../config/catalog.yaml"})
	require.NoError(t, svc.Load())
	assert.NotEmpty(t, svc.Fixers())
	assert.NotEmpty(t, svc.Seed().Bookings)
}

func TestService_RefreshOnce(t *testing.T) {
	testCases := []struct {
		name        string
		handler     http.HandlerFunc
		expectFixer string
	}{
		{
			name: "remote catalog replaces snapshot",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
				resp := ApiResponse{}
				resp.Data.Fixers = []model.Fixer{{ID: "remote-1", Name: "Remote"}}
				json.NewEncoder(w).Encode(resp)
			},
			expectFixer: "remote-1",
		},
		{
			name: "server error keeps snapshot",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			expectFixer: "local",
		},
		{
			name: "application error keeps snapshot",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"code":3,"data":{}}`))
			},
			expectFixer: "local",
		},
		{
			name: "empty payload keeps snapshot",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"code":0,"data":{"fixers":[]}}`))
			},
			expectFixer: "local",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			svc := NewService(&config.CatalogConfig{
				RemoteURL: server.URL,
				Headers:   map[string]string{"X-Api-Key": "secret"},
			})
			svc.Replace(nil, []model.Fixer{{ID: "local"}}, nil)

			svc.RefreshOnce(context.Background())

			fixers := svc.Fixers()
			require.Len(t, fixers, 1)
			assert.Equal(t, tc.expectFixer, fixers[0].ID)
		})
	}
}

func TestService_RunWithoutRemoteReturns(t *testing.T) {
	svc := NewService(&config.CatalogConfig{HTTPProxy: "::not a url"})
	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()
	<-done
}
