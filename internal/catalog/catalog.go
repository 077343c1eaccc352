// Package catalog serves the read-only marketplace catalog: categories, fixers and
// products. It is loaded from a YAML fixture and can be refreshed from a remote endpoint.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"local-market-backend/config"
	"local-market-backend/internal/model"
	"local-market-backend/internal/store"
)

// Service holds the current catalog snapshot.
type Service struct {
	cfg    *config.CatalogConfig
	client *http.Client

	mu         sync.RWMutex
	categories []model.Category
	fixers     []model.Fixer
	products   []model.Product
	seed       store.Seed
}

// NewService creates a catalog service. Call Load or Replace before serving.
func NewService(cfg *config.CatalogConfig) *Service {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Catalog refresh will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Service{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}
}

// Load reads the fixture file configured in FixturePath. An empty path leaves the
// catalog empty.
func (s *Service) Load() error {
	if s.cfg.FixturePath == "" {
		log.Println("No catalog fixture configured; starting with an empty catalog.")
		return nil
	}
	fx, err := LoadFixture(s.cfg.FixturePath)
	if err != nil {
		return err
	}
	seed, err := fx.Seed.seed(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("invalid catalog fixture %s: %w", s.cfg.FixturePath, err)
	}
	s.mu.Lock()
	s.seed = seed
	s.mu.Unlock()
	s.Replace(fx.Categories, fx.Fixers, fx.Products)
	log.Printf("catalog loaded: %d categories, %d fixers, %d products", len(fx.Categories), len(fx.Fixers), len(fx.Products))
	return nil
}

// Replace swaps the whole catalog snapshot.
func (s *Service) Replace(categories []model.Category, fixers []model.Fixer, products []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = slices.Clone(categories)
	s.fixers = slices.Clone(fixers)
	s.products = slices.Clone(products)
}

// Seed returns the first-run content for the entity stores.
func (s *Service) Seed() store.Seed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seed
}

func (s *Service) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Category{}, s.categories...)
}

func (s *Service) Fixers() []model.Fixer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Fixer{}, s.fixers...)
}

func (s *Service) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Product{}, s.products...)
}

// FixerByID looks up one fixer.
func (s *Service) FixerByID(id string) (model.Fixer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.fixers {
		if f.ID == id {
			return f, true
		}
	}
	return model.Fixer{}, false
}

// SearchTerms lists the names a "did you mean" suggestion can propose.
func (s *Service) SearchTerms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	terms := make([]string, 0, len(s.categories)+len(s.fixers))
	for _, c := range s.categories {
		terms = append(terms, c.Name)
	}
	for _, f := range s.fixers {
		terms = append(terms, f.Services...)
	}
	return terms
}

// Run refreshes the catalog from RemoteURL in a loop until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if s.cfg.RemoteURL == "" {
		log.Println("Catalog remote URL not configured. Refresh loop not started.")
		return
	}
	log.Println("Starting catalog refresh service...")

	s.RefreshOnce(ctx)

	timer := time.NewTimer(s.cfg.RefreshInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Catalog refresh service shutting down.")
			return
		case <-timer.C:
			s.RefreshOnce(ctx)
			timer.Reset(s.cfg.RefreshInterval)
		}
	}
}

// RefreshOnce fetches the remote catalog. On failure the current snapshot is kept.
func (s *Service) RefreshOnce(ctx context.Context) {
	resp, err := s.fetch(ctx)
	if err != nil {
		log.Printf("Error refreshing catalog: %v", err)
		return
	}
	if len(resp.Data.Fixers) == 0 && len(resp.Data.Products) == 0 {
		log.Println("Catalog refresh returned no items; keeping the current catalog.")
		return
	}
	s.Replace(resp.Data.Categories, resp.Data.Fixers, resp.Data.Products)
	log.Printf("catalog refreshed: %d fixers, %d products", len(resp.Data.Fixers), len(resp.Data.Products))
}

func (s *Service) fetch(ctx context.Context) (*ApiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.RemoteURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range s.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp ApiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal api response: %w", err)
	}
	if apiResp.Code != 0 {
		return nil, fmt.Errorf("API returned non-zero application code: %d", apiResp.Code)
	}
	return &apiResp, nil
}
