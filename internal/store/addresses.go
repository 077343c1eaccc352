package store

import (
	"context"
	"strings"

	"local-market-backend/internal/model"
)

// AddressStore holds the saved addresses. At most one of them is the default and a
// non-empty store always has exactly one.
type AddressStore struct {
	*Collection[model.Address, *model.Address]
}

func NewAddressStore(opts Options) *AddressStore {
	return &AddressStore{Collection: NewCollection[model.Address](KeyAddresses, opts)}
}

// Load reads the addresses and repairs a blob that has no default or several.
func (s *AddressStore) Load(ctx context.Context, defaults []model.Address) error {
	if err := s.Collection.Load(ctx, defaults); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if countDefaults(s.items) != 1 && len(s.items) > 0 {
		s.items = withDefault(s.items, firstDefault(s.items))
		s.touch()
	}
	return nil
}

// Add appends a and makes it the default, clearing the flag on every other address in
// the same mutation.
func (s *AddressStore) Add(a model.Address) (model.Address, error) {
	if strings.TrimSpace(a.Street) == "" {
		return model.Address{}, invalidField("street", "street is required")
	}
	a.ID = s.NewID()
	a.IsDefault = true
	s.Mutate(func(items []model.Address) []model.Address {
		items = append(items, a)
		return withDefault(items, len(items)-1)
	})
	return a, nil
}

// SetDefault makes the address with the given id the only default.
func (s *AddressStore) SetDefault(id string) Result {
	res := NotFound
	s.mu.RLock()
	i := s.index(id)
	s.mu.RUnlock()
	if i < 0 {
		return res
	}

	s.Mutate(func(items []model.Address) []model.Address {
		for j := range items {
			if items[j].ID == id {
				res = Updated
				return withDefault(items, j)
			}
		}
		return items
	})
	return res
}

// Remove deletes the address. Removing the default promotes the first remaining address.
func (s *AddressStore) Remove(id string) Result {
	res := NotFound
	s.mu.RLock()
	i := s.index(id)
	s.mu.RUnlock()
	if i < 0 {
		return res
	}

	s.Mutate(func(items []model.Address) []model.Address {
		for j := range items {
			if items[j].ID != id {
				continue
			}
			res = Deleted
			wasDefault := items[j].IsDefault
			items = append(items[:j], items[j+1:]...)
			if wasDefault {
				return withDefault(items, 0)
			}
			return items
		}
		return items
	})
	return res
}

// Edit changes an address in place. The default flag is not editable here; use SetDefault.
func (s *AddressStore) Edit(id string, fn func(*model.Address)) (model.Address, Result) {
	res := s.Update(id, func(a *model.Address) {
		isDefault := a.IsDefault
		fn(a)
		a.IsDefault = isDefault
	})
	a, _ := s.Get(id)
	return a, res
}

// Default returns the default address, if there is one.
func (s *AddressStore) Default() (model.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := firstDefault(s.items); i >= 0 {
		return s.items[i], true
	}
	return model.Address{}, false
}

// withDefault sets the default flag on items[idx] only. An out of range idx on a
// non-empty slice selects the first address.
func withDefault(items []model.Address, idx int) []model.Address {
	if len(items) == 0 {
		return items
	}
	if idx < 0 || idx >= len(items) {
		idx = 0
	}
	for i := range items {
		items[i].IsDefault = i == idx
	}
	return items
}

func firstDefault(items []model.Address) int {
	for i, a := range items {
		if a.IsDefault {
			return i
		}
	}
	return -1
}

func countDefaults(items []model.Address) int {
	n := 0
	for _, a := range items {
		if a.IsDefault {
			n++
		}
	}
	return n
}
