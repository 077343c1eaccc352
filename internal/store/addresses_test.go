package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-market-backend/internal/kv"
	"local-market-backend/internal/model"
)

func defaults(s *AddressStore) int {
	n := 0
	for _, a := range s.List() {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestAddressStore_NewAddressBecomesDefault(t *testing.T) {
	s := NewAddressStore(Options{IDs: sequentialIDs()})

	a, err := s.Add(model.Address{Label: "Home", Street: "1 Palm St"})
	require.NoError(t, err)
	b, err := s.Add(model.Address{Label: "Work", Street: "9 Harbour Rd"})
	require.NoError(t, err)

	gotA, _ := s.Get(a.ID)
	gotB, _ := s.Get(b.ID)
	assert.False(t, gotA.IsDefault)
	assert.True(t, gotB.IsDefault)
	assert.Equal(t, 1, defaults(s))
}

func TestAddressStore_AtMostOneDefault(t *testing.T) {
	s := NewAddressStore(Options{IDs: sequentialIDs()})
	assert.Equal(t, 0, defaults(s))

	var ids []string
	ops := []func(){
		func() { a, _ := s.Add(model.Address{Street: "a"}); ids = append(ids, a.ID) },
		func() { a, _ := s.Add(model.Address{Street: "b"}); ids = append(ids, a.ID) },
		func() { s.SetDefault(ids[0]) },
		func() { a, _ := s.Add(model.Address{Street: "c", IsDefault: false}); ids = append(ids, a.ID) },
		func() { s.SetDefault("missing") },
		func() { s.SetDefault(ids[1]) },
		func() { s.Remove(ids[1]) },
		func() { s.Remove(ids[0]) },
	}

	for i, op := range ops {
		op()
		assert.Equal(t, 1, defaults(s), "after op %d", i)
	}

	s.Remove(ids[2])
	assert.Equal(t, 0, defaults(s))
	assert.Equal(t, 0, s.Len())
}

func TestAddressStore_SetDefault(t *testing.T) {
	s := NewAddressStore(Options{IDs: sequentialIDs()})
	a, _ := s.Add(model.Address{Street: "a"})
	s.Add(model.Address{Street: "b"})

	assert.Equal(t, Updated, s.SetDefault(a.ID))
	assert.Equal(t, NotFound, s.SetDefault("missing"))

	def, ok := s.Default()
	require.True(t, ok)
	assert.Equal(t, a.ID, def.ID)
}

func TestAddressStore_RemoveDefaultPromotesFirst(t *testing.T) {
	s := NewAddressStore(Options{IDs: sequentialIDs()})
	a, _ := s.Add(model.Address{Street: "a"})
	b, _ := s.Add(model.Address{Street: "b"})
	c, _ := s.Add(model.Address{Street: "c"})

	assert.Equal(t, Deleted, s.Remove(c.ID))
	def, _ := s.Default()
	assert.Equal(t, a.ID, def.ID)

	assert.Equal(t, Deleted, s.Remove(b.ID))
	def, _ = s.Default()
	assert.Equal(t, a.ID, def.ID)
	assert.Equal(t, NotFound, s.Remove(b.ID))
}

func TestAddressStore_EditCannotChangeDefault(t *testing.T) {
	s := NewAddressStore(Options{IDs: sequentialIDs()})
	a, _ := s.Add(model.Address{Street: "a"})

	edited, res := s.Edit(a.ID, func(addr *model.Address) {
		addr.City = "Casablanca"
		addr.IsDefault = false
	})
	assert.Equal(t, Updated, res)
	assert.Equal(t, "Casablanca", edited.City)
	assert.True(t, edited.IsDefault)
}

func TestAddressStore_AddRequiresStreet(t *testing.T) {
	s := NewAddressStore(Options{})
	_, err := s.Add(model.Address{Label: "Home"})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestAddressStore_LoadRepairsDefaults(t *testing.T) {
	testCases := []struct {
		name     string
		blob     string
		expected string
	}{
		{name: "several defaults keep the first", blob: `[{"id":"1","isDefault":false},{"id":"2","isDefault":true},{"id":"3","isDefault":true}]`, expected: "2"},
		{name: "no default picks the first", blob: `[{"id":"1"},{"id":"2"}]`, expected: "1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			storage := kv.NewMemoryStorage()
			require.NoError(t, storage.Set(ctx, KeyAddresses, []byte(tc.blob)))

			s := NewAddressStore(Options{Storage: storage})
			require.NoError(t, s.Load(ctx, nil))

			assert.Equal(t, 1, defaults(s))
			def, ok := s.Default()
			require.True(t, ok)
			assert.Equal(t, tc.expected, def.ID)
			assert.True(t, s.Dirty())
		})
	}
}
