package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-market-backend/config"
)

func TestStorageBackends_RoundTrip(t *testing.T) {
	fileStore, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	backends := map[string]Storage{
		"memory": NewMemoryStorage(),
		"file":   fileStore,
	}

	for name, storage := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := storage.Get(ctx, "bookings")
			assert.True(t, errors.Is(err, ErrNotFound))

			require.NoError(t, storage.Set(ctx, "bookings", []byte(`[1]`)))
			require.NoError(t, storage.Set(ctx, "bookings", []byte(`[1,2]`)))

			got, err := storage.Get(ctx, "bookings")
			require.NoError(t, err)
			assert.Equal(t, []byte(`[1,2]`), got)

			require.NoError(t, storage.Delete(ctx, "bookings"))
			require.NoError(t, storage.Delete(ctx, "bookings"))

			_, err = storage.Get(ctx, "bookings")
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestMemoryStorage_CopiesValues(t *testing.T) {
	storage := NewMemoryStorage()
	value := []byte("abc")
	require.NoError(t, storage.Set(context.Background(), "k", value))
	value[0] = 'z'

	got, err := storage.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStorage_SanitizesKeysAndLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, storage.Set(context.Background(), "applications/fixer", []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "applications_fixer.json", entries[0].Name())

	_, err = os.Stat(filepath.Join(dir, "applications_fixer.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestOpen(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         config.StorageConfig
		expectedErr bool
	}{
		{name: "memory", cfg: config.StorageConfig{Driver: "memory"}},
		{name: "file", cfg: config.StorageConfig{Driver: "file", Dir: t.TempDir()}},
		{name: "sqlite", cfg: config.StorageConfig{Driver: "sqlite", DSN: "file:kvopen?mode=memory&cache=shared"}},
		{name: "unknown driver", cfg: config.StorageConfig{Driver: "etcd"}, expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storage, closeFn, err := Open(&tc.cfg)
			require.NotNil(t, closeFn)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer closeFn()

			ctx := context.Background()
			require.NoError(t, storage.Set(ctx, "settings", []byte(`{"theme":"dark"}`)))
			got, err := storage.Get(ctx, "settings")
			require.NoError(t, err)
			assert.JSONEq(t, `{"theme":"dark"}`, string(got))
		})
	}
}
