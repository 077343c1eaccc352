package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-market-backend/internal/kv"
	"local-market-backend/internal/model"
)

func TestSettingsStore(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemoryStorage()
	s := NewSettingsStore(Options{Storage: storage})
	require.NoError(t, s.Load(ctx, model.DefaultSettings()))
	assert.Equal(t, model.DefaultSettings(), s.Get())
	assert.False(t, s.Dirty())

	_, err := s.SetLanguage("ar")
	require.NoError(t, err)
	_, err = s.SetTheme("dark")
	require.NoError(t, err)
	st := s.ToggleNotifications()
	assert.False(t, st.Notifications)

	_, err = s.SetLanguage("klingon")
	assert.Error(t, err)
	_, err = s.SetTheme("neon")
	assert.Error(t, err)

	expected := model.Settings{Language: "ar", Theme: "dark", Notifications: false}
	assert.Equal(t, expected, s.Get())

	require.NoError(t, s.Flush(ctx))
	reloaded := NewSettingsStore(Options{Storage: storage})
	require.NoError(t, reloaded.Load(ctx, model.DefaultSettings()))
	assert.Equal(t, expected, reloaded.Get())
	assert.True(t, reloaded.SetNotifications(true).Notifications)
}

func TestSettingsStore_MissingFieldsKeepDefaults(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, KeySettings, []byte(`{"theme":"dark"}`)))

	s := NewSettingsStore(Options{Storage: storage})
	require.NoError(t, s.Load(ctx, model.DefaultSettings()))
	assert.Equal(t, model.Settings{Language: "en", Theme: "dark", Notifications: true}, s.Get())
}
