package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Server.CacheTTL)
	assert.Equal(t, time.Duration(0), cfg.Server.SimulatedLatency)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 5*time.Second, cfg.Flush.Interval)
	assert.Equal(t, 1, cfg.Flush.Workers)
	assert.Equal(t, "simulated", cfg.Checkout.Gateway)
	assert.Equal(t, "https://app.local/checkout/success", cfg.Checkout.SuccessURL)
	assert.Equal(t, 30*time.Minute, cfg.Flows.SessionTTL)
	assert.Equal(t, 3600, cfg.Push.TTL)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.False(t, cfg.Push.Enabled())
}

func TestLoad_DerivesDurations(t *testing.T) {
	path := writeConfig(t, `
server:
  simulated_latency_ms: 250
flush:
  interval_seconds: 2
catalog:
  refresh_seconds: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Server.SimulatedLatency)
	assert.Equal(t, 2*time.Second, cfg.Flush.Interval)
	assert.Equal(t, 30*time.Second, cfg.Catalog.RefreshInterval)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\nstorage:\n  driver: sqlite\n")
	t.Setenv("MARKET_SERVER_PORT", "7070")
	t.Setenv("MARKET_STORAGE_DRIVER", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string { return writeConfig(t, "server: [\n") },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path(t))
			assert.Error(t, err)
		})
	}
}
