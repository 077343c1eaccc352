package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides, e.g. MARKET_SERVER_PORT.
const EnvPrefix = "MARKET"

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"SERVER"`
	Storage    StorageConfig    `yaml:"storage" envconfig:"STORAGE"`
	Flush      FlushConfig      `yaml:"flush" envconfig:"FLUSH"`
	Catalog    CatalogConfig    `yaml:"catalog" envconfig:"CATALOG"`
	Checkout   CheckoutConfig   `yaml:"checkout" envconfig:"CHECKOUT"`
	Flows      FlowConfig       `yaml:"flows" envconfig:"FLOWS"`
	Push       PushConfig       `yaml:"push" envconfig:"PUSH"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool" envconfig:"WORKER_POOL"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port               int           `yaml:"port" envconfig:"PORT"`
	RateLimitPerSec    float64       `yaml:"rate_limit_per_sec" envconfig:"RATE_LIMIT_PER_SEC"`
	RateLimitBurst     int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
	CacheTTLSeconds    int           `yaml:"cache_ttl_seconds" envconfig:"CACHE_TTL_SECONDS"`
	CacheTTL           time.Duration `yaml:"-" ignored:"true"`
	SimulatedLatencyMs int           `yaml:"simulated_latency_ms" envconfig:"SIMULATED_LATENCY_MS"`
	SimulatedLatency   time.Duration `yaml:"-" ignored:"true"`
}

// StorageConfig selects and configures the device key-value storage backend.
type StorageConfig struct {
	// Driver is one of memory, file, sqlite, postgres, redis.
	Driver                 string `yaml:"driver" envconfig:"DRIVER"`
	DSN                    string `yaml:"dsn" envconfig:"DSN"`
	Dir                    string `yaml:"dir" envconfig:"DIR"`
	RedisAddr              string `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPassword          string `yaml:"redis_password" envconfig:"REDIS_PASSWORD"`
	RedisDB                int    `yaml:"redis_db" envconfig:"REDIS_DB"`
	KeyPrefix              string `yaml:"key_prefix" envconfig:"KEY_PREFIX"`
	MaxOpenConns           int    `yaml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns           int    `yaml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes" envconfig:"CONN_MAX_LIFETIME_MINUTES"`
}

// FlushConfig controls how dirty stores are written back to storage.
type FlushConfig struct {
	IntervalSeconds int           `yaml:"interval_seconds" envconfig:"INTERVAL_SECONDS"`
	Interval        time.Duration `yaml:"-" ignored:"true"`
	QueueSize       int           `yaml:"queue_size" envconfig:"QUEUE_SIZE"`
	Workers         int           `yaml:"workers" envconfig:"WORKERS"`
}

// CatalogConfig points at the mock catalog fixtures.
type CatalogConfig struct {
	FixturePath     string            `yaml:"fixture_path" envconfig:"FIXTURE_PATH"`
	RemoteURL       string            `yaml:"remote_url" envconfig:"REMOTE_URL"`
	HTTPProxy       string            `yaml:"http_proxy" envconfig:"HTTP_PROXY"`
	Headers         map[string]string `yaml:"headers" ignored:"true"`
	RefreshSeconds  int               `yaml:"refresh_seconds" envconfig:"REFRESH_SECONDS"`
	RefreshInterval time.Duration     `yaml:"-" ignored:"true"`
}

// CheckoutConfig configures the hosted payment checkout page.
type CheckoutConfig struct {
	// Gateway is either mercadopago or simulated.
	Gateway     string `yaml:"gateway" envconfig:"GATEWAY"`
	AccessToken string `yaml:"access_token" envconfig:"ACCESS_TOKEN"`
	Currency    string `yaml:"currency" envconfig:"CURRENCY"`
	PageURL     string `yaml:"page_url" envconfig:"PAGE_URL"`
	SuccessURL  string `yaml:"success_url" envconfig:"SUCCESS_URL"`
	CancelURL   string `yaml:"cancel_url" envconfig:"CANCEL_URL"`
	PendingURL  string `yaml:"pending_url" envconfig:"PENDING_URL"`
}

// FlowConfig controls the lifetime of in-progress form wizards.
type FlowConfig struct {
	SessionTTLMinutes int           `yaml:"session_ttl_minutes" envconfig:"SESSION_TTL_MINUTES"`
	SessionTTL        time.Duration `yaml:"-" ignored:"true"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key" envconfig:"VAPID_PUBLIC_KEY"`
	PrivateKey string `yaml:"vapid_private_key" envconfig:"VAPID_PRIVATE_KEY"`
	Subject    string `yaml:"subject" envconfig:"SUBJECT"`
	TTL        int    `yaml:"ttl" envconfig:"TTL"`
}

// Enabled reports whether both VAPID keys are present.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size" envconfig:"SIZE"`
}

// Load reads the configuration from the given path and applies MARKET_* environment overrides.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if cfg.Server.SimulatedLatencyMs < 0 {
		cfg.Server.SimulatedLatencyMs = 0
	}
	cfg.Server.SimulatedLatency = time.Duration(cfg.Server.SimulatedLatencyMs) * time.Millisecond

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "file"
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = "./data"
	}

	if cfg.Flush.IntervalSeconds <= 0 {
		cfg.Flush.IntervalSeconds = 5
	}
	cfg.Flush.Interval = time.Duration(cfg.Flush.IntervalSeconds) * time.Second
	if cfg.Flush.QueueSize <= 0 {
		cfg.Flush.QueueSize = 32
	}
	if cfg.Flush.Workers <= 0 {
		cfg.Flush.Workers = 1
	}

	if cfg.Catalog.RefreshSeconds <= 0 {
		cfg.Catalog.RefreshSeconds = 600
	}
	cfg.Catalog.RefreshInterval = time.Duration(cfg.Catalog.RefreshSeconds) * time.Second

	if cfg.Checkout.Gateway == "" {
		cfg.Checkout.Gateway = "simulated"
	}
	if cfg.Checkout.Currency == "" {
		cfg.Checkout.Currency = "USD"
	}
	if cfg.Checkout.PageURL == "" {
		cfg.Checkout.PageURL = "https://checkout.local/pay"
	}
	if cfg.Checkout.SuccessURL == "" {
		cfg.Checkout.SuccessURL = "https://app.local/checkout/success"
	}
	if cfg.Checkout.CancelURL == "" {
		cfg.Checkout.CancelURL = "https://app.local/checkout/cancel"
	}
	if cfg.Checkout.PendingURL == "" {
		cfg.Checkout.PendingURL = "https://app.local/checkout/pending"
	}

	if cfg.Flows.SessionTTLMinutes <= 0 {
		cfg.Flows.SessionTTLMinutes = 30
	}
	cfg.Flows.SessionTTL = time.Duration(cfg.Flows.SessionTTLMinutes) * time.Minute

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
}
