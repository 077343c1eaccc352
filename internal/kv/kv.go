// Package kv is the local key-value storage the entity stores persist their blobs into.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"local-market-backend/config"
	"local-market-backend/internal/db"
)

// ErrNotFound is returned by Get when nothing is stored under a key.
var ErrNotFound = errors.New("kv: key not found")

// Storage is a flat key to JSON blob store.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Open builds the backend selected by cfg.Driver. The returned close func releases
// any connection the backend holds and is never nil.
func Open(cfg *config.StorageConfig) (Storage, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Driver) {
	case "memory":
		return NewMemoryStorage(), noop, nil
	case "file":
		s, err := NewFileStorage(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case "sqlite", "postgres":
		gormDB, err := db.Init(cfg)
		if err != nil {
			return nil, noop, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		return NewGormStorage(gormDB), sqlDB.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisStorage(client, cfg.KeyPrefix), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
