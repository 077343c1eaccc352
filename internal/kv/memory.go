package kv

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// memoryStorage keeps blobs in process memory. Nothing survives a restart.
type memoryStorage struct {
	c *cache.Cache
}

// NewMemoryStorage creates an in-process storage, mainly for tests and demos.
func NewMemoryStorage() Storage {
	return &memoryStorage{c: cache.New(cache.NoExpiration, 0)}
}

func (s *memoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	v, found := s.c.Get(key)
	if !found {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v.([]byte)...), nil
}

func (s *memoryStorage) Set(_ context.Context, key string, value []byte) error {
	s.c.Set(key, append([]byte(nil), value...), cache.NoExpiration)
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}
