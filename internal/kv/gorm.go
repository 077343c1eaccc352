package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"local-market-backend/internal/model"
)

// gormStorage keeps every blob as one row of the kv_entries table.
type gormStorage struct {
	db *gorm.DB
}

// NewGormStorage creates a GORM-backed storage. The kv_entries table must exist.
func NewGormStorage(db *gorm.DB) Storage {
	return &gormStorage{db: db}
}

func (s *gormStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (s *gormStorage) Set(ctx context.Context, key string, value []byte) error {
	entry := model.KVEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *gormStorage) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&model.KVEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
