package model

import "time"

// KVEntry is one persisted store blob in the SQL-backed key-value storage.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
