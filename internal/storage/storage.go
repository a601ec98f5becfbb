// Package storage persists small key-value entries of the client, e.g.
// the session, in a sqlite database.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/trackspring/client/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is a single persisted entry.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// Store is a persistent key-value store.
type Store struct {
	db *gorm.DB
}

// Open opens the store at path, creating its directory if needed.
// database.InMemory opens a store that is lost on Close.
func Open(path string) (*Store, error) {
	if path != database.InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("could not create state directory: %w", err)
		}
	}

	db, err := database.Connect(path, &Setting{})
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return database.Close(s.db)
}

// Get returns the value for key. ok is false if the key is not set.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	var setting Setting
	err = s.db.Where("`key` = ?", key).First(&setting).Error
	if errors.Is(err, database.ErrResourceNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return setting.Value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Setting{Key: key, Value: value}).Error
}

// Delete removes all keys in a single transaction. Missing keys are ignored.
func (s *Store) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.Where("`key` IN ?", keys).Delete(&Setting{}).Error
}
