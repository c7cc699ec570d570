// Package storage provides functionality for persisting and retrieving
// Techtracker data. This file defines the key-value store boundary.
package storage

import (
	"errors"
	"fmt"

	"techtracker/local-app/src/pkg/log"
)

// DBDriver represents the type of database driver
type DBDriver string

const (
	SQLite DBDriver = "sqlite"
)

// ErrKeyNotFound is returned by Get when no value exists for a key.
var ErrKeyNotFound = errors.New("key not found")

// KVStore defines the key-value persistence boundary. All roadmap
// persistence goes through this interface; nothing outside the storage
// package touches keys directly.
type KVStore interface {
	Open(dataSourceName string) error
	Close() error
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	Keys(prefix string) ([]string, error)
}

// NewKVStore creates a new KVStore instance based on the specified driver
func NewKVStore(driver DBDriver, logger *log.Logger) (KVStore, error) {
	switch driver {
	case SQLite:
		return &SQLiteKV{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// validateDBDriver checks if the provided driver is supported
func validateDBDriver(driver string) (DBDriver, error) {
	switch DBDriver(driver) {
	case SQLite:
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// WriteError reports a failed persistence write. Writes are best-effort: the
// in-memory mutation that triggered the write is kept even when the write
// fails.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("storage write failed for key '%s': %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
