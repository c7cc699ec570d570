package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"techtracker/local-app/src/pkg/log"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteKV implements the KVStore interface over a single SQLite table.
type SQLiteKV struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens a connection to the SQLite database and initializes the schema.
func (s *SQLiteKV) Open(dataSourceName string) error {
	s.logger.Info(context.Background(), "Opening SQLite database", log.Fields{"dbPath": filepath.Base(dataSourceName)})

	// Ensure the directory for the database file exists
	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		s.logger.Error(context.Background(), "Failed to create database directory", log.Fields{"error": err, "directory": dbDir})
		return fmt.Errorf("failed to create database directory '%s': %w", dbDir, err)
	}

	// Open the database connection with additional parameters
	db, err := sql.Open("sqlite3", dataSourceName+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		s.logger.Error(context.Background(), "Failed to open SQLite database", log.Fields{"error": err})
		return fmt.Errorf("failed to open SQLite database: %v", err)
	}

	// Set pragmas for better performance and reliability
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		db.Close()
		s.logger.Error(context.Background(), "Failed to set SQLite synchronous pragma", log.Fields{"error": err})
		return fmt.Errorf("failed to set SQLite synchronous pragma: %w", err)
	}

	// Verify the connection
	if err := db.Ping(); err != nil {
		db.Close()
		s.logger.Error(context.Background(), "Failed to verify database connection", log.Fields{"error": err})
		return fmt.Errorf("failed to verify database connection: %v", err)
	}

	// Initialize the key-value schema
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated DATETIME NOT NULL
		);
	`); err != nil {
		db.Close()
		s.logger.Error(context.Background(), "Failed to create kv table", log.Fields{"error": err})
		return fmt.Errorf("failed to create kv table: %w", err)
	}

	s.db = db
	s.logger.Info(context.Background(), "SQLite database opened successfully", nil)
	return nil
}

// Close closes the connection to the SQLite database
func (s *SQLiteKV) Close() error {
	s.logger.Info(context.Background(), "Closing SQLite database", nil)
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error(context.Background(), "Failed to close SQLite database", log.Fields{"error": err})
			return fmt.Errorf("failed to close SQLite database: %w", err)
		}
	}
	return nil
}

// Set stores a value under a key, replacing any existing value.
func (s *SQLiteKV) Set(key string, value []byte) error {
	s.logger.Debug(context.Background(), "Setting key", log.Fields{"key": key, "bytes": len(value)})
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value, updated) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated",
		key, value, time.Now(),
	)
	if err != nil {
		s.logger.Error(context.Background(), "Failed to set key", log.Fields{"error": err, "key": key})
		return fmt.Errorf("failed to set key '%s': %w", key, err)
	}
	return nil
}

// Get retrieves the value stored under a key. Returns ErrKeyNotFound when the
// key does not exist.
func (s *SQLiteKV) Get(key string) ([]byte, error) {
	s.logger.Debug(context.Background(), "Getting key", log.Fields{"key": key})
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		s.logger.Error(context.Background(), "Failed to get key", log.Fields{"error": err, "key": key})
		return nil, fmt.Errorf("failed to get key '%s': %w", key, err)
	}
	return value, nil
}

// Delete removes a key and its value. Deleting a missing key is not an error.
func (s *SQLiteKV) Delete(key string) error {
	s.logger.Debug(context.Background(), "Deleting key", log.Fields{"key": key})
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		s.logger.Error(context.Background(), "Failed to delete key", log.Fields{"error": err, "key": key})
		return fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return nil
}

// Keys returns all keys starting with the given prefix, in key order.
func (s *SQLiteKV) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM kv WHERE key LIKE ? || '%' ORDER BY key", prefix)
	if err != nil {
		s.logger.Error(context.Background(), "Failed to query keys", log.Fields{"error": err, "prefix": prefix})
		return nil, fmt.Errorf("failed to query keys with prefix '%s': %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			s.logger.Error(context.Background(), "Failed to scan key row", log.Fields{"error": err})
			return nil, fmt.Errorf("failed to scan key row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error(context.Background(), "Error iterating key rows", log.Fields{"error": err})
		return nil, fmt.Errorf("error iterating key rows: %w", err)
	}
	return keys, nil
}
