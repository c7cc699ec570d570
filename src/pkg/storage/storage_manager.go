package storage

import (
	"fmt"
	"path/filepath"

	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/model"
)

// Storage represents the main storage implementation.
type Storage struct {
	kv KVStore
	RoadmapStore
}

// NewStorage creates a new Storage instance and initializes the database.
func NewStorage(cfg *model.Config, logger *log.Logger) (*Storage, error) {
	dbDriver, err := validateDBDriver(cfg.DatabaseType)
	if err != nil {
		return nil, fmt.Errorf("invalid database driver '%s': %w", cfg.DatabaseType, err)
	}

	kv, err := NewKVStore(dbDriver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create key-value store: %w", err)
	}

	// Construct the full path for the database file
	dataSourceName := filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)

	// Open the database connection
	if err := kv.Open(dataSourceName); err != nil {
		return nil, fmt.Errorf("failed to open database connection '%s': %s", dataSourceName, err)
	}

	return &Storage{
		kv:           kv,
		RoadmapStore: NewRoadmapStorage(kv, logger),
	}, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if err := s.kv.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
