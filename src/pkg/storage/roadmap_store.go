package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/model"
)

// Persistence keys. Each roadmap document is stored under its own key; a
// separate scalar key points at the currently active roadmap.
const (
	roadmapKeyPrefix  = "roadmap_"
	currentRoadmapKey = "currentRoadmapId"
)

// ErrRoadmapNotFound is returned when no roadmap exists for a requested id.
var ErrRoadmapNotFound = errors.New("roadmap not found")

// ErrNoCurrentRoadmap is returned when no current roadmap pointer is set.
var ErrNoCurrentRoadmap = errors.New("no current roadmap")

// RoadmapStore defines the interface for roadmap-related storage operations.
type RoadmapStore interface {
	RoadmapSave(roadmap *model.Roadmap) error
	RoadmapGet(id string) (*model.Roadmap, error)
	RoadmapDelete(id string) error
	RoadmapList() ([]string, error)
	CurrentSet(id string) error
	CurrentGet() (string, error)
	CurrentClear() error
}

// RoadmapStorage implements the RoadmapStore interface over a KVStore.
type RoadmapStorage struct {
	kv     KVStore
	logger *log.Logger
}

// NewRoadmapStorage creates a new RoadmapStorage instance.
func NewRoadmapStorage(kv KVStore, logger *log.Logger) *RoadmapStorage {
	return &RoadmapStorage{
		kv:     kv,
		logger: logger,
	}
}

// RoadmapSave persists a roadmap document under its id. Failures are wrapped
// as a WriteError so callers can treat them as non-fatal.
func (s *RoadmapStorage) RoadmapSave(roadmap *model.Roadmap) error {
	s.logger.Info(context.Background(), "Saving roadmap", log.Fields{"roadmapID": roadmap.ID, "topicCount": len(roadmap.Topics)})

	data, err := json.Marshal(roadmap)
	if err != nil {
		s.logger.Error(context.Background(), "Failed to marshal roadmap", log.Fields{"error": err, "roadmapID": roadmap.ID})
		return fmt.Errorf("failed to marshal roadmap: %w", err)
	}

	key := roadmapKeyPrefix + roadmap.ID
	if err := s.kv.Set(key, data); err != nil {
		s.logger.Error(context.Background(), "Failed to write roadmap", log.Fields{"error": err, "roadmapID": roadmap.ID})
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

// RoadmapGet retrieves a roadmap document by id.
func (s *RoadmapStorage) RoadmapGet(id string) (*model.Roadmap, error) {
	s.logger.Info(context.Background(), "Loading roadmap", log.Fields{"roadmapID": id})

	data, err := s.kv.Get(roadmapKeyPrefix + id)
	if errors.Is(err, ErrKeyNotFound) {
		s.logger.Warn(context.Background(), "Roadmap not found", log.Fields{"roadmapID": id})
		return nil, ErrRoadmapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read roadmap '%s': %w", id, err)
	}

	var roadmap model.Roadmap
	if err := json.Unmarshal(data, &roadmap); err != nil {
		s.logger.Error(context.Background(), "Failed to unmarshal roadmap", log.Fields{"error": err, "roadmapID": id})
		return nil, fmt.Errorf("failed to unmarshal roadmap '%s': %w", id, err)
	}
	return &roadmap, nil
}

// RoadmapDelete removes a persisted roadmap. When the deleted roadmap is the
// current one, the current pointer is cleared as well.
func (s *RoadmapStorage) RoadmapDelete(id string) error {
	s.logger.Info(context.Background(), "Deleting roadmap", log.Fields{"roadmapID": id})

	if err := s.kv.Delete(roadmapKeyPrefix + id); err != nil {
		return fmt.Errorf("failed to delete roadmap '%s': %w", id, err)
	}

	current, err := s.CurrentGet()
	if err != nil && !errors.Is(err, ErrNoCurrentRoadmap) {
		return err
	}
	if current == id {
		if err := s.CurrentClear(); err != nil {
			return err
		}
	}
	return nil
}

// RoadmapList returns the ids of all persisted roadmaps.
func (s *RoadmapStorage) RoadmapList() ([]string, error) {
	keys, err := s.kv.Keys(roadmapKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, roadmapKeyPrefix))
	}
	return ids, nil
}

// CurrentSet records the id of the current roadmap, overwriting any existing
// pointer.
func (s *RoadmapStorage) CurrentSet(id string) error {
	if err := s.kv.Set(currentRoadmapKey, []byte(id)); err != nil {
		s.logger.Error(context.Background(), "Failed to set current roadmap pointer", log.Fields{"error": err, "roadmapID": id})
		return &WriteError{Key: currentRoadmapKey, Err: err}
	}
	return nil
}

// CurrentGet returns the id of the current roadmap.
func (s *RoadmapStorage) CurrentGet() (string, error) {
	data, err := s.kv.Get(currentRoadmapKey)
	if errors.Is(err, ErrKeyNotFound) {
		return "", ErrNoCurrentRoadmap
	}
	if err != nil {
		return "", fmt.Errorf("failed to read current roadmap pointer: %w", err)
	}
	return string(data), nil
}

// CurrentClear removes the current roadmap pointer.
func (s *RoadmapStorage) CurrentClear() error {
	if err := s.kv.Delete(currentRoadmapKey); err != nil {
		return fmt.Errorf("failed to clear current roadmap pointer: %w", err)
	}
	return nil
}
