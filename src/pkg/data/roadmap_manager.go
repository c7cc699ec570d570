// Package data provides data management functionality for the Techtracker
// application. This file contains operations related to roadmap management.
package data

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"techtracker/local-app/src/pkg/event"
	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/model"
	"techtracker/local-app/src/pkg/storage"
)

// ErrNoRoadmapSelected is returned by operations that require a current
// roadmap when none is selected. State is never touched in that case.
var ErrNoRoadmapSelected = errors.New("no roadmap selected")

// RoadmapOperations defines the interface for roadmap-related operations
type RoadmapOperations interface {
	RoadmapLoad(id string) (*model.Roadmap, error)
	RoadmapSelect(roadmap *model.Roadmap) error
	RoadmapCurrent() (*model.Roadmap, error)
	RoadmapDeselect() error
	RoadmapDelete(id string) error
	RoadmapList() ([]model.RoadmapInfo, error)
}

// RoadmapManager handles all roadmap-related operations and maintains the
// current roadmap state. Every mutation is synchronized to storage;
// persistence is best-effort and a failed write never rolls back the
// in-memory state.
type RoadmapManager struct {
	roadmapStore storage.RoadmapStore
	eventManager *event.EventManager
	logger       *log.Logger

	mu      sync.Mutex
	current *model.Roadmap
}

// NewRoadmapManager creates a new RoadmapManager instance.
func NewRoadmapManager(roadmapStore storage.RoadmapStore, eventManager *event.EventManager, logger *log.Logger) (*RoadmapManager, error) {
	if roadmapStore == nil {
		return nil, fmt.Errorf("roadmapStore not initialized")
	}
	if eventManager == nil {
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}

	return &RoadmapManager{
		roadmapStore: roadmapStore,
		eventManager: eventManager,
		logger:       logger,
	}, nil
}

// RoadmapLoad reads a persisted roadmap by id without selecting it.
func (rm *RoadmapManager) RoadmapLoad(id string) (*model.Roadmap, error) {
	ctx := context.Background()
	rm.logger.Info(ctx, "Loading roadmap", log.Fields{"roadmapID": id})

	roadmap, err := rm.roadmapStore.RoadmapGet(id)
	if err != nil {
		rm.logger.Warn(ctx, "Failed to load roadmap", log.Fields{"error": err, "roadmapID": id})
		return nil, err
	}
	return roadmap, nil
}

// RoadmapSelect replaces the current roadmap, persists it and records its id
// as the current pointer. Any previous pointer is overwritten. A write
// failure is returned but the in-memory selection is kept.
func (rm *RoadmapManager) RoadmapSelect(roadmap *model.Roadmap) error {
	ctx := context.Background()
	rm.logger.Info(ctx, "Selecting roadmap", log.Fields{"roadmapID": roadmap.ID, "title": roadmap.Title})

	rm.mu.Lock()
	rm.current = roadmap
	rm.mu.Unlock()

	rm.eventManager.Publish(event.Event{Type: event.RoadmapSelected, Data: roadmap})

	if err := rm.roadmapStore.RoadmapSave(roadmap); err != nil {
		rm.logger.Error(ctx, "Failed to persist selected roadmap", log.Fields{"error": err, "roadmapID": roadmap.ID})
		return err
	}
	if err := rm.roadmapStore.CurrentSet(roadmap.ID); err != nil {
		rm.logger.Error(ctx, "Failed to persist current roadmap pointer", log.Fields{"error": err, "roadmapID": roadmap.ID})
		return err
	}
	return nil
}

// RoadmapCurrent returns the currently selected roadmap.
func (rm *RoadmapManager) RoadmapCurrent() (*model.Roadmap, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.current == nil {
		return nil, ErrNoRoadmapSelected
	}
	return rm.current, nil
}

// RoadmapDeselect clears the current roadmap and its persisted pointer.
func (rm *RoadmapManager) RoadmapDeselect() error {
	ctx := context.Background()
	rm.logger.Info(ctx, "Deselecting current roadmap", nil)

	rm.mu.Lock()
	rm.current = nil
	rm.mu.Unlock()

	rm.eventManager.Publish(event.Event{Type: event.RoadmapDeselected})

	if err := rm.roadmapStore.CurrentClear(); err != nil {
		rm.logger.Error(ctx, "Failed to clear current roadmap pointer", log.Fields{"error": err})
		return err
	}
	return nil
}

// RoadmapResume restores the selection recorded by a previous run. Having no
// recorded pointer is not an error.
func (rm *RoadmapManager) RoadmapResume() (*model.Roadmap, error) {
	ctx := context.Background()

	id, err := rm.roadmapStore.CurrentGet()
	if errors.Is(err, storage.ErrNoCurrentRoadmap) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	roadmap, err := rm.roadmapStore.RoadmapGet(id)
	if errors.Is(err, storage.ErrRoadmapNotFound) {
		// Stale pointer; drop it.
		rm.logger.Warn(ctx, "Current roadmap pointer is stale", log.Fields{"roadmapID": id})
		if clearErr := rm.roadmapStore.CurrentClear(); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rm.mu.Lock()
	rm.current = roadmap
	rm.mu.Unlock()

	rm.logger.Info(ctx, "Resumed roadmap from previous run", log.Fields{"roadmapID": id, "title": roadmap.Title})
	rm.eventManager.Publish(event.Event{Type: event.RoadmapSelected, Data: roadmap})
	return roadmap, nil
}

// RoadmapDelete removes a persisted roadmap. Deleting the currently selected
// roadmap also deselects it.
func (rm *RoadmapManager) RoadmapDelete(id string) error {
	ctx := context.Background()
	rm.logger.Info(ctx, "Deleting roadmap", log.Fields{"roadmapID": id})

	if _, err := rm.roadmapStore.RoadmapGet(id); err != nil {
		return err
	}
	if err := rm.roadmapStore.RoadmapDelete(id); err != nil {
		rm.logger.Error(ctx, "Failed to delete roadmap", log.Fields{"error": err, "roadmapID": id})
		return err
	}

	rm.mu.Lock()
	if rm.current != nil && rm.current.ID == id {
		rm.current = nil
	}
	rm.mu.Unlock()

	rm.eventManager.Publish(event.Event{Type: event.RoadmapDeleted, Data: id})
	return nil
}

// RoadmapList returns summary information for every persisted roadmap.
func (rm *RoadmapManager) RoadmapList() ([]model.RoadmapInfo, error) {
	ids, err := rm.roadmapStore.RoadmapList()
	if err != nil {
		return nil, err
	}

	currentID := ""
	rm.mu.Lock()
	if rm.current != nil {
		currentID = rm.current.ID
	}
	rm.mu.Unlock()

	infos := make([]model.RoadmapInfo, 0, len(ids))
	for _, id := range ids {
		roadmap, err := rm.roadmapStore.RoadmapGet(id)
		if err != nil {
			return nil, err
		}
		infos = append(infos, model.RoadmapInfo{
			ID:       roadmap.ID,
			Title:    roadmap.Title,
			Current:  roadmap.ID == currentID,
			Progress: ProgressOf(roadmap.Topics),
		})
	}
	return infos, nil
}

// mutateCurrent applies fn to the current roadmap under the manager lock and
// persists the result. The mutation is kept even when the write fails; the
// write error is returned alongside the updated roadmap so callers can report
// it. When the mutation newly completes the whole roadmap, a RoadmapCompleted
// event is published.
func (rm *RoadmapManager) mutateCurrent(fn func(roadmap *model.Roadmap) error) (*model.Roadmap, error) {
	ctx := context.Background()

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.current == nil {
		return nil, ErrNoRoadmapSelected
	}

	completedBefore := StatsOf(rm.current.Topics).Completed
	if err := fn(rm.current); err != nil {
		return nil, err
	}

	progress := ProgressOf(rm.current.Topics)
	if progress.Total > 0 && progress.Completed == progress.Total && progress.Completed > completedBefore {
		rm.eventManager.Publish(event.Event{Type: event.RoadmapCompleted, Data: rm.current})
	}

	if err := rm.roadmapStore.RoadmapSave(rm.current); err != nil {
		rm.logger.Error(ctx, "Failed to persist roadmap after mutation", log.Fields{"error": err, "roadmapID": rm.current.ID})
		return rm.current, err
	}
	return rm.current, nil
}
