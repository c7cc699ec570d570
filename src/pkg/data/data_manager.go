// Package data provides data management functionality for the Techtracker
// application. It coordinates operations between the roadmap and topic
// managers.
package data

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"techtracker/local-app/src/pkg/event"
	"techtracker/local-app/src/pkg/imports"
	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/model"
	"techtracker/local-app/src/pkg/storage"
)

// ExportVersion tags exported documents.
const ExportVersion = "1.0"

// DataManager is the main struct that coordinates all data operations
type DataManager struct {
	RoadmapManager *RoadmapManager
	TopicManager   *TopicManager
	EventManager   *event.EventManager
	Config         *model.Config
	Logger         *log.Logger

	// Serializes concurrent imports so a second import cannot race an
	// in-flight one.
	importMu sync.Mutex
}

// NewDataManager creates a new Manager instance
func NewDataManager(roadmapStore storage.RoadmapStore, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	eventManager := event.NewEventManager(logger)
	m := &DataManager{
		EventManager: eventManager,
		Config:       cfg,
		Logger:       logger,
	}

	var err error
	m.RoadmapManager, err = NewRoadmapManager(roadmapStore, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create RoadmapManager: %w", err)
	}

	m.TopicManager, err = NewTopicManager(m.RoadmapManager, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create TopicManager: %w", err)
	}

	return m, nil
}

// RoadmapImport reads, validates and selects a roadmap document from a file.
func (m *DataManager) RoadmapImport(filename string) (*model.Roadmap, error) {
	m.importMu.Lock()
	defer m.importMu.Unlock()

	data, err := storage.FileImport(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to import roadmap: %w", err)
	}

	roadmap, err := imports.ParseAndValidate(filename, data)
	if err != nil {
		return nil, err
	}

	if err := m.RoadmapManager.RoadmapSelect(roadmap); err != nil {
		return roadmap, err
	}
	return roadmap, nil
}

// RoadmapExport writes the current roadmap to a file as a formatted JSON
// export document. When filename is empty, a name of the form
// roadmap-<id>-<date>.json is generated under the configured export folder.
// Returns the written filename.
func (m *DataManager) RoadmapExport(filename string) (string, error) {
	roadmap, err := m.RoadmapManager.RoadmapCurrent()
	if err != nil {
		return "", err
	}

	now := time.Now()
	if filename == "" {
		filename = filepath.Join(
			m.Config.ExportFolder,
			fmt.Sprintf("roadmap-%s-%s.json", roadmap.ID, now.Format(model.DateLayout)),
		)
	}

	doc := model.ExportDocument{
		Version:    ExportVersion,
		ExportedAt: now,
		ExportedBy: "Techtracker",
		Roadmap:    *roadmap,
	}
	if err := storage.FileExport(doc, filename); err != nil {
		return "", fmt.Errorf("failed to export roadmap: %w", err)
	}
	return filename, nil
}
