// Package data provides data management functionality for the Techtracker
// application. This file contains operations related to topic management.
package data

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"techtracker/local-app/src/pkg/event"
	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/model"
)

// ErrTopicNotFound is returned when a referenced topic id is absent from the
// current roadmap.
var ErrTopicNotFound = errors.New("topic not found")

// ErrAllTopicsCompleted is the distinct outcome of a random pick when every
// topic is already completed. Nothing is mutated in that case.
var ErrAllTopicsCompleted = errors.New("all topics completed")

// Limits enforced on manual topic entry.
const (
	maxDescriptionLength = 1000
)

// TopicOperations defines the interface for topic-related operations
type TopicOperations interface {
	TopicStatusUpdate(topicID string, status model.Status) (*model.Roadmap, error)
	TopicNotesUpdate(topicID, notes, targetDate string) (*model.Roadmap, error)
	TopicAdd(info model.TopicInfo) (*model.Roadmap, error)
	TopicsBulkUpdate(topics []model.Topic) (*model.Roadmap, error)
}

// TopicManager handles mutations of topics within the current roadmap. All
// operations go through the RoadmapManager so mutation, persistence and
// completion detection stay atomic with respect to each other.
type TopicManager struct {
	roadmapManager *RoadmapManager
	eventManager   *event.EventManager
	logger         *log.Logger
}

// NewTopicManager creates a new TopicManager instance.
func NewTopicManager(roadmapManager *RoadmapManager, eventManager *event.EventManager, logger *log.Logger) (*TopicManager, error) {
	if roadmapManager == nil {
		return nil, fmt.Errorf("roadmapManager not initialized")
	}
	if eventManager == nil {
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}

	return &TopicManager{
		roadmapManager: roadmapManager,
		eventManager:   eventManager,
		logger:         logger,
	}, nil
}

// TopicStatusUpdate sets a topic's status. Moving to completed stamps the
// completion date with today's date unless the topic is already completed
// with a date (re-applying completed is a no-op on the date). Moving away
// from completed clears the completion date.
func (tm *TopicManager) TopicStatusUpdate(topicID string, status model.Status) (*model.Roadmap, error) {
	ctx := context.Background()
	tm.logger.Info(ctx, "Updating topic status", log.Fields{"topicID": topicID, "status": status})

	if !status.Valid() {
		return nil, fmt.Errorf("invalid status '%s'", status)
	}

	roadmap, err := tm.roadmapManager.mutateCurrent(func(r *model.Roadmap) error {
		topic := findTopic(r, topicID)
		if topic == nil {
			tm.logger.Warn(ctx, "Topic not found", log.Fields{"topicID": topicID})
			return ErrTopicNotFound
		}

		topic.Status = status
		if status == model.StatusCompleted {
			if topic.CompletedDate == "" {
				topic.CompletedDate = today()
			}
		} else {
			topic.CompletedDate = ""
		}
		topic.Updated = time.Now()

		tm.eventManager.Publish(event.Event{Type: event.TopicUpdated, Data: *topic})
		return nil
	})
	if err != nil && roadmap == nil {
		return nil, err
	}
	return roadmap, err
}

// TopicNotesUpdate sets a topic's notes and, when a target date is given,
// its target date.
func (tm *TopicManager) TopicNotesUpdate(topicID, notes, targetDate string) (*model.Roadmap, error) {
	ctx := context.Background()
	tm.logger.Info(ctx, "Updating topic notes", log.Fields{"topicID": topicID})

	if targetDate != "" {
		if _, err := time.Parse(model.DateLayout, targetDate); err != nil {
			return nil, fmt.Errorf("invalid target date '%s': expected YYYY-MM-DD", targetDate)
		}
	}

	roadmap, err := tm.roadmapManager.mutateCurrent(func(r *model.Roadmap) error {
		topic := findTopic(r, topicID)
		if topic == nil {
			tm.logger.Warn(ctx, "Topic not found", log.Fields{"topicID": topicID})
			return ErrTopicNotFound
		}

		topic.UserNotes = notes
		if targetDate != "" {
			topic.TargetDate = targetDate
		}
		topic.Updated = time.Now()

		tm.eventManager.Publish(event.Event{Type: event.TopicUpdated, Data: *topic})
		return nil
	})
	if err != nil && roadmap == nil {
		return nil, err
	}
	return roadmap, err
}

// TopicAdd appends a manually entered topic to the current roadmap.
func (tm *TopicManager) TopicAdd(info model.TopicInfo) (*model.Roadmap, error) {
	ctx := context.Background()
	tm.logger.Info(ctx, "Adding topic", log.Fields{"title": info.Title})

	if info.Title == "" {
		return nil, fmt.Errorf("topic title is required")
	}
	if len(info.Title) > 100 {
		return nil, fmt.Errorf("topic title too long (max 100 characters)")
	}
	if info.Description == "" {
		return nil, fmt.Errorf("topic description is required")
	}
	if len(info.Description) > maxDescriptionLength {
		return nil, fmt.Errorf("topic description too long (max %d characters)", maxDescriptionLength)
	}
	difficulty := info.Difficulty
	if difficulty == "" {
		difficulty = model.DefaultDifficulty
	}
	switch difficulty {
	case model.DifficultyBeginner, model.DifficultyIntermediate, model.DifficultyAdvanced:
	default:
		return nil, fmt.Errorf("invalid difficulty '%s'", difficulty)
	}
	category := info.Category
	if category == "" {
		category = model.DefaultCategory
	}

	roadmap, err := tm.roadmapManager.mutateCurrent(func(r *model.Roadmap) error {
		now := time.Now()
		topic := model.Topic{
			ID:          uuid.NewString(),
			Title:       info.Title,
			Description: info.Description,
			Status:      model.StatusNotStarted,
			Category:    category,
			Difficulty:  difficulty,
			Resources:   info.Resources,
			Created:     now,
			Updated:     now,
		}
		r.Topics = append(r.Topics, topic)

		tm.eventManager.Publish(event.Event{Type: event.TopicAdded, Data: topic})
		return nil
	})
	if err != nil && roadmap == nil {
		return nil, err
	}
	return roadmap, err
}

// TopicsBulkUpdate replaces the whole topic sequence of the current roadmap.
// Topic ids must be present and unique.
func (tm *TopicManager) TopicsBulkUpdate(topics []model.Topic) (*model.Roadmap, error) {
	ctx := context.Background()
	tm.logger.Info(ctx, "Bulk updating topics", log.Fields{"topicCount": len(topics)})

	seen := make(map[string]bool, len(topics))
	for _, topic := range topics {
		if topic.ID == "" {
			return nil, fmt.Errorf("topic '%s' has no id", topic.Title)
		}
		if seen[topic.ID] {
			return nil, fmt.Errorf("duplicate topic id '%s'", topic.ID)
		}
		seen[topic.ID] = true
	}

	roadmap, err := tm.roadmapManager.mutateCurrent(func(r *model.Roadmap) error {
		now := time.Now()
		for i := range topics {
			topics[i].Updated = now
		}
		r.Topics = topics

		tm.eventManager.Publish(event.Event{Type: event.TopicsBulkUpdated, Data: len(topics)})
		return nil
	})
	if err != nil && roadmap == nil {
		return nil, err
	}
	return roadmap, err
}

// TopicsCompleteAll marks every topic completed. Topics that were not yet
// completed get today's date; existing completion dates are preserved.
func (tm *TopicManager) TopicsCompleteAll() (*model.Roadmap, error) {
	tm.logger.Info(context.Background(), "Marking all topics completed", nil)

	roadmap, err := tm.roadmapManager.mutateCurrent(func(r *model.Roadmap) error {
		now := time.Now()
		for i := range r.Topics {
			topic := &r.Topics[i]
			if topic.Status != model.StatusCompleted {
				topic.CompletedDate = today()
			}
			topic.Status = model.StatusCompleted
			topic.Updated = now
		}
		tm.eventManager.Publish(event.Event{Type: event.TopicsBulkUpdated, Data: len(r.Topics)})
		return nil
	})
	if err != nil && roadmap == nil {
		return nil, err
	}
	return roadmap, err
}

// TopicsResetAll resets every topic to not-started and clears completion
// dates.
func (tm *TopicManager) TopicsResetAll() (*model.Roadmap, error) {
	tm.logger.Info(context.Background(), "Resetting all topic statuses", nil)

	roadmap, err := tm.roadmapManager.mutateCurrent(func(r *model.Roadmap) error {
		now := time.Now()
		for i := range r.Topics {
			topic := &r.Topics[i]
			topic.Status = model.StatusNotStarted
			topic.CompletedDate = ""
			topic.Updated = now
		}
		tm.eventManager.Publish(event.Event{Type: event.TopicsBulkUpdated, Data: len(r.Topics)})
		return nil
	})
	if err != nil && roadmap == nil {
		return nil, err
	}
	return roadmap, err
}

// TopicsInvert swaps completed and not-started topics; in-progress topics are
// left untouched.
func (tm *TopicManager) TopicsInvert() (*model.Roadmap, error) {
	tm.logger.Info(context.Background(), "Inverting topic statuses", nil)

	roadmap, err := tm.roadmapManager.mutateCurrent(func(r *model.Roadmap) error {
		now := time.Now()
		for i := range r.Topics {
			topic := &r.Topics[i]
			switch topic.Status {
			case model.StatusCompleted:
				topic.Status = model.StatusNotStarted
				topic.CompletedDate = ""
			case model.StatusNotStarted:
				topic.Status = model.StatusCompleted
				topic.CompletedDate = today()
			default:
				continue
			}
			topic.Updated = now
		}
		tm.eventManager.Publish(event.Event{Type: event.TopicsBulkUpdated, Data: len(r.Topics)})
		return nil
	})
	if err != nil && roadmap == nil {
		return nil, err
	}
	return roadmap, err
}

// TopicRandomPick chooses uniformly at random among topics that are not yet
// completed, marks the chosen topic in-progress and, when it has no target
// date, sets one a week out. Returns ErrAllTopicsCompleted without mutating
// anything when no candidate exists.
func (tm *TopicManager) TopicRandomPick() (*model.Topic, error) {
	ctx := context.Background()
	tm.logger.Info(ctx, "Picking a random topic", nil)

	var picked model.Topic
	_, err := tm.roadmapManager.mutateCurrent(func(r *model.Roadmap) error {
		var candidates []int
		for i := range r.Topics {
			if r.Topics[i].Status != model.StatusCompleted {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			tm.logger.Info(ctx, "No eligible topic for random pick", nil)
			return ErrAllTopicsCompleted
		}

		topic := &r.Topics[candidates[rand.Intn(len(candidates))]]
		topic.Status = model.StatusInProgress
		if topic.TargetDate == "" {
			topic.TargetDate = time.Now().AddDate(0, 0, 7).Format(model.DateLayout)
		}
		topic.Updated = time.Now()
		picked = *topic

		tm.eventManager.Publish(event.Event{Type: event.TopicUpdated, Data: picked})
		return nil
	})
	if err != nil && picked.ID == "" {
		return nil, err
	}
	return &picked, err
}

// findTopic returns a pointer to the topic with the given id, or nil.
func findTopic(roadmap *model.Roadmap, topicID string) *model.Topic {
	for i := range roadmap.Topics {
		if roadmap.Topics[i].ID == topicID {
			return &roadmap.Topics[i]
		}
	}
	return nil
}

// today returns the current calendar date in YYYY-MM-DD form.
func today() string {
	return time.Now().Format(model.DateLayout)
}
