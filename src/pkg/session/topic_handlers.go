package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"techtracker/local-app/src/pkg/data"
	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/model"
)

// handleTopicList handles the topic list command
func handleTopicList(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Info(context.Background(), "Handling topic list command", nil)

	roadmap, err := s.DataManager.RoadmapManager.RoadmapCurrent()
	if err != nil {
		return nil, err
	}
	if len(roadmap.Topics) == 0 {
		return "No topics in the current roadmap", nil
	}

	var b strings.Builder
	for i, topic := range roadmap.Topics {
		fmt.Fprintf(&b, "%3d. [%-11s] %s (id %s)", i+1, topic.Status, topic.Title, topic.ID)
		if topic.TargetDate != "" {
			fmt.Fprintf(&b, "  target %s", topic.TargetDate)
		}
		if topic.CompletedDate != "" {
			fmt.Fprintf(&b, "  completed %s", topic.CompletedDate)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// handleTopicAdd handles the topic add command
func handleTopicAdd(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling topic add command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 2 || len(cmd.Args) > 4 {
		return nil, errors.New("topic add command requires 2 to 4 arguments: <title> <description> [category] [difficulty]")
	}

	info := model.TopicInfo{
		Title:       cmd.Args[0],
		Description: cmd.Args[1],
	}
	if len(cmd.Args) > 2 {
		info.Category = cmd.Args[2]
	}
	if len(cmd.Args) > 3 {
		info.Difficulty = cmd.Args[3]
	}

	roadmap, err := s.DataManager.TopicManager.TopicAdd(info)
	if err != nil {
		return nil, fmt.Errorf("failed to add topic: %w", err)
	}
	return fmt.Sprintf("Added topic '%s' (%d topics total)", info.Title, len(roadmap.Topics)), nil
}

// handleTopicStatus handles the topic status command
func handleTopicStatus(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling topic status command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 2 {
		return nil, errors.New("topic status command requires exactly 2 arguments: <topic_id> <not-started|in-progress|completed>")
	}

	_, err := s.DataManager.TopicManager.TopicStatusUpdate(cmd.Args[0], model.Status(cmd.Args[1]))
	if err != nil {
		return nil, fmt.Errorf("failed to update topic status: %w", err)
	}
	return fmt.Sprintf("Topic %s is now %s", cmd.Args[0], cmd.Args[1]), nil
}

// handleTopicNotes handles the topic notes command
func handleTopicNotes(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling topic notes command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) < 2 || len(cmd.Args) > 3 {
		return nil, errors.New("topic notes command requires 2 or 3 arguments: <topic_id> <notes> [target_date]")
	}

	targetDate := ""
	if len(cmd.Args) == 3 {
		targetDate = cmd.Args[2]
	}

	_, err := s.DataManager.TopicManager.TopicNotesUpdate(cmd.Args[0], cmd.Args[1], targetDate)
	if err != nil {
		return nil, fmt.Errorf("failed to update topic notes: %w", err)
	}
	return fmt.Sprintf("Updated notes for topic %s", cmd.Args[0]), nil
}

// handleTopicCompleteAll handles the topic complete-all command
func handleTopicCompleteAll(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Info(context.Background(), "Handling topic complete-all command", nil)

	roadmap, err := s.DataManager.TopicManager.TopicsCompleteAll()
	if err != nil {
		return nil, fmt.Errorf("failed to complete all topics: %w", err)
	}
	return fmt.Sprintf("Marked %d topics completed", len(roadmap.Topics)), nil
}

// handleTopicResetAll handles the topic reset-all command
func handleTopicResetAll(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Info(context.Background(), "Handling topic reset-all command", nil)

	roadmap, err := s.DataManager.TopicManager.TopicsResetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to reset topics: %w", err)
	}
	return fmt.Sprintf("Reset %d topics to not-started", len(roadmap.Topics)), nil
}

// handleTopicInvert handles the topic invert command
func handleTopicInvert(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Info(context.Background(), "Handling topic invert command", nil)

	if _, err := s.DataManager.TopicManager.TopicsInvert(); err != nil {
		return nil, fmt.Errorf("failed to invert topic statuses: %w", err)
	}
	return "Swapped completed and not-started topics", nil
}

// handleTopicRandom handles the topic random command
func handleTopicRandom(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Info(context.Background(), "Handling topic random command", nil)

	topic, err := s.DataManager.TopicManager.TopicRandomPick()
	if errors.Is(err, data.ErrAllTopicsCompleted) {
		return "All topics are already completed", nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick a topic: %w", err)
	}
	return fmt.Sprintf("Next up: '%s' (now in progress, target %s)", topic.Title, topic.TargetDate), nil
}
