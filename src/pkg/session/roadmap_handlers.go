package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"techtracker/local-app/src/pkg/data"
	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/model"
)

// handleRoadmapImport handles the roadmap import command
func handleRoadmapImport(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling roadmap import command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		return nil, errors.New("roadmap import command requires exactly 1 argument: <filename>")
	}

	roadmap, err := s.DataManager.RoadmapImport(cmd.Args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to import roadmap: %w", err)
	}
	return fmt.Sprintf("Imported '%s' (%d topics, id %s)", roadmap.Title, len(roadmap.Topics), roadmap.ID), nil
}

// handleRoadmapExport handles the roadmap export command
func handleRoadmapExport(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling roadmap export command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) > 1 {
		return nil, errors.New("roadmap export command takes at most 1 argument: [filename]")
	}

	filename := ""
	if len(cmd.Args) == 1 {
		filename = cmd.Args[0]
	}

	written, err := s.DataManager.RoadmapExport(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to export roadmap: %w", err)
	}
	return fmt.Sprintf("Exported to %s", written), nil
}

// handleRoadmapSelect handles the roadmap select command
func handleRoadmapSelect(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling roadmap select command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		return nil, errors.New("roadmap select command requires exactly 1 argument: <roadmap_id>")
	}

	roadmap, err := s.DataManager.RoadmapManager.RoadmapLoad(cmd.Args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to load roadmap: %w", err)
	}
	if err := s.DataManager.RoadmapManager.RoadmapSelect(roadmap); err != nil {
		return nil, fmt.Errorf("failed to select roadmap: %w", err)
	}
	return fmt.Sprintf("Selected '%s' (%d topics)", roadmap.Title, len(roadmap.Topics)), nil
}

// handleRoadmapDeselect handles the roadmap deselect command
func handleRoadmapDeselect(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Info(context.Background(), "Handling roadmap deselect command", nil)

	if err := s.DataManager.RoadmapManager.RoadmapDeselect(); err != nil {
		return nil, fmt.Errorf("failed to deselect roadmap: %w", err)
	}
	return "Roadmap deselected", nil
}

// handleRoadmapList handles the roadmap list command
func handleRoadmapList(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Info(context.Background(), "Handling roadmap list command", nil)

	infos, err := s.DataManager.RoadmapManager.RoadmapList()
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}
	if len(infos) == 0 {
		return "No roadmaps stored", nil
	}

	var b strings.Builder
	for _, info := range infos {
		marker := " "
		if info.Current {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-36s  %3d%% (%d/%d)  %s\n",
			marker, info.ID, info.Progress.Percentage, info.Progress.Completed, info.Progress.Total, info.Title)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// handleRoadmapDelete handles the roadmap delete command
func handleRoadmapDelete(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling roadmap delete command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) != 1 {
		return nil, errors.New("roadmap delete command requires exactly 1 argument: <roadmap_id>")
	}

	if err := s.DataManager.RoadmapManager.RoadmapDelete(cmd.Args[0]); err != nil {
		return nil, fmt.Errorf("failed to delete roadmap: %w", err)
	}
	return fmt.Sprintf("Deleted roadmap %s", cmd.Args[0]), nil
}

// handleRoadmapProgress handles the roadmap progress command
func handleRoadmapProgress(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Info(context.Background(), "Handling roadmap progress command", nil)

	roadmap, err := s.DataManager.RoadmapManager.RoadmapCurrent()
	if err != nil {
		return nil, err
	}

	progress := data.ProgressOf(roadmap.Topics)
	return fmt.Sprintf("%s: %d%% complete (%d completed, %d in progress, %d not started, %d total)",
		roadmap.Title, progress.Percentage, progress.Completed, progress.InProgress, progress.NotStarted, progress.Total), nil
}

// handleRoadmapStats handles the roadmap stats command
func handleRoadmapStats(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling roadmap stats command", log.Fields{"args": cmd.Args})

	if len(cmd.Args) > 1 {
		return nil, errors.New("roadmap stats command takes at most 1 argument: [category|difficulty]")
	}

	roadmap, err := s.DataManager.RoadmapManager.RoadmapCurrent()
	if err != nil {
		return nil, err
	}

	if len(cmd.Args) == 0 {
		stats := data.StatsOf(roadmap.Topics)
		return fmt.Sprintf("total: %d, completed: %d, in progress: %d, not started: %d",
			stats.Total, stats.Completed, stats.InProgress, stats.NotStarted), nil
	}

	var groups map[string]model.Stats
	switch cmd.Args[0] {
	case "category":
		groups = data.StatsByCategory(roadmap.Topics)
	case "difficulty":
		groups = data.StatsByDifficulty(roadmap.Topics)
	default:
		return nil, fmt.Errorf("unknown stats grouping '%s': expected 'category' or 'difficulty'", cmd.Args[0])
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		stats := groups[key]
		fmt.Fprintf(&b, "%-20s total: %d, completed: %d, in progress: %d, not started: %d\n",
			key, stats.Total, stats.Completed, stats.InProgress, stats.NotStarted)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
