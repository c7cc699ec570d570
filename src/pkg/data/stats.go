// Package data provides data management functionality for the Techtracker
// application. This file contains the pure progress and statistics reductions.
package data

import (
	"math"

	"techtracker/local-app/src/pkg/model"
)

// Bucket names used for topics without category or difficulty metadata.
const (
	UncategorizedBucket = "uncategorized"
	UnspecifiedBucket   = "unspecified"
)

// ProgressOf computes the aggregate progress of a topic list. The percentage
// is round(completed/total*100) and 0 for an empty list.
func ProgressOf(topics []model.Topic) model.Progress {
	stats := StatsOf(topics)
	progress := model.Progress{
		Total:      stats.Total,
		Completed:  stats.Completed,
		InProgress: stats.InProgress,
		NotStarted: stats.NotStarted,
	}
	if stats.Total > 0 {
		progress.Percentage = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return progress
}

// StatsOf counts topics by status.
func StatsOf(topics []model.Topic) model.Stats {
	var stats model.Stats
	stats.Total = len(topics)
	for _, topic := range topics {
		switch topic.Status {
		case model.StatusCompleted:
			stats.Completed++
		case model.StatusInProgress:
			stats.InProgress++
		default:
			stats.NotStarted++
		}
	}
	return stats
}

// StatsByCategory groups status counts by topic category. Topics without a
// category land in the "uncategorized" bucket.
func StatsByCategory(topics []model.Topic) map[string]model.Stats {
	return groupStats(topics, func(t model.Topic) string {
		if t.Category == "" {
			return UncategorizedBucket
		}
		return t.Category
	})
}

// StatsByDifficulty groups status counts by topic difficulty. Topics without
// a difficulty land in the "unspecified" bucket.
func StatsByDifficulty(topics []model.Topic) map[string]model.Stats {
	return groupStats(topics, func(t model.Topic) string {
		if t.Difficulty == "" {
			return UnspecifiedBucket
		}
		return t.Difficulty
	})
}

// groupStats is a pure reduction keyed by the given metadata accessor.
func groupStats(topics []model.Topic, keyOf func(model.Topic) string) map[string]model.Stats {
	groups := make(map[string]model.Stats)
	for _, topic := range topics {
		key := keyOf(topic)
		stats := groups[key]
		stats.Total++
		switch topic.Status {
		case model.StatusCompleted:
			stats.Completed++
		case model.StatusInProgress:
			stats.InProgress++
		default:
			stats.NotStarted++
		}
		groups[key] = stats
	}
	return groups
}
