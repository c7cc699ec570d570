package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"techtracker/local-app/src/pkg/model"
)

func TestProgressOfEmpty(t *testing.T) {
	progress := ProgressOf(nil)
	assert.Equal(t, model.Progress{}, progress)
}

func TestProgressOfRounding(t *testing.T) {
	topics := []model.Topic{
		topic("1", "A", model.StatusCompleted),
		topic("2", "B", model.StatusInProgress),
		topic("3", "C", model.StatusNotStarted),
	}

	progress := ProgressOf(topics)
	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 1, progress.Completed)
	assert.Equal(t, 1, progress.InProgress)
	assert.Equal(t, 1, progress.NotStarted)
	// 1/3 rounds to 33.
	assert.Equal(t, 33, progress.Percentage)

	topics[1].Status = model.StatusCompleted
	// 2/3 rounds to 67.
	assert.Equal(t, 67, ProgressOf(topics).Percentage)

	topics[2].Status = model.StatusCompleted
	assert.Equal(t, 100, ProgressOf(topics).Percentage)
}

func TestStatsByCategory(t *testing.T) {
	withCategory := func(id, category string, status model.Status) model.Topic {
		tp := topic(id, id, status)
		tp.Category = category
		return tp
	}
	topics := []model.Topic{
		withCategory("1", "concurrency", model.StatusCompleted),
		withCategory("2", "concurrency", model.StatusNotStarted),
		withCategory("3", "", model.StatusInProgress),
	}

	groups := StatsByCategory(topics)
	assert.Len(t, groups, 2)
	assert.Equal(t, model.Stats{Total: 2, Completed: 1, NotStarted: 1}, groups["concurrency"])
	assert.Equal(t, model.Stats{Total: 1, InProgress: 1}, groups[UncategorizedBucket])
}

func TestStatsByDifficulty(t *testing.T) {
	withDifficulty := func(id, difficulty string, status model.Status) model.Topic {
		tp := topic(id, id, status)
		tp.Difficulty = difficulty
		return tp
	}
	topics := []model.Topic{
		withDifficulty("1", model.DifficultyBeginner, model.StatusCompleted),
		withDifficulty("2", model.DifficultyAdvanced, model.StatusNotStarted),
		withDifficulty("3", "", model.StatusNotStarted),
	}

	groups := StatsByDifficulty(topics)
	assert.Len(t, groups, 3)
	assert.Equal(t, model.Stats{Total: 1, Completed: 1}, groups[model.DifficultyBeginner])
	assert.Equal(t, model.Stats{Total: 1, NotStarted: 1}, groups[model.DifficultyAdvanced])
	assert.Equal(t, model.Stats{Total: 1, NotStarted: 1}, groups[UnspecifiedBucket])
}
