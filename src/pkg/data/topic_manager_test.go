package data

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techtracker/local-app/src/pkg/event"
	"techtracker/local-app/src/pkg/log"
	"techtracker/local-app/src/pkg/model"
	"techtracker/local-app/src/pkg/storage"
)

func newTestLogger(t *testing.T) *log.Logger {
	t.Helper()
	cfg := &model.Config{
		LogFolder: t.TempDir(),
		MainLog:   "main.log",
		ErrorLog:  "errors.log",
	}
	logger, err := log.NewLogger(cfg, log.LevelError)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger
}

// fakeRoadmapStore is a map-backed RoadmapStore for exercising the managers
// without a database.
type fakeRoadmapStore struct {
	roadmaps   map[string]*model.Roadmap
	current    string
	hasCurrent bool
	failWrites bool
	saveCount  int
}

func newFakeRoadmapStore() *fakeRoadmapStore {
	return &fakeRoadmapStore{roadmaps: make(map[string]*model.Roadmap)}
}

func (f *fakeRoadmapStore) RoadmapSave(roadmap *model.Roadmap) error {
	if f.failWrites {
		return &storage.WriteError{Key: "roadmap_" + roadmap.ID, Err: errors.New("disk full")}
	}
	copied := *roadmap
	copied.Topics = append([]model.Topic(nil), roadmap.Topics...)
	f.roadmaps[roadmap.ID] = &copied
	f.saveCount++
	return nil
}

func (f *fakeRoadmapStore) RoadmapGet(id string) (*model.Roadmap, error) {
	roadmap, ok := f.roadmaps[id]
	if !ok {
		return nil, storage.ErrRoadmapNotFound
	}
	copied := *roadmap
	copied.Topics = append([]model.Topic(nil), roadmap.Topics...)
	return &copied, nil
}

func (f *fakeRoadmapStore) RoadmapDelete(id string) error {
	delete(f.roadmaps, id)
	if f.current == id {
		f.current = ""
		f.hasCurrent = false
	}
	return nil
}

func (f *fakeRoadmapStore) RoadmapList() ([]string, error) {
	ids := make([]string, 0, len(f.roadmaps))
	for id := range f.roadmaps {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeRoadmapStore) CurrentSet(id string) error {
	if f.failWrites {
		return &storage.WriteError{Key: "currentRoadmapId", Err: errors.New("disk full")}
	}
	f.current = id
	f.hasCurrent = true
	return nil
}

func (f *fakeRoadmapStore) CurrentGet() (string, error) {
	if !f.hasCurrent {
		return "", storage.ErrNoCurrentRoadmap
	}
	return f.current, nil
}

func (f *fakeRoadmapStore) CurrentClear() error {
	f.current = ""
	f.hasCurrent = false
	return nil
}

type testManagers struct {
	store        *fakeRoadmapStore
	eventManager *event.EventManager
	roadmaps     *RoadmapManager
	topics       *TopicManager
}

func newTestManagers(t *testing.T) *testManagers {
	t.Helper()
	logger := newTestLogger(t)
	store := newFakeRoadmapStore()
	eventManager := event.NewEventManager(logger)

	roadmaps, err := NewRoadmapManager(store, eventManager, logger)
	require.NoError(t, err)
	topics, err := NewTopicManager(roadmaps, eventManager, logger)
	require.NoError(t, err)

	return &testManagers{
		store:        store,
		eventManager: eventManager,
		roadmaps:     roadmaps,
		topics:       topics,
	}
}

func (m *testManagers) selectRoadmap(t *testing.T, topics ...model.Topic) *model.Roadmap {
	t.Helper()
	roadmap := &model.Roadmap{ID: "r1", Title: "Go Roadmap", Topics: topics}
	require.NoError(t, m.roadmaps.RoadmapSelect(roadmap))
	return roadmap
}

func topic(id, title string, status model.Status) model.Topic {
	return model.Topic{ID: id, Title: title, Description: title, Status: status}
}

func TestTopicStatusUpdateStampsCompletionDate(t *testing.T) {
	m := newTestManagers(t)
	m.selectRoadmap(t, topic("1", "Goroutines", model.StatusNotStarted))

	roadmap, err := m.topics.TopicStatusUpdate("1", model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, roadmap.Topics[0].Status)
	assert.Equal(t, time.Now().Format(model.DateLayout), roadmap.Topics[0].CompletedDate)
}

func TestTopicStatusUpdateKeepsExistingCompletionDate(t *testing.T) {
	m := newTestManagers(t)
	seeded := topic("1", "Channels", model.StatusCompleted)
	seeded.CompletedDate = "2020-05-01"
	m.selectRoadmap(t, seeded)

	roadmap, err := m.topics.TopicStatusUpdate("1", model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, "2020-05-01", roadmap.Topics[0].CompletedDate)
}

func TestTopicStatusUpdateRevertClearsCompletionDate(t *testing.T) {
	m := newTestManagers(t)
	seeded := topic("1", "Channels", model.StatusCompleted)
	seeded.CompletedDate = "2020-05-01"
	m.selectRoadmap(t, seeded)

	roadmap, err := m.topics.TopicStatusUpdate("1", model.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, roadmap.Topics[0].Status)
	assert.Empty(t, roadmap.Topics[0].CompletedDate)
}

func TestTopicStatusUpdateInvalidStatus(t *testing.T) {
	m := newTestManagers(t)
	m.selectRoadmap(t, topic("1", "Goroutines", model.StatusNotStarted))

	_, err := m.topics.TopicStatusUpdate("1", model.Status("done"))
	assert.Error(t, err)
}

func TestTopicStatusUpdateUnknownTopic(t *testing.T) {
	m := newTestManagers(t)
	m.selectRoadmap(t, topic("1", "Goroutines", model.StatusNotStarted))
	savesBefore := m.store.saveCount

	_, err := m.topics.TopicStatusUpdate("missing", model.StatusCompleted)
	assert.ErrorIs(t, err, ErrTopicNotFound)

	// State is untouched on failed lookups.
	current, err := m.roadmaps.RoadmapCurrent()
	require.NoError(t, err)
	assert.Equal(t, model.StatusNotStarted, current.Topics[0].Status)
	assert.Equal(t, savesBefore, m.store.saveCount)
}

func TestTopicStatusUpdateNoRoadmapSelected(t *testing.T) {
	m := newTestManagers(t)

	_, err := m.topics.TopicStatusUpdate("1", model.StatusCompleted)
	assert.ErrorIs(t, err, ErrNoRoadmapSelected)
}

func TestTopicNotesUpdate(t *testing.T) {
	m := newTestManagers(t)
	seeded := topic("1", "Goroutines", model.StatusNotStarted)
	seeded.TargetDate = "2026-01-01"
	m.selectRoadmap(t, seeded)

	roadmap, err := m.topics.TopicNotesUpdate("1", "read the memory model", "2026-02-15")
	require.NoError(t, err)
	assert.Equal(t, "read the memory model", roadmap.Topics[0].UserNotes)
	assert.Equal(t, "2026-02-15", roadmap.Topics[0].TargetDate)

	// An empty target date leaves the existing one alone.
	roadmap, err = m.topics.TopicNotesUpdate("1", "updated notes", "")
	require.NoError(t, err)
	assert.Equal(t, "updated notes", roadmap.Topics[0].UserNotes)
	assert.Equal(t, "2026-02-15", roadmap.Topics[0].TargetDate)
}

func TestTopicNotesUpdateInvalidTargetDate(t *testing.T) {
	m := newTestManagers(t)
	m.selectRoadmap(t, topic("1", "Goroutines", model.StatusNotStarted))

	_, err := m.topics.TopicNotesUpdate("1", "notes", "15/02/2026")
	assert.Error(t, err)
}

func TestTopicAdd(t *testing.T) {
	m := newTestManagers(t)
	m.selectRoadmap(t)

	roadmap, err := m.topics.TopicAdd(model.TopicInfo{
		Title:       "Generics",
		Description: "Type parameters and constraints",
		Resources:   []string{"https://go.dev/doc/tutorial/generics"},
	})
	require.NoError(t, err)
	require.Len(t, roadmap.Topics, 1)

	added := roadmap.Topics[0]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, model.StatusNotStarted, added.Status)
	assert.Equal(t, model.DefaultCategory, added.Category)
	assert.Equal(t, model.DefaultDifficulty, added.Difficulty)
}

func TestTopicAddValidation(t *testing.T) {
	m := newTestManagers(t)
	m.selectRoadmap(t)

	longTitle := make([]byte, 101)
	for i := range longTitle {
		longTitle[i] = 'a'
	}

	cases := []struct {
		name string
		info model.TopicInfo
	}{
		{"missing title", model.TopicInfo{Description: "d"}},
		{"title too long", model.TopicInfo{Title: string(longTitle), Description: "d"}},
		{"missing description", model.TopicInfo{Title: "t"}},
		{"invalid difficulty", model.TopicInfo{Title: "t", Description: "d", Difficulty: "extreme"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.topics.TopicAdd(tc.info)
			assert.Error(t, err)
		})
	}
}

func TestTopicsBulkUpdateRejectsDuplicateIDs(t *testing.T) {
	m := newTestManagers(t)
	m.selectRoadmap(t, topic("1", "Goroutines", model.StatusNotStarted))

	_, err := m.topics.TopicsBulkUpdate([]model.Topic{
		topic("1", "A", model.StatusNotStarted),
		topic("1", "B", model.StatusNotStarted),
	})
	assert.Error(t, err)
}

func TestTopicsCompleteAllPreservesExistingDates(t *testing.T) {
	m := newTestManagers(t)
	already := topic("1", "Channels", model.StatusCompleted)
	already.CompletedDate = "2020-05-01"
	m.selectRoadmap(t,
		already,
		topic("2", "Goroutines", model.StatusInProgress),
		topic("3", "Generics", model.StatusNotStarted),
	)

	roadmap, err := m.topics.TopicsCompleteAll()
	require.NoError(t, err)

	today := time.Now().Format(model.DateLayout)
	assert.Equal(t, "2020-05-01", roadmap.Topics[0].CompletedDate)
	assert.Equal(t, today, roadmap.Topics[1].CompletedDate)
	assert.Equal(t, today, roadmap.Topics[2].CompletedDate)
	for _, tp := range roadmap.Topics {
		assert.Equal(t, model.StatusCompleted, tp.Status)
	}
}

func TestTopicsResetAll(t *testing.T) {
	m := newTestManagers(t)
	done := topic("1", "Channels", model.StatusCompleted)
	done.CompletedDate = "2020-05-01"
	m.selectRoadmap(t, done, topic("2", "Goroutines", model.StatusInProgress))

	roadmap, err := m.topics.TopicsResetAll()
	require.NoError(t, err)
	for _, tp := range roadmap.Topics {
		assert.Equal(t, model.StatusNotStarted, tp.Status)
		assert.Empty(t, tp.CompletedDate)
	}
}

func TestTopicsInvert(t *testing.T) {
	m := newTestManagers(t)
	done := topic("1", "Channels", model.StatusCompleted)
	done.CompletedDate = "2020-05-01"
	m.selectRoadmap(t,
		done,
		topic("2", "Goroutines", model.StatusInProgress),
		topic("3", "Generics", model.StatusNotStarted),
	)

	roadmap, err := m.topics.TopicsInvert()
	require.NoError(t, err)

	assert.Equal(t, model.StatusNotStarted, roadmap.Topics[0].Status)
	assert.Empty(t, roadmap.Topics[0].CompletedDate)
	assert.Equal(t, model.StatusInProgress, roadmap.Topics[1].Status)
	assert.Equal(t, model.StatusCompleted, roadmap.Topics[2].Status)
	assert.Equal(t, time.Now().Format(model.DateLayout), roadmap.Topics[2].CompletedDate)
}

func TestTopicRandomPick(t *testing.T) {
	m := newTestManagers(t)
	done := topic("1", "Channels", model.StatusCompleted)
	done.CompletedDate = "2020-05-01"
	m.selectRoadmap(t, done, topic("2", "Goroutines", model.StatusNotStarted))

	picked, err := m.topics.TopicRandomPick()
	require.NoError(t, err)

	// Only the non-completed topic is eligible.
	assert.Equal(t, "2", picked.ID)
	assert.Equal(t, model.StatusInProgress, picked.Status)
	assert.Equal(t, time.Now().AddDate(0, 0, 7).Format(model.DateLayout), picked.TargetDate)
}

func TestTopicRandomPickKeepsExistingTargetDate(t *testing.T) {
	m := newTestManagers(t)
	seeded := topic("1", "Goroutines", model.StatusNotStarted)
	seeded.TargetDate = "2030-01-01"
	m.selectRoadmap(t, seeded)

	picked, err := m.topics.TopicRandomPick()
	require.NoError(t, err)
	assert.Equal(t, "2030-01-01", picked.TargetDate)
}

func TestTopicRandomPickAllCompleted(t *testing.T) {
	m := newTestManagers(t)
	done := topic("1", "Channels", model.StatusCompleted)
	done.CompletedDate = "2020-05-01"
	m.selectRoadmap(t, done)
	savesBefore := m.store.saveCount

	_, err := m.topics.TopicRandomPick()
	assert.ErrorIs(t, err, ErrAllTopicsCompleted)
	assert.Equal(t, savesBefore, m.store.saveCount)
}

func TestTopicMutationSurvivesWriteFailure(t *testing.T) {
	m := newTestManagers(t)
	m.selectRoadmap(t, topic("1", "Goroutines", model.StatusNotStarted))
	m.store.failWrites = true

	roadmap, err := m.topics.TopicStatusUpdate("1", model.StatusCompleted)

	// The write error is reported but the in-memory mutation is kept.
	var werr *storage.WriteError
	require.ErrorAs(t, err, &werr)
	require.NotNil(t, roadmap)
	assert.Equal(t, model.StatusCompleted, roadmap.Topics[0].Status)

	current, err := m.roadmaps.RoadmapCurrent()
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, current.Topics[0].Status)
}

func TestRoadmapCompletedEventPublishedOnce(t *testing.T) {
	m := newTestManagers(t)
	m.selectRoadmap(t,
		topic("1", "Channels", model.StatusCompleted),
		topic("2", "Goroutines", model.StatusNotStarted),
	)

	completed := make(chan event.Event, 2)
	m.eventManager.Subscribe(event.RoadmapCompleted, func(e event.Event) {
		completed <- e
	})

	_, err := m.topics.TopicStatusUpdate("2", model.StatusCompleted)
	require.NoError(t, err)

	select {
	case e := <-completed:
		roadmap, ok := e.Data.(*model.Roadmap)
		require.True(t, ok)
		assert.Equal(t, "r1", roadmap.ID)
	case <-time.After(time.Second):
		t.Fatal("expected a completion event")
	}

	// Touching an already fully completed roadmap does not fire again.
	_, err = m.topics.TopicNotesUpdate("2", "notes", "")
	require.NoError(t, err)
	select {
	case <-completed:
		t.Fatal("unexpected second completion event")
	case <-time.After(100 * time.Millisecond):
	}
}
