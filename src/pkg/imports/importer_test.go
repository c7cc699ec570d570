package imports

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techtracker/local-app/src/pkg/model"
)

func TestParseAndValidateTechnologyList(t *testing.T) {
	doc := `{ "title": "T", "technologies": [{"title": "A"}, {"title": "B"}] }`

	roadmap, err := ParseAndValidate("roadmap.json", []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "T", roadmap.Title)
	assert.NotEmpty(t, roadmap.ID)
	require.Len(t, roadmap.Topics, 2)
	for _, topic := range roadmap.Topics {
		assert.NotEmpty(t, topic.ID)
		assert.Equal(t, model.StatusNotStarted, topic.Status)
		assert.Equal(t, model.DefaultCategory, topic.Category)
		assert.Equal(t, model.DefaultDifficulty, topic.Difficulty)
		assert.False(t, topic.Created.IsZero())
	}
	assert.Equal(t, "A", roadmap.Topics[0].Title)
	assert.Equal(t, "B", roadmap.Topics[1].Title)
}

func TestParseAndValidateRoadmapDocument(t *testing.T) {
	doc := `{
		"id": "my-roadmap",
		"title": "Backend",
		"description": "Server-side topics",
		"topics": [
			{"id": 5, "title": "SQL", "description": "Queries", "status": "completed",
			 "completedDate": "2024-01-01", "targetDate": "2026-12-01", "userNotes": "revisit joins"},
			{"title": "Caching", "category": "infra", "difficulty": "advanced",
			 "resources": ["https://example.com/caching"]}
		]
	}`

	roadmap, err := ParseAndValidate("backend.json", []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "my-roadmap", roadmap.ID)
	assert.Equal(t, "Server-side topics", roadmap.Description)
	require.Len(t, roadmap.Topics, 2)

	// Import never seeds progress: status is forced back and the completion
	// date is dropped, while user metadata survives.
	sql := roadmap.Topics[0]
	assert.Equal(t, "5", sql.ID)
	assert.Equal(t, model.StatusNotStarted, sql.Status)
	assert.Empty(t, sql.CompletedDate)
	assert.Equal(t, "2026-12-01", sql.TargetDate)
	assert.Equal(t, "revisit joins", sql.UserNotes)

	caching := roadmap.Topics[1]
	assert.Equal(t, "infra", caching.Category)
	assert.Equal(t, "advanced", caching.Difficulty)
	assert.Equal(t, []string{"https://example.com/caching"}, caching.Resources)
}

func TestParseAndValidateMissingTitle(t *testing.T) {
	_, err := ParseAndValidate("roadmap.json", []byte(`{"topics": []}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
	assert.Equal(t, -1, verr.Index)
}

func TestParseAndValidateEmptyTitle(t *testing.T) {
	_, err := ParseAndValidate("roadmap.json", []byte(`{"title": "", "topics": []}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestParseAndValidateTechnologiesNotAnArray(t *testing.T) {
	_, err := ParseAndValidate("roadmap.json", []byte(`{"title": "T", "technologies": "not-an-array"}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "technologies", verr.Field)
	assert.Contains(t, verr.Reason, "array")
}

func TestParseAndValidateMissingTopicArray(t *testing.T) {
	_, err := ParseAndValidate("roadmap.json", []byte(`{"title": "T"}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "array")
}

func TestParseAndValidateTopLevelNotAnObject(t *testing.T) {
	_, err := ParseAndValidate("roadmap.json", []byte(`[1, 2, 3]`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "$", verr.Field)
}

func TestParseAndValidateEntryMissingTitle(t *testing.T) {
	doc := `{"title": "T", "topics": [{"title": "A"}, {"description": "no title"}]}`

	_, err := ParseAndValidate("roadmap.json", []byte(doc))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Index)
	assert.Equal(t, "topics[1].title", verr.Field)
}

func TestParseAndValidateEntryTitleTooLong(t *testing.T) {
	doc := `{"title": "T", "technologies": [{"title": "` + strings.Repeat("x", 101) + `"}]}`

	_, err := ParseAndValidate("roadmap.json", []byte(doc))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Index)
	assert.Contains(t, verr.Reason, "too long")
}

func TestParseAndValidateMalformedJSON(t *testing.T) {
	_, err := ParseAndValidate("roadmap.json", []byte(`{"title": "T", "topics": [`))
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestParseAndValidateFileTooLarge(t *testing.T) {
	data := bytes.Repeat([]byte("x"), MaxImportSize+1)
	_, err := ParseAndValidate("roadmap.json", data)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestParseAndValidateUnsupportedType(t *testing.T) {
	_, err := ParseAndValidate("roadmap.txt", []byte(`{"title": "T", "topics": []}`))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestParseAndValidateNoFilenameSkipsTypeGuard(t *testing.T) {
	_, err := ParseAndValidate("", []byte(`{"title": "T", "topics": []}`))
	assert.NoError(t, err)
}

func TestParseAndValidateDuplicateIDsRegenerated(t *testing.T) {
	doc := `{"title": "T", "topics": [{"id": "a", "title": "A"}, {"id": "a", "title": "B"}]}`

	roadmap, err := ParseAndValidate("roadmap.json", []byte(doc))
	require.NoError(t, err)
	require.Len(t, roadmap.Topics, 2)
	assert.Equal(t, "a", roadmap.Topics[0].ID)
	assert.NotEqual(t, roadmap.Topics[0].ID, roadmap.Topics[1].ID)
	assert.NotEmpty(t, roadmap.Topics[1].ID)
}
