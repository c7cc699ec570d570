// Package imports turns externally supplied JSON documents into well-formed
// roadmaps. Two document flavors are accepted: a "topics" array (full roadmap
// documents, as produced by export) and a "technologies" array (plain
// technology lists). Both are normalized to the same Roadmap shape.
package imports

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"techtracker/local-app/src/pkg/model"
)

// MaxImportSize is the byte-size ceiling for import documents.
const MaxImportSize = 5 << 20 // 5 MiB

// MaxTitleLength is the maximum accepted topic title length.
const MaxTitleLength = 100

// ParseAndValidate parses and validates a roadmap document. The filename is
// used for the file-type guard only; pass an empty string when the data does
// not come from a named file.
//
// Imported topics never carry over progress: status is forced to not-started
// and any completion date is dropped. Target dates, notes and metadata are
// preserved when present.
func ParseAndValidate(filename string, data []byte) (*model.Roadmap, error) {
	if filename != "" && strings.ToLower(filepath.Ext(filename)) != ".json" {
		return nil, ErrUnsupportedType
	}
	if len(data) > MaxImportSize {
		return nil, ErrFileTooLarge
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedDocument
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, newValidationError("$", "document must be a JSON object")
	}

	title := doc.Get("title")
	if title.Type != gjson.String || title.Str == "" {
		return nil, newValidationError("title", "must be a non-empty string")
	}

	// Pick the document flavor: full roadmap documents carry "topics",
	// technology lists carry "technologies".
	field := "topics"
	entries := doc.Get(field)
	if !entries.Exists() {
		field = "technologies"
		entries = doc.Get(field)
	}
	if !entries.IsArray() {
		return nil, newValidationError(field, "must be an array")
	}

	now := time.Now()
	seen := make(map[string]bool)
	var topics []model.Topic
	var entryErr error

	entries.ForEach(func(_, entry gjson.Result) bool {
		i := len(topics)

		entryTitle := entry.Get("title")
		if entryTitle.Type != gjson.String || entryTitle.Str == "" {
			entryErr = &ValidationError{
				Field:  fmt.Sprintf("%s[%d].title", field, i),
				Index:  i,
				Reason: "must be a non-empty string",
			}
			return false
		}
		if len(entryTitle.Str) > MaxTitleLength {
			entryErr = &ValidationError{
				Field:  fmt.Sprintf("%s[%d].title", field, i),
				Index:  i,
				Reason: fmt.Sprintf("title too long (max %d characters)", MaxTitleLength),
			}
			return false
		}

		topic := model.Topic{
			ID:          topicID(entry, seen),
			Title:       entryTitle.Str,
			Description: entry.Get("description").String(),
			Status:      model.StatusNotStarted,
			UserNotes:   entry.Get("userNotes").String(),
			TargetDate:  entry.Get("targetDate").String(),
			Category:    stringOrDefault(entry.Get("category"), model.DefaultCategory),
			Difficulty:  stringOrDefault(entry.Get("difficulty"), model.DefaultDifficulty),
			Resources:   stringList(entry.Get("resources")),
			Created:     now,
			Updated:     now,
		}
		topics = append(topics, topic)
		return true
	})
	if entryErr != nil {
		return nil, entryErr
	}

	roadmap := &model.Roadmap{
		ID:          doc.Get("id").String(),
		Title:       title.Str,
		Description: doc.Get("description").String(),
		Topics:      topics,
	}
	if roadmap.ID == "" {
		roadmap.ID = uuid.NewString()
	}
	return roadmap, nil
}

// topicID extracts the entry's id (string or number form) or generates one.
// Duplicate ids within a document are regenerated so the uniqueness invariant
// holds.
func topicID(entry gjson.Result, seen map[string]bool) string {
	id := ""
	switch v := entry.Get("id"); v.Type {
	case gjson.String:
		id = v.Str
	case gjson.Number:
		id = v.String()
	}
	if id == "" || seen[id] {
		id = uuid.NewString()
	}
	seen[id] = true
	return id
}

// stringOrDefault returns the string value of a result or a default when the
// field is absent or not a string.
func stringOrDefault(v gjson.Result, def string) string {
	if v.Type == gjson.String && v.Str != "" {
		return v.Str
	}
	return def
}

// stringList collects the string elements of a JSON array result.
func stringList(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	var out []string
	v.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			out = append(out, item.Str)
		}
		return true
	})
	return out
}
