// Package model defines the data structures used throughout the Techtracker application.
package model

import "time"

// Status represents the learning state of a topic.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether the status is one of the three known values.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Difficulty levels accepted for topics. Unknown values are kept as-is on
// import; only manual entry validates against this set.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Default values assigned to optional topic metadata.
const (
	DefaultCategory   = "other"
	DefaultDifficulty = DifficultyBeginner
)

// DateLayout is the calendar-date format used for target and completion dates.
const DateLayout = "2006-01-02"

// Topic represents a single technology or topic being tracked in a roadmap.
// TargetDate and CompletedDate hold YYYY-MM-DD strings; empty means unset.
type Topic struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        Status    `json:"status"`
	UserNotes     string    `json:"userNotes"`
	TargetDate    string    `json:"targetDate,omitempty"`
	CompletedDate string    `json:"completedDate,omitempty"`
	Category      string    `json:"category,omitempty"`
	Difficulty    string    `json:"difficulty,omitempty"`
	Resources     []string  `json:"resources,omitempty"`
	Created       time.Time `json:"createdAt"`
	Updated       time.Time `json:"updatedAt"`
}

// Roadmap represents a collection of topics tracked together. Topic order is
// display order; topic IDs are unique within a roadmap.
type Roadmap struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Topics      []Topic `json:"topics"`
}

// TopicInfo carries the fields supplied by manual topic entry.
type TopicInfo struct {
	Title       string
	Description string
	Category    string
	Difficulty  string
	Resources   []string
}

// RoadmapInfo contains summary information about a persisted roadmap.
type RoadmapInfo struct {
	ID       string
	Title    string
	Current  bool
	Progress Progress
}

// Progress is the aggregate completion state of a topic list.
// Percentage is round(completed/total*100), 0 when the list is empty.
type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
	Percentage int `json:"percentage"`
}

// Stats is the same breakdown without the percentage, used for grouped
// category/difficulty statistics.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
}

// ExportDocument is the file format produced by roadmap export: the full
// roadmap plus export metadata.
type ExportDocument struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	ExportedBy string    `json:"exportedFrom"`
	Roadmap
}
