package dto

import (
	"time"

	"studyplanner/internal/platform/civil"
)

// Status filter values for ListFilter.
const (
	StatusAll       = "all"
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
)

// Export formats. FormatMarkdown writes one note per session into a directory.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

type SessionOutput struct {
	ID            string
	Subject       string
	Date          civil.Date
	Time          string
	Duration      int
	Notes         string
	Tags          []string
	Level         int
	CompletedDate *civil.Date
	CreatedAt     time.Time
}

type AddInput struct {
	Subject  string
	Date     civil.Date
	Time     string
	Duration int
	Notes    string
	Tags     []string
}

type AddOutput struct {
	Session SessionOutput
	Saved   bool
}

type CompleteOutput struct {
	Session      SessionOutput
	Changed      bool
	IntervalDays int
	Saved        bool
}

type RemoveOutput struct {
	ID      string
	Changed bool
	Saved   bool
}

type LoadOutput struct {
	Count int
}

type ImportInput struct {
	Path   string
	Format string
}

type ImportOutput struct {
	Read  int
	Added int
	Saved bool
}

type ExportInput struct {
	Path   string
	Format string
	Filter ListFilter
}

type ExportOutput struct {
	Paths []string
	Count int
}

type ListFilter struct {
	Status string
	Tag    string
	Query  string
}

// ChangedEvent is the payload of sessions.changed.
type ChangedEvent struct {
	Reason string
	IDs    []string
}
