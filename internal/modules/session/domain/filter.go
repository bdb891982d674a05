package domain

import (
	"strings"

	"studyplanner/internal/platform/civil"
)

type Status string

const (
	StatusAll       Status = "all"
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
)

func ParseStatus(value string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case "", StatusAll:
		return StatusAll, true
	case StatusUpcoming:
		return StatusUpcoming, true
	case StatusCompleted:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// Filter selects sessions for listing. Tag must be normalised; Query is a
// case-insensitive substring matched against subject and notes.
type Filter struct {
	Status Status
	Tag    string
	Query  string
}

func (f Filter) Matches(s Session, today civil.Date) bool {
	switch f.Status {
	case StatusUpcoming:
		if s.Level != 0 || s.Date.Before(today) {
			return false
		}
	case StatusCompleted:
		if s.Level == 0 {
			return false
		}
	}
	if f.Tag != "" && !s.HasTag(f.Tag) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(s.Subject), q) && !strings.Contains(strings.ToLower(s.Notes), q) {
			return false
		}
	}
	return true
}
