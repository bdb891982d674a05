package domain

import (
	"slices"
	"time"

	"studyplanner/internal/platform/civil"
)

const SchemaVersion = 1

// Session is one scheduled study block. Level counts completions; once it is
// above zero, Date holds the next review date.
type Session struct {
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

func (s Session) Completed() bool {
	return s.Level > 0
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	out := s
	if s.Tags != nil {
		out.Tags = slices.Clone(s.Tags)
	}
	if s.CompletedDate != nil {
		d := *s.CompletedDate
		out.CompletedDate = &d
	}
	return out
}

// Complete records a review on today and moves Date to the next review.
func (s *Session) Complete(today civil.Date) {
	completed := today
	s.CompletedDate = &completed
	s.Level++
	s.Date = NextDueDate(s.Date, s.Level)
}

// HasTag reports whether tag (already normalised) is on the session. Stored
// tags are folded before comparing since imports keep them as written.
func (s Session) HasTag(tag string) bool {
	return slices.ContainsFunc(s.Tags, func(t string) bool { return NormalizeTag(t) == tag })
}

// SortByDate orders sessions ascending by date, keeping insertion order for
// equal dates.
func SortByDate(sessions []Session) {
	slices.SortStableFunc(sessions, func(a, b Session) int {
		return a.Date.Compare(b.Date)
	})
}
