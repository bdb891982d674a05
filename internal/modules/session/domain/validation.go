package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"studyplanner/internal/platform/civil"
	apperrors "studyplanner/internal/platform/errors"
)

const (
	MinSubjectLen = 2
	MaxSubjectLen = 100
	MinDuration   = 1
	MaxDuration   = 480
	MaxNotesLen   = 500
)

var clockTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidationError is a user-facing input error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return apperrors.ErrInvalidInput }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Window is the range of dates a new session may be scheduled on.
func Window(today civil.Date) (civil.Date, civil.Date) {
	midnight := today.Midnight(nil)
	return civil.Of(midnight.AddDate(-1, 0, 0)), civil.Of(midnight.AddDate(2, 0, 0))
}

// ValidateNew checks a session about to be created. Subject, notes and time
// are expected to be trimmed already.
func ValidateNew(s Session, today civil.Date) error {
	if n := utf8.RuneCountInString(s.Subject); n < MinSubjectLen || n > MaxSubjectLen {
		return invalid("subject", fmt.Sprintf("Subject must be between %d and %d characters", MinSubjectLen, MaxSubjectLen))
	}
	if s.Duration < MinDuration || s.Duration > MaxDuration {
		return invalid("duration", fmt.Sprintf("Duration must be between %d and %d minutes", MinDuration, MaxDuration))
	}
	from, to := Window(today)
	if s.Date.IsZero() || s.Date.Before(from) || s.Date.After(to) {
		return invalid("date", "Date must be within the allowed window")
	}
	if utf8.RuneCountInString(s.Notes) > MaxNotesLen {
		return invalid("notes", fmt.Sprintf("Notes must be %d characters or fewer", MaxNotesLen))
	}
	if s.Time != "" && !clockTime.MatchString(s.Time) {
		return invalid("time", "Time must be HH:MM")
	}
	return nil
}

// ValidateStored checks the structural rules every persisted session must
// satisfy. It is looser than ValidateNew: old dates and legacy zero
// durations are accepted.
func ValidateStored(s Session) error {
	switch {
	case strings.TrimSpace(s.ID) == "":
		return fmt.Errorf("%w: session without id", apperrors.ErrMalformedData)
	case strings.TrimSpace(s.Subject) == "":
		return fmt.Errorf("%w: session %s without subject", apperrors.ErrMalformedData, s.ID)
	case s.Date.IsZero():
		return fmt.Errorf("%w: session %s without date", apperrors.ErrMalformedData, s.ID)
	case s.Level < 0:
		return fmt.Errorf("%w: session %s has negative level", apperrors.ErrMalformedData, s.ID)
	case s.Duration < 0 || s.Duration > MaxDuration:
		return fmt.Errorf("%w: session %s duration out of range", apperrors.ErrMalformedData, s.ID)
	case (s.Level == 0) != (s.CompletedDate == nil):
		return fmt.Errorf("%w: session %s level and completed date disagree", apperrors.ErrMalformedData, s.ID)
	case s.Time != "" && !clockTime.MatchString(s.Time):
		return fmt.Errorf("%w: session %s has invalid time", apperrors.ErrMalformedData, s.ID)
	}
	return nil
}

// NormalizeTag folds case and trims. New sessions store folded tags; filters
// fold both sides.
func NormalizeTag(tag string) string {
	return cases.Fold().String(strings.TrimSpace(tag))
}

// NormalizeTags folds, trims and deduplicates tags, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag := NormalizeTag(raw)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
