// Package kvstore is the planner's durable string key/value storage.
//
// Store implementations return errors; Guarded layers the forgiving
// contract the rest of the application relies on: writes report success as
// a bool, reads report absence, and neither ever fails the caller.
package kvstore

import "context"

// Well-known keys.
const (
	KeySessions      = "study_planner_sessions_v1"
	KeyBadges        = "study_planner_badges_v1"
	KeyTimerUses     = "timer_uses"
	KeyTheme         = "study_planner_theme"
	KeyTourCompleted = "study_planner_tour_completed"
	KeyWatchlist     = "studyplanner_watchlist"
)

// Store reads and writes string values. Get returns apperrors.ErrNotFound
// for a missing key; Set returns apperrors.ErrQuotaExceeded when the write
// would exceed the configured capacity.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
