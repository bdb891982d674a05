package out

import (
	"context"

	"studyplanner/internal/platform/activitylog"
	"studyplanner/internal/platform/events"
)

// BadgeStore persists the unlocked badge ids. Load returns an error wrapping
// ErrMalformedData when the stored set cannot be read.
type BadgeStore interface {
	LoadUnlocked(ctx context.Context) ([]string, error)
	SaveUnlocked(ctx context.Context, ids []string) error
}

// CounterStore persists the completed timer run count.
type CounterStore interface {
	TimerUses(ctx context.Context) int
	SetTimerUses(ctx context.Context, n int) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type ActivityLog interface {
	Append(event activitylog.Event) error
}
