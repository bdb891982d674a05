package out

import (
	"context"
	"time"

	"studyplanner/internal/platform/activitylog"
	"studyplanner/internal/platform/events"
)

// Ticker produces ticks every interval until stop is called.
type Ticker interface {
	Start(interval time.Duration) (ticks <-chan time.Time, stop func())
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type ActivityLog interface {
	Append(event activitylog.Event) error
}
