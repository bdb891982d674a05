package events_test

import (
	"context"
	"testing"

	"studyplanner/internal/platform/events"
)

func TestPublishReachesSubscribersInOrder(t *testing.T) {
	t.Parallel()
	bus := events.NewBus()
	var order []string
	bus.Subscribe(events.SessionsChanged, func(context.Context, events.Event) { order = append(order, "a") })
	bus.Subscribe(events.SessionsChanged, func(context.Context, events.Event) { order = append(order, "b") })
	bus.Subscribe(events.BadgesChanged, func(context.Context, events.Event) { order = append(order, "badges") })

	bus.Publish(context.Background(), events.Event{Topic: events.SessionsChanged})
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected delivery order %v", order)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()
	bus := events.NewBus()
	calls := 0
	cancel := bus.Subscribe(events.TimerCompleted, func(context.Context, events.Event) { calls++ })
	bus.Publish(context.Background(), events.Event{Topic: events.TimerCompleted})
	cancel()
	bus.Publish(context.Background(), events.Event{Topic: events.TimerCompleted})
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
}

func TestHandlersMayPublish(t *testing.T) {
	t.Parallel()
	bus := events.NewBus()
	badges := 0
	bus.Subscribe(events.SessionsChanged, func(ctx context.Context, _ events.Event) {
		bus.Publish(ctx, events.Event{Topic: events.BadgesChanged, Payload: []string{"first_session"}})
	})
	bus.Subscribe(events.BadgesChanged, func(_ context.Context, e events.Event) {
		if ids, ok := e.Payload.([]string); ok {
			badges += len(ids)
		}
	})
	bus.Publish(context.Background(), events.Event{Topic: events.SessionsChanged})
	if badges != 1 {
		t.Fatalf("expected nested publish to deliver, got %d", badges)
	}
}
