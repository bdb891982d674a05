// Package events is a synchronous in-process publish/subscribe bus.
package events

import (
	"context"
	"sync"
)

type Topic string

const (
	SessionsChanged Topic = "sessions.changed"
	BadgesChanged   Topic = "badges.changed"
	TimerCompleted  Topic = "timer.completed"
)

type Event struct {
	Topic   Topic
	Payload any
}

type Handler func(ctx context.Context, event Event)

type subscription struct {
	id      int
	handler Handler
}

// Bus delivers events to subscribers on the publishing goroutine, in
// subscription order. Handlers may publish further events.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: map[Topic][]subscription{}}
}

// Subscribe registers handler for topic and returns a function removing it.
func (b *Bus) Subscribe(topic Topic, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		current := b.subs[topic]
		for i, sub := range current {
			if sub.id == id {
				b.subs[topic] = append(current[:i:i], current[i+1:]...)
				return
			}
		}
	}
}

func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[event.Topic]))
	for _, sub := range b.subs[event.Topic] {
		handlers = append(handlers, sub.handler)
	}
	b.mu.RUnlock()
	for _, handler := range handlers {
		handler(ctx, event)
	}
}
