package ecs

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// EventType identifies a scene change notification.
type EventType uint8

const (
	ComponentAdded EventType = iota + 1
	ComponentRemoved
	EntityRemoved
)

func (t EventType) String() string {
	switch t {
	case ComponentAdded:
		return "component_added"
	case ComponentRemoved:
		return "component_removed"
	case EntityRemoved:
		return "entity_removed"
	default:
		return "unknown"
	}
}

// Event describes one successful store mutation. Kind is InvalidKind for
// EntityRemoved.
type Event struct {
	Type   EventType
	Entity EntityId
	Kind   Kind
}

// Handler receives scene events synchronously, on the stack of the mutating
// call. A handler must not mutate the scene in a way that re-enters its own
// update.
type Handler func(Event)

// Subscription is the handle returned by Scene.Subscribe. Closing it stops
// delivery; the scene drops closed subscriptions once no dispatch is running.
type Subscription struct {
	id      string
	handler Handler
	active  atomic.Bool
}

func newSubscription(handler Handler) *Subscription {
	s := &Subscription{
		id:      uuid.NewString(),
		handler: handler,
	}
	s.active.Store(true)
	return s
}

// ID returns a unique identifier for the subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool {
	return s.active.Load()
}

// Close cancels the subscription. It is idempotent and safe to call from a
// handler or from another goroutine.
func (s *Subscription) Close() {
	s.active.Store(false)
}
