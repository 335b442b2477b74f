package ecs

import (
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scene owns the component store and is the sole publisher of change events.
// Every successful mutation emits exactly one event, delivered synchronously to
// all subscribers in registration order before the mutating call returns.
type Scene struct {
	id     uuid.UUID
	store  *EntityManager
	logger *zap.Logger

	subs        []*Subscription
	dispatching int
	stale       bool

	resources map[reflect.Type]*resourceEntry
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for scene diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScene creates an empty scene accepting the kinds in registry.
func NewScene(registry *ComponentRegistry, opts ...Option) *Scene {
	s := &Scene{
		id:        uuid.New(),
		store:     NewEntityManager(registry),
		logger:    zap.NewNop(),
		resources: make(map[reflect.Type]*resourceEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.Stringer("scene", s.id))
	return s
}

// ID returns the scene's unique identifier.
func (s *Scene) ID() uuid.UUID {
	return s.id
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger {
	return s.logger
}

// Registry returns the component registry.
func (s *Scene) Registry() *ComponentRegistry {
	return s.store.Registry()
}

// CreateEntity allocates a fresh entity with no components.
func (s *Scene) CreateEntity() EntityId {
	return s.store.CreateEntity()
}

// Spawn creates an entity and attaches the given components. Components that
// the store rejects are skipped.
func (s *Scene) Spawn(components ...Component) EntityId {
	id := s.store.CreateEntity()
	for _, c := range components {
		s.AddComponent(id, c)
	}
	return id
}

// AddComponent attaches the component and emits ComponentAdded. It returns
// false, with no mutation and no event, if the entity already carries a
// component of that kind or cannot accept it.
func (s *Scene) AddComponent(id EntityId, component Component) bool {
	if !s.store.Add(id, component) {
		if ce := s.logger.Check(zap.DebugLevel, "component rejected"); ce != nil {
			fields := []zap.Field{zap.Stringer("entity", id), zap.Bool("alive", s.store.Alive(id))}
			if component != nil {
				fields = append(fields, zap.String("kind", s.Registry().Name(component.Kind())))
			}
			ce.Write(fields...)
		}
		return false
	}
	s.publish(Event{Type: ComponentAdded, Entity: id, Kind: component.Kind()})
	return true
}

// Component returns the component of the given kind, if attached.
func (s *Scene) Component(id EntityId, kind Kind) (Component, bool) {
	return s.store.Get(id, kind)
}

// HasComponent reports whether a component of kind is attached.
func (s *Scene) HasComponent(id EntityId, kind Kind) bool {
	return s.store.Has(id, kind)
}

// RemoveComponent detaches the component and emits ComponentRemoved.
func (s *Scene) RemoveComponent(id EntityId, kind Kind) (Component, bool) {
	component, ok := s.store.Remove(id, kind)
	if !ok {
		return nil, false
	}
	s.publish(Event{Type: ComponentRemoved, Entity: id, Kind: kind})
	return component, true
}

// RemoveEntity detaches every component in ascending kind order, emitting
// ComponentRemoved for each, then emits EntityRemoved. The id is retired.
func (s *Scene) RemoveEntity(id EntityId) bool {
	if !s.store.Alive(id) {
		return false
	}
	for _, kind := range s.store.Kinds(id) {
		s.RemoveComponent(id, kind)
	}
	s.store.Destroy(id)
	s.logger.Debug("entity removed", zap.Stringer("entity", id))
	s.publish(Event{Type: EntityRemoved, Entity: id})
	return true
}

// Alive reports whether the entity exists.
func (s *Scene) Alive(id EntityId) bool {
	return s.store.Alive(id)
}

// Len returns the number of live entities.
func (s *Scene) Len() int {
	return s.store.Len()
}

// Kinds returns the kinds attached to an entity in ascending order.
func (s *Scene) Kinds(id EntityId) []Kind {
	return s.store.Kinds(id)
}

// EntitiesWith returns every entity carrying kind. Prefer a Collector for
// anything evaluated every tick.
func (s *Scene) EntitiesWith(kind Kind) []EntityId {
	return s.store.EntitiesWith(kind)
}

// Count returns how many entities carry kind.
func (s *Scene) Count(kind Kind) int {
	return s.store.Count(kind)
}

// Subscribe registers a handler for all subsequent events. Release the
// returned subscription with Close when it is no longer needed.
func (s *Scene) Subscribe(handler Handler) *Subscription {
	sub := newSubscription(handler)
	s.subs = append(s.subs, sub)
	return sub
}

// Subscribers returns the number of active subscriptions.
func (s *Scene) Subscribers() int {
	n := 0
	for _, sub := range s.subs {
		if sub.Active() {
			n++
		}
	}
	return n
}

func (s *Scene) publish(evt Event) {
	s.dispatching++
	subs := s.subs
	for _, sub := range subs {
		if !sub.Active() {
			s.stale = true
			continue
		}
		sub.handler(evt)
	}
	s.dispatching--

	if s.dispatching == 0 && s.stale {
		s.prune()
	}
}

// prune rebuilds the subscriber list without closed entries. It allocates a
// new slice so an outer dispatch never observes a compacted backing array.
func (s *Scene) prune() {
	live := make([]*Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.Active() {
			live = append(live, sub)
		}
	}
	s.subs = live
	s.stale = false
}

// Get returns the component of T's kind attached to id. T must be a pointer
// component type whose Kind method tolerates a nil receiver.
func Get[T Component](s *Scene, id EntityId) (T, bool) {
	var zero T
	component, ok := s.store.Get(id, zero.Kind())
	if !ok {
		return zero, false
	}
	typed, ok := component.(T)
	return typed, ok
}
