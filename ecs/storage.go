package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// EntityManager is the keyed component store: at most one component per
// (entity, kind) pair. It has no notification mechanism of its own; the Scene
// wraps it and publishes change events for every successful mutation.
type EntityManager struct {
	registry *ComponentRegistry
	nextId   EntityId

	// live entities and the kinds currently attached to each, kept sorted
	entities *intmap.Map[EntityId, []Kind]
	byKind   *intmap.Map[Kind, *intmap.Map[EntityId, Component]]
}

// NewEntityManager creates an empty store accepting the kinds in registry.
func NewEntityManager(registry *ComponentRegistry) *EntityManager {
	return &EntityManager{
		registry: registry,
		entities: intmap.New[EntityId, []Kind](256),
		byKind:   intmap.New[Kind, *intmap.Map[EntityId, Component]](32),
	}
}

// Registry returns the component registry backing this store.
func (m *EntityManager) Registry() *ComponentRegistry {
	return m.registry
}

// CreateEntity allocates a fresh id without attaching anything to it.
func (m *EntityManager) CreateEntity() EntityId {
	m.nextId++
	m.entities.Put(m.nextId, nil)
	return m.nextId
}

// Alive reports whether the entity was created and not yet destroyed.
func (m *EntityManager) Alive(id EntityId) bool {
	return m.entities.Has(id)
}

// Len returns the number of live entities.
func (m *EntityManager) Len() int {
	return m.entities.Len()
}

// Add stores the component if the entity has none of that kind yet. It returns
// false without mutating anything for duplicates, dead entities, nil
// components and unregistered kinds.
func (m *EntityManager) Add(id EntityId, component Component) bool {
	if component == nil {
		return false
	}
	kind := component.Kind()
	if !m.registry.Registered(kind) {
		return false
	}
	kinds, alive := m.entities.Get(id)
	if !alive {
		return false
	}

	store, ok := m.byKind.Get(kind)
	if !ok {
		store = intmap.New[EntityId, Component](64)
		m.byKind.Put(kind, store)
	}
	if store.Has(id) {
		return false
	}
	store.Put(id, component)

	idx, _ := slices.BinarySearch(kinds, kind)
	m.entities.Put(id, slices.Insert(kinds, idx, kind))
	return true
}

// Get returns the component of the given kind, if attached.
func (m *EntityManager) Get(id EntityId, kind Kind) (Component, bool) {
	store, ok := m.byKind.Get(kind)
	if !ok {
		return nil, false
	}
	return store.Get(id)
}

// Has reports whether a component of the given kind is attached.
func (m *EntityManager) Has(id EntityId, kind Kind) bool {
	store, ok := m.byKind.Get(kind)
	if !ok {
		return false
	}
	return store.Has(id)
}

// Remove detaches and returns the component of the given kind, if attached.
func (m *EntityManager) Remove(id EntityId, kind Kind) (Component, bool) {
	store, ok := m.byKind.Get(kind)
	if !ok {
		return nil, false
	}
	component, ok := store.Get(id)
	if !ok {
		return nil, false
	}
	store.Del(id)

	if kinds, alive := m.entities.Get(id); alive {
		if idx, found := slices.BinarySearch(kinds, kind); found {
			m.entities.Put(id, slices.Delete(kinds, idx, idx+1))
		}
	}
	return component, true
}

// Kinds returns the kinds attached to the entity in ascending order.
func (m *EntityManager) Kinds(id EntityId) []Kind {
	kinds, _ := m.entities.Get(id)
	return slices.Clone(kinds)
}

// Destroy forgets the entity and any components still attached to it. The id
// is never handed out again.
func (m *EntityManager) Destroy(id EntityId) bool {
	kinds, alive := m.entities.Get(id)
	if !alive {
		return false
	}
	for _, kind := range kinds {
		if store, ok := m.byKind.Get(kind); ok {
			store.Del(id)
		}
	}
	m.entities.Del(id)
	return true
}

// EntitiesWith returns the ids carrying a component of kind. It is a fallback
// bulk query; systems should use a Collector instead.
func (m *EntityManager) EntitiesWith(kind Kind) []EntityId {
	store, ok := m.byKind.Get(kind)
	if !ok {
		return []EntityId{}
	}
	ids := make([]EntityId, 0, store.Len())
	store.ForEach(func(id EntityId, _ Component) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// Count returns how many entities carry a component of kind.
func (m *EntityManager) Count(kind Kind) int {
	store, ok := m.byKind.Get(kind)
	if !ok {
		return 0
	}
	return store.Len()
}
