package ecs

import (
	"fmt"
	"strconv"
)

// Kind enumerates component kinds. Kinds are plain integers so lookups never go
// through reflection.
type Kind uint16

// InvalidKind is never registered.
const InvalidKind Kind = 0

// KindUser is the first kind available to packages outside the core. Kinds
// below it are reserved for the built-in components.
const KindUser Kind = 256

// Component is a data payload attachable to an entity. Implementations should
// use pointer receivers and be stored as pointers, so that a component fetched
// from the store can be mutated in place and Kind can be called on a nil value.
type Component interface {
	Kind() Kind
}

// ComponentRegistry names the component kinds a scene accepts. Each Scene has
// its own registry, allowing multiple independent scenes to coexist.
type ComponentRegistry struct {
	names map[Kind]string
	kinds []Kind
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		names: make(map[Kind]string),
	}
}

// Register adds a kind under a human readable name. Registering InvalidKind or
// registering the same kind twice panics.
func (r *ComponentRegistry) Register(kind Kind, name string) {
	if kind == InvalidKind {
		panic("cannot register the invalid component kind")
	}
	if existing, ok := r.names[kind]; ok {
		panic(fmt.Sprintf("component kind %d already registered as %q", kind, existing))
	}
	r.names[kind] = name

	// Keep kinds sorted so entity teardown emits events in a stable order.
	idx := len(r.kinds)
	for i, k := range r.kinds {
		if kind < k {
			idx = i
			break
		}
	}
	r.kinds = append(r.kinds, 0)
	copy(r.kinds[idx+1:], r.kinds[idx:])
	r.kinds[idx] = kind
}

// Registered reports whether kind has been registered.
func (r *ComponentRegistry) Registered(kind Kind) bool {
	_, ok := r.names[kind]
	return ok
}

// Name returns the registered name of kind, or its number if unknown.
func (r *ComponentRegistry) Name(kind Kind) string {
	if name, ok := r.names[kind]; ok {
		return name
	}
	return "kind#" + strconv.Itoa(int(kind))
}

// Kinds returns all registered kinds in ascending order.
func (r *ComponentRegistry) Kinds() []Kind {
	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}
