package ecs

import "reflect"

type resourceEntry struct {
	ptr any
}

// Resource provides access to a single value of type T owned by a scene rather
// than by any entity. Its lifetime is the scene's lifetime; use it for shared
// per-scene state such as statistics or navigation data instead of
// package-level variables.
type Resource[T any] struct {
	scene *Scene
	ptr   *T
}

// NewResource returns an accessor for the scene's T resource. If the resource
// does not exist yet it is created from the initializer, or the zero value.
func NewResource[T any](scene *Scene, initializer ...T) *Resource[T] {
	key := reflect.TypeFor[T]()
	entry, ok := scene.resources[key]
	if !ok {
		value := new(T)
		if len(initializer) > 0 {
			*value = initializer[0]
		}
		entry = &resourceEntry{ptr: value}
		scene.resources[key] = entry
	}
	return &Resource[T]{
		scene: scene,
		ptr:   entry.ptr.(*T),
	}
}

// Get returns a pointer to the resource value.
func (r *Resource[T]) Get() *T {
	return r.ptr
}

// Set overwrites the resource value.
func (r *Resource[T]) Set(value T) {
	*r.ptr = value
}

// LookupResource returns the scene's T resource if one has been created.
func LookupResource[T any](scene *Scene) (*T, bool) {
	entry, ok := scene.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return entry.ptr.(*T), true
}
