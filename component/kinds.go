// Package component holds the component payloads interpreted by the physics
// and navigation systems.
package component

import "github.com/plus3/sim2d/ecs"

// Built-in component kinds.
const (
	KindTransform ecs.Kind = iota + 1
	KindMovement
	KindHitbox
	KindCollisionResolution
	KindNavAgent
)

// Register adds the built-in kinds to registry.
func Register(registry *ecs.ComponentRegistry) {
	registry.Register(KindTransform, "Transform")
	registry.Register(KindMovement, "Movement")
	registry.Register(KindHitbox, "Hitbox")
	registry.Register(KindCollisionResolution, "CollisionResolution")
	registry.Register(KindNavAgent, "NavAgent")
}

// NewRegistry returns a registry with the built-in kinds registered.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	Register(registry)
	return registry
}
