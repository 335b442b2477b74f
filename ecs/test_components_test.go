package ecs_test

import "github.com/plus3/sim2d/ecs"

// Common test component kinds
const (
	KindPosition ecs.Kind = ecs.KindUser + iota
	KindVelocity
	KindHealth
	KindTag
)

type Position struct {
	X, Y float64
}

func (*Position) Kind() ecs.Kind { return KindPosition }

type Velocity struct {
	DX, DY float64
}

func (*Velocity) Kind() ecs.Kind { return KindVelocity }

type Health struct {
	Current int
	Max     int
}

func (*Health) Kind() ecs.Kind { return KindHealth }

type Tag struct {
	Value string
}

func (*Tag) Kind() ecs.Kind { return KindTag }

// unregistered is never added to the test registry.
type unregistered struct{}

func (*unregistered) Kind() ecs.Kind { return ecs.KindUser + 100 }

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	registry.Register(KindPosition, "Position")
	registry.Register(KindVelocity, "Velocity")
	registry.Register(KindHealth, "Health")
	registry.Register(KindTag, "Tag")
	return registry
}

// recorder collects scene events in delivery order.
type recorder struct {
	events []ecs.Event
}

func (r *recorder) handle(evt ecs.Event) {
	r.events = append(r.events, evt)
}
