package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/plus3/sim2d/ecs"
)

// Direction is a 4-way facing.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// FacingFor derives a facing from a velocity by its dominant axis. Y grows
// downwards. A zero velocity keeps prev; horizontal wins ties.
func FacingFor(velocity cp.Vector, prev Direction) Direction {
	if velocity.X == 0 && velocity.Y == 0 {
		return prev
	}
	if math.Abs(velocity.X) >= math.Abs(velocity.Y) {
		if velocity.X < 0 {
			return DirectionLeft
		}
		return DirectionRight
	}
	if velocity.Y < 0 {
		return DirectionUp
	}
	return DirectionDown
}

// StopFunc is called once when a moving entity comes to rest, with its world
// position.
type StopFunc func(entity ecs.EntityId, position cp.Vector)

// Movement holds the kinematic state integrated by the movement system.
type Movement struct {
	Velocity     cp.Vector
	Acceleration cp.Vector
	MaxSpeed     float64 // 0 means unlimited
	Facing       Direction
	OnStop       StopFunc

	// Moving records whether the entity moved on the previous tick. The
	// movement system maintains it to edge-trigger OnStop.
	Moving bool
}

func (*Movement) Kind() ecs.Kind { return KindMovement }
