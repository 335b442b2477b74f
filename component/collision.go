package component

import (
	"github.com/plus3/sim2d/ecs"
	"github.com/plus3/sim2d/shape"
)

// Policy selects how an entity responds to collisions.
type Policy uint8

const (
	// PolicyTrigger only reports contacts; nothing is pushed.
	PolicyTrigger Policy = iota
	// PolicySolid is pushed out of other solid or static bodies.
	PolicySolid
	// PolicyStatic never moves but blocks solid bodies.
	PolicyStatic
)

func (p Policy) String() string {
	switch p {
	case PolicySolid:
		return "solid"
	case PolicyStatic:
		return "static"
	default:
		return "trigger"
	}
}

// Contact is one pair of overlapping world-space shapes. Self belongs to the
// entity receiving the contact and Other to the entity it touched.
type Contact struct {
	Self  shape.Shape
	Other shape.Shape
}

// CollideFunc is invoked once per tick for each entity an entity collides
// with, with every overlapping shape pair between them.
type CollideFunc func(self, other ecs.EntityId, contacts []Contact)

// CollisionResolution is the policy data consumed when two hitboxes overlap.
type CollisionResolution struct {
	Policy Policy

	// Layer is the set of layers this entity occupies; Mask the layers it
	// wants to hear about. A pair is tested when either side's mask covers the
	// other's layer. Zero values collide with everything.
	Layer uint32
	Mask  uint32

	OnCollide CollideFunc
}

func (*CollisionResolution) Kind() ecs.Kind { return KindCollisionResolution }

// Interacts reports whether the two entities should be tested against each
// other.
func (r *CollisionResolution) Interacts(other *CollisionResolution) bool {
	if r.Layer == 0 || r.Mask == 0 || other.Layer == 0 || other.Mask == 0 {
		return true
	}
	return r.Mask&other.Layer != 0 || other.Mask&r.Layer != 0
}
