package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/sim2d/component"
	"github.com/plus3/sim2d/ecs"
	"github.com/plus3/sim2d/shape"
)

// PolicyResolver is the default Resolver. It notifies both sides through
// OnCollide, then separates bodies according to their policies: triggers
// never move anything, a solid body is pushed fully out of a static one, and
// two solid bodies share the push equally. A pushed body loses the part of its
// velocity heading into the contact.
type PolicyResolver struct{}

func (PolicyResolver) Resolve(frame *ecs.UpdateFrame, pair Pair) {
	scene := frame.Scene

	if a, ok := ecs.Get[*component.CollisionResolution](scene, pair.A); ok && a.OnCollide != nil {
		a.OnCollide(pair.A, pair.B, pair.Contacts)
	}
	if b, ok := ecs.Get[*component.CollisionResolution](scene, pair.B); ok && b.OnCollide != nil {
		b.OnCollide(pair.B, pair.A, pair.Flipped())
	}

	// callbacks may have detached components, so look everything up again
	a, okA := ecs.Get[*component.CollisionResolution](scene, pair.A)
	b, okB := ecs.Get[*component.CollisionResolution](scene, pair.B)
	if !okA || !okB {
		return
	}
	if a.Policy == component.PolicyTrigger || b.Policy == component.PolicyTrigger {
		return
	}
	if a.Policy != component.PolicySolid && b.Policy != component.PolicySolid {
		return
	}

	mtv, ok := deepestSeparation(pair.Contacts)
	if !ok {
		return
	}

	switch {
	case a.Policy == component.PolicySolid && b.Policy == component.PolicySolid:
		push(scene, pair.A, mtv.Mult(0.5))
		push(scene, pair.B, mtv.Mult(-0.5))
	case a.Policy == component.PolicySolid:
		push(scene, pair.A, mtv)
	default:
		push(scene, pair.B, mtv.Neg())
	}
}

// deepestSeparation returns the largest MTV moving A out of B among contacts.
func deepestSeparation(contacts []component.Contact) (cp.Vector, bool) {
	var best cp.Vector
	found := false
	for _, c := range contacts {
		mtv, ok := shape.Separation(c.Self, c.Other)
		if !ok {
			continue
		}
		if !found || mtv.LengthSq() > best.LengthSq() {
			best = mtv
			found = true
		}
	}
	return best, found
}

func push(scene *ecs.Scene, id ecs.EntityId, offset cp.Vector) {
	transform, ok := ecs.Get[*component.Transform](scene, id)
	if !ok {
		return
	}
	transform.Position = transform.Position.Add(offset)

	movement, ok := ecs.Get[*component.Movement](scene, id)
	if !ok {
		return
	}
	normal := offset.Normalize()
	if into := movement.Velocity.Dot(normal); into < 0 {
		movement.Velocity = movement.Velocity.Sub(normal.Mult(into))
	}
}
