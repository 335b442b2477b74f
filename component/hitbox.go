package component

import (
	"github.com/plus3/sim2d/ecs"
	"github.com/plus3/sim2d/shape"
)

// Space says how hitbox shapes are positioned.
type Space uint8

const (
	// SpaceLocal shapes are relative to the entity's Transform position.
	SpaceLocal Space = iota
	// SpaceWorld shapes are already in world coordinates.
	SpaceWorld
)

// Hitbox is the set of shapes an entity collides with. Local shapes follow the
// Transform's position only; Rotation is ignored because rects are axis-aligned.
type Hitbox struct {
	Shapes []shape.Shape
	Space  Space
}

func (*Hitbox) Kind() ecs.Kind { return KindHitbox }

// AppendWorldShapes appends the hitbox shapes in world coordinates to dst.
func (h *Hitbox) AppendWorldShapes(dst []shape.Shape, t *Transform) []shape.Shape {
	if h.Space == SpaceWorld || t == nil {
		return append(dst, h.Shapes...)
	}
	for _, s := range h.Shapes {
		dst = append(dst, s.Translate(t.Position))
	}
	return dst
}
