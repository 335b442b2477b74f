package component

import (
	"cmp"

	"github.com/jakecoffman/cp"
	"github.com/plus3/sim2d/ecs"
)

// Transform places an entity in the world.
type Transform struct {
	Position cp.Vector
	Rotation float64 // radians
	Z        int     // paint layer

	// RenderHeight is added to Position.Y when ordering sprites within a layer,
	// so tall sprites anchored at their top sort by their feet.
	RenderHeight float64
}

func (*Transform) Kind() ecs.Kind { return KindTransform }

// PaintOrder compares two transforms for painting: lower Z first, then lower
// Position.Y+RenderHeight. It returns -1, 0 or +1.
func PaintOrder(a, b *Transform) int {
	if c := cmp.Compare(a.Z, b.Z); c != 0 {
		return c
	}
	return cmp.Compare(a.Position.Y+a.RenderHeight, b.Position.Y+b.RenderHeight)
}
