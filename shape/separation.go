package shape

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Separation returns the minimum translation vector that moves a out of b. It
// reports false when the shapes do not overlap with positive depth, or when
// either shape is a Segment, which has no interior to push out of.
func Separation(a, b Shape) (cp.Vector, bool) {
	switch av := a.(type) {
	case Rect:
		switch bv := b.(type) {
		case Rect:
			return separateRects(av, bv)
		case Circle:
			mtv, ok := separateCircleRect(bv, av)
			return mtv.Neg(), ok
		}
	case Circle:
		switch bv := b.(type) {
		case Rect:
			return separateCircleRect(av, bv)
		case Circle:
			return separateCircles(av, bv)
		}
	}
	return cp.Vector{}, false
}

func separateRects(a, b Rect) (cp.Vector, bool) {
	aMax, bMax := a.Max(), b.Max()
	overlapX := math.Min(aMax.X, bMax.X) - math.Max(a.Min.X, b.Min.X)
	overlapY := math.Min(aMax.Y, bMax.Y) - math.Max(a.Min.Y, b.Min.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return cp.Vector{}, false
	}

	delta := a.Center().Sub(b.Center())
	if overlapX <= overlapY {
		if delta.X < 0 {
			return cp.Vector{X: -overlapX}, true
		}
		return cp.Vector{X: overlapX}, true
	}
	if delta.Y < 0 {
		return cp.Vector{Y: -overlapY}, true
	}
	return cp.Vector{Y: overlapY}, true
}

func separateCircles(a, b Circle) (cp.Vector, bool) {
	delta := a.Center.Sub(b.Center)
	dist := delta.Length()
	depth := a.Radius + b.Radius - dist
	if depth <= 0 {
		return cp.Vector{}, false
	}
	if dist == 0 {
		return cp.Vector{X: depth}, true
	}
	return delta.Mult(depth / dist), true
}

// separateCircleRect pushes circle c out of rectangle r.
func separateCircleRect(c Circle, r Rect) (cp.Vector, bool) {
	closest := clampToRect(r, c.Center)
	delta := c.Center.Sub(closest)
	dist := delta.Length()
	if dist > 0 {
		depth := c.Radius - dist
		if depth <= 0 {
			return cp.Vector{}, false
		}
		return delta.Mult(depth / dist), true
	}

	// centre inside the rectangle: leave through the nearest edge
	far := r.Max()
	left := c.Center.X - r.Min.X
	right := far.X - c.Center.X
	top := c.Center.Y - r.Min.Y
	bottom := far.Y - c.Center.Y

	nearest := math.Min(math.Min(left, right), math.Min(top, bottom))
	switch nearest {
	case left:
		return cp.Vector{X: -(left + c.Radius)}, true
	case right:
		return cp.Vector{X: right + c.Radius}, true
	case top:
		return cp.Vector{Y: -(top + c.Radius)}, true
	default:
		return cp.Vector{Y: bottom + c.Radius}, true
	}
}
