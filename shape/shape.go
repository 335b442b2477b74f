// Package shape implements the 2D primitives used for hit testing: segments,
// axis-aligned rectangles and circles. Shapes are immutable values built on
// cp.Vector; they do not know about entities.
package shape

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the tolerance used for collinearity tests.
const Epsilon = 1e-9

// Shape is the closed set {Segment, Rect, Circle}. The unexported method keeps
// other packages from adding variants, so every switch over shapes is total.
type Shape interface {
	// Bounds returns the shape's axis-aligned bounding box.
	Bounds() cp.BB
	// Translate returns a copy of the shape moved by offset.
	Translate(offset cp.Vector) Shape

	shape()
}

// Segment is the closed line segment between A and B.
type Segment struct {
	A, B cp.Vector
}

// NewSegment creates a segment from endpoint coordinates.
func NewSegment(ax, ay, bx, by float64) Segment {
	return Segment{A: cp.Vector{X: ax, Y: ay}, B: cp.Vector{X: bx, Y: by}}
}

func (s Segment) Bounds() cp.BB {
	return cp.BB{L: s.A.X, B: s.A.Y, R: s.A.X, T: s.A.Y}.Expand(s.B)
}

func (s Segment) Translate(offset cp.Vector) Shape {
	return Segment{A: s.A.Add(offset), B: s.B.Add(offset)}
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment(%g,%g -> %g,%g)", s.A.X, s.A.Y, s.B.X, s.B.Y)
}

func (Segment) shape() {}

// Rect is an axis-aligned rectangle given by its minimum corner and size.
type Rect struct {
	Min  cp.Vector
	W, H float64
}

// NewRect creates a rectangle from a corner and a size. Negative sizes are
// normalised so that Min is always the minimum corner.
func NewRect(x, y, w, h float64) Rect {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return Rect{Min: cp.Vector{X: x, Y: y}, W: w, H: h}
}

// Max returns the corner opposite Min.
func (r Rect) Max() cp.Vector {
	return cp.Vector{X: r.Min.X + r.W, Y: r.Min.Y + r.H}
}

// Center returns the rectangle's centre point.
func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.Min.X + r.W/2, Y: r.Min.Y + r.H/2}
}

// Edges returns the four boundary segments.
func (r Rect) Edges() [4]Segment {
	far := r.Max()
	return [4]Segment{
		{A: r.Min, B: cp.Vector{X: far.X, Y: r.Min.Y}},
		{A: cp.Vector{X: far.X, Y: r.Min.Y}, B: far},
		{A: far, B: cp.Vector{X: r.Min.X, Y: far.Y}},
		{A: cp.Vector{X: r.Min.X, Y: far.Y}, B: r.Min},
	}
}

func (r Rect) Bounds() cp.BB {
	far := r.Max()
	return cp.BB{L: r.Min.X, B: r.Min.Y, R: far.X, T: far.Y}
}

func (r Rect) Translate(offset cp.Vector) Shape {
	return Rect{Min: r.Min.Add(offset), W: r.W, H: r.H}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g,%g %gx%g)", r.Min.X, r.Min.Y, r.W, r.H)
}

func (Rect) shape() {}

// Circle is a disc given by its centre and radius.
type Circle struct {
	Center cp.Vector
	Radius float64
}

// NewCircle creates a circle from centre coordinates and a radius.
func NewCircle(x, y, radius float64) Circle {
	return Circle{Center: cp.Vector{X: x, Y: y}, Radius: math.Abs(radius)}
}

func (c Circle) Bounds() cp.BB {
	return cp.NewBBForCircle(c.Center, c.Radius)
}

func (c Circle) Translate(offset cp.Vector) Shape {
	return Circle{Center: c.Center.Add(offset), Radius: c.Radius}
}

func (c Circle) String() string {
	return fmt.Sprintf("Circle(%g,%g r=%g)", c.Center.X, c.Center.Y, c.Radius)
}

func (Circle) shape() {}
