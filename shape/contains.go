package shape

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Contains reports whether p lies inside s. All boundaries are inclusive.
func Contains(s Shape, p cp.Vector) bool {
	switch v := s.(type) {
	case Segment:
		return segmentContains(v, p)
	case Rect:
		return rectContains(v, p)
	case Circle:
		return circleContains(v, p)
	default:
		return false
	}
}

// segmentContains requires p to be collinear with the segment within Epsilon
// (measured as distance from the line) and inside the endpoints' bounding box.
func segmentContains(s Segment, p cp.Vector) bool {
	dir := s.B.Sub(s.A)
	length := dir.Length()
	if length == 0 {
		return p.DistanceSq(s.A) <= Epsilon*Epsilon
	}
	if math.Abs(dir.Cross(p.Sub(s.A))) > Epsilon*length {
		return false
	}
	bb := s.Bounds()
	return cp.BB{L: bb.L - Epsilon, B: bb.B - Epsilon, R: bb.R + Epsilon, T: bb.T + Epsilon}.ContainsVect(p)
}

func rectContains(r Rect, p cp.Vector) bool {
	return r.Bounds().ContainsVect(p)
}

func circleContains(c Circle, p cp.Vector) bool {
	return p.DistanceSq(c.Center) <= c.Radius*c.Radius
}
