package shape

import (
	"github.com/jakecoffman/cp"
)

// Intersects reports whether two shapes overlap or touch. Every ordered pair of
// variants is handled; mirrored pairs reuse the same test with the arguments
// swapped.
func Intersects(a, b Shape) bool {
	switch av := a.(type) {
	case Segment:
		switch bv := b.(type) {
		case Segment:
			return segmentSegment(av, bv)
		case Rect:
			return segmentRect(av, bv)
		case Circle:
			return segmentCircle(av, bv)
		}
	case Rect:
		switch bv := b.(type) {
		case Segment:
			return segmentRect(bv, av)
		case Rect:
			return av.Bounds().Intersects(bv.Bounds())
		case Circle:
			return rectCircle(av, bv)
		}
	case Circle:
		switch bv := b.(type) {
		case Segment:
			return segmentCircle(bv, av)
		case Rect:
			return rectCircle(bv, av)
		case Circle:
			reach := av.Radius + bv.Radius
			return av.Center.DistanceSq(bv.Center) <= reach*reach
		}
	}
	return false
}

// orientation returns the sign of the turn p -> q -> r. Cross products within
// Epsilon of zero, relative to the lengths of both arms, count as collinear.
func orientation(p, q, r cp.Vector) int {
	pq, pr := q.Sub(p), r.Sub(p)
	cross := pq.Cross(pr)
	tolerance := Epsilon * pq.Length() * pr.Length()
	switch {
	case cross > tolerance:
		return 1
	case cross < -tolerance:
		return -1
	default:
		return 0
	}
}

func segmentSegment(s, t Segment) bool {
	o1 := orientation(s.A, s.B, t.A)
	o2 := orientation(s.A, s.B, t.B)
	o3 := orientation(t.A, t.B, s.A)
	o4 := orientation(t.A, t.B, s.B)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// collinear cases: an endpoint of one lies on the other
	return (o1 == 0 && segmentContains(s, t.A)) ||
		(o2 == 0 && segmentContains(s, t.B)) ||
		(o3 == 0 && segmentContains(t, s.A)) ||
		(o4 == 0 && segmentContains(t, s.B))
}

func segmentRect(s Segment, r Rect) bool {
	if rectContains(r, s.A) || rectContains(r, s.B) {
		return true
	}
	for _, edge := range r.Edges() {
		if segmentSegment(s, edge) {
			return true
		}
	}
	return false
}

func segmentCircle(s Segment, c Circle) bool {
	closest := closestPointOnSegment(s, c.Center)
	return closest.DistanceSq(c.Center) <= c.Radius*c.Radius
}

func rectCircle(r Rect, c Circle) bool {
	closest := clampToRect(r, c.Center)
	return closest.DistanceSq(c.Center) <= c.Radius*c.Radius
}

func closestPointOnSegment(s Segment, p cp.Vector) cp.Vector {
	if s.A.Equal(s.B) {
		return s.A
	}
	return p.ClosestPointOnSegment(s.A, s.B)
}

func clampToRect(r Rect, p cp.Vector) cp.Vector {
	return r.Bounds().ClampVect(&p)
}
