package spatialmath

import (
	"iter"
	"math"

	"github.com/golang/geo/r3"
)

// ClosestPointSegmentPoint takes a line segment defined by two points, and a third point, and
// returns the point on the segment closest to the third point. A zero-length segment returns
// its start.
func ClosestPointSegmentPoint(segStart, segEnd, pt r3.Vector) r3.Vector {
	segVec := segEnd.Sub(segStart)
	lenSq := segVec.Norm2()
	if lenSq < floatEpsilon*floatEpsilon {
		return segStart
	}
	t := clamp01(pt.Sub(segStart).Dot(segVec) / lenSq)
	return segStart.Add(segVec.Mul(t))
}

// ClosestPointsSegmentSegment returns the closest pair of points on the two finite segments
// a1-a2 and b1-b2. Degenerate (zero-length) and parallel segments are handled without dividing
// by zero.
// See Ericson, Real-Time Collision Detection, section 5.1.9.
func ClosestPointsSegmentSegment(a1, a2, b1, b2 r3.Vector) (r3.Vector, r3.Vector) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	r := a1.Sub(b1)
	a := d1.Norm2()
	e := d2.Norm2()
	f := d2.Dot(r)

	const eps = floatEpsilon * floatEpsilon
	var s, t float64
	switch {
	case a <= eps && e <= eps:
		return a1, b1
	case a <= eps:
		s = 0
		t = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= eps {
			t = 0
			s = clamp01(-c / a)
			break
		}
		b := d1.Dot(d2)
		denom := a*e - b*b
		// parallel segments leave s free; pick the start of a and let t follow
		if denom > eps {
			s = clamp01((b*f - c*e) / denom)
		}
		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = clamp01(-c / a)
		} else if t > 1 {
			t = 1
			s = clamp01((b - c) / a)
		}
	}
	return a1.Add(d1.Mul(s)), b1.Add(d2.Mul(t))
}

// SegmentDistanceToSegment returns the minimum Euclidean distance between the finite segments
// a1-a2 and b1-b2. Intersecting segments are at distance zero.
func SegmentDistanceToSegment(a1, a2, b1, b2 r3.Vector) float64 {
	p, q := ClosestPointsSegmentSegment(a1, a2, b1, b2)
	return p.Distance(q)
}

// IntermediatePoints lazily yields evenly spaced points on the segment from a to b, both
// inclusive. The segment is split into ceil(|b-a|/d) equal intervals, so no two consecutive
// points are farther apart than d. Coincident endpoints yield a single point; a spacing that is
// not a positive finite number yields nothing.
func IntermediatePoints(a, b r3.Vector, d float64) iter.Seq[r3.Vector] {
	return func(yield func(r3.Vector) bool) {
		if !(d > 0) || math.IsInf(d, 1) {
			return
		}
		dir := b.Sub(a)
		length := dir.Norm()
		if length < floatEpsilon {
			yield(a)
			return
		}
		// the epsilon keeps an exact multiple such as 10/1 from rounding up to an extra interval
		n := int(math.Ceil(length/d - floatEpsilon))
		if n < 1 {
			n = 1
		}
		for i := 0; i <= n; i++ {
			if i == n {
				yield(b)
				return
			}
			if !yield(a.Add(dir.Mul(float64(i) / float64(n)))) {
				return
			}
		}
	}
}

// PlaneNormal returns the unit normal of the plane through p0, p1 and p2. Collinear points give
// the zero vector.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
