package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Triangle is a mesh face: three vertices and the unit normal implied by their winding.
type Triangle struct {
	vertices [3]r3.Vector
	normal   r3.Vector
}

// NewTriangle creates a Triangle from three points. The normal follows the right-hand rule over
// p0, p1, p2.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		vertices: [3]r3.Vector{p0, p1, p2},
		normal:   PlaneNormal(p0, p1, p2),
	}
}

// Points returns the three vertices of the triangle.
func (t *Triangle) Points() []r3.Vector {
	return t.vertices[:]
}

// Normal returns the unit normal of the triangle.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// edges returns p1-p0 and p2-p0.
func (t *Triangle) edges() (r3.Vector, r3.Vector) {
	return t.vertices[1].Sub(t.vertices[0]), t.vertices[2].Sub(t.vertices[0])
}

// Area returns the area of the triangle.
func (t *Triangle) Area() float64 {
	e0, e1 := t.edges()
	return e0.Cross(e1).Norm() / 2
}

// Centroid returns the mean of the three vertices.
func (t *Triangle) Centroid() r3.Vector {
	return t.vertices[0].Add(t.vertices[1]).Add(t.vertices[2]).Mul(1. / 3)
}

// Transform returns a new triangle with every vertex rotated by rot and then translated by offset.
func (t *Triangle) Transform(rot *RotationMatrix, offset r3.Vector) *Triangle {
	var moved [3]r3.Vector
	for i, v := range t.vertices {
		moved[i] = rot.Apply(v).Add(offset)
	}
	return NewTriangle(moved[0], moved[1], moved[2])
}

// Project returns the projection of pt onto the plane of the triangle, and whether that
// projection falls inside the triangle. A degenerate triangle reports pt and false.
func (t *Triangle) Project(pt r3.Vector) (r3.Vector, bool) {
	const tol = 1e-6

	// solve for pt ~ p0 + u*e0 + v*e1 in the least squares sense
	e0, e1 := t.edges()
	a, b, c := e0.Norm2(), e0.Dot(e1), e1.Norm2()
	det := a*c - b*b
	if math.Abs(det) < floatEpsilon {
		return pt, false
	}
	d := pt.Sub(t.vertices[0])
	u := (c*e0.Dot(d) - b*e1.Dot(d)) / det
	v := (a*e1.Dot(d) - b*e0.Dot(d)) / det
	inside := u >= -tol && v >= -tol && u+v <= 1+tol
	return t.vertices[0].Add(e0.Mul(u)).Add(e1.Mul(v)), inside
}

// ClosestPoint returns the point on the triangle closest to pt.
func (t *Triangle) ClosestPoint(pt r3.Vector) r3.Vector {
	if projected, inside := t.Project(pt); inside {
		return projected
	}

	// otherwise the closest point lies on an edge
	var best r3.Vector
	bestDist := math.Inf(1)
	for i := range t.vertices {
		candidate := ClosestPointSegmentPoint(t.vertices[i], t.vertices[(i+1)%3], pt)
		if dist := candidate.Sub(pt).Norm2(); dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}

// IntersectsPlane reports whether the triangle touches the plane through planePt with normal
// planeNormal.
func (t *Triangle) IntersectsPlane(planePt, planeNormal r3.Vector) bool {
	above, below := false, false
	for _, v := range t.vertices {
		switch side := planeNormal.Dot(v.Sub(planePt)); {
		case side > floatEpsilon:
			above = true
		case side < -floatEpsilon:
			below = true
		default:
			return true
		}
	}
	return above && below
}
