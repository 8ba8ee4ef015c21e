// Package mesh loads triangle meshes from binary STL and collada files.
package mesh

import (
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/leatherman/spatialmath"
)

// Mesh is an indexed triangle mesh. Every three consecutive entries of Triangles index the
// vertices of one triangle.
type Mesh struct {
	Vertices  []r3.Vector
	Triangles []int
}

// NumTriangles returns the number of triangles in the mesh.
func (m *Mesh) NumTriangles() int {
	return len(m.Triangles) / 3
}

// Components returns copies of the triangle indices and vertices of the mesh.
func (m *Mesh) Components() (triangles []int, vertices []r3.Vector) {
	return slices.Clone(m.Triangles), slices.Clone(m.Vertices)
}

// Validate checks that the triangle list is a whole number of triangles and only references
// existing vertices.
func (m *Mesh) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return errors.Errorf("triangle index count %d is not a multiple of 3", len(m.Triangles))
	}
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Vertices) {
			return errors.Errorf("triangle index %d at position %d is out of range [0, %d)", idx, i, len(m.Vertices))
		}
	}
	return nil
}

// Scale multiplies every vertex component-wise by (sx, sy, sz) in place.
func (m *Mesh) Scale(sx, sy, sz float64) {
	for i, v := range m.Vertices {
		m.Vertices[i] = r3.Vector{X: v.X * sx, Y: v.Y * sy, Z: v.Z * sz}
	}
}

// Faces returns the triangles of the mesh as geometric triangles.
func (m *Mesh) Faces() []*spatialmath.Triangle {
	faces := make([]*spatialmath.Triangle, 0, m.NumTriangles())
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		faces = append(faces, spatialmath.NewTriangle(
			m.Vertices[m.Triangles[i]],
			m.Vertices[m.Triangles[i+1]],
			m.Vertices[m.Triangles[i+2]],
		))
	}
	return faces
}

// SurfaceArea returns the summed area of all triangles.
func (m *Mesh) SurfaceArea() float64 {
	area := 0.
	for _, tri := range m.Faces() {
		area += tri.Area()
	}
	return area
}

// ClosestPoint returns the point on the surface of the mesh closest to pt. A mesh without
// triangles returns false.
func (m *Mesh) ClosestPoint(pt r3.Vector) (r3.Vector, bool) {
	var best r3.Vector
	bestDist := -1.
	for _, tri := range m.Faces() {
		candidate := tri.ClosestPoint(pt)
		if d := candidate.Sub(pt).Norm2(); bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, bestDist >= 0
}

// ScaleVertices returns a copy of vin with each vertex multiplied component-wise by
// (sx, sy, sz).
func ScaleVertices(vin []r3.Vector, sx, sy, sz float64) []r3.Vector {
	vout := make([]r3.Vector, len(vin))
	for i, v := range vin {
		vout[i] = r3.Vector{X: v.X * sx, Y: v.Y * sy, Z: v.Z * sz}
	}
	return vout
}
