package viz

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/leatherman/colors"
	"go.viam.com/leatherman/mesh"
	"go.viam.com/leatherman/msgs"
)

// MeshResourceMarker draws the mesh file named by resource, e.g. a package:// path, at a stamped
// pose.
func MeshResourceMarker(pose msgs.PoseStamped, resource string, hue int, ns string, id int) Marker {
	return meshResourceMarker(pose.Pose, uniformScale(1), resource, colors.Hue(hue), pose.Header.FrameID, ns, id)
}

func meshResourceMarker(pose msgs.Pose, scale r3.Vector, resource string, color msgs.ColorRGBA, frameID, ns string, id int) Marker {
	m := newMarker(frameID, ns, id, MeshResource)
	m.Pose = pose
	m.Scale = scale
	m.Color = color
	m.MeshResource = resource
	return m
}

// TriangleListMarker draws an indexed triangle mesh at a stamped pose. triangles holds three
// vertex indices per triangle. With psychedelic set, each triangle gets its own hue, stepping
// around the color wheel from hue.
func TriangleListMarker(
	pose msgs.PoseStamped,
	vertices []r3.Vector,
	triangles []int,
	hue int,
	psychedelic bool,
	ns string,
	id int,
) (Marker, error) {
	return triangleListMarker(pose.Pose, vertices, triangles, colors.Hue(hue), hue, psychedelic, pose.Header.FrameID, ns, id)
}

// MeshMarker is TriangleListMarker for a loaded mesh.
func MeshMarker(pose msgs.PoseStamped, m *mesh.Mesh, hue int, psychedelic bool, ns string, id int) (Marker, error) {
	return TriangleListMarker(pose, m.Vertices, m.Triangles, hue, psychedelic, ns, id)
}

func triangleListMarker(
	pose msgs.Pose,
	vertices []r3.Vector,
	triangles []int,
	color msgs.ColorRGBA,
	hue int,
	psychedelic bool,
	frameID, ns string,
	id int,
) (Marker, error) {
	if len(triangles)%3 != 0 {
		return Marker{}, errors.Errorf("triangle index count %d is not a multiple of 3", len(triangles))
	}
	m := newMarker(frameID, ns, id, TriangleList)
	m.Pose = pose
	m.Scale = uniformScale(1)
	m.Color = color
	m.Points = make([]r3.Vector, 0, len(triangles))
	numTriangles := len(triangles) / 3
	if psychedelic {
		m.Colors = make([]msgs.ColorRGBA, 0, len(triangles))
	}
	for i, idx := range triangles {
		if idx < 0 || idx >= len(vertices) {
			return Marker{}, errors.Errorf("triangle %d references vertex %d of %d", i/3, idx, len(vertices))
		}
		m.Points = append(m.Points, vertices[idx])
		if psychedelic {
			m.Colors = append(m.Colors, colors.Hue(hue+360*(i/3)/numTriangles))
		}
	}
	return m, nil
}
