// Package viz builds visualization markers for poses, spheres, lines, text, cubes, meshes and
// collision objects. Every builder returns a fresh value; markers are identified downstream by
// their (namespace, id) pair.
package viz

import (
	"time"

	"github.com/golang/geo/r3"

	"go.viam.com/leatherman/msgs"
)

// DefaultLifetime is how long a renderer keeps a marker that is not refreshed.
const DefaultLifetime = 500 * time.Millisecond

// MarkerType is the shape a marker is drawn as.
type MarkerType int

// Marker types, numbered as the middleware marker message numbers them.
const (
	Arrow MarkerType = iota
	Cube
	Sphere
	Cylinder
	LineStrip
	LineList
	CubeList
	SphereList
	Points
	Text
	MeshResource
	TriangleList
)

func (t MarkerType) String() string {
	switch t {
	case Arrow:
		return "arrow"
	case Cube:
		return "cube"
	case Sphere:
		return "sphere"
	case Cylinder:
		return "cylinder"
	case LineStrip:
		return "line_strip"
	case LineList:
		return "line_list"
	case CubeList:
		return "cube_list"
	case SphereList:
		return "sphere_list"
	case Points:
		return "points"
	case Text:
		return "text"
	case MeshResource:
		return "mesh_resource"
	case TriangleList:
		return "triangle_list"
	default:
		return "unknown"
	}
}

// Action tells a renderer what to do with a marker.
type Action int

// Marker actions.
const (
	Add       Action = 0
	Delete    Action = 2
	DeleteAll Action = 3
)

func (a Action) String() string {
	switch a {
	case Add:
		return "add"
	case Delete:
		return "delete"
	case DeleteAll:
		return "delete_all"
	default:
		return "unknown"
	}
}

// Marker is a single visualization primitive.
type Marker struct {
	Header       msgs.Header      `json:"header"`
	Namespace    string           `json:"ns"`
	ID           int              `json:"id"`
	Type         MarkerType       `json:"type"`
	Action       Action           `json:"action"`
	Pose         msgs.Pose        `json:"pose"`
	Scale        r3.Vector        `json:"scale"`
	Color        msgs.ColorRGBA   `json:"color"`
	Lifetime     time.Duration    `json:"lifetime"`
	FrameLocked  bool             `json:"frame_locked"`
	Points       []r3.Vector      `json:"points,omitempty"`
	Colors       []msgs.ColorRGBA `json:"colors,omitempty"`
	Text         string           `json:"text,omitempty"`
	MeshResource string           `json:"mesh_resource,omitempty"`
}

// MarkerArray is a batch of markers published together.
type MarkerArray struct {
	Markers []Marker `json:"markers"`
}

// Append adds markers to the end of the array.
func (ma *MarkerArray) Append(markers ...Marker) {
	ma.Markers = append(ma.Markers, markers...)
}

// Extend adds the markers of other to the end of the array.
func (ma *MarkerArray) Extend(other MarkerArray) {
	ma.Markers = append(ma.Markers, other.Markers...)
}

// IDs returns the ids of the markers in order.
func (ma MarkerArray) IDs() []int {
	ids := make([]int, 0, len(ma.Markers))
	for _, m := range ma.Markers {
		ids = append(ids, m.ID)
	}
	return ids
}

func newMarker(frameID, ns string, id int, typ MarkerType) Marker {
	return Marker{
		Header:    msgs.NewHeader(frameID),
		Namespace: ns,
		ID:        id,
		Type:      typ,
		Action:    Add,
		Pose:      msgs.NewZeroPose(),
		Lifetime:  DefaultLifetime,
	}
}

func uniformScale(s float64) r3.Vector {
	return r3.Vector{X: s, Y: s, Z: s}
}

// RemoveMarkerArray returns delete markers for ids [0, maxID) in namespace ns. It does not know
// which of those ids currently exist.
func RemoveMarkerArray(ns string, maxID int) MarkerArray {
	var ma MarkerArray
	for id := range max(maxID, 0) {
		m := newMarker("", ns, id, Arrow)
		m.Action = Delete
		ma.Append(m)
	}
	return ma
}
