package msgs

import "github.com/golang/geo/r3"

// SolidPrimitiveType enumerates the primitive shapes a SolidPrimitive can be.
type SolidPrimitiveType int

// The supported primitive shapes.
const (
	Box SolidPrimitiveType = iota + 1
	Sphere
	Cylinder
	Cone
)

// Indices into SolidPrimitive.Dimensions.
const (
	BoxX = iota
	BoxY
	BoxZ
)

// SphereRadius is the index of a sphere's radius in SolidPrimitive.Dimensions.
const SphereRadius = 0

// Indices into SolidPrimitive.Dimensions for cylinders and cones.
const (
	CylinderHeight = iota
	CylinderRadius
)

func (t SolidPrimitiveType) String() string {
	switch t {
	case Box:
		return "box"
	case Sphere:
		return "sphere"
	case Cylinder:
		return "cylinder"
	case Cone:
		return "cone"
	default:
		return "unknown"
	}
}

// SolidPrimitive is a shape described by a type and its dimensions.
type SolidPrimitive struct {
	Type       SolidPrimitiveType `json:"type"`
	Dimensions []float64          `json:"dimensions"`
}

// MeshShape is a triangle mesh; Triangles holds three vertex indices per triangle.
type MeshShape struct {
	Vertices  []r3.Vector `json:"vertices"`
	Triangles []int       `json:"triangles"`
}

// CollisionObjectOperation says what a CollisionObject message asks the receiver to do.
type CollisionObjectOperation int

// Operations on a collision object.
const (
	AddObject CollisionObjectOperation = iota
	RemoveObject
)

// CollisionObject groups primitive and mesh shapes, each with its own pose in Header.FrameID.
// MeshResources name meshes that are not loaded inline; they are parallel to MeshResourcePoses
// and MeshScales.
type CollisionObject struct {
	Header            Header                   `json:"header"`
	ID                string                   `json:"id"`
	Primitives        []SolidPrimitive         `json:"primitives,omitempty"`
	PrimitivePoses    []Pose                   `json:"primitive_poses,omitempty"`
	Meshes            []MeshShape              `json:"meshes,omitempty"`
	MeshPoses         []Pose                   `json:"mesh_poses,omitempty"`
	MeshResources     []string                 `json:"mesh_resources,omitempty"`
	MeshResourcePoses []Pose                   `json:"mesh_resource_poses,omitempty"`
	MeshScales        []r3.Vector              `json:"mesh_scales,omitempty"`
	Operation         CollisionObjectOperation `json:"operation"`
}
