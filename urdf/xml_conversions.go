package urdf

import (
	"encoding/xml"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/leatherman/msgs"
	"go.viam.com/leatherman/spatialmath"
	"go.viam.com/leatherman/utils"
)

// robot represents all supported fields in a Universal Robot Description Format (URDF) file.
type robot struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Links   []link   `xml:"link"`
	Joints  []joint  `xml:"joint"`
}

// link is a struct which details the XML used in a URDF link element.
type link struct {
	XMLName   xml.Name    `xml:"link"`
	Name      string      `xml:"name,attr"`
	Visual    []geometric `xml:"visual"`
	Collision []geometric `xml:"collision"`
}

// joint is a struct which details the XML used in a URDF joint element.
type joint struct {
	XMLName xml.Name `xml:"joint"`
	Name    string   `xml:"name,attr"`
	Type    string   `xml:"type,attr"`
	Parent  frame    `xml:"parent"`
	Child   frame    `xml:"child"`
	Origin  *pose    `xml:"origin,omitempty"`
	Axis    *axis    `xml:"axis,omitempty"`
	Limit   *limit   `xml:"limit,omitempty"`
}

// geometric is the shared layout of URDF visual and collision elements.
type geometric struct {
	Name     string `xml:"name,attr"`
	Origin   *pose  `xml:"origin"`
	Geometry struct {
		Box      *box      `xml:"box,omitempty"`
		Sphere   *sphere   `xml:"sphere,omitempty"`
		Cylinder *cylinder `xml:"cylinder,omitempty"`
		Mesh     *mesh     `xml:"mesh,omitempty"`
	} `xml:"geometry"`
}

type box struct {
	XMLName xml.Name `xml:"box"`
	Size    string   `xml:"size,attr"` // "x y z" format, in meters
}

type sphere struct {
	XMLName xml.Name `xml:"sphere"`
	Radius  float64  `xml:"radius,attr"` // in meters
}

type cylinder struct {
	XMLName xml.Name `xml:"cylinder"`
	Radius  float64  `xml:"radius,attr"` // in meters
	Length  float64  `xml:"length,attr"` // in meters
}

type mesh struct {
	XMLName  xml.Name `xml:"mesh"`
	Filename string   `xml:"filename,attr"` // resource path of the mesh file (STL or DAE)
	Scale    string   `xml:"scale,attr"`    // optional "x y z" scale
}

type frame struct {
	Link string `xml:"link,attr"`
}

type limit struct {
	XMLName  xml.Name `xml:"limit"`
	Lower    float64  `xml:"lower,attr"` // translation limits are in meters, revolute limits are in radians
	Upper    float64  `xml:"upper,attr"` // translation limits are in meters, revolute limits are in radians
	Effort   float64  `xml:"effort,attr"`
	Velocity float64  `xml:"velocity,attr"`
}

type axis struct {
	XMLName xml.Name `xml:"axis"`
	XYZ     string   `xml:"xyz,attr"` // "x y z" format, unit vector
}

type pose struct {
	XMLName xml.Name `xml:"origin"`
	RPY     string   `xml:"rpy,attr"` // Fixed frame angle "r p y" format, in radians
	XYZ     string   `xml:"xyz,attr"` // "x y z" format, in meters
}

// parseTriple reads an "a b c" attribute. An empty attribute gives def.
func parseTriple(s string, def r3.Vector) (r3.Vector, error) {
	vals := utils.SpaceDelimitedStringToFloatSlice(s)
	if len(vals) == 0 {
		return def, nil
	}
	if len(vals) != 3 {
		return r3.Vector{}, errors.Errorf("expected 3 values, got %q", s)
	}
	for _, v := range vals {
		if math.IsNaN(v) {
			return r3.Vector{}, errors.Errorf("non-numeric value in %q", s)
		}
	}
	return r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// Parse returns the pose described by the origin. A missing origin, or missing attributes, mean
// zero offset and no rotation.
func (p *pose) Parse() (msgs.Pose, error) {
	if p == nil {
		return msgs.NewZeroPose(), nil
	}
	// Offset for the geometry origin from the reference link origin
	xyz, err := parseTriple(p.XYZ, r3.Vector{})
	if err != nil {
		return msgs.Pose{}, errors.Wrap(err, "bad origin xyz")
	}
	rpy, err := parseTriple(p.RPY, r3.Vector{})
	if err != nil {
		return msgs.Pose{}, errors.Wrap(err, "bad origin rpy")
	}
	return msgs.Pose{
		Position:    xyz,
		Orientation: spatialmath.RPYToQuat(rpy.X, rpy.Y, rpy.Z),
	}, nil
}

// Parse returns the joint axis, defaulting to (1, 0, 0) as URDF does.
func (a *axis) Parse() (r3.Vector, error) {
	def := r3.Vector{X: 1}
	if a == nil {
		return def, nil
	}
	v, err := parseTriple(a.XYZ, def)
	if err != nil {
		return r3.Vector{}, errors.Wrap(err, "bad joint axis")
	}
	return v, nil
}

// scale returns the mesh scale, defaulting to (1, 1, 1).
func (m *mesh) scale() (r3.Vector, error) {
	v, err := parseTriple(m.Scale, r3.Vector{X: 1, Y: 1, Z: 1})
	if err != nil {
		return r3.Vector{}, errors.Wrapf(err, "bad scale for mesh %q", m.Filename)
	}
	return v, nil
}

// primitive converts a box, sphere or cylinder geometry into a solid primitive. The bool is
// false for meshes and empty geometry.
func (g *geometric) primitive() (msgs.SolidPrimitive, bool, error) {
	switch {
	case g.Geometry.Box != nil:
		dims, err := parseTriple(g.Geometry.Box.Size, r3.Vector{})
		if err != nil {
			return msgs.SolidPrimitive{}, false, errors.Wrap(err, "bad box size")
		}
		return msgs.SolidPrimitive{Type: msgs.Box, Dimensions: []float64{dims.X, dims.Y, dims.Z}}, true, nil
	case g.Geometry.Sphere != nil:
		return msgs.SolidPrimitive{Type: msgs.Sphere, Dimensions: []float64{g.Geometry.Sphere.Radius}}, true, nil
	case g.Geometry.Cylinder != nil:
		return msgs.SolidPrimitive{
			Type:       msgs.Cylinder,
			Dimensions: []float64{g.Geometry.Cylinder.Length, g.Geometry.Cylinder.Radius},
		}, true, nil
	default:
		return msgs.SolidPrimitive{}, false, nil
	}
}
