package viz

import (
	"github.com/pkg/errors"

	"go.viam.com/leatherman/colors"
	"go.viam.com/leatherman/msgs"
)

// shapeMarker draws one solid primitive.
func shapeMarker(shape msgs.SolidPrimitive, pose msgs.Pose, color msgs.ColorRGBA, frameID, ns string, id int) (Marker, error) {
	dims := shape.Dimensions
	need := map[msgs.SolidPrimitiveType]int{msgs.Box: 3, msgs.Sphere: 1, msgs.Cylinder: 2}[shape.Type]
	if need == 0 {
		return Marker{}, errors.Errorf("cannot draw %s primitive", shape.Type)
	}
	if len(dims) < need {
		return Marker{}, errors.Errorf("%s primitive needs %d dimensions, got %d", shape.Type, need, len(dims))
	}

	var m Marker
	switch shape.Type {
	case msgs.Box:
		m = newMarker(frameID, ns, id, Cube)
		m.Scale.X, m.Scale.Y, m.Scale.Z = dims[msgs.BoxX], dims[msgs.BoxY], dims[msgs.BoxZ]
	case msgs.Sphere:
		m = newMarker(frameID, ns, id, Sphere)
		m.Scale = uniformScale(2 * dims[msgs.SphereRadius])
	case msgs.Cylinder:
		m = newMarker(frameID, ns, id, Cylinder)
		d := 2 * dims[msgs.CylinderRadius]
		m.Scale.X, m.Scale.Y, m.Scale.Z = d, d, dims[msgs.CylinderHeight]
	}
	m.Pose = pose
	m.Color = color
	return m, nil
}

// ShapesMarkerArray draws boxes, spheres and cylinders with consecutive ids starting at id.
// poses is parallel to shapes; shapeColors holds one color per shape or a single color for all.
func ShapesMarkerArray(
	shapes []msgs.SolidPrimitive,
	poses []msgs.Pose,
	shapeColors []msgs.ColorRGBA,
	frameID, ns string,
	id int,
) (MarkerArray, error) {
	if len(poses) != len(shapes) {
		return MarkerArray{}, errors.Errorf("got %d poses for %d shapes", len(poses), len(shapes))
	}
	colorOf, err := broadcast(shapeColors, len(shapes), "colors")
	if err != nil {
		return MarkerArray{}, err
	}
	var ma MarkerArray
	for i, shape := range shapes {
		m, err := shapeMarker(shape, poses[i], colorOf(i), frameID, ns, id+i)
		if err != nil {
			return MarkerArray{}, errors.Wrapf(err, "shape %d", i)
		}
		ma.Append(m)
	}
	return ma, nil
}

// CollisionObjectMarkerArray draws every shape of a collision object in its header frame:
// primitives first, then inline meshes, then mesh resources, with consecutive ids starting at
// id. hues holds one hue per drawn shape or a single hue for all of them.
func CollisionObjectMarkerArray(obj msgs.CollisionObject, hues []int, ns string, id int) (MarkerArray, error) {
	if len(obj.MeshPoses) != len(obj.Meshes) {
		return MarkerArray{}, errors.Errorf("collision object %q has %d meshes and %d mesh poses",
			obj.ID, len(obj.Meshes), len(obj.MeshPoses))
	}
	if len(obj.MeshResourcePoses) != len(obj.MeshResources) {
		return MarkerArray{}, errors.Errorf("collision object %q has %d mesh resources and %d poses",
			obj.ID, len(obj.MeshResources), len(obj.MeshResourcePoses))
	}
	if len(obj.MeshScales) != 0 && len(obj.MeshScales) != len(obj.MeshResources) {
		return MarkerArray{}, errors.Errorf("collision object %q has %d mesh resources and %d scales",
			obj.ID, len(obj.MeshResources), len(obj.MeshScales))
	}
	total := len(obj.Primitives) + len(obj.Meshes) + len(obj.MeshResources)
	hueOf, err := broadcast(hues, total, "hues")
	if err != nil {
		return MarkerArray{}, err
	}
	frameID := obj.Header.FrameID

	primColors := make([]msgs.ColorRGBA, len(obj.Primitives))
	for i := range primColors {
		primColors[i] = colors.Hue(hueOf(i))
	}
	ma, err := ShapesMarkerArray(obj.Primitives, obj.PrimitivePoses, primColors, frameID, ns, id)
	if err != nil {
		return MarkerArray{}, errors.Wrapf(err, "collision object %q", obj.ID)
	}

	next := len(obj.Primitives)
	for i, shape := range obj.Meshes {
		hue := hueOf(next)
		m, err := triangleListMarker(obj.MeshPoses[i], shape.Vertices, shape.Triangles, colors.Hue(hue), hue, false, frameID, ns, id+next)
		if err != nil {
			return MarkerArray{}, errors.Wrapf(err, "collision object %q mesh %d", obj.ID, i)
		}
		ma.Append(m)
		next++
	}
	for i, resource := range obj.MeshResources {
		scale := uniformScale(1)
		if len(obj.MeshScales) != 0 {
			scale = obj.MeshScales[i]
		}
		ma.Append(meshResourceMarker(obj.MeshResourcePoses[i], scale, resource, colors.Hue(hueOf(next)), frameID, ns, id+next))
		next++
	}
	return ma, nil
}
