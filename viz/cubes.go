package viz

import (
	"github.com/golang/geo/r3"

	"go.viam.com/leatherman/colors"
	"go.viam.com/leatherman/msgs"
)

// CubeMarker draws a box with side lengths dims at a stamped pose.
func CubeMarker(pose msgs.PoseStamped, dims r3.Vector, hue int, ns string, id int) Marker {
	return CubeMarkerWithColor(pose.Pose, dims, colors.Hue(hue), pose.Header.FrameID, ns, id)
}

// CubeMarkerWithColor draws a box with side lengths dims and an explicit color.
func CubeMarkerWithColor(pose msgs.Pose, dims r3.Vector, color msgs.ColorRGBA, frameID, ns string, id int) Marker {
	m := newMarker(frameID, ns, id, Cube)
	m.Pose = pose
	m.Scale = dims
	m.Color = color
	return m
}

// CubeRowMarker draws an axis aligned box from a row of {x, y, z, dx, dy, dz}.
func CubeRowMarker(row []float64, color msgs.ColorRGBA, frameID, ns string, id int) (Marker, error) {
	rows := [][]float64{row}
	center, err := rowPoint(rows, 0, 6)
	if err != nil {
		return Marker{}, err
	}
	pose := msgs.NewZeroPose()
	pose.Position = center
	return CubeMarkerWithColor(pose, r3.Vector{X: row[3], Y: row[4], Z: row[5]}, color, frameID, ns, id), nil
}

// CubesMarker draws equal cubes of side size centered on rows of {x, y, z, ...} as one cube list.
func CubesMarker(rows [][]float64, size float64, color msgs.ColorRGBA, frameID, ns string, id int) (Marker, error) {
	m := newMarker(frameID, ns, id, CubeList)
	m.Scale = uniformScale(size)
	m.Color = color
	for i := range rows {
		pt, err := rowPoint(rows, i, 3)
		if err != nil {
			return Marker{}, err
		}
		m.Points = append(m.Points, pt)
	}
	return m, nil
}

// CubesMarkerArray draws one cube of side size per row of {x, y, z, ...}, with consecutive ids
// starting at id. cubeColors holds one color per row, or a single color for all of them.
func CubesMarkerArray(rows [][]float64, size float64, cubeColors []msgs.ColorRGBA, frameID, ns string, id int) (MarkerArray, error) {
	colorOf, err := broadcast(cubeColors, len(rows), "colors")
	if err != nil {
		return MarkerArray{}, err
	}
	var ma MarkerArray
	for i := range rows {
		pt, err := rowPoint(rows, i, 3)
		if err != nil {
			return MarkerArray{}, err
		}
		pose := msgs.NewZeroPose()
		pose.Position = pt
		ma.Append(CubeMarkerWithColor(pose, uniformScale(size), colorOf(i), frameID, ns, id+i))
	}
	return ma, nil
}
