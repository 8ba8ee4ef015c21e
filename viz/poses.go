package viz

import (
	"strconv"

	"github.com/golang/geo/r3"

	"go.viam.com/leatherman/colors"
	"go.viam.com/leatherman/msgs"
)

// Arrow dimensions for pose markers: shaft length, shaft diameter, head diameter.
var poseArrowScale = r3.Vector{X: 0.1, Y: 0.015, Z: 0.015}

const (
	poseArrowHue  = 0
	poseTextHue   = 60
	poseTextSize  = 0.03
	poseTextAbove = 0.05
)

// PoseMarkerArray draws pose as an arrow along its x axis with id `id`. When text is set, a label
// showing the id is placed just above the pose with id `id+1`.
func PoseMarkerArray(pose msgs.Pose, frameID, ns string, id int, text bool) MarkerArray {
	var ma MarkerArray
	arrow := newMarker(frameID, ns, id, Arrow)
	arrow.Pose = pose
	arrow.Scale = poseArrowScale
	arrow.Color = colors.Hue(poseArrowHue)
	ma.Append(arrow)

	if text {
		labelPose := msgs.NewZeroPose()
		labelPose.Position = pose.Position.Add(r3.Vector{Z: poseTextAbove})
		ma.Append(TextMarker(labelPose, strconv.Itoa(id), poseTextSize, poseTextHue, frameID, ns, id+1))
	}
	return ma
}

// PoseStampedMarkerArray is PoseMarkerArray in the pose's own frame.
func PoseStampedMarkerArray(pose msgs.PoseStamped, ns string, id int, text bool) MarkerArray {
	return PoseMarkerArray(pose.Pose, pose.Header.FrameID, ns, id, text)
}

// PosesMarkerArray draws every pose with consecutive ids starting at id.
func PosesMarkerArray(poses []msgs.Pose, frameID, ns string, id int, text bool) MarkerArray {
	var ma MarkerArray
	for _, p := range poses {
		next := PoseMarkerArray(p, frameID, ns, id, text)
		id += len(next.Markers)
		ma.Extend(next)
	}
	return ma
}

// PoseRowsMarkerArray is PosesMarkerArray for rows of {x, y, z, roll, pitch, yaw}.
func PoseRowsMarkerArray(rows [][]float64, frameID, ns string, id int, text bool) (MarkerArray, error) {
	poses := make([]msgs.Pose, 0, len(rows))
	for i := range rows {
		p, err := rowPose(rows, i)
		if err != nil {
			return MarkerArray{}, err
		}
		poses = append(poses, p)
	}
	return PosesMarkerArray(poses, frameID, ns, id, text), nil
}
