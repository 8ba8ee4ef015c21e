package joints

import (
	"time"

	"github.com/pkg/errors"

	"go.viam.com/leatherman/msgs"
)

// InterpolateTrajectoryPoints returns numPoints evenly spaced samples between a and b, including
// both. Positions, velocities, accelerations and time from start are interpolated component-wise.
// Velocities and accelerations are only interpolated when both points carry them.
func InterpolateTrajectoryPoints(a, b msgs.JointTrajectoryPoint, numPoints int) ([]msgs.JointTrajectoryPoint, error) {
	if numPoints < 1 {
		return nil, errors.Errorf("number of points must be at least 1, got %d", numPoints)
	}
	if len(a.Positions) != len(b.Positions) {
		return nil, errors.Errorf("positions have different lengths: %d and %d", len(a.Positions), len(b.Positions))
	}
	interpVel, err := bothPresent("velocities", a.Velocities, b.Velocities)
	if err != nil {
		return nil, err
	}
	interpAcc, err := bothPresent("accelerations", a.Accelerations, b.Accelerations)
	if err != nil {
		return nil, err
	}

	points := make([]msgs.JointTrajectoryPoint, 0, numPoints)
	for i := range numPoints {
		var frac float64
		if numPoints > 1 {
			frac = float64(i) / float64(numPoints-1)
		}
		pt := msgs.JointTrajectoryPoint{
			Positions:     lerpSlice(a.Positions, b.Positions, frac),
			TimeFromStart: a.TimeFromStart + time.Duration(frac*float64(b.TimeFromStart-a.TimeFromStart)),
		}
		if interpVel {
			pt.Velocities = lerpSlice(a.Velocities, b.Velocities, frac)
		}
		if interpAcc {
			pt.Accelerations = lerpSlice(a.Accelerations, b.Accelerations, frac)
		}
		points = append(points, pt)
	}
	// land exactly on the end point
	if numPoints > 1 {
		points[numPoints-1].TimeFromStart = b.TimeFromStart
	}
	return points, nil
}

func bothPresent(name string, a, b []float64) (bool, error) {
	if len(a) == 0 || len(b) == 0 {
		return false, nil
	}
	if len(a) != len(b) {
		return false, errors.Errorf("%s have different lengths: %d and %d", name, len(a), len(b))
	}
	return true, nil
}

func lerpSlice(a, b []float64, frac float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + frac*(b[i]-a[i])
	}
	return out
}
