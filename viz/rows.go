package viz

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/leatherman/msgs"
	"go.viam.com/leatherman/spatialmath"
)

// rowPoint reads x, y, z from the front of a row that must hold at least minLen values.
func rowPoint(rows [][]float64, i, minLen int) (r3.Vector, error) {
	if len(rows[i]) < minLen {
		return r3.Vector{}, errors.Errorf("row %d has %d values, need at least %d", i, len(rows[i]), minLen)
	}
	return r3.Vector{X: rows[i][0], Y: rows[i][1], Z: rows[i][2]}, nil
}

// rowPose reads {x, y, z, roll, pitch, yaw} from a row.
func rowPose(rows [][]float64, i int) (msgs.Pose, error) {
	pt, err := rowPoint(rows, i, 6)
	if err != nil {
		return msgs.Pose{}, err
	}
	r := rows[i]
	return msgs.Pose{Position: pt, Orientation: spatialmath.RPYToQuat(r[3], r[4], r[5])}, nil
}

// broadcast checks that vals has either one entry, used for every item, or exactly n entries,
// and returns the accessor for item i.
func broadcast[T any](vals []T, n int, what string) (func(i int) T, error) {
	switch len(vals) {
	case n:
		return func(i int) T { return vals[i] }, nil
	case 1:
		return func(int) T { return vals[0] }, nil
	default:
		return nil, errors.Errorf("got %d %s for %d items", len(vals), what, n)
	}
}
