// Package spatialmath defines orientation conversions and small 3D geometric queries.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/leatherman/utils"
)

// If two values differ by less than this amount, we consider them the same.
const floatEpsilon = 1e-9

// EulerAngles are three angles (in radians) used to represent the rotation of an object in 3D
// Euclidean space. Rotations are applied about fixed axes in the order X (roll), Y (pitch),
// Z (yaw), i.e. R = Rz(yaw) * Ry(pitch) * Rx(roll).
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// Quaternion returns orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	return RPYToQuat(ea.Roll, ea.Pitch, ea.Yaw)
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	return NewRotationMatrixFromRPY(ea.Roll, ea.Pitch, ea.Yaw)
}

// RPYToQuat converts fixed-axis roll, pitch and yaw to a unit quaternion.
func RPYToQuat(roll, pitch, yaw float64) quat.Number {
	sr, cr := math.Sincos(roll / 2)
	sp, cp := math.Sincos(pitch / 2)
	sy, cy := math.Sincos(yaw / 2)

	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// QuatToRPY returns the roll, pitch and yaw of a quaternion. The quaternion is normalized first,
// and the solution with pitch in [-pi/2, pi/2] is returned.
func QuatToRPY(q quat.Number) (roll, pitch, yaw float64) {
	return QuatToRotationMatrix(q).RPY()
}

// QuatToEulerAngles converts a quaternion to EulerAngles.
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	roll, pitch, yaw := QuatToRPY(q)
	return &EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// Normalize returns q scaled to unit length. The zero quaternion maps to the identity.
func Normalize(q quat.Number) quat.Number {
	norm := quat.Abs(q)
	if norm < floatEpsilon {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/norm, q)
}

// QuaternionAlmostEqual is an equality test for two quaternions that describe the same rotation.
// q and -q are considered equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	a, b = Normalize(a), Normalize(b)
	same := utils.Float64AlmostEqual(a.Real, b.Real, tol) &&
		utils.Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		utils.Float64AlmostEqual(a.Kmag, b.Kmag, tol)
	if same {
		return true
	}
	return utils.Float64AlmostEqual(a.Real, -b.Real, tol) &&
		utils.Float64AlmostEqual(a.Imag, -b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, -b.Jmag, tol) &&
		utils.Float64AlmostEqual(a.Kmag, -b.Kmag, tol)
}

// OrientationAlmostEqual will return a bool describing whether two sets of Euler angles describe
// approximately the same orientation.
func OrientationAlmostEqual(a, b *EulerAngles) bool {
	return QuaternionAlmostEqual(a.Quaternion(), b.Quaternion(), 1e-5)
}

// OrientationBetween returns the quaternion rotating o1 into o2.
func OrientationBetween(o1, o2 quat.Number) quat.Number {
	return quat.Mul(o2, quat.Conj(o1))
}

// NormalizeAngle wraps an angle into (-pi, pi].
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	switch {
	case a <= -math.Pi:
		a += 2 * math.Pi
	case a > math.Pi:
		a -= 2 * math.Pi
	}
	return a
}

// ShortestAngularDistance returns the signed angle that must be added to `from` to reach `to`,
// in (-pi, pi].
func ShortestAngularDistance(from, to float64) float64 {
	return NormalizeAngle(to - from)
}
