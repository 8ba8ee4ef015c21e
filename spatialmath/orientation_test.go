package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// a 45 degree rotation around the x axis in the representations we support
var (
	th    = math.Pi / 4.
	q45x  = quat.Number{Real: math.Cos(th / 2.), Imag: math.Sin(th / 2.)}
	ea45x = &EulerAngles{Roll: th, Pitch: 0, Yaw: 0}
)

func TestZeroOrientation(t *testing.T) {
	zero := NewEulerAngles()
	test.That(t, zero.Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
	test.That(t, zero.RotationMatrix().AlmostEqual(&RotationMatrix{}, 0), test.ShouldBeFalse)
	for i := 0; i < 3; i++ {
		test.That(t, zero.RotationMatrix().At(i, i), test.ShouldEqual, 1)
	}
}

func TestRPYToQuat(t *testing.T) {
	q := RPYToQuat(ea45x.Roll, ea45x.Pitch, ea45x.Yaw)
	test.That(t, QuaternionAlmostEqual(q, q45x, 1e-12), test.ShouldBeTrue)
	test.That(t, quat.Abs(q), test.ShouldAlmostEqual, 1)

	q = RPYToQuat(0, 0, math.Pi/2)
	test.That(t, q.Real, test.ShouldAlmostEqual, math.Sqrt2/2)
	test.That(t, q.Kmag, test.ShouldAlmostEqual, math.Sqrt2/2)
	test.That(t, q.Imag, test.ShouldAlmostEqual, 0)
	test.That(t, q.Jmag, test.ShouldAlmostEqual, 0)
}

func TestQuatToRPY(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		roll, pitch, yaw := QuatToRPY(quat.Number{Real: 1})
		test.That(t, roll, test.ShouldAlmostEqual, 0)
		test.That(t, pitch, test.ShouldAlmostEqual, 0)
		test.That(t, yaw, test.ShouldAlmostEqual, 0)
	})

	t.Run("unnormalized input", func(t *testing.T) {
		roll, pitch, yaw := QuatToRPY(quat.Scale(7, q45x))
		test.That(t, roll, test.ShouldAlmostEqual, th)
		test.That(t, pitch, test.ShouldAlmostEqual, 0)
		test.That(t, yaw, test.ShouldAlmostEqual, 0)
	})

	t.Run("round trip", func(t *testing.T) {
		for _, ea := range []EulerAngles{
			{Roll: 0.1, Pitch: 0.2, Yaw: 0.3},
			{Roll: -1.2, Pitch: 0.7, Yaw: 2.9},
			{Roll: 3, Pitch: -1.5, Yaw: -3},
		} {
			got := QuatToEulerAngles(ea.Quaternion())
			test.That(t, got.Roll, test.ShouldAlmostEqual, ea.Roll)
			test.That(t, got.Pitch, test.ShouldAlmostEqual, ea.Pitch)
			test.That(t, got.Yaw, test.ShouldAlmostEqual, ea.Yaw)
		}
	})
}

func TestRotationMatrixMatchesQuaternion(t *testing.T) {
	ea := &EulerAngles{Roll: 0.4, Pitch: -0.3, Yaw: 1.1}
	fromRPY := ea.RotationMatrix()
	fromQuat := QuatToRotationMatrix(ea.Quaternion())
	test.That(t, fromRPY.AlmostEqual(fromQuat, 1e-9), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(fromRPY.Quaternion(), ea.Quaternion(), 1e-9), test.ShouldBeTrue)

	v := fromRPY.Apply(r3.Vector{X: 1})
	test.That(t, v.Norm(), test.ShouldAlmostEqual, 1)
	test.That(t, v.X, test.ShouldAlmostEqual, fromRPY.At(0, 0))
	test.That(t, v.Y, test.ShouldAlmostEqual, fromRPY.At(1, 0))
	test.That(t, v.Z, test.ShouldAlmostEqual, fromRPY.At(2, 0))
	test.That(t, fromRPY.Col(0), test.ShouldResemble, v)
}

func TestRPYFromRows(t *testing.T) {
	ea := &EulerAngles{Roll: 0.5, Pitch: 0.25, Yaw: -0.75}
	rows := ea.RotationMatrix().Rows()

	t.Run("primary solution", func(t *testing.T) {
		roll, pitch, yaw, err := RPYFromRows(rows, 0)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, roll, test.ShouldAlmostEqual, ea.Roll)
		test.That(t, pitch, test.ShouldAlmostEqual, ea.Pitch)
		test.That(t, yaw, test.ShouldAlmostEqual, ea.Yaw)
	})

	t.Run("alternate solution", func(t *testing.T) {
		roll, pitch, yaw, err := RPYFromRows(rows, 1)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pitch, test.ShouldAlmostEqual, math.Pi-ea.Pitch)
		alt := NewRotationMatrixFromRPY(roll, pitch, yaw)
		test.That(t, alt.AlmostEqual(ea.RotationMatrix(), 1e-9), test.ShouldBeTrue)
	})

	t.Run("gimbal lock", func(t *testing.T) {
		locked := NewRotationMatrixFromRPY(0.3, math.Pi/2, 0)
		for _, solution := range []int{0, 1} {
			roll, pitch, yaw, err := RPYFromRows(locked.Rows(), solution)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, pitch, test.ShouldAlmostEqual, math.Pi/2)
			test.That(t, yaw, test.ShouldEqual, 0)
			test.That(t, NewRotationMatrixFromRPY(roll, pitch, yaw).AlmostEqual(locked, 1e-9), test.ShouldBeTrue)
		}
	})

	t.Run("close to gimbal lock", func(t *testing.T) {
		for _, offset := range []float64{1e-4, 3e-5, 1e-5} {
			for _, sign := range []float64{1, -1} {
				near := &EulerAngles{Roll: 0.3, Pitch: sign * (math.Pi/2 - offset), Yaw: 0.2}
				roll, pitch, yaw, err := RPYFromRows(near.RotationMatrix().Rows(), 0)
				test.That(t, err, test.ShouldBeNil)
				test.That(t, pitch, test.ShouldAlmostEqual, near.Pitch, 1e-9)
				rebuilt := NewRotationMatrixFromRPY(roll, pitch, yaw)
				test.That(t, rebuilt.AlmostEqual(near.RotationMatrix(), 1e-9), test.ShouldBeTrue)

				qRoll, qPitch, qYaw := QuatToRPY(near.Quaternion())
				fromQuat := NewRotationMatrixFromRPY(qRoll, qPitch, qYaw)
				test.That(t, fromQuat.AlmostEqual(near.RotationMatrix(), 1e-9), test.ShouldBeTrue)
			}
		}
	})

	t.Run("bad solution number", func(t *testing.T) {
		_, _, _, err := RPYFromRows(rows, 2)
		test.That(t, err, test.ShouldBeError, ErrBadEulerSolution)
	})

	t.Run("bad shape", func(t *testing.T) {
		_, _, _, err := RPYFromRows([][]float64{{1, 0, 0}, {0, 1, 0}}, 0)
		test.That(t, err, test.ShouldNotBeNil)
		_, _, _, err = RPYFromRows([][]float64{{1, 0, 0}, {0, 1}, {0, 0, 1}}, 0)
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestQuaternionAlmostEqual(t *testing.T) {
	test.That(t, QuaternionAlmostEqual(q45x, quat.Scale(-1, q45x), 1e-9), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(q45x, quat.Number{Real: 1}, 1e-3), test.ShouldBeFalse)
	test.That(t, OrientationAlmostEqual(ea45x, &EulerAngles{Roll: th + 2*math.Pi}), test.ShouldBeTrue)
}

func TestOrientationBetween(t *testing.T) {
	a := RPYToQuat(0, 0, 0.5)
	b := RPYToQuat(0, 0, 1.25)
	between := OrientationBetween(a, b)
	_, _, yaw := QuatToRPY(between)
	test.That(t, yaw, test.ShouldAlmostEqual, 0.75)
	test.That(t, QuaternionAlmostEqual(quat.Mul(between, a), b, 1e-9), test.ShouldBeTrue)
}

func TestNormalizeAngle(t *testing.T) {
	test.That(t, NormalizeAngle(0), test.ShouldEqual, 0)
	test.That(t, NormalizeAngle(math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(-math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, NormalizeAngle(3*math.Pi/2), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, NormalizeAngle(-5*math.Pi/2), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, ShortestAngularDistance(math.Pi-0.1, -math.Pi+0.1), test.ShouldAlmostEqual, 0.2)
}

func TestNormalizeZeroQuaternion(t *testing.T) {
	test.That(t, Normalize(quat.Number{}), test.ShouldResemble, quat.Number{Real: 1})
	n := Normalize(quat.Number{Real: 2, Kmag: 2})
	test.That(t, quat.Abs(n), test.ShouldAlmostEqual, 1)
}
