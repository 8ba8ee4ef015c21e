package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// EulerSolution selects one of the two Euler decompositions of a rotation matrix.
type EulerSolution int

const (
	// PrimaryEulerSolution has pitch in [-pi/2, pi/2].
	PrimaryEulerSolution EulerSolution = iota
	// AlternateEulerSolution has pitch' = pi - pitch, with roll and yaw shifted by pi.
	AlternateEulerSolution
)

// ErrBadEulerSolution is returned when a solution number other than 0 or 1 is requested.
var ErrBadEulerSolution = errors.New("euler solution number must be 0 or 1")

// RotationMatrix is a 3x3 rotation matrix. Elements are addressed by (row, column).
type RotationMatrix struct {
	mat mgl64.Mat3
}

// NewRotationMatrix creates a rotation matrix from rows. It does not verify that the matrix is
// orthonormal.
func NewRotationMatrix(rows [][]float64) (*RotationMatrix, error) {
	if len(rows) != 3 {
		return nil, errors.Errorf("rotation matrix must have 3 rows, got %d", len(rows))
	}
	vecs := make([]mgl64.Vec3, 3)
	for i, row := range rows {
		if len(row) != 3 {
			return nil, errors.Errorf("rotation matrix row %d must have 3 columns, got %d", i, len(row))
		}
		vecs[i] = mgl64.Vec3{row[0], row[1], row[2]}
	}
	return &RotationMatrix{mgl64.Mat3FromRows(vecs[0], vecs[1], vecs[2])}, nil
}

// NewRotationMatrixFromRPY builds R = Rz(yaw) * Ry(pitch) * Rx(roll).
func NewRotationMatrixFromRPY(roll, pitch, yaw float64) *RotationMatrix {
	m := mgl64.Rotate3DZ(yaw).Mul3(mgl64.Rotate3DY(pitch)).Mul3(mgl64.Rotate3DX(roll))
	return &RotationMatrix{m}
}

// QuatToRotationMatrix converts a quaternion to a rotation matrix. The quaternion is normalized
// first.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	q = Normalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return &RotationMatrix{mgl64.Mat3FromRows(
		mgl64.Vec3{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		mgl64.Vec3{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		mgl64.Vec3{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	)}
}

// At returns the value in the matrix at the row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat.At(row, col)
}

// Row returns the a 3 element vector corresponding to the specified row.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	v := rm.mat.Row(row)
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Col returns the a 3 element vector corresponding to the specified column.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	v := rm.mat.Col(col)
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Rows returns the matrix as nested row slices.
func (rm *RotationMatrix) Rows() [][]float64 {
	rows := make([][]float64, 3)
	for i := range rows {
		rows[i] = []float64{rm.At(i, 0), rm.At(i, 1), rm.At(i, 2)}
	}
	return rows
}

// Mul returns the matrix product rm * other.
func (rm *RotationMatrix) Mul(other *RotationMatrix) *RotationMatrix {
	return &RotationMatrix{rm.mat.Mul3(other.mat)}
}

// Apply rotates the vector v.
func (rm *RotationMatrix) Apply(v r3.Vector) r3.Vector {
	out := rm.mat.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}

// AlmostEqual reports whether every element of the two matrices is within tol.
func (rm *RotationMatrix) AlmostEqual(other *RotationMatrix, tol float64) bool {
	return rm.mat.ApproxEqualThreshold(other.mat, tol)
}

// Quaternion returns the unit quaternion of this rotation.
func (rm *RotationMatrix) Quaternion() quat.Number {
	m := func(r, c int) float64 { return rm.mat.At(r, c) }
	var q quat.Number
	tr := m(0, 0) + m(1, 1) + m(2, 2)
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = quat.Number{Real: s / 4, Imag: (m(2, 1) - m(1, 2)) / s, Jmag: (m(0, 2) - m(2, 0)) / s, Kmag: (m(1, 0) - m(0, 1)) / s}
	case m(0, 0) > m(1, 1) && m(0, 0) > m(2, 2):
		s := math.Sqrt(1+m(0, 0)-m(1, 1)-m(2, 2)) * 2
		q = quat.Number{Real: (m(2, 1) - m(1, 2)) / s, Imag: s / 4, Jmag: (m(0, 1) + m(1, 0)) / s, Kmag: (m(0, 2) + m(2, 0)) / s}
	case m(1, 1) > m(2, 2):
		s := math.Sqrt(1+m(1, 1)-m(0, 0)-m(2, 2)) * 2
		q = quat.Number{Real: (m(0, 2) - m(2, 0)) / s, Imag: (m(0, 1) + m(1, 0)) / s, Jmag: s / 4, Kmag: (m(1, 2) + m(2, 1)) / s}
	default:
		s := math.Sqrt(1+m(2, 2)-m(0, 0)-m(1, 1)) * 2
		q = quat.Number{Real: (m(1, 0) - m(0, 1)) / s, Imag: (m(0, 2) + m(2, 0)) / s, Jmag: (m(1, 2) + m(2, 1)) / s, Kmag: s / 4}
	}
	return Normalize(q)
}

// EulerAngles returns the primary Euler decomposition of the matrix.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	roll, pitch, yaw := rm.RPY()
	return &EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// RPY returns roll, pitch and yaw of the primary Euler decomposition.
func (rm *RotationMatrix) RPY() (roll, pitch, yaw float64) {
	roll, pitch, yaw, _ = rm.EulerSolution(PrimaryEulerSolution)
	return roll, pitch, yaw
}

// gimbalLockTolerance is the cos(pitch) below which roll and yaw are treated as one rotation.
const gimbalLockTolerance = 1e-12

// EulerSolution returns one of the two roll/pitch/yaw triples that produce this matrix. Away from
// gimbal lock (pitch = ±pi/2) the two solutions differ; in gimbal lock yaw is fixed at zero and
// both solutions are identical.
func (rm *RotationMatrix) EulerSolution(solution EulerSolution) (roll, pitch, yaw float64, err error) {
	if solution != PrimaryEulerSolution && solution != AlternateEulerSolution {
		return 0, 0, 0, ErrBadEulerSolution
	}
	m := func(r, c int) float64 { return rm.mat.At(r, c) }

	// cos(pitch) is measured directly; sin(pitch) is too flat near +-pi/2 to detect the lock.
	cosPitch := math.Hypot(m(0, 0), m(1, 0))
	if cosPitch < gimbalLockTolerance {
		if m(2, 0) < 0 {
			return math.Atan2(m(0, 1), m(0, 2)), math.Pi / 2, 0, nil
		}
		return math.Atan2(-m(0, 1), -m(0, 2)), -math.Pi / 2, 0, nil
	}

	pitch = math.Atan2(-m(2, 0), cosPitch)
	if solution == PrimaryEulerSolution {
		return math.Atan2(m(2, 1), m(2, 2)), pitch, math.Atan2(m(1, 0), m(0, 0)), nil
	}
	// cos(pi - pitch) = -cos(pitch), which flips the signs fed to atan2.
	return math.Atan2(-m(2, 1), -m(2, 2)), NormalizeAngle(math.Pi - pitch), math.Atan2(-m(1, 0), -m(0, 0)), nil
}

// RPYFromRows reads roll, pitch and yaw out of a 3x3 matrix given as nested rows. `solution`
// selects between the two valid decompositions and must be 0 or 1.
func RPYFromRows(rows [][]float64, solution int) (roll, pitch, yaw float64, err error) {
	rm, err := NewRotationMatrix(rows)
	if err != nil {
		return 0, 0, 0, err
	}
	return rm.EulerSolution(EulerSolution(solution))
}
