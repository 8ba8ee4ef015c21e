// Package msgs holds plain value types for the robot middleware messages the rest of the library
// consumes and produces: headers, poses, joint states, trajectories, colors and collision shapes.
package msgs

import (
	"time"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Header carries the frame and timestamp that a message is expressed in.
type Header struct {
	Seq     uint32    `json:"seq"`
	Stamp   time.Time `json:"stamp"`
	FrameID string    `json:"frame_id"`
}

// NewHeader returns a header in `frameID` stamped with the current time.
func NewHeader(frameID string) Header {
	return Header{Stamp: time.Now(), FrameID: frameID}
}

// Pose is a position and a unit quaternion orientation.
type Pose struct {
	Position    r3.Vector   `json:"position"`
	Orientation quat.Number `json:"orientation"`
}

// NewZeroPose returns a pose at the origin with the identity orientation.
func NewZeroPose() Pose {
	return Pose{Orientation: quat.Number{Real: 1}}
}

// PoseStamped is a Pose tagged with a Header.
type PoseStamped struct {
	Header Header `json:"header"`
	Pose   Pose   `json:"pose"`
}

// Transform is a translation followed by a rotation, as carried by multi-DOF joint states.
type Transform struct {
	Translation r3.Vector   `json:"translation"`
	Rotation    quat.Number `json:"rotation"`
}

// Pose returns the transform as a Pose.
func (tf Transform) Pose() Pose {
	return Pose{Position: tf.Translation, Orientation: tf.Rotation}
}

// ColorRGBA is a color with channels in [0, 1].
type ColorRGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// JointState is the position, and optionally velocity and effort, of a set of named joints.
// Velocity and Effort are either empty or as long as Name.
type JointState struct {
	Header   Header    `json:"header"`
	Name     []string  `json:"name"`
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity,omitempty"`
	Effort   []float64 `json:"effort,omitempty"`
}

// MultiDOFJointState holds one transform per named joint. Each transform maps Header.FrameID to
// the frame named by the joint at the same index.
type MultiDOFJointState struct {
	Header     Header      `json:"header"`
	JointNames []string    `json:"joint_names"`
	Transforms []Transform `json:"transforms"`
}

// JointTrajectoryPoint is one waypoint of a JointTrajectory.
type JointTrajectoryPoint struct {
	Positions     []float64     `json:"positions"`
	Velocities    []float64     `json:"velocities,omitempty"`
	Accelerations []float64     `json:"accelerations,omitempty"`
	Effort        []float64     `json:"effort,omitempty"`
	TimeFromStart time.Duration `json:"time_from_start"`
}

// JointTrajectory is a timed sequence of joint waypoints.
type JointTrajectory struct {
	Header     Header                 `json:"header"`
	JointNames []string               `json:"joint_names"`
	Points     []JointTrajectoryPoint `json:"points"`
}
