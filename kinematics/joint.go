// Package kinematics describes robots as trees of segments connected by joints, and extracts
// serial chains from them.
package kinematics

import (
	"github.com/golang/geo/r3"

	"go.viam.com/leatherman/msgs"
)

// JointType is the kind of motion a joint allows.
type JointType string

// The joint types found in robot descriptions.
const (
	FixedJoint      JointType = "fixed"
	RevoluteJoint   JointType = "revolute"
	ContinuousJoint JointType = "continuous"
	PrismaticJoint  JointType = "prismatic"
	FloatingJoint   JointType = "floating"
	PlanarJoint     JointType = "planar"
)

// Movable reports whether a joint of this type contributes a position to a joint state.
func (jt JointType) Movable() bool {
	switch jt {
	case RevoluteJoint, ContinuousJoint, PrismaticJoint:
		return true
	case FixedJoint, FloatingJoint, PlanarJoint:
		return false
	default:
		return false
	}
}

// Joint connects a segment to its parent.
type Joint struct {
	Name string
	Type JointType
	// Axis is the unit axis of motion in the joint frame. It is unused for fixed joints.
	Axis r3.Vector
}

// Segment is a rigid body together with the joint attaching it to its parent. Origin is the
// pose of the joint frame in the parent segment's frame.
type Segment struct {
	Name   string
	Joint  Joint
	Origin msgs.Pose
}

// NewFixedSegment returns a segment attached by a fixed joint at the identity pose.
func NewFixedSegment(name string) Segment {
	return Segment{
		Name:   name,
		Joint:  Joint{Name: name + "_fixed", Type: FixedJoint},
		Origin: msgs.NewZeroPose(),
	}
}
