package kinematics

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func revolute(name, joint string) Segment {
	seg := NewFixedSegment(name)
	seg.Joint = Joint{Name: joint, Type: RevoluteJoint, Axis: r3.Vector{Z: 1}}
	return seg
}

// base_link -> shoulder -> upper_arm -> forearm -> wrist -> gripper
//
//	\-> camera (fixed)
func testTree(t *testing.T) *Tree {
	t.Helper()
	tree := NewTree("base_link")
	test.That(t, tree.AddSegment(revolute("shoulder", "shoulder_pan"), "base_link"), test.ShouldBeNil)
	test.That(t, tree.AddSegment(revolute("upper_arm", "shoulder_lift"), "shoulder"), test.ShouldBeNil)
	test.That(t, tree.AddSegment(revolute("forearm", "elbow"), "upper_arm"), test.ShouldBeNil)
	test.That(t, tree.AddSegment(NewFixedSegment("wrist"), "forearm"), test.ShouldBeNil)
	gripper := revolute("gripper", "gripper_slide")
	gripper.Joint.Type = PrismaticJoint
	test.That(t, tree.AddSegment(gripper, "wrist"), test.ShouldBeNil)
	test.That(t, tree.AddSegment(NewFixedSegment("camera"), "base_link"), test.ShouldBeNil)
	return tree
}

func TestTreeConstruction(t *testing.T) {
	tree := testTree(t)
	test.That(t, tree.Root(), test.ShouldEqual, "base_link")
	test.That(t, tree.NumSegments(), test.ShouldEqual, 7)
	test.That(t, tree.Children("base_link"), test.ShouldResemble, []string{"camera", "shoulder"})
	test.That(t, tree.Leaves(), test.ShouldResemble, []string{"camera", "gripper"})

	parent, ok := tree.Parent("forearm")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, parent, test.ShouldEqual, "upper_arm")
	_, ok = tree.Parent("base_link")
	test.That(t, ok, test.ShouldBeFalse)

	seg, ok := tree.Segment("forearm")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, seg.Joint.Name, test.ShouldEqual, "elbow")
	_, ok = tree.Segment("missing")
	test.That(t, ok, test.ShouldBeFalse)

	t.Run("bad additions", func(t *testing.T) {
		test.That(t, tree.AddSegment(NewFixedSegment("camera"), "base_link"), test.ShouldNotBeNil)
		test.That(t, tree.AddSegment(NewFixedSegment("lidar"), "mast"), test.ShouldNotBeNil)
		test.That(t, tree.AddSegment(Segment{}, "base_link"), test.ShouldNotBeNil)
		test.That(t, tree.NumSegments(), test.ShouldEqual, 7)
	})
}

func TestSegmentOfJoint(t *testing.T) {
	tree := testTree(t)
	seg, ok := tree.SegmentOfJoint("elbow")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, seg, test.ShouldEqual, "forearm")

	_, ok = tree.SegmentOfJoint("knee")
	test.That(t, ok, test.ShouldBeFalse)
}

func TestChainTip(t *testing.T) {
	tree := testTree(t)

	tip, ok := tree.ChainTip([]string{"camera", "gripper"}, "shoulder")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, tip, test.ShouldEqual, "gripper")

	tip, ok = tree.ChainTip([]string{"missing", "camera", "gripper"}, "base_link")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, tip, test.ShouldEqual, "camera")

	tip, ok = tree.ChainTip([]string{"forearm"}, "forearm")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, tip, test.ShouldEqual, "forearm")

	_, ok = tree.ChainTip([]string{"camera", "shoulder"}, "forearm")
	test.That(t, ok, test.ShouldBeFalse)

	_, ok = tree.ChainTip([]string{"camera"}, "missing")
	test.That(t, ok, test.ShouldBeFalse)
}

func TestTreeChain(t *testing.T) {
	tree := testTree(t)

	chain, err := tree.Chain("base_link", "gripper")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, chain.NumSegments(), test.ShouldEqual, 5)
	test.That(t, chain.Segments[0].Name, test.ShouldEqual, "shoulder")
	test.That(t, chain.Segments[4].Name, test.ShouldEqual, "gripper")
	test.That(t, chain.NumJoints(), test.ShouldEqual, 4)
	test.That(t, chain.JointNames(), test.ShouldResemble, []string{"shoulder_pan", "shoulder_lift", "elbow", "gripper_slide"})

	chain, err = tree.Chain("upper_arm", "wrist")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, chain.NumSegments(), test.ShouldEqual, 2)

	_, err = tree.Chain("camera", "gripper")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = tree.Chain("base_link", "missing")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = tree.Chain("missing", "gripper")
	test.That(t, err, test.ShouldNotBeNil)
}
