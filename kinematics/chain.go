package kinematics

// Chain is a serial sequence of segments ordered from base to tip.
type Chain struct {
	Segments []Segment
}

// AddSegment appends a segment at the tip of the chain.
func (c *Chain) AddSegment(seg Segment) {
	c.Segments = append(c.Segments, seg)
}

// NumSegments returns the number of segments in the chain.
func (c *Chain) NumSegments() int {
	return len(c.Segments)
}

// NumJoints returns the number of movable joints in the chain.
func (c *Chain) NumJoints() int {
	n := 0
	for _, seg := range c.Segments {
		if seg.Joint.Type.Movable() {
			n++
		}
	}
	return n
}

// JointNames returns the names of the movable joints, base first.
func (c *Chain) JointNames() []string {
	names := make([]string, 0, len(c.Segments))
	for _, seg := range c.Segments {
		if seg.Joint.Type.Movable() {
			names = append(names, seg.Joint.Name)
		}
	}
	return names
}

// JointIndex returns the position of joint `name` among the movable joints of the chain, which
// is its index into a joint array for the chain.
func (c *Chain) JointIndex(name string) (int, bool) {
	idx := 0
	for _, seg := range c.Segments {
		if !seg.Joint.Type.Movable() {
			continue
		}
		if seg.Joint.Name == name {
			return idx, true
		}
		idx++
	}
	return -1, false
}

// SegmentIndex returns the position of segment `name` in the chain.
func (c *Chain) SegmentIndex(name string) (int, bool) {
	for i, seg := range c.Segments {
		if seg.Name == name {
			return i, true
		}
	}
	return -1, false
}
