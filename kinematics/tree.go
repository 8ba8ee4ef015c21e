package kinematics

import (
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

type treeNode struct {
	id      int64
	segment Segment
	parent  string
}

// Tree is a rooted tree of segments. Edges point from parent to child.
type Tree struct {
	graph  *simple.DirectedGraph
	root   string
	nextID int64
	nodes  map[string]*treeNode
	names  map[int64]string
	joints map[string]string
}

// NewTree returns a tree holding only the root segment `root`.
func NewTree(root string) *Tree {
	t := &Tree{
		graph:  simple.NewDirectedGraph(),
		root:   root,
		nodes:  make(map[string]*treeNode),
		names:  make(map[int64]string),
		joints: make(map[string]string),
	}
	t.add(NewFixedSegment(root), "")
	return t
}

// nextNodeID returns the next ID to use for a node in the directed graph.
func (t *Tree) nextNodeID() int64 {
	id := t.nextID
	t.nextID++
	return id
}

func (t *Tree) add(seg Segment, parent string) *treeNode {
	node := &treeNode{id: t.nextNodeID(), segment: seg, parent: parent}
	t.graph.AddNode(simple.Node(node.id))
	t.nodes[seg.Name] = node
	t.names[node.id] = seg.Name
	if seg.Joint.Name != "" {
		t.joints[seg.Joint.Name] = seg.Name
	}
	return node
}

// AddSegment attaches seg below the segment named `parent`. Segment names must be unique and the
// parent must already be in the tree.
func (t *Tree) AddSegment(seg Segment, parent string) error {
	if seg.Name == "" {
		return errors.New("segment must have a name")
	}
	if _, ok := t.nodes[seg.Name]; ok {
		return errors.Errorf("segment %q already exists in tree", seg.Name)
	}
	parentNode, ok := t.nodes[parent]
	if !ok {
		return errors.Errorf("parent segment %q of %q not found in tree", parent, seg.Name)
	}
	node := t.add(seg, parent)
	t.graph.SetEdge(t.graph.NewEdge(simple.Node(parentNode.id), simple.Node(node.id)))
	return nil
}

// Root returns the name of the root segment.
func (t *Tree) Root() string {
	return t.root
}

// NumSegments returns the number of segments, including the root.
func (t *Tree) NumSegments() int {
	return len(t.nodes)
}

// Segment returns the segment called `name`.
func (t *Tree) Segment(name string) (Segment, bool) {
	node, ok := t.nodes[name]
	if !ok {
		return Segment{}, false
	}
	return node.segment, true
}

// Parent returns the name of the parent of segment `name`. The root has no parent.
func (t *Tree) Parent(name string) (string, bool) {
	node, ok := t.nodes[name]
	if !ok || name == t.root {
		return "", false
	}
	return node.parent, true
}

// Children returns the names of the direct children of segment `name` in ascending order.
func (t *Tree) Children(name string) []string {
	node, ok := t.nodes[name]
	if !ok {
		return nil
	}
	var children []string
	outNodes := t.graph.From(node.id)
	for outNodes.Next() {
		children = append(children, t.names[outNodes.Node().ID()])
	}
	slices.Sort(children)
	return children
}

// Leaves returns the names of all segments without children in ascending order.
func (t *Tree) Leaves() []string {
	var leaves []string
	for name, node := range t.nodes {
		if t.graph.From(node.id).Len() == 0 {
			leaves = append(leaves, name)
		}
	}
	slices.Sort(leaves)
	return leaves
}

// SegmentOfJoint returns the name of the segment attached by joint `joint`.
func (t *Tree) SegmentOfJoint(joint string) (string, bool) {
	seg, ok := t.joints[joint]
	return seg, ok
}

// ChainTip returns the first of `segments` that lies in the subtree rooted at `root`. A segment
// counts as lying below itself.
func (t *Tree) ChainTip(segments []string, root string) (string, bool) {
	rootNode, ok := t.nodes[root]
	if !ok {
		return "", false
	}
	for _, name := range segments {
		node, ok := t.nodes[name]
		if !ok {
			continue
		}
		if topo.PathExistsIn(t.graph, simple.Node(rootNode.id), simple.Node(node.id)) {
			return name, true
		}
	}
	return "", false
}

// Chain returns the serial chain of segments strictly below root down to and including tip,
// ordered from root to tip.
func (t *Tree) Chain(root, tip string) (*Chain, error) {
	if _, ok := t.nodes[root]; !ok {
		return nil, errors.Errorf("root segment %q not found in tree", root)
	}
	if _, ok := t.nodes[tip]; !ok {
		return nil, errors.Errorf("tip segment %q not found in tree", tip)
	}

	var reversed []Segment
	for name := tip; name != root; {
		node := t.nodes[name]
		reversed = append(reversed, node.segment)
		if name == t.root {
			return nil, errors.Errorf("segment %q is not below %q", tip, root)
		}
		name = node.parent
	}
	slices.Reverse(reversed)
	return &Chain{Segments: reversed}, nil
}
