// Package urdf reads Universal Robot Description Format (URDF) files: joint limits, link meshes,
// collision geometry and the kinematic tree.
package urdf

import (
	"encoding/json"
	"encoding/xml"
	"math"
	"os"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/leatherman/kinematics"
	"go.viam.com/leatherman/msgs"
)

// Extension is the file extension associated with URDF files.
const Extension string = "urdf"

// JointLimit is the position range of one movable joint. Continuous joints have infinite
// bounds.
type JointLimit struct {
	Name       string               `json:"name"`
	Type       kinematics.JointType `json:"type"`
	Min        float64              `json:"min"`
	Max        float64              `json:"max"`
	Continuous bool                 `json:"continuous"`
	Velocity   float64              `json:"velocity,omitempty"`
	Effort     float64              `json:"effort,omitempty"`
}

// jointLimitJSON leaves out infinite bounds, which JSON cannot carry.
type jointLimitJSON struct {
	Name       string               `json:"name"`
	Type       kinematics.JointType `json:"type"`
	Min        *float64             `json:"min,omitempty"`
	Max        *float64             `json:"max,omitempty"`
	Continuous bool                 `json:"continuous"`
	Velocity   float64              `json:"velocity,omitempty"`
	Effort     float64              `json:"effort,omitempty"`
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// MarshalJSON omits min and max when they are infinite, as for continuous joints.
func (jl JointLimit) MarshalJSON() ([]byte, error) {
	return json.Marshal(jointLimitJSON{
		Name:       jl.Name,
		Type:       jl.Type,
		Min:        finiteOrNil(jl.Min),
		Max:        finiteOrNil(jl.Max),
		Continuous: jl.Continuous,
		Velocity:   jl.Velocity,
		Effort:     jl.Effort,
	})
}

// UnmarshalJSON reads a missing min or max as an unbounded side.
func (jl *JointLimit) UnmarshalJSON(data []byte) error {
	var raw jointLimitJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*jl = JointLimit{
		Name:       raw.Name,
		Type:       raw.Type,
		Min:        math.Inf(-1),
		Max:        math.Inf(1),
		Continuous: raw.Continuous,
		Velocity:   raw.Velocity,
		Effort:     raw.Effort,
	}
	if raw.Min != nil {
		jl.Min = *raw.Min
	}
	if raw.Max != nil {
		jl.Max = *raw.Max
	}
	return nil
}

// Model is a parsed URDF robot description.
type Model struct {
	Name string

	links  map[string]*link
	joints map[string]*joint
	// parentJoint maps a child link to the joint that attaches it
	parentJoint map[string]*joint
	// jointOrder is the document order of joints, used for deterministic traversal
	jointOrder []string
	root       string
}

// NewModelFromXML parses URDF XML. Every joint must connect two declared links, no link may have
// more than one parent joint, and there must be exactly one root link.
func NewModelFromXML(xmlData []byte) (*Model, error) {
	r := &robot{}
	if err := xml.Unmarshal(xmlData, r); err != nil {
		return nil, errors.Wrap(err, "failed to parse URDF xml")
	}

	m := &Model{
		Name:        r.Name,
		links:       make(map[string]*link, len(r.Links)),
		joints:      make(map[string]*joint, len(r.Joints)),
		parentJoint: make(map[string]*joint, len(r.Joints)),
	}
	for i := range r.Links {
		l := &r.Links[i]
		if l.Name == "" {
			return nil, errors.New("URDF link without a name")
		}
		if _, ok := m.links[l.Name]; ok {
			return nil, errors.Errorf("duplicate URDF link %q", l.Name)
		}
		m.links[l.Name] = l
	}
	for i := range r.Joints {
		j := &r.Joints[i]
		if j.Name == "" {
			return nil, errors.New("URDF joint without a name")
		}
		if _, ok := m.joints[j.Name]; ok {
			return nil, errors.Errorf("duplicate URDF joint %q", j.Name)
		}
		if _, ok := m.links[j.Parent.Link]; !ok {
			return nil, errors.Errorf("joint %q parent link %q not found", j.Name, j.Parent.Link)
		}
		if _, ok := m.links[j.Child.Link]; !ok {
			return nil, errors.Errorf("joint %q child link %q not found", j.Name, j.Child.Link)
		}
		if other, ok := m.parentJoint[j.Child.Link]; ok {
			return nil, errors.Errorf("link %q has two parent joints: %q and %q", j.Child.Link, other.Name, j.Name)
		}
		switch kinematics.JointType(j.Type) {
		case kinematics.RevoluteJoint, kinematics.PrismaticJoint:
			if j.Limit == nil {
				return nil, errors.Errorf("%s joint %q has no <limit>", j.Type, j.Name)
			}
		case kinematics.ContinuousJoint, kinematics.FixedJoint, kinematics.FloatingJoint, kinematics.PlanarJoint:
		default:
			return nil, errors.Errorf("joint %q has unsupported type %q", j.Name, j.Type)
		}
		m.joints[j.Name] = j
		m.parentJoint[j.Child.Link] = j
		m.jointOrder = append(m.jointOrder, j.Name)
	}

	roots := lo.Filter(lo.Keys(m.links), func(name string, _ int) bool {
		_, hasParent := m.parentJoint[name]
		return !hasParent
	})
	if len(roots) != 1 {
		slices.Sort(roots)
		return nil, errors.Errorf("URDF must have exactly one root link, found %d: %v", len(roots), roots)
	}
	m.root = roots[0]

	// with a single root, any link that cannot walk up to it sits on a cycle
	for name := range m.links {
		current := name
		for steps := 0; current != m.root; steps++ {
			if steps > len(m.joints) {
				return nil, errors.Errorf("URDF joints form a cycle through link %q", name)
			}
			current = m.parentJoint[current].Parent.Link
		}
	}
	return m, nil
}

// ParseModelXMLFile will read a given file and parse the contained URDF XML data.
func ParseModelXMLFile(filename string) (*Model, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return NewModelFromXML(xmlData)
}

// Root returns the name of the root link.
func (m *Model) Root() string {
	return m.root
}

// LinkNames returns all link names in ascending order.
func (m *Model) LinkNames() []string {
	names := lo.Keys(m.links)
	slices.Sort(names)
	return names
}

// chainJoints returns the joints from root down to tip, in that order.
func (m *Model) chainJoints(root, tip string) ([]*joint, error) {
	if _, ok := m.links[root]; !ok {
		return nil, errors.Errorf("root link %q not found in URDF", root)
	}
	if _, ok := m.links[tip]; !ok {
		return nil, errors.Errorf("tip link %q not found in URDF", tip)
	}
	var chain []*joint
	for current := tip; current != root; {
		j, ok := m.parentJoint[current]
		if !ok {
			return nil, errors.Errorf("link %q is not below link %q", tip, root)
		}
		chain = append(chain, j)
		current = j.Parent.Link
	}
	slices.Reverse(chain)
	return chain, nil
}

func (j *joint) jointLimit() JointLimit {
	jl := JointLimit{Name: j.Name, Type: kinematics.JointType(j.Type)}
	if j.Limit != nil {
		jl.Velocity, jl.Effort = j.Limit.Velocity, j.Limit.Effort
	}
	if jl.Type == kinematics.ContinuousJoint {
		jl.Min, jl.Max = math.Inf(-1), math.Inf(1)
		jl.Continuous = true
		return jl
	}
	jl.Min, jl.Max = j.Limit.Lower, j.Limit.Upper
	return jl
}

// JointLimits returns the limits of every movable joint (revolute, continuous or prismatic)
// between root and tip, ordered from root to tip.
func (m *Model) JointLimits(root, tip string) ([]JointLimit, error) {
	chain, err := m.chainJoints(root, tip)
	if err != nil {
		return nil, err
	}
	limits := make([]JointLimit, 0, len(chain))
	for _, j := range chain {
		if !kinematics.JointType(j.Type).Movable() {
			continue
		}
		limits = append(limits, j.jointLimit())
	}
	return limits, nil
}

// JointLimit returns the limits of the movable joint `jointName` on the chain from root to tip.
func (m *Model) JointLimit(root, tip, jointName string) (JointLimit, error) {
	limits, err := m.JointLimits(root, tip)
	if err != nil {
		return JointLimit{}, err
	}
	jl, ok := lo.Find(limits, func(jl JointLimit) bool { return jl.Name == jointName })
	if !ok {
		return JointLimit{}, errors.Errorf("joint %q is not a movable joint between %q and %q", jointName, root, tip)
	}
	return jl, nil
}

// Tree builds the kinematic tree of the model. Each non-root link becomes a segment attached by
// its parent joint.
func (m *Model) Tree() (*kinematics.Tree, error) {
	tree := kinematics.NewTree(m.root)
	children := make(map[string][]*joint)
	for _, name := range m.jointOrder {
		j := m.joints[name]
		children[j.Parent.Link] = append(children[j.Parent.Link], j)
	}

	queue := []string{m.root}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, j := range children[parent] {
			origin, err := j.Origin.Parse()
			if err != nil {
				return nil, errors.Wrapf(err, "joint %q", j.Name)
			}
			ax, err := j.Axis.Parse()
			if err != nil {
				return nil, errors.Wrapf(err, "joint %q", j.Name)
			}
			seg := kinematics.Segment{
				Name:   j.Child.Link,
				Joint:  kinematics.Joint{Name: j.Name, Type: kinematics.JointType(j.Type), Axis: ax},
				Origin: origin,
			}
			if err := tree.AddSegment(seg, parent); err != nil {
				return nil, err
			}
			queue = append(queue, j.Child.Link)
		}
	}
	return tree, nil
}

func (m *Model) geometry(linkName string, collision bool) ([]geometric, error) {
	l, ok := m.links[linkName]
	if !ok {
		return nil, errors.Errorf("link %q not found in URDF", linkName)
	}
	if collision {
		return l.Collision, nil
	}
	return l.Visual, nil
}

// LinkMesh returns the resource path of the first mesh in the link's collision geometry, or its
// visual geometry when collision is false, together with the pose of the mesh in the link frame.
func (m *Model) LinkMesh(linkName string, collision bool) (string, msgs.PoseStamped, error) {
	geoms, err := m.geometry(linkName, collision)
	if err != nil {
		return "", msgs.PoseStamped{}, err
	}
	for _, g := range geoms {
		if g.Geometry.Mesh == nil {
			continue
		}
		p, err := g.Origin.Parse()
		if err != nil {
			return "", msgs.PoseStamped{}, errors.Wrapf(err, "link %q mesh", linkName)
		}
		return g.Geometry.Mesh.Filename, msgs.PoseStamped{Header: msgs.Header{FrameID: linkName}, Pose: p}, nil
	}
	kind := "visual"
	if collision {
		kind = "collision"
	}
	return "", msgs.PoseStamped{}, errors.Errorf("link %q has no %s mesh", linkName, kind)
}

// LinkMeshFromURDF parses urdfXML and returns LinkMesh for the link.
func LinkMeshFromURDF(urdfXML []byte, linkName string, collision bool) (string, msgs.PoseStamped, error) {
	m, err := NewModelFromXML(urdfXML)
	if err != nil {
		return "", msgs.PoseStamped{}, err
	}
	return m.LinkMesh(linkName, collision)
}

// CollisionObject converts the collision geometry of a link into a collision object expressed in
// the link frame. Boxes, spheres and cylinders become primitives; meshes are referenced by
// resource path and scale.
func (m *Model) CollisionObject(linkName string) (msgs.CollisionObject, error) {
	geoms, err := m.geometry(linkName, true)
	if err != nil {
		return msgs.CollisionObject{}, err
	}
	obj := msgs.CollisionObject{
		Header:    msgs.Header{FrameID: linkName},
		ID:        linkName,
		Operation: msgs.AddObject,
	}
	for i, g := range geoms {
		p, err := g.Origin.Parse()
		if err != nil {
			return msgs.CollisionObject{}, errors.Wrapf(err, "link %q collision %d", linkName, i)
		}
		prim, ok, err := g.primitive()
		if err != nil {
			return msgs.CollisionObject{}, errors.Wrapf(err, "link %q collision %d", linkName, i)
		}
		switch {
		case ok:
			obj.Primitives = append(obj.Primitives, prim)
			obj.PrimitivePoses = append(obj.PrimitivePoses, p)
		case g.Geometry.Mesh != nil:
			scale, err := g.Geometry.Mesh.scale()
			if err != nil {
				return msgs.CollisionObject{}, err
			}
			obj.MeshResources = append(obj.MeshResources, g.Geometry.Mesh.Filename)
			obj.MeshResourcePoses = append(obj.MeshResourcePoses, p)
			obj.MeshScales = append(obj.MeshScales, scale)
		default:
			return msgs.CollisionObject{}, errors.Errorf("link %q collision %d has no geometry", linkName, i)
		}
	}
	return obj, nil
}
