package chasecam

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Scene owns a forest of Nodes and indexes them by name.
type Scene struct {
	nodes  map[string]*Node
	byName map[string]*Node
	roots  []*Node
}

func NewScene() *Scene {
	return &Scene{
		nodes:  make(map[string]*Node),
		byName: make(map[string]*Node),
	}
}

// NewNode adds a node with an identity local transform under parent, or as a
// root when parent is nil. Names are optional; the last node added under a name
// wins for Find.
func (s *Scene) NewNode(name string, parent *Node) *Node {
	n := &Node{
		id:    uuid.NewString(),
		name:  name,
		scene: s,
		local: localTransform{
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
	}
	s.nodes[n.id] = n
	if name != "" {
		s.byName[name] = n
	}
	if parent != nil {
		n.parent = parent
		parent.children = append(parent.children, n)
	} else {
		s.roots = append(s.roots, n)
	}
	return n
}

func (s *Scene) Find(name string) (*Node, bool) {
	n, ok := s.byName[name]
	return n, ok
}

func (s *Scene) Node(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

func (s *Scene) Roots() []*Node {
	return append([]*Node(nil), s.roots...)
}

func (s *Scene) Len() int { return len(s.nodes) }

type localTransform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// Node is a scene graph transform. World values are composed from the parent
// chain on every read:
//
//	WorldPos = ParentPos + ParentRot * (ParentScale * LocalPos)
//	WorldRot = ParentRot * LocalRot
//	WorldScale = ParentScale * LocalScale
type Node struct {
	id       string
	name     string
	scene    *Scene
	parent   *Node
	children []*Node
	local    localTransform
}

var _ Transform = (*Node)(nil)

func (n *Node) ID() string        { return n.id }
func (n *Node) Name() string      { return n.name }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return append([]*Node(nil), n.children...) }

// SetParent reparents n keeping its local transform. Cycles are refused and
// reported as false.
func (n *Node) SetParent(parent *Node) bool {
	for p := parent; p != nil; p = p.parent {
		if p == n {
			return false
		}
	}
	if n.parent != nil {
		n.parent.children = removeNode(n.parent.children, n)
	} else if n.scene != nil {
		n.scene.roots = removeNode(n.scene.roots, n)
	}
	n.parent = parent
	if parent != nil {
		parent.children = append(parent.children, n)
	} else if n.scene != nil {
		n.scene.roots = append(n.scene.roots, n)
	}
	return true
}

func removeNode(list []*Node, n *Node) []*Node {
	for i, c := range list {
		if c == n {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func (n *Node) LocalPosition() mgl32.Vec3     { return n.local.Position }
func (n *Node) SetLocalPosition(p mgl32.Vec3) { n.local.Position = p }
func (n *Node) LocalRotation() mgl32.Quat     { return n.local.Rotation }
func (n *Node) SetLocalRotation(q mgl32.Quat) { n.local.Rotation = q.Normalize() }
func (n *Node) LocalScale() mgl32.Vec3        { return n.local.Scale }
func (n *Node) SetLocalScale(s mgl32.Vec3)    { n.local.Scale = s }

// world returns the composed world transform.
func (n *Node) world() localTransform {
	if n.parent == nil {
		return n.local
	}
	pw := n.parent.world()
	return localTransform{
		Position: pw.Position.Add(pw.Rotation.Rotate(mulElem(pw.Scale, n.local.Position))),
		Rotation: pw.Rotation.Mul(n.local.Rotation).Normalize(),
		Scale:    mulElem(pw.Scale, n.local.Scale),
	}
}

func (n *Node) Position() mgl32.Vec3 { return n.world().Position }
func (n *Node) Rotation() mgl32.Quat { return n.world().Rotation }
func (n *Node) Scale() mgl32.Vec3    { return n.world().Scale }

// SetPosition moves the node so that its world position is p. A parent with a
// zero scale component leaves that local component unchanged.
func (n *Node) SetPosition(p mgl32.Vec3) {
	if n.parent == nil {
		n.local.Position = p
		return
	}
	pw := n.parent.world()
	rel := pw.Rotation.Inverse().Rotate(p.Sub(pw.Position))
	for i := 0; i < 3; i++ {
		if pw.Scale[i] == 0 {
			rel[i] = n.local.Position[i]
			continue
		}
		rel[i] /= pw.Scale[i]
	}
	n.local.Position = rel
}

// SetRotation sets the world rotation, replacing whatever local rotation the
// node had.
func (n *Node) SetRotation(q mgl32.Quat) {
	if n.parent == nil {
		n.local.Rotation = q.Normalize()
		return
	}
	pr := n.parent.world().Rotation
	n.local.Rotation = pr.Inverse().Mul(q).Normalize()
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// NewRigChain builds the holder -> pivot -> camera chain for a rig tracking
// target. The holder starts on the target, the pivot sits at pivotOffset in the
// holder's frame and the camera sits depth units along the pivot's local z.
func (s *Scene) NewRigChain(target *Node, pivotOffset mgl32.Vec3, depth float32) Nodes {
	holder := s.NewNode("holder", nil)
	if target != nil {
		holder.SetPosition(target.Position())
	}
	pivot := s.NewNode("pivot", holder)
	pivot.SetLocalPosition(pivotOffset)
	camera := s.NewNode("camera", pivot)
	camera.SetLocalPosition(mgl32.Vec3{0, 0, depth})

	nodes := Nodes{Holder: holder, Pivot: pivot, Camera: camera}
	if target != nil {
		nodes.Target = target
	}
	return nodes
}
