package chasecam

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

func TestSceneHierarchy(t *testing.T) {
	scene := NewScene()

	parent := scene.NewNode("parent", nil)
	parent.SetLocalPosition(mgl32.Vec3{10, 0, 0})

	child := scene.NewNode("child", parent)
	child.SetLocalPosition(mgl32.Vec3{0, 5, 0})

	grandchild := scene.NewNode("grandchild", child)
	grandchild.SetLocalPosition(mgl32.Vec3{0, 0, 2})

	if child.Position() != (mgl32.Vec3{10, 5, 0}) {
		t.Errorf("Child position incorrect: expected (10, 5, 0), got %v", child.Position())
	}
	if grandchild.Position() != (mgl32.Vec3{10, 5, 2}) {
		t.Errorf("Grandchild position incorrect: expected (10, 5, 2), got %v", grandchild.Position())
	}

	// Parent at (10, 0, 0) turned 90 deg around Y, child local (5, 0, 0):
	// RotY(90) * (5, 0, 0) = (0, 0, -5), so the child lands on (10, 0, -5).
	parent.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}))
	child.SetLocalPosition(mgl32.Vec3{5, 0, 0})

	expectedPos := mgl32.Vec3{10, 0, -5}
	if child.Position().Sub(expectedPos).Len() > 0.001 {
		t.Errorf("Child position after rotation incorrect: expected %v, got %v", expectedPos, child.Position())
	}
	if !child.Rotation().ApproxEqualThreshold(parent.Rotation(), 1e-5) {
		t.Errorf("Child with identity local rotation should share the parent rotation, got %v", child.Rotation())
	}
}

func TestNode_ScalePropagates(t *testing.T) {
	scene := NewScene()
	parent := scene.NewNode("parent", nil)
	parent.SetLocalScale(mgl32.Vec3{2, 2, 2})
	child := scene.NewNode("child", parent)
	child.SetLocalPosition(mgl32.Vec3{1, 0, 0})

	if child.Position() != (mgl32.Vec3{2, 0, 0}) {
		t.Errorf("expected scaled offset (2, 0, 0), got %v", child.Position())
	}
	if child.Scale() != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("expected inherited scale, got %v", child.Scale())
	}

	child.SetPosition(mgl32.Vec3{4, 0, 0})
	if child.LocalPosition().Sub(mgl32.Vec3{2, 0, 0}).Len() > 1e-5 {
		t.Errorf("expected local (2, 0, 0) under scale 2, got %v", child.LocalPosition())
	}
}

func TestNode_WorldSettersRoundTripUnderRotatedParent(t *testing.T) {
	scene := NewScene()
	parent := scene.NewNode("parent", nil)
	parent.SetPosition(mgl32.Vec3{1, 2, 3})
	parent.SetRotation(mgl32.QuatRotate(0.7, mgl32.Vec3{0, 1, 1}.Normalize()))
	child := scene.NewNode("child", parent)

	want := mgl32.Vec3{-4, 6, 0.5}
	child.SetPosition(want)
	if child.Position().Sub(want).Len() > 1e-4 {
		t.Errorf("SetPosition round trip: want %v, got %v", want, child.Position())
	}

	wantRot := mgl32.QuatRotate(1.2, mgl32.Vec3{1, 0, 0})
	child.SetRotation(wantRot)
	if !child.Rotation().ApproxEqualThreshold(wantRot, 1e-5) {
		t.Errorf("SetRotation round trip: want %v, got %v", wantRot, child.Rotation())
	}
}

func TestNode_SetParent(t *testing.T) {
	scene := NewScene()
	a := scene.NewNode("a", nil)
	b := scene.NewNode("b", a)
	c := scene.NewNode("c", b)

	if c.SetParent(c) || a.SetParent(c) {
		t.Fatal("expected cycles to be refused")
	}
	if !c.SetParent(nil) {
		t.Fatal("expected detaching to succeed")
	}
	if len(b.Children()) != 0 {
		t.Errorf("expected b to lose its child, got %d", len(b.Children()))
	}
	if len(scene.Roots()) != 2 {
		t.Errorf("expected two roots, got %d", len(scene.Roots()))
	}
	if !c.SetParent(a) || c.Parent() != a || len(a.Children()) != 2 {
		t.Errorf("expected c under a, parent=%v children=%d", c.Parent(), len(a.Children()))
	}
}

func TestScene_FindAndIds(t *testing.T) {
	scene := NewScene()
	player := scene.NewNode("player", nil)
	nodes := scene.NewRigChain(player, mgl32.Vec3{0, 1.5, 0}, -4)

	found, ok := scene.Find("pivot")
	if !ok || found != nodes.Pivot {
		t.Fatalf("Find(pivot) = %v, %v", found, ok)
	}
	if _, ok := scene.Find("missing"); ok {
		t.Error("expected Find to miss unknown names")
	}
	if scene.Len() != 4 {
		t.Errorf("expected 4 nodes, got %d", scene.Len())
	}

	seen := map[string]bool{}
	for _, name := range []string{"player", "holder", "pivot", "camera"} {
		n, _ := scene.Find(name)
		if _, err := uuid.Parse(n.ID()); err != nil {
			t.Errorf("%s id %q is not a uuid: %v", name, n.ID(), err)
		}
		if seen[n.ID()] {
			t.Errorf("duplicate id %s", n.ID())
		}
		seen[n.ID()] = true
		if byId, ok := scene.Node(n.ID()); !ok || byId != n {
			t.Errorf("Node(%s) lookup failed", n.ID())
		}
	}

	cam := nodes.Camera.Position()
	if cam.Sub(mgl32.Vec3{0, 1.5, -4}).Len() > 1e-5 {
		t.Errorf("camera should start behind the pivot, got %v", cam)
	}
}
