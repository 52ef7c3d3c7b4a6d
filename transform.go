package chasecam

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the handle the rig uses to read and move a scene node.
// Position and Rotation are world space, the Local variants are relative to the
// node's parent.
type Transform interface {
	Position() mgl32.Vec3
	SetPosition(p mgl32.Vec3)
	Rotation() mgl32.Quat
	SetRotation(q mgl32.Quat)

	LocalPosition() mgl32.Vec3
	SetLocalPosition(p mgl32.Vec3)
	LocalRotation() mgl32.Quat
	SetLocalRotation(q mgl32.Quat)
}

// Nodes names the four transforms a rig drives. Pivot is expected to be a child
// of Holder and Camera a child of Pivot.
type Nodes struct {
	Target Transform
	Holder Transform
	Pivot  Transform
	Camera Transform
}

// isNilTransform also catches typed nil pointers stored in the interface.
func isNilTransform(t Transform) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
