package chasecam

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LookSource reports this frame's normalized look delta: x turns (yaw), positive
// y tilts up.
type LookSource interface {
	Look() mgl32.Vec2
}

type LookFunc func() mgl32.Vec2

func (f LookFunc) Look() mgl32.Vec2 { return f() }

// StaticLook reports the same delta every frame.
type StaticLook mgl32.Vec2

func (s StaticLook) Look() mgl32.Vec2 { return mgl32.Vec2(s) }

// Input is the per-frame snapshot of the look source. Sample it once per frame
// before the rig runs.
type Input struct {
	Look   mgl32.Vec2
	source LookSource
}

func NewInput(source LookSource) *Input {
	return &Input{source: source}
}

func (in *Input) Sample() {
	if in.source == nil {
		in.Look = mgl32.Vec2{}
		return
	}
	look := in.source.Look()
	if !isFinite(look.X()) || !isFinite(look.Y()) {
		look = mgl32.Vec2{}
	}
	in.Look = look
}
