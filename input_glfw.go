package chasecam

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// GLFWLookSource turns cursor motion on a glfw window into look deltas. Tab
// toggles mouse capture; while the mouse is free the delta is zero. The caller
// must pump events (glfw.PollEvents) before Look is sampled each frame.
type GLFWLookSource struct {
	window      *glfw.Window
	Sensitivity float32

	captured     bool
	tabDown      bool
	primed       bool
	lastX, lastY float64
}

var _ LookSource = (*GLFWLookSource)(nil)

func NewGLFWLookSource(window *glfw.Window, sensitivity float32) *GLFWLookSource {
	return &GLFWLookSource{window: window, Sensitivity: sensitivity}
}

func (s *GLFWLookSource) Captured() bool { return s.captured }

func (s *GLFWLookSource) SetCaptured(captured bool) {
	s.captured = captured
	if captured {
		s.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		s.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	// Avoid a jump from the cursor warp that comes with a mode change.
	s.primed = false
}

func (s *GLFWLookSource) Look() mgl32.Vec2 {
	tab := s.window.GetKey(glfw.KeyTab) == glfw.Press
	if tab && !s.tabDown {
		s.SetCaptured(!s.captured)
	}
	s.tabDown = tab

	mx, my := s.window.GetCursorPos()
	if !s.primed {
		s.lastX, s.lastY = mx, my
		s.primed = true
	}
	dx, dy := mx-s.lastX, my-s.lastY
	s.lastX, s.lastY = mx, my

	if !s.captured {
		return mgl32.Vec2{}
	}
	// Screen y grows downward.
	return mgl32.Vec2{float32(dx) * s.Sensitivity, float32(-dy) * s.Sensitivity}
}
