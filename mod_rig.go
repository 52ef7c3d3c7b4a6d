package chasecam

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RigModule samples Input in PreUpdate and drives Rig in Update. A nil Input
// runs the rig with no look input.
type RigModule struct {
	Rig   *Rig
	Input *Input
}

func (m RigModule) Install(s *Schedule) {
	if m.Input != nil {
		s.UseSystem(PreUpdate, func(*Time) {
			m.Input.Sample()
		})
	}
	s.UseSystem(Update, func(t *Time) {
		var look mgl32.Vec2
		if m.Input != nil {
			look = m.Input.Look
		}
		m.Rig.Update(t.DeltaSeconds(), look)
	})
}
