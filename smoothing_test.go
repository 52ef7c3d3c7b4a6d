package chasecam

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSmoothDamp_NeverOvershoots(t *testing.T) {
	current := mgl32.Vec3{0, 0, 0}
	target := mgl32.Vec3{1, 0, 0}
	velocity := mgl32.Vec3{50, 0, 0} // Already moving fast toward the target

	for i := 0; i < 20; i++ {
		current = SmoothDamp(current, target, &velocity, 0.3, 0.016)
		if current.X() > target.X() {
			t.Fatalf("step %d overshot: %v", i, current)
		}
	}
}

func TestSmoothDamp_SnapsAndStopsAtTarget(t *testing.T) {
	current := mgl32.Vec3{0, 0, 0}
	target := mgl32.Vec3{0, 0, -2}
	var velocity mgl32.Vec3

	for i := 0; i < 2000; i++ {
		current = SmoothDamp(current, target, &velocity, 0.1, 0.016)
	}

	if current.Sub(target).Len() > 1e-4 {
		t.Errorf("expected to settle on target, got %v", current)
	}
	if velocity.Len() > 1e-3 {
		t.Errorf("expected velocity to die out, got %v", velocity)
	}
}

func TestSmoothDamp_TinySmoothTimeIsFinite(t *testing.T) {
	var velocity mgl32.Vec3
	out := SmoothDamp(mgl32.Vec3{}, mgl32.Vec3{3, 4, 5}, &velocity, 0, 0.016)
	if !finiteVec(out) || !finiteVec(velocity) {
		t.Fatalf("non-finite result %v velocity %v", out, velocity)
	}
	if out.Sub(mgl32.Vec3{3, 4, 5}).Len() > 1e-3 {
		t.Errorf("expected near-instant arrival, got %v", out)
	}
}

func TestLerp_ClampsT(t *testing.T) {
	cases := []struct {
		a, b, t, want float32
	}{
		{0, 10, 0.5, 5},
		{0, 10, -1, 0},
		{0, 10, 3, 10},
		{-5, -2, 0.25, -4.25},
	}
	for _, c := range cases {
		if got := Lerp(c.a, c.b, c.t); got != c.want {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", c.a, c.b, c.t, got, c.want)
		}
	}
}
