package chasecam

import (
	"github.com/go-gl/mathgl/mgl32"
)

const minSmoothTime = 0.0001

// SmoothDamp moves current toward target like a critically damped spring that
// settles in roughly smoothTime. velocity carries the spring state between calls
// and is updated in place. The result never overshoots target.
func SmoothDamp(current, target mgl32.Vec3, velocity *mgl32.Vec3, smoothTime, dt float32) mgl32.Vec3 {
	if smoothTime < minSmoothTime {
		smoothTime = minSmoothTime
	}
	omega := 2 / smoothTime
	x := omega * dt
	// Pade-style approximation of exp(-x), stable for large x.
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	temp := velocity.Add(change.Mul(omega)).Mul(dt)
	*velocity = velocity.Sub(temp.Mul(omega)).Mul(decay)
	out := target.Add(change.Add(temp).Mul(decay))

	if target.Sub(current).Dot(out.Sub(target)) > 0 {
		out = target
		*velocity = mgl32.Vec3{}
	}
	return out
}

// Lerp interpolates from a to b with t clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	t = mgl32.Clamp(t, 0, 1)
	return a + (b-a)*t
}

func finiteVec(v mgl32.Vec3) bool {
	return isFinite(v.X()) && isFinite(v.Y()) && isFinite(v.Z())
}
