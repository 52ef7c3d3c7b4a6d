package chasecam

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// depthLerpTime is the time the camera takes to cover the full gap to its target
// depth at a constant dt; each frame moves dt/depthLerpTime of the remaining way.
const depthLerpTime = 0.2

const minFollowSpeed = 1e-6

// minDelta is the smallest frame time the rig accepts.
const minDelta = 1e-6

var (
	axisUp    = mgl32.Vec3{0, 1, 0}
	axisRight = mgl32.Vec3{1, 0, 0}
)

// Rig is a third person camera controller. Each Update it drags the holder
// toward the target, turns the holder (yaw) and pivot (pitch) from look input,
// and pulls the camera in along the pivot's local z when something sits between
// the pivot and the camera.
//
// A Rig is not safe for concurrent use. It assumes nothing else moves the
// holder, pivot or camera while Update runs.
type Rig struct {
	cfg    Config
	nodes  Nodes
	caster Caster
	logger Logger

	defaultDepth float32

	yaw         float32
	pitch       float32
	velocity    mgl32.Vec3
	targetDepth float32
	obstructed  bool
}

type RigOption func(*Rig)

func WithLogger(l Logger) RigOption {
	return func(r *Rig) { r.logger = orNop(l) }
}

// NewRig validates cfg and the node handles and returns a rig at rest: zero yaw
// and pitch (clamped into range), no follow velocity, target depth at default.
func NewRig(cfg Config, nodes Nodes, caster Caster, opts ...RigOption) (*Rig, error) {
	for _, n := range []struct {
		role string
		t    Transform
	}{
		{"target", nodes.Target},
		{"holder", nodes.Holder},
		{"pivot", nodes.Pivot},
		{"camera", nodes.Camera},
	} {
		if isNilTransform(n.t) {
			return nil, fmt.Errorf("%w: %s", ErrMissingNode, n.role)
		}
	}
	if caster == nil {
		return nil, ErrMissingCaster
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Rig{
		cfg:    cfg,
		nodes:  nodes,
		caster: caster,
		logger: NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.defaultDepth = cfg.DefaultDepth
	if r.defaultDepth == 0 {
		r.defaultDepth = nodes.Camera.LocalPosition().Z()
		if err := cfg.checkDepth(r.defaultDepth); err != nil {
			return nil, fmt.Errorf("camera local z: %w", err)
		}
	}
	r.targetDepth = r.defaultDepth
	r.pitch = mgl32.Clamp(0, cfg.MinPivot, cfg.MaxPivot)

	r.logger.Infof("chasecam: rig ready (default depth %.3f, pitch [%.1f, %.1f])",
		r.defaultDepth, cfg.MinPivot, cfg.MaxPivot)
	return r, nil
}

// Update runs one frame: Follow (which collides) then Rotate. Frames with a dt
// below minDelta or a non-finite dt are skipped and change nothing.
func (r *Rig) Update(dt float32, look mgl32.Vec2) {
	if !validDelta(dt) {
		r.logger.Debugf("chasecam: skipping frame with dt=%v", dt)
		return
	}
	r.Follow(dt)
	r.Rotate(dt, look)
}

// Follow smooth-damps the holder toward the target and then runs Collide so the
// camera depth reacts to the new holder position in the same frame.
func (r *Rig) Follow(dt float32) {
	if !validDelta(dt) {
		return
	}
	current := r.nodes.Holder.Position()
	target := r.nodes.Target.Position()

	var next mgl32.Vec3
	if r.cfg.FollowSpeed < minFollowSpeed {
		next = target
		r.velocity = mgl32.Vec3{}
	} else {
		next = SmoothDamp(current, target, &r.velocity, dt/r.cfg.FollowSpeed, dt)
		if !finiteVec(next) || !finiteVec(r.velocity) {
			next = target
			r.velocity = mgl32.Vec3{}
		}
	}
	r.nodes.Holder.SetPosition(next)

	r.Collide(dt)
}

// Rotate accumulates look input into yaw and pitch. The input is divided by dt,
// not multiplied, so at low frame rates the same input turns the camera faster.
// A non-finite look counts as no input, and a step that would overflow an angle
// is dropped. Yaw is kept in [0, 360).
func (r *Rig) Rotate(dt float32, look mgl32.Vec2) {
	if !validDelta(dt) {
		return
	}
	if !isFinite(look.X()) || !isFinite(look.Y()) {
		look = mgl32.Vec2{}
	}
	if yaw := r.yaw + (look.X()*r.cfg.LookSpeed)/dt; isFinite(yaw) {
		r.yaw = wrapDegrees(yaw)
	}
	if pitch := r.pitch - (look.Y()*r.cfg.PivotSpeed)/dt; isFinite(pitch) {
		r.pitch = mgl32.Clamp(pitch, r.cfg.MinPivot, r.cfg.MaxPivot)
	}

	r.nodes.Holder.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(r.yaw), axisUp))
	r.nodes.Pivot.SetLocalRotation(mgl32.QuatRotate(mgl32.DegToRad(r.pitch), axisRight))
}

// Collide resets the target depth to default, sphere-casts from the pivot toward
// the camera and, on a hit, pulls the target depth in to the hit point minus
// CollisionOffset but never closer than MinClearance. The camera's local z then
// eases toward the target depth.
func (r *Rig) Collide(dt float32) {
	if !validDelta(dt) {
		return
	}
	r.targetDepth = r.defaultDepth

	pivot := r.nodes.Pivot.Position()
	dir := r.nodes.Camera.Position().Sub(pivot)
	hit := RaycastHit{}
	if dir.Len() > 1e-6 {
		hit = r.caster.SphereCast(pivot, r.cfg.ProbeRadius, dir.Normalize(), abs32(r.defaultDepth), r.cfg.IgnoreLayers)
	}

	if hit.Hit {
		dis := pivot.Sub(hit.Point).Len()
		r.targetDepth = -(dis - r.cfg.CollisionOffset)
		if abs32(r.targetDepth) < r.cfg.MinClearance || r.targetDepth > 0 {
			r.targetDepth = -r.cfg.MinClearance
		}
	}
	if hit.Hit != r.obstructed {
		r.obstructed = hit.Hit
		if hit.Hit {
			r.logger.Debugf("chasecam: obstructed by collider %d, target depth %.3f", hit.Collider, r.targetDepth)
		} else {
			r.logger.Debugf("chasecam: clear, target depth %.3f", r.targetDepth)
		}
	}

	local := r.nodes.Camera.LocalPosition()
	local[2] = Lerp(local.Z(), r.targetDepth, dt/depthLerpTime)
	r.nodes.Camera.SetLocalPosition(local)
}

func (r *Rig) Config() Config        { return r.cfg }
func (r *Rig) DefaultDepth() float32 { return r.defaultDepth }
func (r *Rig) Yaw() float32          { return r.yaw }
func (r *Rig) Pitch() float32        { return r.pitch }
func (r *Rig) Velocity() mgl32.Vec3  { return r.velocity }
func (r *Rig) TargetDepth() float32  { return r.targetDepth }
func (r *Rig) Obstructed() bool      { return r.obstructed }
func (r *Rig) Nodes() Nodes          { return r.nodes }
func (r *Rig) CameraDepth() float32  { return r.nodes.Camera.LocalPosition().Z() }

func validDelta(dt float32) bool {
	return dt >= minDelta && isFinite(dt)
}

// wrapDegrees maps an angle into [0, 360).
func wrapDegrees(deg float32) float32 {
	w := math.Mod(float64(deg), 360)
	if w < 0 {
		w += 360
	}
	if out := float32(w); out < 360 {
		return out
	}
	return 0
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
