package chasecam

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// LayerMask is a set of collision layers, bit n set meaning layer n.
type LayerMask uint32

func LayerBit(layer int) LayerMask {
	if layer < 0 || layer > 31 {
		return 0
	}
	return 1 << uint(layer)
}

func (m LayerMask) Has(layer int) bool {
	return m&LayerBit(layer) != 0
}

type ColliderId uint64

type RaycastHit struct {
	Hit bool
	// T is how far the cast origin travelled along the direction before contact.
	T        float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Collider ColliderId
}

// Caster is the collision query the rig needs: sweep a sphere of radius from
// origin along the unit vector dir for at most maxDistance, skipping colliders
// whose layer is in ignore. It returns the nearest contact.
type Caster interface {
	SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDistance float32, ignore LayerMask) RaycastHit
}

type CasterFunc func(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDistance float32, ignore LayerMask) RaycastHit

func (f CasterFunc) SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDistance float32, ignore LayerMask) RaycastHit {
	return f(origin, radius, dir, maxDistance, ignore)
}

type ColliderShape int

const (
	ShapeBox ColliderShape = iota
	ShapeSphere
)

type Collider struct {
	Shape       ColliderShape
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3 // For Box
	Radius      float32    // For Sphere
	Layer       int
}

func (c Collider) AABB() AABB {
	half := c.HalfExtents
	if c.Shape == ShapeSphere {
		half = mgl32.Vec3{c.Radius, c.Radius, c.Radius}
	}
	return AABB{Min: c.Center.Sub(half), Max: c.Center.Add(half)}
}

// CollisionWorld is a static set of sphere and box colliders that answers
// sphere casts. Boxes are axis aligned and their corners are treated as square
// when swept.
type CollisionWorld struct {
	colliders map[ColliderId]Collider
	grid      *SpatialHashGrid
	nextId    ColliderId
}

var _ Caster = (*CollisionWorld)(nil)

func NewCollisionWorld(cellSize float32) *CollisionWorld {
	return &CollisionWorld{
		colliders: make(map[ColliderId]Collider),
		grid:      NewSpatialHashGrid(cellSize),
	}
}

func (w *CollisionWorld) Add(c Collider) ColliderId {
	w.nextId++
	id := w.nextId
	w.colliders[id] = c
	w.grid.Insert(id, c.AABB())
	return id
}

func (w *CollisionWorld) Remove(id ColliderId) {
	if _, ok := w.colliders[id]; !ok {
		return
	}
	delete(w.colliders, id)
	w.rebuild()
}

// Move recenters a collider. It reports false for unknown ids.
func (w *CollisionWorld) Move(id ColliderId, center mgl32.Vec3) bool {
	c, ok := w.colliders[id]
	if !ok {
		return false
	}
	c.Center = center
	w.colliders[id] = c
	w.rebuild()
	return true
}

func (w *CollisionWorld) Collider(id ColliderId) (Collider, bool) {
	c, ok := w.colliders[id]
	return c, ok
}

func (w *CollisionWorld) Len() int { return len(w.colliders) }

func (w *CollisionWorld) rebuild() {
	w.grid.Clear()
	for _, id := range w.sortedIds() {
		w.grid.Insert(id, w.colliders[id].AABB())
	}
}

func (w *CollisionWorld) sortedIds() []ColliderId {
	ids := make([]ColliderId, 0, len(w.colliders))
	for id := range w.colliders {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SphereCast ignores colliders that already overlap the sphere at origin.
func (w *CollisionWorld) SphereCast(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDistance float32, ignore LayerMask) RaycastHit {
	if maxDistance <= 0 || radius < 0 || dir.Len() < 1e-6 || !finiteVec(origin) || !finiteVec(dir) {
		return RaycastHit{}
	}
	dir = dir.Normalize()

	sweep := AABB{Min: origin, Max: origin}.
		Union(AABB{Min: origin.Add(dir.Mul(maxDistance)), Max: origin.Add(dir.Mul(maxDistance))}).
		Inflate(radius)

	var candidates []ColliderId
	if span := w.grid.span(sweep); span > maxCellsPerEntry || span <= 0 {
		candidates = w.sortedIds()
	} else {
		candidates = w.grid.QueryAABB(sweep)
	}

	best := RaycastHit{}
	for _, id := range candidates {
		c := w.colliders[id]
		if ignore.Has(c.Layer) {
			continue
		}

		var hit RaycastHit
		switch c.Shape {
		case ShapeSphere:
			hit = sweepSphere(origin, radius, dir, maxDistance, c)
		default:
			hit = sweepBox(origin, radius, dir, maxDistance, c)
		}
		if hit.Hit && (!best.Hit || hit.T < best.T) {
			hit.Collider = id
			best = hit
		}
	}
	return best
}

func sweepSphere(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDistance float32, c Collider) RaycastHit {
	r := c.Radius + radius
	m := origin.Sub(c.Center)
	b := m.Dot(dir)
	cc := m.Dot(m) - r*r
	if cc <= 0 || b > 0 {
		// Starts inside, or points away.
		return RaycastHit{}
	}
	disc := b*b - cc
	if disc < 0 {
		return RaycastHit{}
	}
	t := -b - float32(math.Sqrt(float64(disc)))
	if t < 0 || t > maxDistance {
		return RaycastHit{}
	}

	center := origin.Add(dir.Mul(t))
	normal := center.Sub(c.Center)
	if normal.Len() < 1e-6 {
		normal = dir.Mul(-1)
	}
	normal = normal.Normalize()
	return RaycastHit{
		Hit:    true,
		T:      t,
		Point:  c.Center.Add(normal.Mul(c.Radius)),
		Normal: normal,
	}
}

func sweepBox(origin mgl32.Vec3, radius float32, dir mgl32.Vec3, maxDistance float32, c Collider) RaycastHit {
	box := c.AABB()
	grown := box.Inflate(radius)

	tEnter := float32(math.Inf(-1))
	tExit := float32(math.Inf(1))
	enterAxis := -1
	inside := true
	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		lo, hi := grown.Min[axis], grown.Max[axis]
		if o < lo || o > hi {
			inside = false
		}
		if float32(math.Abs(float64(d))) < 1e-8 {
			if o < lo || o > hi {
				return RaycastHit{}
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
			enterAxis = axis
		}
		if t2 < tExit {
			tExit = t2
		}
	}
	if inside || enterAxis < 0 || tEnter > tExit || tEnter < 0 || tEnter > maxDistance {
		return RaycastHit{}
	}

	center := origin.Add(dir.Mul(tEnter))
	point := mgl32.Vec3{
		mgl32.Clamp(center.X(), box.Min.X(), box.Max.X()),
		mgl32.Clamp(center.Y(), box.Min.Y(), box.Max.Y()),
		mgl32.Clamp(center.Z(), box.Min.Z(), box.Max.Z()),
	}
	normal := center.Sub(point)
	if normal.Len() < 1e-6 {
		normal = mgl32.Vec3{}
		if dir[enterAxis] > 0 {
			normal[enterAxis] = -1
		} else {
			normal[enterAxis] = 1
		}
	}
	return RaycastHit{
		Hit:    true,
		T:      tEnter,
		Point:  point,
		Normal: normal.Normalize(),
	}
}
