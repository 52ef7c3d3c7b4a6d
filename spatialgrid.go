package chasecam

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Union grows a to cover b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: mgl32.Vec3{min(a.Min.X(), b.Min.X()), min(a.Min.Y(), b.Min.Y()), min(a.Min.Z(), b.Min.Z())},
		Max: mgl32.Vec3{max(a.Max.X(), b.Max.X()), max(a.Max.Y(), b.Max.Y()), max(a.Max.Z(), b.Max.Z())},
	}
}

func (a AABB) Inflate(r float32) AABB {
	d := mgl32.Vec3{r, r, r}
	return AABB{Min: a.Min.Sub(d), Max: a.Max.Add(d)}
}

// maxCellsPerEntry bounds how many cells one entry may occupy. Larger entries
// (floors, terrain slabs) live in an overflow list returned by every query.
const maxCellsPerEntry = 4096

// SpatialHashGrid is a broadphase: it only knows ids and cells, callers do the
// exact test on the candidates it returns.
type SpatialHashGrid struct {
	cellSize float32
	cells    map[uint64][]ColliderId
	oversize []ColliderId
}

func NewSpatialHashGrid(cellSize float32) *SpatialHashGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]ColliderId),
	}
}

func (grid *SpatialHashGrid) Clear() {
	clear(grid.cells)
	grid.oversize = grid.oversize[:0]
}

func (grid *SpatialHashGrid) Insert(id ColliderId, aabb AABB) {
	minX, maxX := grid.getCellIndex(aabb.Min.X()), grid.getCellIndex(aabb.Max.X())
	minY, maxY := grid.getCellIndex(aabb.Min.Y()), grid.getCellIndex(aabb.Max.Y())
	minZ, maxZ := grid.getCellIndex(aabb.Min.Z()), grid.getCellIndex(aabb.Max.Z())

	if span := grid.span(aabb); span > maxCellsPerEntry || span <= 0 {
		grid.oversize = append(grid.oversize, id)
		return
	}

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				key := grid.hashKey(x, y, z)
				grid.cells[key] = append(grid.cells[key], id)
			}
		}
	}
}

// QueryAABB returns candidate ids in ascending order, without duplicates.
func (grid *SpatialHashGrid) QueryAABB(aabb AABB) []ColliderId {
	minX, maxX := grid.getCellIndex(aabb.Min.X()), grid.getCellIndex(aabb.Max.X())
	minY, maxY := grid.getCellIndex(aabb.Min.Y()), grid.getCellIndex(aabb.Max.Y())
	minZ, maxZ := grid.getCellIndex(aabb.Min.Z()), grid.getCellIndex(aabb.Max.Z())

	unique := make(map[ColliderId]struct{})
	var results []ColliderId
	add := func(id ColliderId) {
		if _, ok := unique[id]; !ok {
			unique[id] = struct{}{}
			results = append(results, id)
		}
	}

	for _, id := range grid.oversize {
		add(id)
	}
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				for _, id := range grid.cells[grid.hashKey(x, y, z)] {
					add(id)
				}
			}
		}
	}
	slices.Sort(results)
	return results
}

func (grid *SpatialHashGrid) QueryRadius(center mgl32.Vec3, radius float32) []ColliderId {
	return grid.QueryAABB(AABB{Min: center, Max: center}.Inflate(radius))
}

// span is the number of cells aabb touches.
func (grid *SpatialHashGrid) span(aabb AABB) int {
	nx := grid.getCellIndex(aabb.Max.X()) - grid.getCellIndex(aabb.Min.X()) + 1
	ny := grid.getCellIndex(aabb.Max.Y()) - grid.getCellIndex(aabb.Min.Y()) + 1
	nz := grid.getCellIndex(aabb.Max.Z()) - grid.getCellIndex(aabb.Min.Z()) + 1
	return nx * ny * nz
}

func (grid *SpatialHashGrid) getCellIndex(pos float32) int {
	return int(math.Floor(float64(pos / grid.cellSize)))
}

func (grid *SpatialHashGrid) hashKey(x, y, z int) uint64 {
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	return uint64(x*p1 ^ y*p2 ^ z*p3)
}
