package culling

import "github.com/akmonengine/speg/vm"

// ============================================================================
// Types
// ============================================================================

// CellKey is the integer coordinate of a grid cell.
type CellKey struct {
	X, Y, Z int
}

// bucket gathers the objects of every cell hashing to it, along with the
// union of their boxes.
type bucket struct {
	indices []int
	bounds  AABB
}

// Grid is a hashed uniform grid that culls whole buckets against a frustum
// before testing the objects inside them.
type Grid struct {
	cellSize float32
	buckets  []bucket
	cellMask int

	boxes  []AABB
	tested []uint32
	stamp  uint32
}

// ============================================================================
// Construction
// ============================================================================

// NewGrid creates a grid of cellSize cells hashed into numCells buckets,
// rounded up to a power of two.
func NewGrid(cellSize float32, numCells int) *Grid {
	numCells = nextPowerOfTwo(numCells)

	buckets := make([]bucket, numCells)
	for i := range buckets {
		buckets[i].indices = make([]int, 0, 8)
	}

	return &Grid{
		cellSize: cellSize,
		buckets:  buckets,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// ============================================================================
// Population
// ============================================================================

// Insert registers object index with bounds box in every cell the box covers.
// index must be non-negative and inserted at most once between two Clear calls.
func (g *Grid) Insert(index int, box AABB) {
	if index >= len(g.boxes) {
		grow := index + 1 - len(g.boxes)
		g.boxes = append(g.boxes, make([]AABB, grow)...)
		g.tested = append(g.tested, make([]uint32, grow)...)
	}
	g.boxes[index] = box

	minCell := g.worldToCell(box.Min)
	maxCell := g.worldToCell(box.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				b := &g.buckets[g.hashCell(CellKey{x, y, z})]
				if len(b.indices) == 0 {
					b.bounds = box
				} else {
					b.bounds = b.bounds.Union(box)
				}
				b.indices = append(b.indices, index)
			}
		}
	}
}

func (g *Grid) Clear() {
	for i := range g.buckets {
		g.buckets[i].indices = g.buckets[i].indices[:0]
		g.buckets[i].bounds = AABB{}
	}
	g.boxes = g.boxes[:0]
	g.tested = g.tested[:0]
}

// Len returns the highest inserted index plus one.
func (g *Grid) Len() int {
	return len(g.boxes)
}

// ============================================================================
// Culling
// ============================================================================

// Cull calls visit once for every inserted object whose box intersects the
// frustum. Buckets whose merged bounds fall outside are skipped wholesale.
// Visit order follows bucket order, then insertion order.
func (g *Grid) Cull(frustum *Frustum, epsilon float32, visit func(index int)) {
	g.stamp++
	if g.stamp == 0 {
		for i := range g.tested {
			g.tested[i] = 0
		}
		g.stamp = 1
	}

	for i := range g.buckets {
		b := &g.buckets[i]
		if len(b.indices) == 0 {
			continue
		}
		if !frustum.IntersectsAABB(b.bounds, epsilon) {
			continue
		}

		for _, index := range b.indices {
			if g.tested[index] == g.stamp {
				continue
			}
			g.tested[index] = g.stamp

			if frustum.IntersectsAABB(g.boxes[index], epsilon) {
				visit(index)
			}
		}
	}
}

// worldToCell converts a world position to cell coordinates.
func (g *Grid) worldToCell(pos vm.Vec3) CellKey {
	return CellKey{
		X: int(vm.Floor(pos.X / g.cellSize)),
		Y: int(vm.Floor(pos.Y / g.cellSize)),
		Z: int(vm.Floor(pos.Z / g.cellSize)),
	}
}

// hashCell maps a cell to a bucket index.
func (g *Grid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & g.cellMask
}
