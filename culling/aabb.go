package culling

import "github.com/akmonengine/speg/vm"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min vm.Vec3
	Max vm.Vec3
}

// AABBFromCenter builds the box spanning center ± halfExtents.
func AABBFromCenter(center, halfExtents vm.Vec3) AABB {
	return AABB{
		Min: center.Sub(halfExtents),
		Max: center.Add(halfExtents),
	}
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point vm.Vec3) bool {
	return point.X >= a.Min.X && point.X <= a.Max.X &&
		point.Y >= a.Min.Y && point.Y <= a.Max.Y &&
		point.Z >= a.Min.Z && point.Z <= a.Max.Z
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X >= other.Min.X && a.Min.X <= other.Max.X &&
		a.Max.Y >= other.Min.Y && a.Min.Y <= other.Max.Y &&
		a.Max.Z >= other.Min.Z && a.Min.Z <= other.Max.Z
}

func (a AABB) Center() vm.Vec3 {
	return a.Min.Add(a.Max).MulScalar(0.5)
}

func (a AABB) HalfExtents() vm.Vec3 {
	return a.Max.Sub(a.Min).MulScalar(0.5)
}

// Union returns the smallest box enclosing both a and other.
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: vm.Vec3{
			X: vm.Min(a.Min.X, other.Min.X),
			Y: vm.Min(a.Min.Y, other.Min.Y),
			Z: vm.Min(a.Min.Z, other.Min.Z),
		},
		Max: vm.Vec3{
			X: vm.Max(a.Max.X, other.Max.X),
			Y: vm.Max(a.Max.Y, other.Max.Y),
			Z: vm.Max(a.Max.Z, other.Max.Z),
		},
	}
}

// Transform returns the world-space box enclosing the eight corners of a
// after applying m.
func (a AABB) Transform(m vm.Mat4) AABB {
	corners := boxCorners(a.Min, a.Max)

	first := m.TransformPoint(corners[0])
	result := AABB{Min: first, Max: first}
	for _, corner := range corners[1:] {
		p := m.TransformPoint(corner)
		result = result.Union(AABB{Min: p, Max: p})
	}

	return result
}

func boxCorners(lo, hi vm.Vec3) [8]vm.Vec3 {
	return [8]vm.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
	}
}
