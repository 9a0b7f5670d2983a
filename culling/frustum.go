package culling

import "github.com/akmonengine/speg/vm"

// Plane is the half-space Normal·p + Distance >= 0.
type Plane struct {
	Normal   vm.Vec3
	Distance float32
}

// SignedDistance is positive on the inner side of the plane.
func (p Plane) SignedDistance(point vm.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

const (
	Left = iota
	Right
	Bottom
	Top
	Near
	Far
	planeCount
)

// Frustum holds six inward-facing planes, indexed by Left..Far.
type Frustum struct {
	Planes [planeCount]Plane
}

// ExtractPlanes derives the clip planes of a projection-view matrix with the
// Gribb-Hartmann method: each plane is row 3 plus or minus row 0, 1 or 2.
// Normals are scaled to unit length so SignedDistance is in world units.
func ExtractPlanes(projectionView vm.Mat4) Frustum {
	w := projectionView.Row(3)

	var f Frustum
	f.Planes[Left] = newPlane(w.Add(projectionView.Row(0)))
	f.Planes[Right] = newPlane(w.Sub(projectionView.Row(0)))
	f.Planes[Bottom] = newPlane(w.Add(projectionView.Row(1)))
	f.Planes[Top] = newPlane(w.Sub(projectionView.Row(1)))
	f.Planes[Near] = newPlane(w.Add(projectionView.Row(2)))
	f.Planes[Far] = newPlane(w.Sub(projectionView.Row(2)))

	return f
}

func newPlane(coefficients vm.Vec4) Plane {
	p := Plane{Normal: coefficients.Vec3(), Distance: coefficients.W}

	lengthSquared := p.Normal.LengthSquared()
	if lengthSquared == 0 {
		return p
	}

	scalar := vm.InvSqrt(lengthSquared)
	p.Normal = p.Normal.MulScalar(scalar)
	p.Distance *= scalar

	return p
}

// ContainsPoint reports whether point is on the inner side of all six planes.
// Points exactly on a plane count as inside.
func (f *Frustum) ContainsPoint(point vm.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(point) < 0 {
			return false
		}
	}
	return true
}

// IntersectsBox tests the box centered on center against every plane. A plane
// rejects the box only when all eight corners lie strictly outside it, so boxes
// near a frustum edge can pass without being visible. epsilon inflates the half
// extents to keep rotating objects from flickering at the border.
func (f *Frustum) IntersectsBox(center, halfExtents vm.Vec3, epsilon float32) bool {
	half := halfExtents.AddScalar(epsilon)
	lo := center.Sub(half)
	hi := center.Add(half)

	corners := boxCorners(lo, hi)

	for i := range f.Planes {
		outside := true
		for _, corner := range corners {
			if f.Planes[i].SignedDistance(corner) >= 0 {
				outside = false
				break
			}
		}
		if outside {
			return false
		}
	}

	return true
}

func (f *Frustum) IntersectsAABB(box AABB, epsilon float32) bool {
	return f.IntersectsBox(box.Center(), box.HalfExtents(), epsilon)
}
