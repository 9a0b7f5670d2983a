package actor

import "github.com/akmonengine/speg/vm"

// Plane is the infinite surface Normal·p + Distance = 0. Normal must be unit
// length; the side it points to is above the plane.
type Plane struct {
	Normal   vm.Vec3
	Distance float32
}

// GroundPlane returns a horizontal plane facing +Y at the given height.
func GroundPlane(height float32) Plane {
	return Plane{Normal: vm.Vec3{Y: 1}, Distance: -height}
}

// SignedDistance is positive above the plane.
func (p Plane) SignedDistance(point vm.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// Raycast intersects the ray origin + t*direction with the plane from above.
// It reports a hit for 0 <= t <= maxDistance only; rays parallel to the plane or
// leaving its upper side miss. direction must be unit length for t to be a distance.
func (p Plane) Raycast(origin, direction vm.Vec3, maxDistance float32) (float32, bool) {
	denom := p.Normal.Dot(direction)
	if denom >= 0 {
		return 0, false
	}

	t := -p.SignedDistance(origin) / denom
	if t < 0 || t > maxDistance {
		return 0, false
	}

	return t, true
}
