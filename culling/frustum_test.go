package culling

import (
	"testing"

	"github.com/akmonengine/speg/vm"
)

// testFrustum looks down -Z from the origin with a 60 degree square perspective.
func testFrustum() Frustum {
	projection := vm.Perspective(vm.Radians(60), 1, 0.1, 100)
	view := vm.LookAt(vm.Vec3{}, vm.Vec3{Z: -1}, vm.Vec3{Y: 1})
	return ExtractPlanes(projection.Mul(view))
}

// ========== Extraction ==========

func TestExtractPlanesNormalized(t *testing.T) {
	f := testFrustum()

	for i, p := range f.Planes {
		if l := p.Normal.Length(); vm.Abs(l-1) > 1e-4 {
			t.Errorf("plane %d normal length = %v, want 1", i, l)
		}
	}
}

func TestExtractPlanesOrientation(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name  string
		plane int
		point vm.Vec3
		want  float32
	}{
		{"near plane distance", Near, vm.Vec3{Z: -1}, 0.9},
		{"far plane distance", Far, vm.Vec3{Z: -1}, 99},
		{"near plane behind", Near, vm.Vec3{Z: 1}, -1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Planes[tt.plane].SignedDistance(tt.point)
			if vm.Abs(got-tt.want) > 1e-2 {
				t.Errorf("SignedDistance(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}

	if n := f.Planes[Left].Normal; n.X <= 0 {
		t.Errorf("left plane normal = %v, want it to point towards +X", n)
	}
	if n := f.Planes[Top].Normal; n.Y >= 0 {
		t.Errorf("top plane normal = %v, want it to point towards -Y", n)
	}
}

func TestExtractPlanesDegenerateMatrix(t *testing.T) {
	var zero vm.Mat4
	f := ExtractPlanes(zero)

	for i, p := range f.Planes {
		if !p.Normal.Equal(vm.Vec3{}) || p.Distance != 0 {
			t.Errorf("plane %d = %v, want the zero plane", i, p)
		}
	}
}

// ========== Points ==========

func TestContainsPoint(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name  string
		point vm.Vec3
		want  bool
	}{
		{"in front", vm.Vec3{Z: -10}, true},
		{"behind camera", vm.Vec3{Z: 10}, false},
		{"beyond far", vm.Vec3{Z: -200}, false},
		{"before near", vm.Vec3{Z: -0.05}, false},
		{"far left", vm.Vec3{X: -100, Z: -10}, false},
		{"far right", vm.Vec3{X: 100, Z: -10}, false},
		{"above", vm.Vec3{Y: 100, Z: -10}, false},
		{"inside off axis", vm.Vec3{X: 2, Y: -2, Z: -10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ContainsPoint(tt.point); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestContainsPointOrthographic(t *testing.T) {
	f := ExtractPlanes(vm.Orthographic(-1, 1, -1, 1, 0.1, 10))

	if !f.ContainsPoint(vm.Vec3{X: 0.5, Y: 0.5, Z: -5}) {
		t.Error("ContainsPoint({0.5 0.5 -5}) = false, want true")
	}
	if f.ContainsPoint(vm.Vec3{X: 2, Z: -5}) {
		t.Error("ContainsPoint({2 0 -5}) = true, want false")
	}
}

// ========== Boxes ==========

func TestIntersectsBox(t *testing.T) {
	f := testFrustum()
	unit := vm.Vec3{X: 0.5, Y: 0.5, Z: 0.5}

	tests := []struct {
		name    string
		center  vm.Vec3
		half    vm.Vec3
		epsilon float32
		want    bool
	}{
		{"unit cube at origin", vm.Vec3{}, unit, 1e-3, true},
		{"unit cube far outside", vm.Vec3{X: 1000}, unit, 1e-3, false},
		{"unit cube in view", vm.Vec3{Z: -10}, unit, 0, true},
		{"unit cube behind camera", vm.Vec3{Z: 10}, unit, 0, false},
		{"straddling left plane", vm.Vec3{X: -5.9, Z: -10}, unit, 0, true},
		{"just outside left plane", vm.Vec3{X: -7, Z: -10}, unit, 0, false},
		{"epsilon pulls it in", vm.Vec3{X: -7, Z: -10}, unit, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IntersectsBox(tt.center, tt.half, tt.epsilon); got != tt.want {
				t.Errorf("IntersectsBox(%v, %v, %v) = %v, want %v", tt.center, tt.half, tt.epsilon, got, tt.want)
			}

			box := AABBFromCenter(tt.center, tt.half)
			if got := f.IntersectsAABB(box, tt.epsilon); got != tt.want {
				t.Errorf("IntersectsAABB(%v, %v) = %v, want %v", box, tt.epsilon, got, tt.want)
			}
		})
	}
}

func TestIntersectsBoxContainsCenter(t *testing.T) {
	f := testFrustum()
	r := vm.NewRand(17)

	for i := 0; i < 500; i++ {
		center := vm.Vec3{X: r.Range(-20, 20), Y: r.Range(-20, 20), Z: r.Range(-50, 5)}
		if !f.ContainsPoint(center) {
			continue
		}
		if !f.IntersectsBox(center, vm.Vec3{X: 0.1, Y: 0.1, Z: 0.1}, 0) {
			t.Fatalf("box around contained point %v rejected", center)
		}
	}
}
