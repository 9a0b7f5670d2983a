package vm

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func randomMat4(r *Rand) Mat4 {
	var m Mat4
	for i := range m {
		m[i] = r.Range(-10, 10)
	}
	return m
}

// ========== Layout ==========

func TestMat4Layout(t *testing.T) {
	m := Translation(Vec3{1, 2, 3})

	if m[12] != 1 || m[13] != 2 || m[14] != 3 {
		t.Errorf("translation stored at %v, want elements 12..14 = 1 2 3", m)
	}
	if got := m.At(0, 3); got != 1 {
		t.Errorf("At(0, 3) = %v, want 1", got)
	}
	if got := m.Col(3); !got.Equal(Vec4{1, 2, 3, 1}) {
		t.Errorf("Col(3) = %v, want {1 2 3 1}", got)
	}
	if got := m.Row(0); !got.Equal(Vec4{1, 0, 0, 1}) {
		t.Errorf("Row(0) = %v, want {1 0 0 1}", got)
	}
	if got := m.Position(); !got.Equal(Vec3{1, 2, 3}) {
		t.Errorf("Position() = %v, want {1 2 3}", got)
	}

	want := Mat4FromMgl(mgl32.Translate3D(1, 2, 3))
	if !m.Equal(want) {
		t.Errorf("Translation() = %v, mgl32 = %v", m, want)
	}

	m.Set(3, 0, 7)
	if m[3] != 7 {
		t.Errorf("Set(3, 0) wrote %v, want element 3 = 7", m)
	}
}

// ========== Multiplication ==========

func TestMat4IdentityNeutral(t *testing.T) {
	r := NewRand(3)
	ident := Ident()
	for i := 0; i < 200; i++ {
		m := randomMat4(r)
		if got := ident.Mul(m); !got.Equal(m) {
			t.Fatalf("Ident()*M = %v, want %v", got, m)
		}
		if got := m.Mul(ident); !got.Equal(m) {
			t.Fatalf("M*Ident() = %v, want %v", got, m)
		}
	}
}

func TestMat4MulMatchesMathgl(t *testing.T) {
	r := NewRand(4)
	for i := 0; i < 100; i++ {
		a := randomMat4(r)
		b := randomMat4(r)

		want := Mat4FromMgl(a.Mgl().Mul4(b.Mgl()))
		if got := a.Mul(b); !got.ApproxEqual(want, 1e-3) {
			t.Fatalf("Mul() = %v, mgl32 = %v", got, want)
		}

		v := Vec4{r.Range(-1, 1), r.Range(-1, 1), r.Range(-1, 1), 1}
		wantV := Vec4FromMgl(a.Mgl().Mul4x1(v.Mgl()))
		if got := a.MulVec4(v); !got.ApproxEqual(wantV, 1e-4) {
			t.Fatalf("MulVec4() = %v, mgl32 = %v", got, wantV)
		}
	}
}

func TestMat4Transpose(t *testing.T) {
	r := NewRand(8)
	m := randomMat4(r)

	if got := m.Transpose().Transpose(); !got.Equal(m) {
		t.Errorf("Transpose twice = %v, want %v", got, m)
	}
	if got := m.Transpose(); !got.Equal(Mat4FromMgl(m.Mgl().Transpose())) {
		t.Errorf("Transpose() = %v, want mgl32 result", got)
	}
	if got := m.Transpose().At(1, 2); got != m.At(2, 1) {
		t.Errorf("Transpose().At(1, 2) = %v, want %v", got, m.At(2, 1))
	}
}

// ========== Builders ==========

func TestPerspectiveMatchesMathgl(t *testing.T) {
	tests := []struct {
		name                   string
		fov, aspect, near, far float32
	}{
		{"sixty square", Radians(60), 1, 0.1, 100},
		{"forty five wide", Radians(45), 16.0 / 9.0, 0.1, 1000},
		{"ninety", Radians(90), 1.5, 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Perspective(tt.fov, tt.aspect, tt.near, tt.far)
			want := Mat4FromMgl(mgl32.Perspective(tt.fov, tt.aspect, tt.near, tt.far))
			if !got.ApproxEqual(want, 1e-3) {
				t.Errorf("Perspective() = %v, mgl32 = %v", got, want)
			}
		})
	}
}

func TestOrthographicMatchesMathgl(t *testing.T) {
	got := Orthographic(-4, 6, -2, 3, 0.5, 20)
	want := Mat4FromMgl(mgl32.Ortho(-4, 6, -2, 3, 0.5, 20))
	if !got.ApproxEqual(want, 1e-6) {
		t.Errorf("Orthographic() = %v, mgl32 = %v", got, want)
	}
}

func TestLookAtMatchesMathgl(t *testing.T) {
	tests := []struct {
		name            string
		eye, target, up Vec3
	}{
		{"down -Z", Vec3{0, 0, 0}, Vec3{0, 0, -1}, Vec3{0, 1, 0}},
		{"offset", Vec3{3, 4, 13}, Vec3{0, 0, 0}, Vec3{0, 1, 0}},
		{"sideways", Vec3{-2, 1, 5}, Vec3{4, -1, 2}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LookAt(tt.eye, tt.target, tt.up)
			want := Mat4FromMgl(mgl32.LookAtV(tt.eye.Mgl(), tt.target.Mgl(), tt.up.Mgl()))
			if !got.ApproxEqual(want, 1e-3) {
				t.Errorf("LookAt() = %v, mgl32 = %v", got, want)
			}

			model := LookAtModel(tt.eye, tt.target, tt.up)
			if product := got.Mul(model); !product.ApproxEqual(Ident(), 1e-3) {
				t.Errorf("LookAt()*LookAtModel() = %v, want identity", product)
			}
		})
	}
}

func TestRotationMatchesMathgl(t *testing.T) {
	axis := Vec3{1, 0.3, 0.5}
	n := Vec3FromMgl(axis.Mgl().Normalize())

	for _, angle := range []float32{0.7, -1.9, 3} {
		got := Rotation(angle, axis)
		want := Mat4FromMgl(mgl32.HomogRotate3D(angle, n.Mgl()))
		if !got.ApproxEqual(want, 1e-3) {
			t.Errorf("Rotation(%v) = %v, mgl32 = %v", angle, got, want)
		}
	}
}

func TestRotationMatchesQuat(t *testing.T) {
	axis := Vec3{0, 0.6, 0.8}
	angle := float32(0.9)
	v := Vec3{1, 2, 3}

	byMatrix := Rotation(angle, axis).TransformPoint(v)
	byQuat := QuatFromAxisAngle(axis, angle).Rotate(v)
	if !byMatrix.ApproxEqual(byQuat, 1e-3) {
		t.Errorf("Rotation().TransformPoint() = %v, Quat.Rotate() = %v", byMatrix, byQuat)
	}
}

func TestComposePostMultiplies(t *testing.T) {
	position := Vec3{5, 0, 0}
	axis := Vec3{0, 1, 0}

	rotated := Translation(position).Rotate(HalfPi, axis)
	if want := Translation(position).Mul(Rotation(HalfPi, axis)); !rotated.Equal(want) {
		t.Errorf("Rotate() = %v, want %v", rotated, want)
	}

	m := Ident().Translate(position).Scale(Vec3{2, 2, 2})
	if got := m.TransformPoint(Vec3{1, 0, 0}); !got.Equal(Vec3{7, 0, 0}) {
		t.Errorf("Translate().Scale() applied to {1 0 0} = %v, want {7 0 0}", got)
	}

	u := Ident().ScaleUniform(3)
	if got := u.TransformPoint(Vec3{1, 1, 1}); !got.Equal(Vec3{3, 3, 3}) {
		t.Errorf("ScaleUniform(3) applied to {1 1 1} = %v, want {3 3 3}", got)
	}
}

func TestBasisRows(t *testing.T) {
	forward := Vec3{0, 0, 1}
	up := Vec3{0, 1, 0}
	right := Vec3{1, 0, 0}

	if got := Basis(forward, up, right); !got.Equal(Ident()) {
		t.Errorf("Basis(Z, Y, X) = %v, want identity", got)
	}

	m := Basis(Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, -1})
	if got := m.Row(0).Vec3(); !got.Equal(Vec3{0, 0, -1}) {
		t.Errorf("Row(0) = %v, want right {0 0 -1}", got)
	}
	if got := m.Row(2).Vec3(); !got.Equal(Vec3{1, 0, 0}) {
		t.Errorf("Row(2) = %v, want forward {1 0 0}", got)
	}
}
