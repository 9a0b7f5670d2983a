package vm

import "github.com/go-gl/mathgl/mgl32"

// Conversions to and from mgl32, whose renderers and GL bindings consume the
// same column-major layout.

func (a Vec2) Mgl() mgl32.Vec2 {
	return mgl32.Vec2{a.X, a.Y}
}

func Vec2FromMgl(v mgl32.Vec2) Vec2 {
	return Vec2{v[0], v[1]}
}

func (a Vec3) Mgl() mgl32.Vec3 {
	return mgl32.Vec3{a.X, a.Y, a.Z}
}

func Vec3FromMgl(v mgl32.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

func (a Vec4) Mgl() mgl32.Vec4 {
	return mgl32.Vec4{a.X, a.Y, a.Z, a.W}
}

func Vec4FromMgl(v mgl32.Vec4) Vec4 {
	return Vec4{v[0], v[1], v[2], v[3]}
}

func (q Quat) Mgl() mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

func QuatFromMgl(q mgl32.Quat) Quat {
	return Quat{q.V[0], q.V[1], q.V[2], q.W}
}

func (m Mat4) Mgl() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

func Mat4FromMgl(m mgl32.Mat4) Mat4 {
	return Mat4(m)
}
