package vm

// Mat4 is a 4x4 matrix stored column-major: element (row, col) lives at
// col*4+row, the same layout as OpenGL and mgl32.Mat4. Vectors are columns
// (v' = M*v) and the translation sits in elements 12, 13 and 14.
type Mat4 [16]float32

func at(row, col int) int {
	return col*4 + row
}

func Ident() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func (m Mat4) At(row, col int) float32 {
	return m[at(row, col)]
}

func (m *Mat4) Set(row, col int, value float32) {
	m[at(row, col)] = value
}

// Col returns column col as a vector.
func (m Mat4) Col(col int) Vec4 {
	return Vec4{m[at(0, col)], m[at(1, col)], m[at(2, col)], m[at(3, col)]}
}

// Row returns row row as a vector.
func (m Mat4) Row(row int) Vec4 {
	return Vec4{m[at(row, 0)], m[at(row, 1)], m[at(row, 2)], m[at(row, 3)]}
}

// Equal compares all 16 elements exactly.
func (m Mat4) Equal(b Mat4) bool {
	return m == b
}

func (m Mat4) ApproxEqual(b Mat4, epsilon float32) bool {
	for i := range m {
		if Abs(m[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

// Mul returns m*b, so b is applied to a vector before m.
func (m Mat4) Mul(b Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			result[at(i, j)] = m[at(i, 0)]*b[at(0, j)] +
				m[at(i, 1)]*b[at(1, j)] +
				m[at(i, 2)]*b[at(2, j)] +
				m[at(i, 3)]*b[at(3, j)]
		}
	}
	return result
}

func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[at(0, 0)]*v.X + m[at(0, 1)]*v.Y + m[at(0, 2)]*v.Z + m[at(0, 3)]*v.W,
		m[at(1, 0)]*v.X + m[at(1, 1)]*v.Y + m[at(1, 2)]*v.Z + m[at(1, 3)]*v.W,
		m[at(2, 0)]*v.X + m[at(2, 1)]*v.Y + m[at(2, 2)]*v.Z + m[at(2, 3)]*v.W,
		m[at(3, 0)]*v.X + m[at(3, 1)]*v.Y + m[at(3, 2)]*v.Z + m[at(3, 3)]*v.W,
	}
}

// TransformPoint applies m to p with w = 1 and drops the resulting w.
// No perspective divide is performed.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return m.MulVec4(p.Vec4(1)).Vec3()
}

func (m Mat4) Transpose() Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			result[at(i, j)] = m[at(j, i)]
		}
	}
	return result
}

// Position returns the translation stored in the last column.
func (m Mat4) Position() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Perspective builds a right-handed OpenGL projection with clip-space z in
// [-1, 1]. fov is the vertical field of view in radians and must lie strictly
// between 0 and Pi.
func Perspective(fov, aspect, near, far float32) Mat4 {
	f := 1 / Tan(fov*0.5)
	fn := 1 / (near - far)

	var result Mat4
	result[at(0, 0)] = f / aspect
	result[at(1, 1)] = f
	result[at(2, 2)] = (near + far) * fn
	result[at(2, 3)] = 2 * near * far * fn
	result[at(3, 2)] = -1

	return result
}

func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	width := right - left
	height := top - bottom
	depth := far - near

	var result Mat4
	result[at(0, 0)] = 2 / width
	result[at(0, 3)] = -(right + left) / width
	result[at(1, 1)] = 2 / height
	result[at(1, 3)] = -(top + bottom) / height
	result[at(2, 2)] = -2 / depth
	result[at(2, 3)] = -(far + near) / depth
	result[at(3, 3)] = 1

	return result
}

// Basis builds a rotation whose rows are right, up and forward.
func Basis(forward, up, right Vec3) Mat4 {
	var result Mat4

	result[at(0, 0)] = right.X
	result[at(0, 1)] = right.Y
	result[at(0, 2)] = right.Z

	result[at(1, 0)] = up.X
	result[at(1, 1)] = up.Y
	result[at(1, 2)] = up.Z

	result[at(2, 0)] = forward.X
	result[at(2, 1)] = forward.Y
	result[at(2, 2)] = forward.Z

	result[at(3, 3)] = 1

	return result
}

func Translation(v Vec3) Mat4 {
	result := Ident()
	result[at(0, 3)] = v.X
	result[at(1, 3)] = v.Y
	result[at(2, 3)] = v.Z
	return result
}

func Scaling(v Vec3) Mat4 {
	result := Ident()
	result[at(0, 0)] = v.X
	result[at(1, 1)] = v.Y
	result[at(2, 2)] = v.Z
	return result
}

func UniformScaling(factor float32) Mat4 {
	return Scaling(Vec3{factor, factor, factor})
}

// Rotation builds the Rodrigues rotation of angle radians about axis.
// axis is normalized here and must not be zero.
func Rotation(angle float32, axis Vec3) Mat4 {
	c := Cos(angle)
	s := Sin(angle)

	n := axis.Normalize()
	v := n.MulScalar(1 - c)
	vs := n.MulScalar(s)

	var rot Mat4

	a := n.MulScalar(v.X)
	rot[at(0, 0)] = a.X + c
	rot[at(1, 0)] = a.Y + vs.Z
	rot[at(2, 0)] = a.Z - vs.Y

	b := n.MulScalar(v.Y)
	rot[at(0, 1)] = b.X - vs.Z
	rot[at(1, 1)] = b.Y + c
	rot[at(2, 1)] = b.Z + vs.X

	f := n.MulScalar(v.Z)
	rot[at(0, 2)] = f.X + vs.Y
	rot[at(1, 2)] = f.Y - vs.X
	rot[at(2, 2)] = f.Z + c

	rot[at(3, 3)] = 1

	return rot
}

// Translate post-multiplies a translation: m * Translation(v).
func (m Mat4) Translate(v Vec3) Mat4 {
	return m.Mul(Translation(v))
}

// Scale post-multiplies a scaling: m * Scaling(v).
func (m Mat4) Scale(v Vec3) Mat4 {
	return m.Mul(Scaling(v))
}

func (m Mat4) ScaleUniform(factor float32) Mat4 {
	return m.Mul(UniformScaling(factor))
}

// Rotate post-multiplies a rotation about axis: m * Rotation(angle, axis).
func (m Mat4) Rotate(angle float32, axis Vec3) Mat4 {
	return m.Mul(Rotation(angle, axis))
}

// LookAt builds a view matrix for a camera at eye facing target.
// up must not be parallel to target-eye; the basis degenerates otherwise.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	var result Mat4
	result[at(0, 0)] = s.X
	result[at(0, 1)] = s.Y
	result[at(0, 2)] = s.Z
	result[at(0, 3)] = -s.Dot(eye)
	result[at(1, 0)] = u.X
	result[at(1, 1)] = u.Y
	result[at(1, 2)] = u.Z
	result[at(1, 3)] = -u.Dot(eye)
	result[at(2, 0)] = -f.X
	result[at(2, 1)] = -f.Y
	result[at(2, 2)] = -f.Z
	result[at(2, 3)] = f.Dot(eye)
	result[at(3, 3)] = 1

	return result
}

// LookAtModel places an object at position with its -Z axis facing target.
// It is the inverse of LookAt(position, target, up).
func LookAtModel(position, target, up Vec3) Mat4 {
	f := target.Sub(position).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	var result Mat4
	result[at(0, 0)] = s.X
	result[at(1, 0)] = s.Y
	result[at(2, 0)] = s.Z
	result[at(0, 1)] = u.X
	result[at(1, 1)] = u.Y
	result[at(2, 1)] = u.Z
	result[at(0, 2)] = -f.X
	result[at(1, 2)] = -f.Y
	result[at(2, 2)] = -f.Z
	result[at(0, 3)] = position.X
	result[at(1, 3)] = position.Y
	result[at(2, 3)] = position.Z
	result[at(3, 3)] = 1

	return result
}
