package vm

// Quat is a rotation quaternion with vector part (X, Y, Z) and scalar part W.
// Sums and differences may leave the unit sphere; normalize before rotating.
type Quat struct {
	X, Y, Z, W float32
}

func QuatIdent() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatFromAxisAngle builds the rotation of angle radians about axis.
// axis must be unit length.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle * 0.5
	s := Sin(halfAngle)

	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: Cos(halfAngle),
	}
}

func (q Quat) Data() [4]float32 {
	return [4]float32{q.X, q.Y, q.Z, q.W}
}

func (q Quat) Equal(b Quat) bool {
	return q.X == b.X && q.Y == b.Y && q.Z == b.Z && q.W == b.W
}

func (q Quat) ApproxEqual(b Quat, epsilon float32) bool {
	return Abs(q.X-b.X) <= epsilon && Abs(q.Y-b.Y) <= epsilon &&
		Abs(q.Z-b.Z) <= epsilon && Abs(q.W-b.W) <= epsilon
}

func (q Quat) Dot(b Quat) float32 {
	return q.X*b.X + q.Y*b.Y + q.Z*b.Z + q.W*b.W
}

func (q Quat) Length() float32 {
	d := q.Dot(q)
	if d == 0 {
		return 0
	}
	return d * InvSqrt(d)
}

// Normalize returns q scaled to unit norm. q must not be zero.
func (q Quat) Normalize() Quat {
	return q.MulScalar(InvSqrt(q.Dot(q)))
}

func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

func (q Quat) Add(b Quat) Quat {
	return Quat{q.X + b.X, q.Y + b.Y, q.Z + b.Z, q.W + b.W}
}

func (q Quat) Sub(b Quat) Quat {
	return Quat{q.X - b.X, q.Y - b.Y, q.Z - b.Z, q.W - b.W}
}

func (q Quat) MulScalar(b float32) Quat {
	return Quat{q.X * b, q.Y * b, q.Z * b, q.W * b}
}

// Mul is the Hamilton product q*b. Applied to a vector, q*b rotates by b first
// and then by q.
func (q Quat) Mul(b Quat) Quat {
	return Quat{
		X: q.X*b.W + q.W*b.X + q.Y*b.Z - q.Z*b.Y,
		Y: q.Y*b.W + q.W*b.Y + q.Z*b.X - q.X*b.Z,
		Z: q.Z*b.W + q.W*b.Z + q.X*b.Y - q.Y*b.X,
		W: q.W*b.W - q.X*b.X - q.Y*b.Y - q.Z*b.Z,
	}
}

// MulVec3 is the Hamilton product of q with the pure quaternion (v, 0).
func (q Quat) MulVec3(v Vec3) Quat {
	return Quat{
		X: q.W*v.X + q.Y*v.Z - q.Z*v.Y,
		Y: q.W*v.Y + q.Z*v.X - q.X*v.Z,
		Z: q.W*v.Z + q.X*v.Y - q.Y*v.X,
		W: -q.X*v.X - q.Y*v.Y - q.Z*v.Z,
	}
}

// Rotate applies q to v as q * (v, 0) * conj(q).
func (q Quat) Rotate(v Vec3) Vec3 {
	w := q.MulVec3(v).Mul(q.Conjugate())
	return Vec3{w.X, w.Y, w.Z}
}

// Mat4 converts a unit quaternion to a rotation matrix. The right, up and forward
// basis rows are only orthonormal when q is.
func (q Quat) Mat4() Mat4 {
	forward := Vec3{
		2 * (q.X*q.Z - q.W*q.Y),
		2 * (q.Y*q.Z + q.W*q.X),
		1 - 2*(q.X*q.X+q.Y*q.Y),
	}
	up := Vec3{
		2 * (q.X*q.Y + q.W*q.Z),
		1 - 2*(q.X*q.X+q.Z*q.Z),
		2 * (q.Y*q.Z - q.W*q.X),
	}
	right := Vec3{
		1 - 2*(q.Y*q.Y+q.Z*q.Z),
		2 * (q.X*q.Y - q.W*q.Z),
		2 * (q.X*q.Z + q.W*q.Y),
	}

	return Basis(forward, up, right)
}

func (q Quat) Forward() Vec3 { return q.Rotate(Vec3{0, 0, 1}) }
func (q Quat) Back() Vec3    { return q.Rotate(Vec3{0, 0, -1}) }
func (q Quat) Up() Vec3      { return q.Rotate(Vec3{0, 1, 0}) }
func (q Quat) Down() Vec3    { return q.Rotate(Vec3{0, -1, 0}) }
func (q Quat) Right() Vec3   { return q.Rotate(Vec3{1, 0, 0}) }
func (q Quat) Left() Vec3    { return q.Rotate(Vec3{-1, 0, 0}) }
