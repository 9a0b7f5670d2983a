package vm

type Vec3 struct {
	X, Y, Z float32
}

var (
	Vec3Zero = Vec3{}
	Vec3One  = Vec3{1, 1, 1}
)

func (a Vec3) Data() [3]float32 {
	return [3]float32{a.X, a.Y, a.Z}
}

// Equal compares components exactly; use ApproxEqual for computed values.
func (a Vec3) Equal(b Vec3) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z
}

func (a Vec3) ApproxEqual(b Vec3, epsilon float32) bool {
	return Abs(a.X-b.X) <= epsilon && Abs(a.Y-b.Y) <= epsilon && Abs(a.Z-b.Z) <= epsilon
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3) AddScalar(b float32) Vec3 {
	return Vec3{a.X + b, a.Y + b, a.Z + b}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vec3) SubScalar(b float32) Vec3 {
	return Vec3{a.X - b, a.Y - b, a.Z - b}
}

func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

func (a Vec3) MulScalar(b float32) Vec3 {
	return Vec3{a.X * b, a.Y * b, a.Z * b}
}

func (a Vec3) Div(b Vec3) Vec3 {
	return Vec3{a.X / b.X, a.Y / b.Y, a.Z / b.Z}
}

func (a Vec3) DivScalar(b float32) Vec3 {
	return Vec3{a.X / b, a.Y / b, a.Z / b}
}

func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

func (a Vec3) Dot(b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns a x b. It is anti-symmetric: a.Cross(b) == b.Cross(a).Negate().
// The float32 conversions keep the compiler from fusing into FMA, which would
// break exact anti-symmetry on arm64.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		float32(a.Y*b.Z) - float32(a.Z*b.Y),
		float32(a.Z*b.X) - float32(a.X*b.Z),
		float32(a.X*b.Y) - float32(a.Y*b.X),
	}
}

func (a Vec3) LengthSquared() float32 {
	return a.Dot(a)
}

func (a Vec3) Length() float32 {
	d := a.Dot(a)
	if d == 0 {
		return 0
	}
	return d * InvSqrt(d)
}

// Normalize scales a to unit length. a must not be the zero vector, whose
// result is meaningless (it currently comes back as zero). TryNormalize is the
// checked variant.
func (a Vec3) Normalize() Vec3 {
	return a.MulScalar(InvSqrt(a.Dot(a)))
}

// TryNormalize reports false instead of producing Inf/NaN for zero-length input.
func (a Vec3) TryNormalize() (Vec3, bool) {
	d := a.Dot(a)
	if d == 0 || d != d {
		return Vec3{}, false
	}
	return a.MulScalar(InvSqrt(d)), true
}

func (a Vec3) Lerp(b Vec3, t float32) Vec3 {
	return Vec3{
		(b.X-a.X)*t + a.X,
		(b.Y-a.Y)*t + a.Y,
		(b.Z-a.Z)*t + a.Z,
	}
}

// ManhattanDistance sums the axis distances to end, expressed in multiples of
// unit. A zero unit counts as 1.
func (a Vec3) ManhattanDistance(end Vec3, unit float32) float32 {
	if unit == 0 {
		unit = 1
	}
	return (Abs(a.X-end.X) + Abs(a.Y-end.Y) + Abs(a.Z-end.Z)) / unit
}

func (a Vec3) Vec4(w float32) Vec4 {
	return Vec4{a.X, a.Y, a.Z, w}
}
