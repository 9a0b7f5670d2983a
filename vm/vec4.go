package vm

type Vec4 struct {
	X, Y, Z, W float32
}

var (
	Vec4Zero = Vec4{}
	Vec4One  = Vec4{1, 1, 1, 1}
)

func (a Vec4) Data() [4]float32 {
	return [4]float32{a.X, a.Y, a.Z, a.W}
}

func (a Vec4) Vec3() Vec3 {
	return Vec3{a.X, a.Y, a.Z}
}

func (a Vec4) Equal(b Vec4) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z && a.W == b.W
}

func (a Vec4) ApproxEqual(b Vec4, epsilon float32) bool {
	return Abs(a.X-b.X) <= epsilon && Abs(a.Y-b.Y) <= epsilon &&
		Abs(a.Z-b.Z) <= epsilon && Abs(a.W-b.W) <= epsilon
}

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

func (a Vec4) AddScalar(b float32) Vec4 {
	return Vec4{a.X + b, a.Y + b, a.Z + b, a.W + b}
}

func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

func (a Vec4) SubScalar(b float32) Vec4 {
	return Vec4{a.X - b, a.Y - b, a.Z - b, a.W - b}
}

func (a Vec4) Mul(b Vec4) Vec4 {
	return Vec4{a.X * b.X, a.Y * b.Y, a.Z * b.Z, a.W * b.W}
}

func (a Vec4) MulScalar(b float32) Vec4 {
	return Vec4{a.X * b, a.Y * b, a.Z * b, a.W * b}
}

func (a Vec4) Div(b Vec4) Vec4 {
	return Vec4{a.X / b.X, a.Y / b.Y, a.Z / b.Z, a.W / b.W}
}

func (a Vec4) DivScalar(b float32) Vec4 {
	return Vec4{a.X / b, a.Y / b, a.Z / b, a.W / b}
}

func (a Vec4) Dot(b Vec4) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}
