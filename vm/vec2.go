package vm

type Vec2 struct {
	X, Y float32
}

var (
	Vec2Zero = Vec2{}
	Vec2One  = Vec2{1, 1}
)

func (a Vec2) Data() [2]float32 {
	return [2]float32{a.X, a.Y}
}

func (a Vec2) Equal(b Vec2) bool {
	return a.X == b.X && a.Y == b.Y
}

func (a Vec2) ApproxEqual(b Vec2, epsilon float32) bool {
	return Abs(a.X-b.X) <= epsilon && Abs(a.Y-b.Y) <= epsilon
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func (a Vec2) AddScalar(b float32) Vec2 {
	return Vec2{a.X + b, a.Y + b}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func (a Vec2) SubScalar(b float32) Vec2 {
	return Vec2{a.X - b, a.Y - b}
}

func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

func (a Vec2) MulScalar(b float32) Vec2 {
	return Vec2{a.X * b, a.Y * b}
}

func (a Vec2) Div(b Vec2) Vec2 {
	return Vec2{a.X / b.X, a.Y / b.Y}
}

func (a Vec2) DivScalar(b float32) Vec2 {
	return Vec2{a.X / b, a.Y / b}
}

func (a Vec2) Dot(b Vec2) float32 {
	return a.X*b.X + a.Y*b.Y
}

// ManhattanDistance sums the axis distances to end, expressed in multiples of
// unit. A zero unit counts as 1.
func (a Vec2) ManhattanDistance(end Vec2, unit float32) float32 {
	if unit == 0 {
		unit = 1
	}
	return (Abs(a.X-end.X) + Abs(a.Y-end.Y)) / unit
}
