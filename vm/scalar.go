package vm

import "math"

const (
	Pi     float32 = math.Pi
	TwoPi  float32 = 2 * math.Pi
	HalfPi float32 = math.Pi / 2
)

// lutSize is the number of sine samples over one period. It must stay a power of two.
const lutSize = 256

var sinLUT = [lutSize]float32{
	0.0000, 0.0245, 0.0491, 0.0736, 0.0980, 0.1224, 0.1467, 0.1710,
	0.1951, 0.2191, 0.2430, 0.2667, 0.2903, 0.3137, 0.3369, 0.3599,
	0.3827, 0.4052, 0.4276, 0.4496, 0.4714, 0.4929, 0.5141, 0.5350,
	0.5556, 0.5758, 0.5957, 0.6152, 0.6344, 0.6532, 0.6716, 0.6895,
	0.7071, 0.7242, 0.7409, 0.7572, 0.7730, 0.7883, 0.8032, 0.8176,
	0.8315, 0.8449, 0.8577, 0.8701, 0.8819, 0.8932, 0.9040, 0.9142,
	0.9239, 0.9330, 0.9415, 0.9495, 0.9569, 0.9638, 0.9700, 0.9757,
	0.9808, 0.9853, 0.9892, 0.9925, 0.9952, 0.9973, 0.9988, 0.9997,
	1.0000, 0.9997, 0.9988, 0.9973, 0.9952, 0.9925, 0.9892, 0.9853,
	0.9808, 0.9757, 0.9700, 0.9638, 0.9569, 0.9495, 0.9415, 0.9330,
	0.9239, 0.9142, 0.9040, 0.8932, 0.8819, 0.8701, 0.8577, 0.8449,
	0.8315, 0.8176, 0.8032, 0.7883, 0.7730, 0.7572, 0.7409, 0.7242,
	0.7071, 0.6895, 0.6716, 0.6532, 0.6344, 0.6152, 0.5957, 0.5758,
	0.5556, 0.5350, 0.5141, 0.4929, 0.4714, 0.4496, 0.4276, 0.4052,
	0.3827, 0.3599, 0.3369, 0.3137, 0.2903, 0.2667, 0.2430, 0.2191,
	0.1951, 0.1710, 0.1467, 0.1224, 0.0980, 0.0736, 0.0491, 0.0245,
	0.0000, -0.0245, -0.0491, -0.0736, -0.0980, -0.1224, -0.1467, -0.1710,
	-0.1951, -0.2191, -0.2430, -0.2667, -0.2903, -0.3137, -0.3369, -0.3599,
	-0.3827, -0.4052, -0.4276, -0.4496, -0.4714, -0.4929, -0.5141, -0.5350,
	-0.5556, -0.5758, -0.5957, -0.6152, -0.6344, -0.6532, -0.6716, -0.6895,
	-0.7071, -0.7242, -0.7409, -0.7572, -0.7730, -0.7883, -0.8032, -0.8176,
	-0.8315, -0.8449, -0.8577, -0.8701, -0.8819, -0.8932, -0.9040, -0.9142,
	-0.9239, -0.9330, -0.9415, -0.9495, -0.9569, -0.9638, -0.9700, -0.9757,
	-0.9808, -0.9853, -0.9892, -0.9925, -0.9952, -0.9973, -0.9988, -0.9997,
	-1.0000, -0.9997, -0.9988, -0.9973, -0.9952, -0.9925, -0.9892, -0.9853,
	-0.9808, -0.9757, -0.9700, -0.9638, -0.9569, -0.9495, -0.9415, -0.9330,
	-0.9239, -0.9142, -0.9040, -0.8932, -0.8819, -0.8701, -0.8577, -0.8449,
	-0.8315, -0.8176, -0.8032, -0.7883, -0.7730, -0.7572, -0.7409, -0.7242,
	-0.7071, -0.6895, -0.6716, -0.6532, -0.6344, -0.6152, -0.5957, -0.5758,
	-0.5556, -0.5350, -0.5141, -0.4929, -0.4714, -0.4496, -0.4276, -0.4052,
	-0.3827, -0.3599, -0.3369, -0.3137, -0.2903, -0.2667, -0.2430, -0.2191,
	-0.1951, -0.1710, -0.1467, -0.1224, -0.0980, -0.0736, -0.0491, -0.0245,
}

// FastInvSqrt approximates 1/sqrt(x) with the classic bit trick and a single
// Newton-Raphson step. Relative error stays under 0.18%.
//
// x must be strictly positive; zero, negative and NaN inputs return garbage.
func FastInvSqrt(x float32) float32 {
	const threeHalfs = 1.5

	x2 := x * 0.5
	i := math.Float32bits(x)
	i = 0x5f3759df - (i >> 1)
	y := math.Float32frombits(i)
	y = y * (threeHalfs - (x2 * y * y))

	return y
}

// InvSqrt refines FastInvSqrt with a second Newton-Raphson step, which brings the
// relative error below 1e-5. Same domain as FastInvSqrt.
func InvSqrt(x float32) float32 {
	y := FastInvSqrt(x)
	return y * (1.5 - (x * 0.5 * y * y))
}

// reduceLimit bounds the add/subtract range reduction in Sin. Past it a float32
// step of 2*Pi no longer changes x.
const reduceLimit = 1 << 20

// Sin samples the lookup table with linear interpolation.
// Range reduction loops by 2*Pi, so cost grows with |x|. Non-finite input yields NaN.
func Sin(x float32) float32 {
	if x != x || math.IsInf(float64(x), 0) {
		return float32(math.NaN())
	}
	if x > reduceLimit || x < -reduceLimit {
		x = float32(math.Mod(float64(x), 2*math.Pi))
	}

	for x < 0 {
		x += TwoPi
	}
	for x >= TwoPi {
		x -= TwoPi
	}

	index := x * (lutSize / TwoPi)
	i := int(index)
	frac := index - float32(i)

	i &= lutSize - 1
	i2 := (i + 1) & (lutSize - 1)

	return (1-frac)*sinLUT[i] + frac*sinLUT[i2]
}

func Cos(x float32) float32 {
	return Sin(x + HalfPi)
}

// Tan is Sin/Cos. Where the table gives Cos exactly zero, as at HalfPi, it
// returns ±Inf.
func Tan(x float32) float32 {
	return Sin(x) / Cos(x)
}

func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func Clamp(value, min, max float32) float32 {
	return Max(min, Min(max, value))
}

// Lerp interpolates from a to b; t is not clamped.
func Lerp(a, b, t float32) float32 {
	return (b-a)*t + a
}

// Floor rounds toward negative infinity: truncate, then step down for negative
// fractions. Truncation happens in float64, so magnitudes beyond the int range
// stay exact.
func Floor(x float32) float32 {
	i := math.Trunc(float64(x))
	if x < 0 && float64(x) != i {
		i--
	}
	return float32(i)
}

// Fmod returns the remainder of x/y for a truncated quotient, so the result
// carries the sign of x. It is exact for any finite input. A zero divisor
// returns 0.
func Fmod(x, y float32) float32 {
	if y == 0 {
		return 0
	}
	return float32(math.Mod(float64(x), float64(y)))
}

// Power raises base to an integer exponent by repeated multiplication.
func Power(base float32, exp int) float32 {
	result := float32(1)
	if exp < 0 {
		for i := 0; i < -exp; i++ {
			result /= base
		}
		return result
	}
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

func Radians(degrees float32) float32 {
	return degrees * (Pi / 180)
}

func Degrees(radians float32) float32 {
	return radians * (180 / Pi)
}
