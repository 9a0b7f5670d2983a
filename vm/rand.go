package vm

import "math"

// LCG parameters (Numerical Recipes), modulus 2^32 through uint32 overflow.
const (
	lcgA uint32 = 1664525
	lcgC uint32 = 1013904223
	lcgM        = 4294967296.0
)

// Rand is a linear congruential generator. Each caller owns its state, so two
// generators seeded alike always produce the same sequence.
type Rand struct {
	seed uint32
}

func NewRand(seed uint32) *Rand {
	return &Rand{seed: seed}
}

func (r *Rand) Seed(seed uint32) {
	r.seed = seed
}

func (r *Rand) State() uint32 {
	return r.seed
}

func (r *Rand) Uint32() uint32 {
	r.seed = lcgA*r.seed + lcgC
	return r.seed
}

// Float32 returns a value in [0, 1).
func (r *Rand) Float32() float32 {
	f := float32(float64(r.Uint32()) / lcgM)
	if f >= 1 {
		// rounding to float32 can land on 1 for seeds near 2^32
		return math.Nextafter32(1, 0)
	}
	return f
}

// Range returns a value in [min, max).
func (r *Rand) Range(min, max float32) float32 {
	return min + (max-min)*r.Float32()
}
