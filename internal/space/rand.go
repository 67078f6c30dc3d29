package space

import (
	"math/rand"

	"github.com/paulmach/orb"
)

// Uniform draws from [min, max). A zero-width range always returns min.
func Uniform(r *rand.Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// UniformPoint samples a point uniformly over the bound.
func UniformPoint(r *rand.Rand, b orb.Bound) orb.Point {
	return orb.Point{
		Uniform(r, b.Min[0], b.Max[0]),
		Uniform(r, b.Min[1], b.Max[1]),
	}
}
