// Package noise generates the Interleaved Gradient Noise fields used for
// dithering. IGN is a stateless closed-form pattern (Jimenez, "Next
// Generation Post Processing in Call of Duty: Advanced Warfare") that
// decorrelates quantization error between neighboring pixels without a
// lookup table or a persistent RNG.
package noise

import (
	"math"
	"math/rand"
)

// RandomSeed is the sentinel seed value that makes Generate substitute a
// random effective seed in [0,1000).
const RandomSeed = -1

// Field is a width×height grid of noise samples in [0,1), row-major.
type Field struct {
	Width  int
	Height int
	V      []float64
}

// At returns the sample at (x, y).
func (f *Field) At(x, y int) float64 {
	return f.V[y*f.Width+x]
}

// Generate produces an IGN field. scale stretches the pattern (1 = per-pixel,
// higher = coarser) and seed offsets the sample coordinates so repeated
// conversions can use distinct patterns.
//
// Generate is a pure function of its arguments except when seed is
// RandomSeed, in which case one random effective seed is drawn; this is the
// only nondeterministic point in the pipeline.
func Generate(width, height, scale, seed int) *Field {
	if seed == RandomSeed {
		seed = rand.Intn(1000)
	}
	f := &Field{
		Width:  width,
		Height: height,
		V:      make([]float64, width*height),
	}
	s := float64(scale)
	i := 0
	for y := 0; y < height; y++ {
		ys := float64(y+seed) / s
		for x := 0; x < width; x++ {
			xs := float64(x+seed) / s
			f.V[i] = ign(xs, ys)
			i++
		}
	}
	return f
}

// ign evaluates the IGN formula: frac(52.9829189 * frac(0.06711056*x + 0.00583715*y)).
func ign(x, y float64) float64 {
	v := 0.06711056*x + 0.00583715*y
	v = 52.9829189 * (v - math.Floor(v))
	return v - math.Floor(v)
}
