// Package bands provides the frequency-band curve type shared by all
// acoustic calculations. A curve maps a fixed, ordered set of octave-band
// center frequencies to a real-valued quantity (absorption area,
// attenuation, reverberation time). Curves over different band sets never
// combine: every element-wise operation checks alignment first.
package bands

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrBandMismatch indicates an operation over curves with different band sets.
var ErrBandMismatch = errors.New("frequency band sets do not match")

// Standard octave-band center frequencies in Hz.
var (
	Octave   = []float64{125, 250, 500, 1000, 2000, 4000}
	Extended = []float64{63, 125, 250, 500, 1000, 2000, 4000, 8000}
)

// Curve is an ordered mapping from band center frequencies to values.
// The zero value is an empty curve. Curves are value types; operations
// return new curves and never mutate their receivers.
type Curve struct {
	freqs []float64
	vals  []float64
}

// New builds a curve from parallel frequency and value slices.
func New(freqs, values []float64) (Curve, error) {
	if len(freqs) != len(values) {
		return Curve{}, fmt.Errorf("bands: %d frequencies but %d values", len(freqs), len(values))
	}
	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			return Curve{}, fmt.Errorf("bands: frequencies not strictly increasing at %g Hz", freqs[i])
		}
	}
	c := Curve{
		freqs: make([]float64, len(freqs)),
		vals:  make([]float64, len(values)),
	}
	copy(c.freqs, freqs)
	copy(c.vals, values)
	return c, nil
}

// MustNew is New for statically known band data; it panics on error.
func MustNew(freqs, values []float64) Curve {
	c, err := New(freqs, values)
	if err != nil {
		panic(err)
	}
	return c
}

// Uniform returns a curve holding the same value in every band.
func Uniform(freqs []float64, value float64) Curve {
	vals := make([]float64, len(freqs))
	for i := range vals {
		vals[i] = value
	}
	return MustNew(freqs, vals)
}

// Len returns the number of bands.
func (c Curve) Len() int { return len(c.freqs) }

// Frequencies returns a copy of the band center frequencies.
func (c Curve) Frequencies() []float64 {
	out := make([]float64, len(c.freqs))
	copy(out, c.freqs)
	return out
}

// Values returns a copy of the per-band values.
func (c Curve) Values() []float64 {
	out := make([]float64, len(c.vals))
	copy(out, c.vals)
	return out
}

// Band returns the i-th center frequency and value.
func (c Curve) Band(i int) (freq, value float64) {
	return c.freqs[i], c.vals[i]
}

// Value returns the value at the given center frequency.
func (c Curve) Value(freq float64) (float64, bool) {
	for i, f := range c.freqs {
		if f == freq {
			return c.vals[i], true
		}
	}
	return 0, false
}

// Aligned reports whether both curves share the same band set.
func (c Curve) Aligned(o Curve) bool {
	if len(c.freqs) != len(o.freqs) {
		return false
	}
	for i := range c.freqs {
		if c.freqs[i] != o.freqs[i] {
			return false
		}
	}
	return true
}

// Add returns the element-wise sum of two aligned curves.
func (c Curve) Add(o Curve) (Curve, error) {
	if !c.Aligned(o) {
		return Curve{}, fmt.Errorf("bands: add: %w", ErrBandMismatch)
	}
	out := c.clone()
	floats.Add(out.vals, o.vals)
	return out, nil
}

// Scale returns the curve with every value multiplied by k.
func (c Curve) Scale(k float64) Curve {
	out := c.clone()
	floats.Scale(k, out.vals)
	return out
}

// Map returns a curve with f applied to every band.
func (c Curve) Map(f func(freq, value float64) float64) Curve {
	out := c.clone()
	for i := range out.vals {
		out.vals[i] = f(out.freqs[i], out.vals[i])
	}
	return out
}

// Mean returns the arithmetic mean of the values across all bands.
// NaN-valued bands (used by some standards to mask unspecified limits)
// are excluded.
func (c Curve) Mean() float64 {
	var sum float64
	var n int
	for _, v := range c.vals {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Max returns the largest non-NaN value across bands.
func (c Curve) Max() float64 {
	max := math.Inf(-1)
	for _, v := range c.vals {
		if !math.IsNaN(v) && v > max {
			max = v
		}
	}
	return max
}

func (c Curve) clone() Curve {
	out := Curve{
		freqs: make([]float64, len(c.freqs)),
		vals:  make([]float64, len(c.vals)),
	}
	copy(out.freqs, c.freqs)
	copy(out.vals, c.vals)
	return out
}
