// Package reverb implements the classical statistical reverberation-time
// models: Sabine, Eyring, Millington (Eyring with air absorption) and the
// composite selection rule used by the ČSN 73 0525 family of standards.
//
// All models share one contract: given the total equivalent absorption
// area per band, the room volume and its bounding surface area, produce
// the predicted T60 per band or fail with a DomainError naming the band
// that violated the formula's mathematical domain. A model never returns
// NaN or infinity inside a curve.
package reverb

import (
	"errors"
	"fmt"
	"math"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

// DefaultConstant is the classical Sabine constant [s/m].
const DefaultConstant = 0.163

// DomainError reports a violated mathematical domain in a reverberation
// formula, carrying the offending band and the computed intermediate so
// the designer can see which input to correct.
type DomainError struct {
	Model    string
	Band     float64 // center frequency in Hz, 0 when not band-specific
	Quantity string  // name of the offending intermediate
	Value    float64
	Reason   string
}

func (e *DomainError) Error() string {
	if e.Band != 0 {
		return fmt.Sprintf("reverb: %s at %g Hz: %s (%s = %g)",
			e.Model, e.Band, e.Reason, e.Quantity, e.Value)
	}
	return fmt.Sprintf("reverb: %s: %s (%s = %g)", e.Model, e.Reason, e.Quantity, e.Value)
}

// IsDomain reports whether err is a model domain violation.
func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// Model predicts a per-band T60 curve from absorption and geometry.
// attenuation is the atmospheric coefficient in m⁻¹; models that do not
// use it ignore it.
type Model interface {
	Name() string
	Predict(absorption bands.Curve, volume, surfaceArea float64, attenuation bands.Curve) (bands.Curve, error)
}

// AlphaMean derives the per-band mean absorption coefficient from the
// total absorption area and the bounding surface area.
func AlphaMean(absorption bands.Curve, surfaceArea float64) bands.Curve {
	return absorption.Scale(1 / surfaceArea)
}

func checkGeometry(model string, volume, surfaceArea float64) error {
	if volume <= 0 {
		return &DomainError{Model: model, Quantity: "volume", Value: volume,
			Reason: "room volume must be positive"}
	}
	if surfaceArea <= 0 {
		return &DomainError{Model: model, Quantity: "surface area", Value: surfaceArea,
			Reason: "total surface area must be positive"}
	}
	return nil
}

// Sabine is the classical T60 = k·V / ΣA model. Valid for any mean
// absorption coefficient, least accurate when absorption is high.
type Sabine struct {
	Constant float64 // zero means DefaultConstant
}

func (s Sabine) Name() string { return "sabine" }

func (s Sabine) Predict(absorption bands.Curve, volume, surfaceArea float64, _ bands.Curve) (bands.Curve, error) {
	k := s.Constant
	if k == 0 {
		k = DefaultConstant
	}
	if err := checkGeometry(s.Name(), volume, surfaceArea); err != nil {
		return bands.Curve{}, err
	}
	for i := range absorption.Len() {
		freq, a := absorption.Band(i)
		if a <= 0 {
			return bands.Curve{}, &DomainError{
				Model: s.Name(), Band: freq, Quantity: "absorption area", Value: a,
				Reason: "total absorption must be positive",
			}
		}
	}
	return absorption.Map(func(_, a float64) float64 {
		return k * volume / a
	}), nil
}

// Eyring is T60 = k·V / (−S·ln(1 − α_mean)). Undefined at α_mean ≥ 1,
// where the decay is instantaneous.
type Eyring struct {
	Constant float64
}

func (e Eyring) Name() string { return "eyring" }

func (e Eyring) Predict(absorption bands.Curve, volume, surfaceArea float64, _ bands.Curve) (bands.Curve, error) {
	k := e.Constant
	if k == 0 {
		k = DefaultConstant
	}
	if err := checkGeometry(e.Name(), volume, surfaceArea); err != nil {
		return bands.Curve{}, err
	}
	alpha := AlphaMean(absorption, surfaceArea)
	out := make([]float64, alpha.Len())
	for i := range alpha.Len() {
		freq, a := alpha.Band(i)
		denom, err := eyringDenominator(e.Name(), freq, a, surfaceArea)
		if err != nil {
			return bands.Curve{}, err
		}
		out[i] = k * volume / denom
	}
	return bands.New(alpha.Frequencies(), out)
}

// eyringDenominator computes −S·ln(1 − α) and rejects the α ≥ 1 and
// α ≤ 0 boundaries.
func eyringDenominator(model string, freq, alpha, surfaceArea float64) (float64, error) {
	if alpha >= 1 {
		return 0, &DomainError{
			Model: model, Band: freq, Quantity: "mean absorption coefficient", Value: alpha,
			Reason: "reverberation time is undefined for a fully absorptive room",
		}
	}
	if alpha <= 0 {
		return 0, &DomainError{
			Model: model, Band: freq, Quantity: "mean absorption coefficient", Value: alpha,
			Reason: "mean absorption coefficient must be positive",
		}
	}
	return -surfaceArea * math.Log(1-alpha), nil
}

// Millington extends Eyring with atmospheric absorption:
// T60 = k·V / (−S·ln(1 − α_mean) + 4·m·V). The air term adds to the
// denominator: dissipation in air always shortens the decay.
type Millington struct {
	Constant float64
}

func (m Millington) Name() string { return "millington" }

func (m Millington) Predict(absorption bands.Curve, volume, surfaceArea float64, attenuation bands.Curve) (bands.Curve, error) {
	k := m.Constant
	if k == 0 {
		k = DefaultConstant
	}
	if err := checkGeometry(m.Name(), volume, surfaceArea); err != nil {
		return bands.Curve{}, err
	}
	alpha := AlphaMean(absorption, surfaceArea)
	if !alpha.Aligned(attenuation) {
		return bands.Curve{}, fmt.Errorf("reverb: %s: attenuation: %w", m.Name(), bands.ErrBandMismatch)
	}
	att := attenuation.Values()
	out := make([]float64, alpha.Len())
	for i := range alpha.Len() {
		freq, a := alpha.Band(i)
		surfTerm, err := eyringDenominator(m.Name(), freq, a, surfaceArea)
		if err != nil {
			return bands.Curve{}, err
		}
		denom := surfTerm + 4*att[i]*volume
		if denom <= 0 {
			return bands.Curve{}, &DomainError{
				Model: m.Name(), Band: freq, Quantity: "denominator", Value: denom,
				Reason: "surface and air absorption terms cancel",
			}
		}
		out[i] = k * volume / denom
	}
	return bands.New(alpha.Frequencies(), out)
}
