package absorption

import (
	"math"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

// SpeedOfSound is the default speed of sound in air [m/s].
const SpeedOfSound = 343.0

// EquivalentArea converts a measured reverberation time into the
// equivalent absorption area of the room per ISO 354:
//
//	A = 55.3·V / (c·T60) − 4·m·V
//
// attenuation may be the zero curve when air absorption is negligible.
func EquivalentArea(volume float64, t60 bands.Curve, attenuation bands.Curve, speedOfSound float64) (bands.Curve, error) {
	if speedOfSound <= 0 {
		speedOfSound = SpeedOfSound
	}
	area := t60.Map(func(_, t float64) float64 {
		return 55.3 * volume / (speedOfSound * t)
	})
	return area.Add(attenuation.Scale(-4 * volume))
}

// SpecimenCoefficient derives the absorption coefficient of a test
// specimen from reverberation-room measurements per ISO 354:
// the difference between the room absorption with and without the
// specimen, divided by the specimen area.
func SpecimenCoefficient(sample, reference bands.Curve, specimenArea float64) (bands.Curve, error) {
	diff, err := sample.Add(reference.Scale(-1))
	if err != nil {
		return bands.Curve{}, &ValidationError{
			Reason: "sample and reference absorption use different band sets",
			Err:    err,
		}
	}
	if specimenArea <= 0 {
		return bands.Curve{}, &ValidationError{
			Reason: "specimen area must be positive",
		}
	}
	return diff.Scale(1 / specimenArea), nil
}

// SpecimenCoefficientStd propagates the measurement standard deviations
// of the two room absorptions into the specimen coefficient.
func SpecimenCoefficientStd(sampleStd, referenceStd bands.Curve, specimenArea float64) (bands.Curve, error) {
	if !sampleStd.Aligned(referenceStd) {
		return bands.Curve{}, &ValidationError{
			Reason: "sample and reference deviations use different band sets",
			Err:    bands.ErrBandMismatch,
		}
	}
	if specimenArea <= 0 {
		return bands.Curve{}, &ValidationError{
			Reason: "specimen area must be positive",
		}
	}
	refVals := referenceStd.Values()
	i := 0
	out := sampleStd.Map(func(_, s float64) float64 {
		v := math.Sqrt(s*s+refVals[i]*refVals[i]) / specimenArea
		i++
		return v
	})
	return out, nil
}
