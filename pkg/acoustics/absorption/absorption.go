// Package absorption aggregates per-band sound absorption contributions
// from room surfaces and free-standing objects into a total equivalent
// absorption area and a mean absorption coefficient.
package absorption

import (
	"errors"
	"fmt"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

// ValidationError describes malformed or inconsistent absorption input.
// It names the offending contribution so a designer can correct the one
// bad entry instead of re-entering the whole room.
type ValidationError struct {
	Contribution string // material id or name of the offending entry
	Reason       string
	Err          error
}

func (e *ValidationError) Error() string {
	if e.Contribution == "" {
		return fmt.Sprintf("absorption: %s", e.Reason)
	}
	return fmt.Sprintf("absorption: %q: %s", e.Contribution, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Surface is an absorptive room surface: per-band coefficients scaled by area.
type Surface struct {
	MaterialID   string
	Name         string
	Area         float64 // m²
	Coefficients bands.Curve
}

// Object is a free-standing absorber (seat, person, panel) counted per
// item; coefficients are absorption area units per item.
type Object struct {
	MaterialID   string
	Name         string
	Count        float64
	Coefficients bands.Curve
}

// Aggregate sums all surface and object contributions into the total
// equivalent absorption area per band and derives the mean absorption
// coefficient by dividing through surfaceArea. surfaceArea is the full
// bounding area of the room, supplied by the caller: it may exceed the
// sum of the listed absorptive surfaces and is never re-derived here.
func Aggregate(surfaces []Surface, objects []Object, surfaceArea float64) (total, alphaMean bands.Curve, err error) {
	if surfaceArea <= 0 {
		return bands.Curve{}, bands.Curve{}, &ValidationError{
			Reason: fmt.Sprintf("total surface area must be positive, got %g m²", surfaceArea),
		}
	}
	if len(surfaces) == 0 && len(objects) == 0 {
		return bands.Curve{}, bands.Curve{}, &ValidationError{
			Reason: "no surfaces or objects to aggregate",
		}
	}

	first := true
	for _, s := range surfaces {
		if s.Area < 0 {
			return bands.Curve{}, bands.Curve{}, &ValidationError{
				Contribution: s.MaterialID,
				Reason:       fmt.Sprintf("negative area %g m²", s.Area),
			}
		}
		if err := checkCoefficients(s.MaterialID, s.Coefficients); err != nil {
			return bands.Curve{}, bands.Curve{}, err
		}
		contrib := s.Coefficients.Scale(s.Area)
		if first {
			total = contrib
			first = false
			continue
		}
		total, err = total.Add(contrib)
		if err != nil {
			return bands.Curve{}, bands.Curve{}, &ValidationError{
				Contribution: s.MaterialID,
				Reason:       "band set differs from previous contributions",
				Err:          err,
			}
		}
	}
	for _, o := range objects {
		if o.Count < 0 {
			return bands.Curve{}, bands.Curve{}, &ValidationError{
				Contribution: o.MaterialID,
				Reason:       fmt.Sprintf("negative count %g", o.Count),
			}
		}
		contrib := o.Coefficients.Scale(o.Count)
		if first {
			total = contrib
			first = false
			continue
		}
		total, err = total.Add(contrib)
		if err != nil {
			return bands.Curve{}, bands.Curve{}, &ValidationError{
				Contribution: o.MaterialID,
				Reason:       "band set differs from previous contributions",
				Err:          err,
			}
		}
	}

	alphaMean = total.Scale(1 / surfaceArea)
	return total, alphaMean, nil
}

func checkCoefficients(id string, c bands.Curve) error {
	for i := range c.Len() {
		freq, v := c.Band(i)
		if v < 0 || v > 1 {
			return &ValidationError{
				Contribution: id,
				Reason:       fmt.Sprintf("coefficient %g at %g Hz outside [0, 1]", v, freq),
			}
		}
	}
	return nil
}

// IsValidation reports whether err is an absorption validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
