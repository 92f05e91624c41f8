// Package standards holds the room-usage target curves mandated by the
// ČSN 73 0525/0527 family: per-band reverberation-time tolerance limits,
// volume-dependent optimal T60 fits and valid volume ranges, keyed by
// usage category. Two editions are compiled in, the 1998/2005 tables and
// the 2023 revision.
//
// Registries are built once at package init and are read-only; concurrent
// lookups need no coordination.
package standards

import (
	"errors"
	"fmt"
	"math"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

// ErrUnknownCategory indicates a lookup with an unregistered usage
// category name. Matching is exact; there is no fuzzy fallback.
var ErrUnknownCategory = errors.New("standards: unknown room category")

// VolumeRangeError flags a volume outside the range the category's
// optimal-T60 fit was derived for. It is advisory: the fitted value is
// still returned and the caller decides whether to proceed.
type VolumeRangeError struct {
	Category string
	Volume   float64
	Min, Max float64
}

func (e *VolumeRangeError) Error() string {
	return fmt.Sprintf("standards: %q: volume %g m³ outside valid range [%g, %g] m³",
		e.Category, e.Volume, e.Min, e.Max)
}

// RoomType is the immutable target record for one usage category. The
// limit curves are relative: the acceptable T60 envelope for a concrete
// room is the limit multiplied by the optimal T60 at its volume.
type RoomType struct {
	Name       string
	LimitClass string // annex table the limits come from, e.g. "A.4"
	FormulaTag string // optimal-T60 dependency family, e.g. "A1-D"

	// UpperLimit and LowerLimit are per-band multipliers of the optimal
	// T60. NaN marks bands the standard leaves ungoverned.
	UpperLimit bands.Curve
	LowerLimit bands.Curve

	// VolumeMin/VolumeMax bound the validity of the optimal-T60 fit.
	// Both zero means unbounded.
	VolumeMin, VolumeMax float64
}

// Bounded reports whether the category restricts room volume at all.
func (rt *RoomType) Bounded() bool { return rt.VolumeMin != 0 || rt.VolumeMax != 0 }

// Registry is a read-only category-name index over one standard edition.
type Registry struct {
	edition  string
	types    map[string]*RoomType
	formulas map[string]FormulaFunc
}

// Edition identifies the standard revision the registry was built from.
func (r *Registry) Edition() string { return r.edition }

// Categories lists all registered usage category names.
func (r *Registry) Categories() []string {
	out := make([]string, 0, len(r.types))
	for name := range r.types {
		out = append(out, name)
	}
	return out
}

// Lookup returns the target record for an exact category name.
func (r *Registry) Lookup(name string) (*RoomType, error) {
	rt, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return rt, nil
}

// OptimalT60 evaluates the category's volume-dependent optimal
// reverberation time. When the volume falls outside the category's valid
// range the fitted value is still returned together with a
// *VolumeRangeError.
func (r *Registry) OptimalT60(name string, volume float64) (low, high float64, err error) {
	rt, err := r.Lookup(name)
	if err != nil {
		return 0, 0, err
	}
	f, ok := r.formulas[rt.FormulaTag]
	if !ok {
		return 0, 0, fmt.Errorf("standards: %q: no formula registered for tag %q", name, rt.FormulaTag)
	}
	low, high = f(volume)
	if rt.Bounded() && (volume < rt.VolumeMin || volume > rt.VolumeMax) {
		return low, high, &VolumeRangeError{
			Category: name, Volume: volume, Min: rt.VolumeMin, Max: rt.VolumeMax,
		}
	}
	return low, high, nil
}

// BandCompliance is the verdict for one frequency band.
type BandCompliance struct {
	Frequency float64 `json:"frequency"`
	Predicted float64 `json:"predicted"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	// Deviation is zero inside the envelope, otherwise the signed
	// distance in seconds to the violated bound.
	Deviation float64 `json:"deviation"`
	Governed  bool    `json:"governed"`
	Pass      bool    `json:"pass"`
}

// Report is a band-by-band comparison of a predicted T60 curve against a
// category's tolerance envelope at a given room volume.
type Report struct {
	Category   string           `json:"category"`
	OptimalLow float64          `json:"optimal_low"`
	OptimalHigh float64         `json:"optimal_high"`
	Bands      []BandCompliance `json:"bands"`
	Pass       bool             `json:"pass"`
	// VolumeWarning is set when the volume lies outside the category's
	// valid range; the report is still produced.
	VolumeWarning *VolumeRangeError `json:"-"`
}

// CheckCompliance compares the predicted T60 curve against the
// category's envelope: limit multipliers scaled by the optimal T60 for
// the given volume. Bands the standard masks with NaN always pass and
// are flagged as ungoverned.
func (r *Registry) CheckCompliance(predicted bands.Curve, name string, volume float64) (*Report, error) {
	rt, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	low, high, err := r.OptimalT60(name, volume)
	var volWarn *VolumeRangeError
	if err != nil {
		if !errors.As(err, &volWarn) {
			return nil, err
		}
	}
	if !predicted.Aligned(rt.UpperLimit) {
		return nil, fmt.Errorf("standards: %q: predicted curve: %w", name, bands.ErrBandMismatch)
	}

	upper := rt.UpperLimit.Values()
	lower := rt.LowerLimit.Values()

	report := &Report{
		Category:    name,
		OptimalLow:  low,
		OptimalHigh: high,
		Pass:        true,
		VolumeWarning: volWarn,
	}
	for i := range predicted.Len() {
		freq, t := predicted.Band(i)
		bc := BandCompliance{Frequency: freq, Predicted: t, Governed: true, Pass: true}
		if math.IsNaN(upper[i]) || math.IsNaN(lower[i]) {
			bc.Governed = false
			bc.Min, bc.Max = math.NaN(), math.NaN()
			report.Bands = append(report.Bands, bc)
			continue
		}
		bc.Min = lower[i] * low
		bc.Max = upper[i] * high
		switch {
		case t < bc.Min:
			bc.Deviation = t - bc.Min
			bc.Pass = false
		case t > bc.Max:
			bc.Deviation = t - bc.Max
			bc.Pass = false
		}
		if !bc.Pass {
			report.Pass = false
		}
		report.Bands = append(report.Bands, bc)
	}
	return report, nil
}

func newRegistry(edition string, formulas map[string]FormulaFunc, types []*RoomType) *Registry {
	r := &Registry{
		edition:  edition,
		types:    make(map[string]*RoomType, len(types)),
		formulas: formulas,
	}
	for _, rt := range types {
		if _, ok := formulas[rt.FormulaTag]; !ok {
			panic(fmt.Sprintf("standards: %s: category %q references unknown formula %q",
				edition, rt.Name, rt.FormulaTag))
		}
		r.types[rt.Name] = rt
	}
	return r
}
