package reverb

import (
	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

// Composite implements the standard-mandated model choice: the per-band
// mean absorption coefficient is reduced to its arithmetic mean across
// bands and the first matching rule of an ordered decision table wins:
//
//	mean < 0.2 and V < 2000 m³  -> Sabine
//	mean < 0.8 and V < 2000 m³  -> Eyring
//	otherwise                   -> Millington
//
// Boundaries are half-open upward: a mean of exactly 0.2 selects Eyring,
// a mean of 0.8 or a volume of 2000 m³ selects Millington.
type Composite struct {
	Constant float64
}

const (
	sabineAlphaLimit = 0.2
	eyringAlphaLimit = 0.8
	smallRoomVolume  = 2000 // m³
)

type rule struct {
	match func(alphaMean, volume float64) bool
	model func(constant float64) Model
}

var selectionTable = []rule{
	{
		match: func(a, v float64) bool { return a < sabineAlphaLimit && v < smallRoomVolume },
		model: func(k float64) Model { return Sabine{Constant: k} },
	},
	{
		match: func(a, v float64) bool { return a < eyringAlphaLimit && v < smallRoomVolume },
		model: func(k float64) Model { return Eyring{Constant: k} },
	},
	{
		match: func(a, v float64) bool { return true },
		model: func(k float64) Model { return Millington{Constant: k} },
	},
}

func (c Composite) Name() string { return "composite" }

// Select returns the model the decision table picks for the given
// absorption and geometry, without running it.
func (c Composite) Select(absorption bands.Curve, volume, surfaceArea float64) Model {
	mean := AlphaMean(absorption, surfaceArea).Mean()
	for _, r := range selectionTable {
		if r.match(mean, volume) {
			return r.model(c.Constant)
		}
	}
	// The last rule always matches.
	return Millington{Constant: c.Constant}
}

func (c Composite) Predict(absorption bands.Curve, volume, surfaceArea float64, attenuation bands.Curve) (bands.Curve, error) {
	if err := checkGeometry(c.Name(), volume, surfaceArea); err != nil {
		return bands.Curve{}, err
	}
	return c.Select(absorption, volume, surfaceArea).Predict(absorption, volume, surfaceArea, attenuation)
}

// ForName returns the model registered under the given name, used by
// callers that let the designer pick the formula explicitly.
func ForName(name string, constant float64) (Model, bool) {
	switch name {
	case "sabine":
		return Sabine{Constant: constant}, true
	case "eyring":
		return Eyring{Constant: constant}, true
	case "millington":
		return Millington{Constant: constant}, true
	case "composite", "":
		return Composite{Constant: constant}, true
	}
	return nil, false
}
