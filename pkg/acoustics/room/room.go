// Package room assembles a room design — geometry, climate, absorptive
// surfaces and objects — and drives the reverberation prediction over it.
// Absorption is derived state: it is recomputed from the current surface
// and object lists whenever they change, never stored canonically.
package room

import (
	"fmt"

	"github.com/resona-acoustics/resona/pkg/acoustics/absorption"
	"github.com/resona-acoustics/resona/pkg/acoustics/attenuation"
	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
	"github.com/resona-acoustics/resona/pkg/acoustics/reverb"
	"github.com/resona-acoustics/resona/pkg/materials"
)

// Room is a room design under evaluation.
type Room struct {
	Name        string
	Description string

	Volume      float64 // m³
	Temperature float64 // °C
	Humidity    float64 // % relative
	Pressure    float64 // kPa

	// BoundingArea is the full bounding surface area of the room [m²].
	// When zero, the sum of the listed surface areas is used. The
	// bounding area may exceed that sum when parts of the envelope are
	// acoustically hard and not listed.
	BoundingArea float64

	surfaces []absorption.Surface
	objects  []absorption.Object

	total bands.Curve
	alpha bands.Curve
	fresh bool
}

// New validates geometry and climate and returns an empty room.
func New(name, description string, volume, temperature, humidity, pressure float64) (*Room, error) {
	switch {
	case volume <= 0:
		return nil, fmt.Errorf("room %q: volume must be positive, got %g m³", name, volume)
	case humidity < 0 || humidity > 100:
		return nil, fmt.Errorf("room %q: relative humidity must be within [0, 100], got %g%%", name, humidity)
	case pressure <= 0:
		return nil, fmt.Errorf("room %q: pressure must be positive, got %g kPa", name, pressure)
	case temperature <= -273.15:
		return nil, fmt.Errorf("room %q: temperature below absolute zero: %g °C", name, temperature)
	}
	return &Room{
		Name:        name,
		Description: description,
		Volume:      volume,
		Temperature: temperature,
		Humidity:    humidity,
		Pressure:    pressure,
	}, nil
}

// AddSurface resolves the material and appends an absorptive surface.
func (r *Room) AddSurface(lib materials.Library, materialID string, area float64) error {
	m, err := lib.Get(materialID)
	if err != nil {
		return err
	}
	if area < 0 {
		return &absorption.ValidationError{
			Contribution: materialID,
			Reason:       fmt.Sprintf("negative area %g m²", area),
		}
	}
	r.surfaces = append(r.surfaces, absorption.Surface{
		MaterialID:   m.ID,
		Name:         m.Name,
		Area:         area,
		Coefficients: m.Coefficients,
	})
	r.fresh = false
	return nil
}

// AddOpening adds a surface such as a window or a door and deducts its
// area from a previously added host surface (the wall it sits in).
func (r *Room) AddOpening(lib materials.Library, materialID string, area float64, hostID string) error {
	host := -1
	for i := range r.surfaces {
		if r.surfaces[i].MaterialID == hostID {
			host = i
		}
	}
	if host < 0 {
		return &absorption.ValidationError{
			Contribution: hostID,
			Reason:       "host surface not present in the room",
		}
	}
	if r.surfaces[host].Area < area {
		return &absorption.ValidationError{
			Contribution: hostID,
			Reason: fmt.Sprintf("opening of %g m² larger than host surface of %g m²",
				area, r.surfaces[host].Area),
		}
	}
	if err := r.AddSurface(lib, materialID, area); err != nil {
		return err
	}
	r.surfaces[host].Area -= area
	return nil
}

// AddObject resolves the material and appends a countable absorber.
func (r *Room) AddObject(lib materials.Library, materialID string, count float64) error {
	m, err := lib.Get(materialID)
	if err != nil {
		return err
	}
	if count < 0 {
		return &absorption.ValidationError{
			Contribution: materialID,
			Reason:       fmt.Sprintf("negative count %g", count),
		}
	}
	r.objects = append(r.objects, absorption.Object{
		MaterialID:   m.ID,
		Name:         m.Name,
		Count:        count,
		Coefficients: m.Coefficients,
	})
	r.fresh = false
	return nil
}

// Surfaces returns the current surface list.
func (r *Room) Surfaces() []absorption.Surface { return r.surfaces }

// Objects returns the current object list.
func (r *Room) Objects() []absorption.Object { return r.objects }

// SurfaceArea returns the bounding surface area used for mean-absorption
// calculations: the explicit BoundingArea when set, otherwise the sum of
// the listed surfaces.
func (r *Room) SurfaceArea() float64 {
	if r.BoundingArea > 0 {
		return r.BoundingArea
	}
	var sum float64
	for _, s := range r.surfaces {
		sum += s.Area
	}
	return sum
}

// Absorption returns the total equivalent absorption area and the mean
// absorption coefficient per band, recomputing them if the surface or
// object lists changed since the last call.
func (r *Room) Absorption() (total, alphaMean bands.Curve, err error) {
	if r.fresh {
		return r.total, r.alpha, nil
	}
	total, alphaMean, err = absorption.Aggregate(r.surfaces, r.objects, r.SurfaceArea())
	if err != nil {
		return bands.Curve{}, bands.Curve{}, err
	}
	r.total, r.alpha, r.fresh = total, alphaMean, true
	return total, alphaMean, nil
}

// Attenuation computes the atmospheric attenuation coefficient for the
// room climate over the given band set.
func (r *Room) Attenuation(freqs bands.Curve) bands.Curve {
	return attenuation.Coefficient(freqs, r.Humidity, r.Temperature, r.Pressure)
}

// Predict runs a reverberation model over the current room state.
func (r *Room) Predict(model reverb.Model) (bands.Curve, error) {
	total, _, err := r.Absorption()
	if err != nil {
		return bands.Curve{}, err
	}
	att := r.Attenuation(total)
	return model.Predict(total, r.Volume, r.SurfaceArea(), att)
}
