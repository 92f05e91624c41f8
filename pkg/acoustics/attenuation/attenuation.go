// Package attenuation computes the atmospheric sound attenuation
// coefficient per ISO 9613-1:1993. The result is expressed in the
// natural-log based m⁻¹ form consumed by the ISO 354 / ISO 3382
// reverberation formulas.
package attenuation

import (
	"math"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

// Reference atmospheric conditions from ISO 9613-1.
const (
	ReferencePressureKPa = 101.325
	ReferenceTempK       = 293.15
)

// Option overrides a reference condition.
type Option func(*params)

type params struct {
	refPressure float64
	refTemp     float64
}

// WithReferencePressure overrides the reference atmospheric pressure [kPa].
func WithReferencePressure(kpa float64) Option {
	return func(p *params) { p.refPressure = kpa }
}

// WithReferenceTemperature overrides the reference temperature [K].
func WithReferenceTemperature(kelvin float64) Option {
	return func(p *params) { p.refTemp = kelvin }
}

// Coefficient computes the per-band attenuation coefficient in m⁻¹ for
// the given climate. relativeHumidity is in percent, temperature in °C,
// pressure in kPa. The caller must ensure pressure > 0 and a temperature
// above absolute zero; the function itself has no failure modes.
func Coefficient(freqs bands.Curve, relativeHumidity, temperature, pressure float64, opts ...Option) bands.Curve {
	p := params{refPressure: ReferencePressureKPa, refTemp: ReferenceTempK}
	for _, opt := range opts {
		opt(&p)
	}

	T := temperature + 273.15
	T0 := p.refTemp
	pr := p.refPressure
	pa := pressure

	// Saturation vapour pressure and molar concentration of water vapour.
	C := -6.8346*math.Pow(273.16/T, 1.261) + 4.6151
	pSat := pr * math.Pow(10, C)
	h := relativeHumidity * (pSat / pr) / (pa / pr)

	// Relaxation frequencies of oxygen and nitrogen.
	frO := pa / pr * (24 + 4.04e4*h*(0.02+h)/(0.391+h))
	frN := pa / pr * math.Pow(T/T0, -0.5) *
		(9 + 280*h*math.Exp(-4.170*(math.Pow(T/T0, -1.0/3.0)-1)))

	return freqs.Map(func(f, _ float64) float64 {
		// Pure-tone attenuation in dB/m per ISO 9613-1 eq. (5).
		alpha := 8.686 * f * f * ((1.84e-11 * (pr / pa) * math.Sqrt(T/T0)) +
			math.Pow(T/T0, -2.5)*
				(0.01275*math.Exp(-2239.1/T)/(frO+f*f/frO)+
					0.1068*math.Exp(-3352.0/T)/(frN+f*f/frN)))

		// dB/m -> m⁻¹ (power attenuation exponent).
		return alpha / (10 * math.Log10(math.E))
	})
}
