package models

import (
	"time"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// BandPoint is a single octave-band value on the wire.
type BandPoint struct {
	Frequency float64 `json:"frequency" doc:"Band center frequency in Hz"`
	Value     float64 `json:"value" doc:"Value at this band"`
}

// CurvePoints flattens a band curve into wire points.
func CurvePoints(c bands.Curve) []BandPoint {
	out := make([]BandPoint, 0, c.Len())
	for i := range c.Len() {
		f, v := c.Band(i)
		out = append(out, BandPoint{Frequency: f, Value: v})
	}
	return out
}

// PointsCurve rebuilds a band curve from wire points.
func PointsCurve(pts []BandPoint) (bands.Curve, error) {
	freqs := make([]float64, len(pts))
	vals := make([]float64, len(pts))
	for i, p := range pts {
		freqs[i] = p.Frequency
		vals[i] = p.Value
	}
	return bands.New(freqs, vals)
}
