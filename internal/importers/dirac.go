// Package importers parses reverberation-time exports from measurement
// tools (Dirac, REW) into band-indexed measurement tables the service can
// compare against model predictions. The exports are opaque vendor text
// formats; nothing here is part of the acoustics core.
package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

// Measurement is a parsed set of measured per-band values: one row per
// measurement run, columns aligned with Bands.
type Measurement struct {
	Source   string
	Quantity string
	Bands    []float64
	Rows     [][]float64
}

// MeanCurve averages the measurement runs into a single per-band curve.
func (m *Measurement) MeanCurve() (bands.Curve, error) {
	if len(m.Rows) == 0 {
		return bands.Curve{}, fmt.Errorf("importers: %s: no measurement rows", m.Source)
	}
	mean := make([]float64, len(m.Bands))
	for _, row := range m.Rows {
		for i, v := range row {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(m.Rows))
	}
	return bands.New(m.Bands, mean)
}

// ParseDirac reads a Dirac reverberation export: a tab-separated table
// with decimal commas, one header row of band frequencies, one row per
// measurement position, terminated by a summary block starting at the
// "Number of Measurements" row.
func ParseDirac(r io.Reader) (*Measurement, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importers: dirac: %w", err)
	}
	if len(records) < 3 {
		return nil, fmt.Errorf("importers: dirac: export too short (%d rows)", len(records))
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("importers: dirac: header has no frequency columns")
	}
	freqs := make([]float64, 0, len(header)-1)
	for _, col := range header[1:] {
		f, err := parseDecimal(col)
		if err != nil {
			return nil, fmt.Errorf("importers: dirac: header column %q is not a frequency: %w", col, err)
		}
		freqs = append(freqs, f)
	}

	m := &Measurement{Source: "dirac", Quantity: "T60", Bands: freqs}
	// The first data row duplicates the header units and is skipped,
	// matching the export layout.
	for _, rec := range records[2:] {
		if len(rec) == 0 {
			continue
		}
		if strings.TrimSpace(rec[0]) == "Number of Measurements" {
			break
		}
		if len(rec) != len(header) {
			continue
		}
		row := make([]float64, 0, len(freqs))
		ok := true
		for _, cell := range rec[1:] {
			v, err := parseDecimal(cell)
			if err != nil {
				ok = false
				break
			}
			row = append(row, v)
		}
		if ok {
			m.Rows = append(m.Rows, row)
		}
	}
	if len(m.Rows) == 0 {
		return nil, fmt.Errorf("importers: dirac: no measurement rows found")
	}
	return m, nil
}

// parseDecimal parses a number that may use a decimal comma.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	return strconv.ParseFloat(s, 64)
}
