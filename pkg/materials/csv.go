package materials

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

// materialRow mirrors the column layout of absorption coefficient tables
// as exported by material vendors: identifier, name and one column per
// octave-band center frequency.
type materialRow struct {
	ID     string  `csv:"ID"`
	Name   string  `csv:"Name"`
	Hz125  float64 `csv:"125"`
	Hz250  float64 `csv:"250"`
	Hz500  float64 `csv:"500"`
	Hz1000 float64 `csv:"1000"`
	Hz2000 float64 `csv:"2000"`
	Hz4000 float64 `csv:"4000"`
}

// ReadCSV loads a material library from CSV data.
func ReadCSV(r io.Reader) (*InMemory, error) {
	var rows []materialRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("materials: parsing csv: %w", err)
	}
	lib := NewInMemory(nil)
	for _, row := range rows {
		if row.ID == "" {
			return nil, fmt.Errorf("materials: csv row %q has empty ID", row.Name)
		}
		lib.Add(Material{
			ID:   row.ID,
			Name: row.Name,
			Coefficients: bands.MustNew(bands.Octave, []float64{
				row.Hz125, row.Hz250, row.Hz500, row.Hz1000, row.Hz2000, row.Hz4000,
			}),
		})
	}
	return lib, nil
}

// LoadCSV loads a material library from a CSV file on disk.
func LoadCSV(path string) (*InMemory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("materials: opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
