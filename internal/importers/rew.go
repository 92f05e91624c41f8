package importers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Band resolutions accepted by ParseREW. The token also appears in the
// filter column of each data row, which is how rows are recognised.
const (
	ResolutionOctave = "1/1"
	ResolutionThird  = "1/3"
)

// REWExport is one parsed REW RT60 text export: the declared column
// names and the per-band rows keyed by column.
type REWExport struct {
	Columns []string
	rows    []map[string]string
}

// ParseREW reads an REW "RT60 data" text export. The file carries a
// free-form preamble, a "Format is ..." line naming the comma-separated
// columns, and data rows that start with the band frequency and carry
// the octave-fraction token in their filter column.
func ParseREW(r io.Reader, resolution string) (*REWExport, error) {
	if resolution != ResolutionOctave && resolution != ResolutionThird {
		return nil, fmt.Errorf("importers: rew: unsupported band resolution %q", resolution)
	}

	e := &REWExport{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if rest, ok := strings.CutPrefix(line, "Format is "); ok {
			for _, col := range strings.Split(rest, ",") {
				e.Columns = append(e.Columns, strings.TrimSpace(col))
			}
			continue
		}
		if line == "" || !unicode.IsDigit(rune(line[0])) || !strings.Contains(line, resolution) {
			continue
		}
		if len(e.Columns) == 0 {
			return nil, fmt.Errorf("importers: rew: data row before Format line")
		}
		fields := strings.Split(line, ",")
		if len(fields) != len(e.Columns) {
			continue
		}
		row := make(map[string]string, len(fields))
		for i, f := range fields {
			row[e.Columns[i]] = strings.TrimSpace(f)
		}
		e.rows = append(e.rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("importers: rew: %w", err)
	}
	if len(e.rows) == 0 {
		return nil, fmt.Errorf("importers: rew: no %s band rows found", resolution)
	}
	return e, nil
}

// Quantity extracts one decay-time column (EDT, T20, T30, Topt) as
// per-band frequencies and values. Column matching ignores the unit
// suffix REW appends, so "T20" matches "T20 (s)".
func (e *REWExport) Quantity(name string) (freqs, values []float64, err error) {
	col := ""
	for _, c := range e.Columns {
		if c == name || strings.HasPrefix(c, name+" ") {
			col = c
			break
		}
	}
	if col == "" {
		return nil, nil, fmt.Errorf("importers: rew: export has no %q column", name)
	}
	freqCol := e.Columns[0]
	for _, row := range e.rows {
		f, ferr := parseDecimal(row[freqCol])
		if ferr != nil {
			return nil, nil, fmt.Errorf("importers: rew: bad frequency %q: %w", row[freqCol], ferr)
		}
		v, verr := parseDecimal(row[col])
		if verr != nil {
			// Rows where the estimate did not converge carry a
			// placeholder; skip the band rather than fail the file.
			continue
		}
		freqs = append(freqs, f)
		values = append(values, v)
	}
	if len(freqs) == 0 {
		return nil, nil, fmt.Errorf("importers: rew: column %q has no numeric values", col)
	}
	return freqs, values, nil
}

// MergeREW combines one quantity across several exports (typically one
// per microphone position) into a single Measurement. All exports must
// report the same bands.
func MergeREW(exports []*REWExport, quantity string) (*Measurement, error) {
	if len(exports) == 0 {
		return nil, fmt.Errorf("importers: rew: nothing to merge")
	}
	m := &Measurement{Source: "rew", Quantity: quantity}
	for i, e := range exports {
		freqs, values, err := e.Quantity(quantity)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			m.Bands = freqs
		} else if !sameBands(m.Bands, freqs) {
			return nil, fmt.Errorf("importers: rew: export %d reports different bands", i)
		}
		m.Rows = append(m.Rows, values)
	}
	return m, nil
}

func sameBands(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
