package standards

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

func TestLookup(t *testing.T) {
	rt, err := Default().Lookup("drama-theatres")
	require.NoError(t, err)
	assert.Equal(t, "drama-theatres", rt.Name)
	assert.Equal(t, "A.5", rt.LimitClass)
	assert.Equal(t, "A1-E", rt.FormulaTag)
	assert.Equal(t, 300.0, rt.VolumeMin)
	assert.Equal(t, 10000.0, rt.VolumeMax)
}

func TestLookupUnknownCategory(t *testing.T) {
	_, err := Default().Lookup("cathedral")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	// No fuzzy matching: case matters.
	_, err = Default().Lookup("Drama-Theatres")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestOptimalT60(t *testing.T) {
	// A2-A: 0.342·log10(V) − 0.185.
	low, high, err := Default().OptimalT60("general-classrooms", 200)
	require.NoError(t, err)
	want := 0.342*math.Log10(200) - 0.185
	assert.InDelta(t, want, low, 1e-9)
	assert.Equal(t, low, high)
}

func TestOptimalT60Piecewise(t *testing.T) {
	reg := Default()

	low1, _, err := reg.OptimalT60("gymnasiums-and-sports-halls", 2500)
	require.NoError(t, err)
	assert.InDelta(t, 0.396*math.Log10(2500)+0.023, low1, 1e-9)

	low2, _, err := reg.OptimalT60("gymnasiums-and-sports-halls", 40000)
	require.NoError(t, err)
	assert.InDelta(t, 1.036*math.Log10(40000)-2.204, low2, 1e-9)
}

func TestOptimalT60VolumeOutOfRange(t *testing.T) {
	// Advisory: the fitted value is still returned.
	low, high, err := Default().OptimalT60("meeting-rooms", 5000)
	require.Error(t, err)

	var vre *VolumeRangeError
	require.ErrorAs(t, err, &vre)
	assert.Equal(t, 5000.0, vre.Volume)
	assert.Equal(t, 500.0, vre.Max)
	assert.Positive(t, low)
	assert.Positive(t, high)
}

func TestOptimalT60Range1998Cinema(t *testing.T) {
	// The multichannel-cinema fit prescribes a band, not a single value.
	low, high, err := Edition1998().OptimalT60("cinema-multichannel-digital", 2000)
	require.NoError(t, err)
	assert.Less(t, low, high)
}

func TestCheckCompliance(t *testing.T) {
	reg := Default()
	low, _, err := reg.OptimalT60("general-classrooms", 200)
	require.NoError(t, err)

	// Exactly optimal in every band passes everywhere.
	report, err := reg.CheckCompliance(bands.Uniform(bands.Octave, low), "general-classrooms", 200)
	require.NoError(t, err)
	assert.True(t, report.Pass)
	assert.Len(t, report.Bands, 6)
	for _, b := range report.Bands {
		assert.True(t, b.Pass)
		assert.Zero(t, b.Deviation)
	}
}

func TestCheckComplianceFailure(t *testing.T) {
	reg := Default()
	report, err := reg.CheckCompliance(bands.Uniform(bands.Octave, 3.0), "general-classrooms", 200)
	require.NoError(t, err)
	assert.False(t, report.Pass)
	for _, b := range report.Bands {
		assert.False(t, b.Pass)
		assert.Positive(t, b.Deviation, "too reverberant deviates upward")
	}

	dead, err := reg.CheckCompliance(bands.Uniform(bands.Octave, 0.05), "general-classrooms", 200)
	require.NoError(t, err)
	assert.False(t, dead.Pass)
	for _, b := range dead.Bands {
		assert.Negative(t, b.Deviation, "too dead deviates downward")
	}
}

func TestCheckComplianceUngovernedBands(t *testing.T) {
	// Class A.7 leaves 125 Hz and 4 kHz ungoverned in the 2023 tables.
	reg := Default()
	low, _, err := reg.OptimalT60("swimming-halls", 2000)
	require.NoError(t, err)

	report, err := reg.CheckCompliance(bands.Uniform(bands.Octave, low), "swimming-halls", 2000)
	require.NoError(t, err)
	assert.True(t, report.Pass)

	assert.False(t, report.Bands[0].Governed)
	assert.False(t, report.Bands[5].Governed)
	for _, b := range report.Bands[1:5] {
		assert.True(t, b.Governed)
	}
}

func TestCheckComplianceVolumeWarning(t *testing.T) {
	reg := Default()
	report, err := reg.CheckCompliance(bands.Uniform(bands.Octave, 0.6), "meeting-rooms", 5000)
	require.NoError(t, err)
	require.NotNil(t, report.VolumeWarning)
	assert.Equal(t, 5000.0, report.VolumeWarning.Volume)
}

func TestCheckComplianceBandMismatch(t *testing.T) {
	reg := Default()
	_, err := reg.CheckCompliance(bands.Uniform(bands.Extended, 1), "general-classrooms", 200)
	assert.ErrorIs(t, err, bands.ErrBandMismatch)
}

func TestEditionsAreComplete(t *testing.T) {
	assert.Len(t, Edition1998().Categories(), 25)
	assert.Len(t, Edition2023().Categories(), 36)
	assert.Equal(t, "1998", Edition1998().Edition())
	assert.Equal(t, "2023", Edition2023().Edition())
}

func TestRegistriesResolveAllFormulas(t *testing.T) {
	for _, reg := range []*Registry{Edition1998(), Edition2023()} {
		for _, name := range reg.Categories() {
			low, high, err := reg.OptimalT60(name, 1000)
			if err != nil {
				var vre *VolumeRangeError
				require.ErrorAs(t, err, &vre, "%s/%s", reg.Edition(), name)
			}
			assert.False(t, math.IsNaN(low) || math.IsNaN(high), "%s/%s", reg.Edition(), name)
			assert.Positive(t, high, "%s/%s", reg.Edition(), name)
		}
	}
}
