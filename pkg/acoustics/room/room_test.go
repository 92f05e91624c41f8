package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
	"github.com/resona-acoustics/resona/pkg/acoustics/reverb"
	"github.com/resona-acoustics/resona/pkg/materials"
)

func testLibrary() *materials.InMemory {
	return materials.NewInMemory([]materials.Material{
		{ID: "plaster", Name: "Painted plaster", Coefficients: bands.Uniform(bands.Octave, 0.1)},
		{ID: "chair", Name: "Upholstered chair", Coefficients: bands.Uniform(bands.Octave, 0.05)},
		{ID: "window", Name: "Glazing", Coefficients: bands.Uniform(bands.Octave, 0.15)},
		{ID: "absorber", Name: "Mineral wool panel", Coefficients: bands.Uniform(bands.Octave, 0.95)},
	})
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name                                   string
		volume, temperature, humidity, pressure float64
		wantErr                                bool
	}{
		{"valid", 500, 20, 50, 101.325, false},
		{"zero volume", 0, 20, 50, 101.325, true},
		{"negative volume", -10, 20, 50, 101.325, true},
		{"humidity above 100", 500, 20, 140, 101.325, true},
		{"zero pressure", 500, 20, 50, 0, true},
		{"below absolute zero", 500, -300, 50, 101.325, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("test", "", tt.volume, tt.temperature, tt.humidity, tt.pressure)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEndToEndSabine(t *testing.T) {
	// 500 m³, one 200 m² surface at 0.1 plus ten 0.5-unit seats:
	// ΣA = 20 + 5 = 25 m², Sabine T60 = 0.163·500/25 = 3.26 s.
	lib := testLibrary()
	r, err := New("lecture hall", "end-to-end check", 500, 20, 50, 101.325)
	require.NoError(t, err)

	require.NoError(t, r.AddSurface(lib, "plaster", 200))
	lib.Add(materials.Material{
		ID: "seat", Name: "Seat",
		Coefficients: bands.Uniform(bands.Octave, 0.5),
	})
	require.NoError(t, r.AddObject(lib, "seat", 10))

	total, alpha, err := r.Absorption()
	require.NoError(t, err)
	for _, v := range total.Values() {
		assert.InDelta(t, 25.0, v, 1e-9) // 200·0.1 + 10·0.5
	}
	for _, v := range alpha.Values() {
		assert.InDelta(t, 0.125, v, 1e-9)
	}

	t60, err := r.Predict(reverb.Sabine{})
	require.NoError(t, err)
	for _, v := range t60.Values() {
		assert.InDelta(t, 3.26, v, 1e-9) // 0.163·500/25
	}

	// The composite rule picks Sabine here too: α=0.125, V=500.
	composite, err := r.Predict(reverb.Composite{})
	require.NoError(t, err)
	assert.Equal(t, t60.Values(), composite.Values())
}

func TestAddSurfaceUnknownMaterial(t *testing.T) {
	r, err := New("test", "", 500, 20, 50, 101.325)
	require.NoError(t, err)

	err = r.AddSurface(testLibrary(), "unobtainium", 10)
	assert.ErrorIs(t, err, materials.ErrMaterialNotFound)
}

func TestAddOpening(t *testing.T) {
	lib := testLibrary()
	r, err := New("test", "", 500, 20, 50, 101.325)
	require.NoError(t, err)

	require.NoError(t, r.AddSurface(lib, "plaster", 100))
	require.NoError(t, r.AddOpening(lib, "window", 8, "plaster"))

	surfaces := r.Surfaces()
	require.Len(t, surfaces, 2)
	assert.Equal(t, 92.0, surfaces[0].Area)
	assert.Equal(t, 8.0, surfaces[1].Area)
	assert.Equal(t, 100.0, r.SurfaceArea())
}

func TestAddOpeningErrors(t *testing.T) {
	lib := testLibrary()
	r, err := New("test", "", 500, 20, 50, 101.325)
	require.NoError(t, err)
	require.NoError(t, r.AddSurface(lib, "plaster", 10))

	// missing host
	err = r.AddOpening(lib, "window", 5, "concrete")
	assert.Error(t, err)

	// opening larger than its host
	err = r.AddOpening(lib, "window", 50, "plaster")
	assert.Error(t, err)
}

func TestBoundingAreaOverridesSum(t *testing.T) {
	lib := testLibrary()
	r, err := New("test", "", 500, 20, 50, 101.325)
	require.NoError(t, err)
	require.NoError(t, r.AddSurface(lib, "absorber", 50))

	r.BoundingArea = 400
	assert.Equal(t, 400.0, r.SurfaceArea())

	_, alpha, err := r.Absorption()
	require.NoError(t, err)
	v, _ := alpha.Value(1000)
	assert.InDelta(t, 50*0.95/400, v, 1e-9)
}

func TestAbsorptionRecomputedAfterChange(t *testing.T) {
	lib := testLibrary()
	r, err := New("test", "", 500, 20, 50, 101.325)
	require.NoError(t, err)
	require.NoError(t, r.AddSurface(lib, "plaster", 100))

	first, _, err := r.Absorption()
	require.NoError(t, err)
	v1, _ := first.Value(1000)
	assert.InDelta(t, 10.0, v1, 1e-9)

	require.NoError(t, r.AddObject(lib, "chair", 20))
	second, _, err := r.Absorption()
	require.NoError(t, err)
	v2, _ := second.Value(1000)
	assert.InDelta(t, 11.0, v2, 1e-9)
}

func TestPredictEmptyRoom(t *testing.T) {
	r, err := New("empty", "", 500, 20, 50, 101.325)
	require.NoError(t, err)

	_, err = r.Predict(reverb.Sabine{})
	assert.Error(t, err)
}
