package standards

import "github.com/resona-acoustics/resona/pkg/acoustics/bands"

// Tolerance limit classes of the 1998/2005 edition, upper and lower
// multipliers of the optimal T60. Class A.7 governs the extended band
// range used by multichannel cinemas.
var limits1998 = map[string]struct{ upper, lower bands.Curve }{
	"A.2": {
		upper: bands.MustNew(bands.Octave, []float64{1.45, 1.2, 1.2, 1.2, 1.2, 1.2}),
		lower: bands.MustNew(bands.Octave, []float64{1, 0.8, 0.8, 0.8, 0.8, 0.65}),
	},
	"A.3": {
		upper: bands.MustNew(bands.Octave, []float64{1.45, 1.2, 1.2, 1.2, 1.2, 1.2}),
		lower: bands.MustNew(bands.Octave, []float64{0.8, 0.8, 0.8, 0.8, 0.8, 0.65}),
	},
	"A.4": {
		upper: bands.MustNew(bands.Octave, []float64{1.2, 1.2, 1.2, 1.2, 1.2, 1.2}),
		lower: bands.MustNew(bands.Octave, []float64{0.65, 0.8, 0.8, 0.8, 0.8, 0.65}),
	},
	"A.5": {
		upper: bands.MustNew(bands.Octave, []float64{1.55, 1.3, 1.3, 1.3, 1.3, 1.3}),
		lower: bands.MustNew(bands.Octave, []float64{0.7, 0.7, 0.7, 0.7, 0.7, 0.7}),
	},
	"A.7": {
		upper: bands.MustNew(bands.Extended, []float64{1.5, 1.3, 1.1, 1, 1, 1, 1, 1}),
		lower: bands.MustNew(bands.Extended, []float64{1, 1, 1, 1, 0.9, 0.8, 0.7, 0.6}),
	},
	"A.8": {
		upper: bands.MustNew(bands.Octave, []float64{1.2, 1.2, 1.2, 1.2, 1.2, 1.2}),
		lower: bands.MustNew(bands.Octave, []float64{0.8, 0.8, 0.8, 0.8, 0.8, 0.8}),
	},
}

func roomType1998(name, limitClass, formulaTag string, volMin, volMax float64) *RoomType {
	lim := limits1998[limitClass]
	return &RoomType{
		Name:       name,
		LimitClass: limitClass,
		FormulaTag: formulaTag,
		UpperLimit: lim.upper,
		LowerLimit: lim.lower,
		VolumeMin:  volMin,
		VolumeMax:  volMax,
	}
}

var registry1998 = newRegistry("1998", formulas1998, []*RoomType{
	roomType1998("opera", "A.2", "A1-1", 600, 20000),
	roomType1998("musical-theatre", "A.2", "A1-1", 600, 20000),
	roomType1998("orchestra-rehearsal-room", "A.2", "A1-2", 500, 20000),
	roomType1998("multipurpose-hall", "A.3", "A1-2", 500, 20000),
	roomType1998("drama-theatre", "A.4", "A1-3", 100, 6000),
	roomType1998("drama-rehearsal-room", "A.4", "A1-3", 100, 6000),
	roomType1998("lecture-hall", "A.4", "A1-3", 100, 6000),
	roomType1998("cinema-mono", "A.5", "A1-4", 200, 10000),
	roomType1998("cinema-multichannel-analog", "A.7", "A6", 100, 20000),
	roomType1998("cinema-multichannel-digital", "A.7", "A6", 100, 20000),
	roomType1998("classroom", "A.4", "const-0.7", 0, 250),
	roomType1998("auditorium", "A.4", "A1-3", 250, 20000),
	roomType1998("language-classroom", "A.4", "const-0.45", 130, 180),
	roomType1998("audiovisual-classroom", "A.4", "const-0.6", 200, 200),
	roomType1998("music-classroom", "A.3", "const-0.9", 200, 200),
	roomType1998("music-classroom-playback", "A.3", "const-0.5", 200, 200),
	roomType1998("instrument-practice-room", "A.3", "const-0.7", 80, 120),
	roomType1998("school-orchestra-room", "A.2", "A1-2", 500, 20000),
	roomType1998("school-gym-and-pool", "A.8", "A1-5", 500, 20000),
	roomType1998("gymnasium", "A.8", "A1-5", 500, 20000),
	roomType1998("sports-hall", "A.8", "A1-5", 500, 20000),
	roomType1998("swimming-hall", "A.8", "A1-5", 500, 20000),
	roomType1998("railway-station-hall", "A.8", "A1-5", 500, 20000),
	roomType1998("airport-hall", "A.8", "A1-5", 500, 20000),
	roomType1998("public-building-hall", "A.3", "const-1.4", 0, 0),
})

// Edition1998 returns the registry built from the 1998/2005 tables.
func Edition1998() *Registry { return registry1998 }
