package standards

import (
	"math"

	"github.com/resona-acoustics/resona/pkg/acoustics/bands"
)

var nan = math.NaN()

// Tolerance limit classes of the 2023 revision. Class A.7 leaves the
// 125 Hz and 4 kHz bands ungoverned.
var limits2023 = map[string]struct{ upper, lower bands.Curve }{
	"A.4": { // music and speech
		upper: bands.MustNew(bands.Octave, []float64{1.45, 1.2, 1.2, 1.2, 1.2, 1.2}),
		lower: bands.MustNew(bands.Octave, []float64{0.8, 0.8, 0.8, 0.8, 0.8, 0.65}),
	},
	"A.5": { // speech
		upper: bands.MustNew(bands.Octave, []float64{1.2, 1.2, 1.2, 1.2, 1.2, 1.2}),
		lower: bands.MustNew(bands.Octave, []float64{0.65, 0.8, 0.8, 0.8, 0.8, 0.65}),
	},
	"A.6": { // music
		upper: bands.MustNew(bands.Octave, []float64{1.45, 1.2, 1.2, 1.2, 1.2, 1.2}),
		lower: bands.MustNew(bands.Octave, []float64{1, 0.8, 0.8, 0.8, 0.8, 0.65}),
	},
	"A.7": { // limited bandwidth
		upper: bands.MustNew(bands.Octave, []float64{nan, 1.2, 1.2, 1.2, 1.2, nan}),
		lower: bands.MustNew(bands.Octave, []float64{nan, 0.8, 0.8, 0.8, 0.8, nan}),
	},
}

func roomType2023(name, limitClass, formulaTag string, volMin, volMax float64) *RoomType {
	lim := limits2023[limitClass]
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

var registry2023 = newRegistry("2023", formulas2023, []*RoomType{
	// A1: performance spaces
	roomType2023("organ-music-halls", "A.6", "A1-A", 800, 30000),
	roomType2023("orchestral-music-halls", "A.6", "A1-B", 800, 20000),
	roomType2023("chamber-music-halls", "A.6", "A1-C", 200, 20000),
	roomType2023("opera-halls", "A.6", "A1-C", 200, 20000),
	roomType2023("acoustic-music-rehearsal-rooms", "A.4", "A1-D", 300, 3000),
	roomType2023("drama-theatres", "A.5", "A1-E", 300, 10000),
	roomType2023("multipurpose-halls-speech", "A.5", "A1-E", 300, 10000),
	roomType2023("drama-rehearsal-rooms", "A.5", "A1-E", 300, 10000),
	roomType2023("amplified-music-rehearsal-rooms", "A.4", "A1-F", 100, 20000),
	roomType2023("multipurpose-halls-amplified", "A.4", "A1-F", 100, 20000),
	roomType2023("electroacoustic-venues", "A.4", "A1-F", 100, 20000),
	roomType2023("multichannel-cinemas", "A.4", "A1-G", 100, 4000),

	// A2: schools
	roomType2023("general-classrooms", "A.5", "A2-A", 80, 8000),
	roomType2023("specialized-classrooms", "A.5", "A2-A", 80, 8000),
	roomType2023("workshop-classrooms", "A.5", "A2-A", 80, 8000),
	roomType2023("seminar-rooms", "A.5", "A2-A", 80, 8000),
	roomType2023("lecture-halls", "A.5", "A2-A", 80, 8000),
	roomType2023("kindergarten-day-rooms", "A.5", "A2-A", 80, 8000),
	roomType2023("music-classrooms", "A.4", "A2-A", 80, 8000),
	roomType2023("language-classrooms", "A.5", "A2-B", 30, 400),
	roomType2023("speech-intelligibility-classrooms", "A.5", "A2-B", 30, 400),
	roomType2023("multimedia-classrooms", "A.5", "A2-B", 30, 400),
	roomType2023("music-playback-classrooms", "A.5", "A2-B", 30, 400),
	roomType2023("electronic-instrument-classrooms", "A.4", "A2-B", 30, 400),
	roomType2023("instrument-practice-rooms-upper", "A.4", "A2-C1", 30, 300),
	roomType2023("instrument-practice-rooms-lower", "A.4", "A2-C2", 30, 300),
	roomType2023("percussion-classrooms", "A.4", "A2-D", 30, 250),
	roomType2023("gymnasiums-and-sports-halls", "A.7", "A2-E", 200, 50000),
	roomType2023("swimming-halls", "A.7", "A2-E", 200, 50000),
	roomType2023("dance-and-fitness-rooms", "A.7", "A2-E", 200, 50000),

	// A3: offices and public spaces
	roomType2023("meeting-rooms", "A.5", "A3-A", 50, 500),
	roomType2023("negotiation-rooms", "A.5", "A3-A", 50, 500),
	roomType2023("training-rooms", "A.5", "A3-A", 50, 500),
	roomType2023("videoconference-rooms", "A.5", "A3-B", 50, 300),
	roomType2023("high-intelligibility-meeting-rooms", "A.5", "A3-B", 50, 300),
	roomType2023("public-building-halls", "A.7", "A3-C", 300, 20000),
})

// Edition2023 returns the registry built from the 2023 revision.
func Edition2023() *Registry { return registry2023 }

// Default returns the registry for the current standard revision.
func Default() *Registry { return registry2023 }
