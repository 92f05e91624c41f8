package standards

import "math"

// FormulaFunc evaluates the optimal reverberation time for a room volume.
// Most formulas prescribe a single value (low == high); a few prescribe a
// band between an upper and a lower fit.
type FormulaFunc func(volume float64) (low, high float64)

func single(f func(v float64) float64) FormulaFunc {
	return func(v float64) (float64, float64) {
		t := f(v)
		return t, t
	}
}

func logFit(slope, intercept float64) FormulaFunc {
	return single(func(v float64) float64 {
		return slope*math.Log10(v) + intercept
	})
}

func constant(t float64) FormulaFunc {
	return single(func(float64) float64 { return t })
}

// formulas1998 are the optimal-T60 fits of the 1998/2005 edition, keyed
// by the annex figure they come from.
var formulas1998 = map[string]FormulaFunc{
	"A1-1": logFit(0.3961, -0.026),
	"A1-2": logFit(0.3582, -0.061),
	"A1-3": logFit(0.3424, -0.185),
	"A1-4": logFit(0.1915, 0.134),
	"A1-5": single(func(v float64) float64 {
		if v < 3000 {
			return 0.3961*math.Log10(v) + 0.023
		}
		return 1.0366*math.Log10(v) - 2.204
	}),
	// Power-law fits for multichannel cinemas; lower and upper bound.
	"A6": func(v float64) (float64, float64) {
		low := math.Pow(v, 0.3441) / math.Pow(10, 1.4034)
		high := math.Pow(v, 0.2916) / math.Pow(10, 1.1269)
		return low, high
	},
	"const-0.45": constant(0.45),
	"const-0.5":  constant(0.5),
	"const-0.6":  constant(0.6),
	"const-0.7":  constant(0.7),
	"const-0.9":  constant(0.9),
	"const-1.4":  constant(1.4),
}

// formulas2023 are the optimal-T60 fits of the 2023 revision, keyed by
// dependency family.
var formulas2023 = map[string]FormulaFunc{
	"A1-A": logFit(0.731, -0.371),
	"A1-B": logFit(0.523, -0.100),
	"A1-C": logFit(0.430, 0),
	"A1-D": logFit(0.396, -0.026),
	"A1-E": logFit(0.310, -0.030),
	"A1-F": logFit(0.250, -0.030),
	"A1-G": logFit(0.310, -0.450),
	"A2-A": logFit(0.342, -0.185),
	"A2-B": logFit(0.300, -0.200),
	"A2-C1": logFit(0.300, 0.150),
	"A2-C2": logFit(0.300, 0),
	"A2-D": logFit(0.150, 0),
	"A2-E": single(func(v float64) float64 {
		if v < 3000 {
			return 0.396*math.Log10(v) + 0.023
		}
		return 1.036*math.Log10(v) - 2.204
	}),
	"A3-A": logFit(0.342, -0.185),
	"A3-B": logFit(0.342, -0.300),
	"A3-C": logFit(0.650, -0.800),
}
