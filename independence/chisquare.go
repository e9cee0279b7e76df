package independence

import "github.com/nozzle/simstat/simerr"

// chiSquare05 holds upper 5% critical values of the chi-square
// distribution by degrees of freedom.
var chiSquare05 = map[int]float64{
	1: 3.841, 2: 5.991, 3: 7.815, 4: 9.488, 5: 11.070,
	6: 12.592, 7: 14.067, 8: 15.507, 9: 16.919, 10: 18.307,
	11: 19.675, 12: 21.026, 13: 22.362, 14: 23.685, 15: 24.996,
	16: 26.296, 17: 27.587, 18: 28.869, 19: 30.144, 20: 31.410,
	21: 32.671, 22: 33.924, 23: 35.172, 24: 36.415, 25: 37.652,
	26: 38.885, 27: 40.113, 28: 41.337, 29: 42.557, 30: 43.773,
}

// MaxTabulatedDF is the largest degrees of freedom with a critical value.
const MaxTabulatedDF = 30

// CriticalValue returns the chi-square critical value at the 5% level. It
// returns simerr.ErrNoCriticalValue outside 1..MaxTabulatedDF.
func CriticalValue(df int) (float64, error) {
	v, ok := chiSquare05[df]
	if !ok {
		return 0, simerr.ErrNoCriticalValue
	}
	return v, nil
}
