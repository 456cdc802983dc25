package conv

import (
	"math"
	"strconv"
)

// Round rounds x to the given number of decimal places, half to even on the
// exact binary value. NaN and infinities are returned unchanged.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// Round4 rounds x to four decimal places, the precision of every reported
// ratio and score.
func Round4(x float64) float64 {
	return Round(x, 4)
}
