package utils

import "math"

// Round2 rounds a monetary amount to 2 decimal places. Applied at the
// response boundary only; intermediate aggregation stays unrounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
