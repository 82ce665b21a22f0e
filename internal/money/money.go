package money

import "math"

// Round2 rounds to two decimal places, half away from zero. All customer
// facing amounts go through this before they are stored or compared.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
