package kernel

import "math"

// RoundCurrency rounds a rupee amount half away from zero to two decimal places.
// All monetary values and derived percentages leave the domain through it.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// MinutesToHours converts a delivery duration to shift hours.
func MinutesToHours(minutes float64) float64 {
	return minutes / 60
}
