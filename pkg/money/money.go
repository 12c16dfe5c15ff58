// Package money holds the numeric-semantics contract of the application:
// monetary values are stored as scaled integers (miliunits, display value
// times 1000) and converted back to display decimals only at the API
// boundary. Keeping the arithmetic in the integer domain avoids
// floating-point drift across layers.
package money

import "math"

// ToMiliunits converts a display-currency value to its stored integer
// representation. The product is rounded, not truncated: many 3-decimal
// values (1.001, 8.2) sit just below their integer as floats and would
// otherwise lose a miliunit on every write.
func ToMiliunits(v float64) int64 {
	return int64(math.Round(v * 1000))
}

// FromMiliunits converts a stored integer back to the display value.
func FromMiliunits(v int64) float64 {
	return float64(v) / 1000
}

// ItemTotal computes a shopping item total: amount*quantity - discount + tax.
// Amount, discount and tax are miliunits; quantity is a plain count.
func ItemTotal(amount, quantity, discount, tax int64) int64 {
	return amount*quantity - discount + tax
}

// PercentageDifference compares a current value against a previous one.
// A zero previous value yields 0 when current is also zero and a flat 100
// otherwise; the cap is deliberate, not a general percentage formula.
func PercentageDifference(current, previous float64) float64 {
	if previous == 0 {
		if current == previous {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}
