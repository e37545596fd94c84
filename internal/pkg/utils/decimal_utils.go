package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundToFixed renders value with exactly precision fractional digits.
// Halves are rounded away from zero, working on the shortest decimal
// representation of value (so 1.005 renders as "1.01").
// Example: value=1234.5, precision=2 => "1234.50"
func RoundToFixed(value float64, precision int32) string {
	if precision < 0 {
		precision = 0
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero.StringFixed(precision)
	}
	return decimal.NewFromFloat(value).StringFixed(precision)
}

// RoundFloat rounds value to precision fractional digits using the same rule
// as RoundToFixed.
func RoundFloat(value float64, precision int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	if precision < 0 {
		precision = 0
	}
	return decimal.NewFromFloat(value).Round(precision).InexactFloat64()
}

// MulFloat multiplies a and b in decimal arithmetic, which avoids binary
// artefacts such as 0.1*3 = 0.30000000000000004.
func MulFloat(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0
	}
	return decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).InexactFloat64()
}

// DivFloat divides a by b in decimal arithmetic. Division by zero returns 0.
func DivFloat(a, b float64) float64 {
	if b == 0 || math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0
	}
	return decimal.NewFromFloat(a).Div(decimal.NewFromFloat(b)).InexactFloat64()
}
