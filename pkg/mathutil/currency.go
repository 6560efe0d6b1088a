// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/tax-calculator/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for display only; computed results keep full precision.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// WithinRelativeTolerance checks if two values agree to a tolerance scaled by
// the larger magnitude, falling back to an absolute check near zero.
func WithinRelativeTolerance(val1, val2, tolerance float64) bool {
	scale := math.Max(1, math.Max(math.Abs(val1), math.Abs(val2)))
	return math.Abs(val1-val2) <= tolerance*scale
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// PercentageFactor returns 1 + percentage/100, the multiplier that turns a
// base amount into base plus percentage.
func PercentageFactor(percentage float64) float64 {
	return 1 + percentage/constants.PercentageMultiplier
}
