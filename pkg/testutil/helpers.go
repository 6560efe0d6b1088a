// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/tax-calculator/pkg/mathutil"
	"github.com/iwvelando/tax-calculator/pkg/taxmath"
)

// ResultWithin reports whether every field of got is within tolerance of want.
func ResultWithin(got, want taxmath.Result, tolerance float64) bool {
	return mathutil.WithinTolerance(got.OriginalAmount, want.OriginalAmount, tolerance) &&
		mathutil.WithinTolerance(got.TaxAmount, want.TaxAmount, tolerance) &&
		mathutil.WithinTolerance(got.FinalAmount, want.FinalAmount, tolerance)
}
