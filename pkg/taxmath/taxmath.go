// Package taxmath converts monetary amounts between tax-exclusive (net) and
// tax-inclusive (gross) prices under a single flat percentage rate.
//
// AddTax and RemoveTax are pure and never fail: they perform no validation,
// so callers handling user input validate before calling (see
// internal/calculator). RemoveTax divides by 1 + rate/100 without a guard;
// a rate of -100 yields ±Inf or NaN. Convert is the guarded entry point and
// reports ErrDegenerateRate for that case.
package taxmath

import (
	"errors"
	"fmt"

	"github.com/iwvelando/tax-calculator/pkg/mathutil"
)

// ErrDegenerateRate is returned by Convert when a rate makes the remove-tax
// divisor zero or negative (rate <= -100).
var ErrDegenerateRate = errors.New("degenerate tax rate")

// Result holds the three figures produced by one conversion.
type Result struct {
	// OriginalAmount is the amount supplied by the caller: net when adding
	// tax, gross when removing it.
	OriginalAmount float64 `json:"originalAmount"`
	// TaxAmount is always gross minus net.
	TaxAmount float64 `json:"taxAmount"`
	// FinalAmount is gross when adding tax, net when removing it.
	FinalAmount float64 `json:"finalAmount"`
}

// AddTax computes the gross price from a net price.
func AddTax(netAmount, taxRatePercent float64) Result {
	taxAmount := mathutil.ApplyPercentage(netAmount, taxRatePercent)
	grossAmount := netAmount + taxAmount

	return Result{
		OriginalAmount: netAmount,
		TaxAmount:      taxAmount,
		FinalAmount:    grossAmount,
	}
}

// RemoveTax computes the net price from a gross price.
func RemoveTax(grossAmount, taxRatePercent float64) Result {
	netAmount := grossAmount / mathutil.PercentageFactor(taxRatePercent)
	taxAmount := grossAmount - netAmount

	return Result{
		OriginalAmount: grossAmount,
		TaxAmount:      taxAmount,
		FinalAmount:    netAmount,
	}
}

// Convert dispatches to AddTax or RemoveTax. Unlike those, it rejects an
// unknown direction and a rate that would make RemoveTax divide by zero or
// by a negative number.
func Convert(direction Direction, amount, taxRatePercent float64) (Result, error) {
	if !direction.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownDirection, string(direction))
	}
	if direction == Add {
		return AddTax(amount, taxRatePercent), nil
	}
	if mathutil.PercentageFactor(taxRatePercent) <= 0 {
		return Result{}, fmt.Errorf("%w: %v%% leaves no net amount", ErrDegenerateRate, taxRatePercent)
	}
	return RemoveTax(amount, taxRatePercent), nil
}

// Gross returns the tax-inclusive figure of r, given the direction that
// produced it.
func (r Result) Gross(direction Direction) float64 {
	if direction == Remove {
		return r.OriginalAmount
	}
	return r.FinalAmount
}

// Net returns the tax-exclusive figure of r, given the direction that
// produced it.
func (r Result) Net(direction Direction) float64 {
	if direction == Remove {
		return r.FinalAmount
	}
	return r.OriginalAmount
}

// Rounded returns a copy of r with every field rounded to cents. It is meant
// for display and leaves r untouched.
func (r Result) Rounded() Result {
	return Result{
		OriginalAmount: mathutil.Round(r.OriginalAmount),
		TaxAmount:      mathutil.Round(r.TaxAmount),
		FinalAmount:    mathutil.Round(r.FinalAmount),
	}
}
