// Package calculator is the boundary between untrusted text input and the
// pure conversions in taxmath. Invalid input never produces an error for the
// end user: it produces no result at all.
package calculator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/tax-calculator/pkg/mathutil"
	"github.com/iwvelando/tax-calculator/pkg/taxmath"
	"go.uber.org/zap"
)

// Validation failures reported by ParseInputs.
var (
	ErrInvalidAmount  = errors.New("amount is not a finite number")
	ErrInvalidRate    = errors.New("tax rate is not a finite number")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrNegativeRate   = errors.New("tax rate must not be negative")

	// ErrNonFiniteResult is returned when valid inputs overflow float64.
	ErrNonFiniteResult = errors.New("conversion result is not finite")
)

// Inputs are validated numeric inputs: finite and non-negative.
type Inputs struct {
	Amount float64
	Rate   float64
}

// ParseInputs parses and validates the raw amount and rate text.
func ParseInputs(amountText, rateText string) (Inputs, error) {
	amount, err := parseFinite(amountText)
	if err != nil {
		return Inputs{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amountText)
	}
	rate, err := parseFinite(rateText)
	if err != nil {
		return Inputs{}, fmt.Errorf("%w: %q", ErrInvalidRate, rateText)
	}

	if amount < 0 {
		return Inputs{}, fmt.Errorf("%w: %v", ErrNegativeAmount, amount)
	}
	if rate < 0 {
		return Inputs{}, fmt.Errorf("%w: %v", ErrNegativeRate, rate)
	}

	return Inputs{Amount: amount, Rate: rate}, nil
}

func parseFinite(text string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if !mathutil.IsFinite(value) {
		return 0, fmt.Errorf("non-finite value %v", value)
	}
	return value, nil
}

// Calculate validates the inputs and runs the conversion for direction. The
// boolean is false when the input is invalid or the direction is unknown;
// the Result is then the zero value and must not be displayed.
func Calculate(amountText, rateText string, direction taxmath.Direction) (taxmath.Result, bool) {
	result, err := evaluate(amountText, rateText, direction)
	if err != nil {
		return taxmath.Result{}, false
	}
	return result, true
}

func evaluate(amountText, rateText string, direction taxmath.Direction) (taxmath.Result, error) {
	inputs, err := ParseInputs(amountText, rateText)
	if err != nil {
		return taxmath.Result{}, err
	}
	result, err := taxmath.Convert(direction, inputs.Amount, inputs.Rate)
	if err != nil {
		return taxmath.Result{}, err
	}
	if !mathutil.IsFinite(result.OriginalAmount) || !mathutil.IsFinite(result.TaxAmount) ||
		!mathutil.IsFinite(result.FinalAmount) {
		return taxmath.Result{}, fmt.Errorf("%w: %+v", ErrNonFiniteResult, result)
	}
	return result, nil
}

// Calculator wraps Calculate with logging of the reason a request produced
// no result.
type Calculator struct {
	logger *zap.Logger
}

// New returns a Calculator. A nil logger disables logging.
func New(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Calculate behaves like the package-level Calculate.
func (c *Calculator) Calculate(amountText, rateText string, direction taxmath.Direction) (taxmath.Result, bool) {
	result, err := evaluate(amountText, rateText, direction)
	if err != nil {
		c.logger.Debug("no result for conversion request",
			zap.String("op", "calculator.Calculate"),
			zap.String("amount", amountText),
			zap.String("rate", rateText),
			zap.String("direction", string(direction)),
			zap.Error(err),
		)
		return taxmath.Result{}, false
	}
	return result, true
}
