package taxmath

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/tax-calculator/pkg/constants"
)

// ErrUnknownDirection is returned for any direction other than add or remove.
var ErrUnknownDirection = errors.New("unknown conversion direction")

// Direction selects which conversion to run.
type Direction string

const (
	// Add converts net to gross.
	Add Direction = constants.DirectionAdd
	// Remove converts gross to net.
	Remove Direction = constants.DirectionRemove
)

// ParseDirection parses "add" or "remove", ignoring case and surrounding space.
func ParseDirection(value string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(value))); d {
	case Add, Remove:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownDirection, value, Add, Remove)
	}
}

// Valid reports whether d is Add or Remove.
func (d Direction) Valid() bool {
	return d == Add || d == Remove
}

// FinalLabel names the figure a conversion in this direction ends on.
func (d Direction) FinalLabel() string {
	if d == Remove {
		return "Net Price"
	}
	return "Gross Price"
}

// Description is the one-line hint shown next to the direction toggle.
func (d Direction) Description() string {
	if d == Remove {
		return "Calculates Net from Gross"
	}
	return "Calculates Gross from Net"
}
