// Package format renders amounts for display. It never changes the numbers it
// is given: rounding to cents happens on a copy, at print time.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/tax-calculator/pkg/constants"
	"github.com/iwvelando/tax-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter prints two-decimal currency amounts with locale-aware grouping.
type Formatter struct {
	printer *message.Printer
	symbol  string
	tag     language.Tag
}

// NewFormatter builds a Formatter for a BCP 47 locale. An unparseable locale
// falls back to en-US.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.MustParse(constants.DefaultLocale)
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
		tag:     tag,
	}
}

// Locale returns the canonical tag the formatter prints with.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Symbol returns the currency symbol prefixed to amounts.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Format returns amount rounded to cents, e.g. "$1,234.56" or "-$0.50".
func (f *Formatter) Format(amount float64) string {
	rounded := mathutil.Round(amount)
	number := f.Number(math.Abs(rounded))
	if rounded < 0 {
		return "-" + f.symbol + number
	}
	return f.symbol + number
}

// Number returns amount rounded to cents with grouping but without a symbol.
func (f *Formatter) Number(amount float64) string {
	return f.printer.Sprintf("%.2f", mathutil.Round(amount))
}
