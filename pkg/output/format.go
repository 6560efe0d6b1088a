// Package output provides utilities for formatting and displaying conversion results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/tax-calculator/internal/calculator"
	"github.com/iwvelando/tax-calculator/pkg/format"
	"github.com/iwvelando/tax-calculator/pkg/taxmath"
)

// PrettyFormat writes a human-readable breakdown of one conversion.
func PrettyFormat(w io.Writer, f *format.Formatter, direction taxmath.Direction, rate float64, result taxmath.Result) {
	_, _ = fmt.Fprintf(w, "--- %s at %s%% ---\n", direction.Description(), strconv.FormatFloat(rate, 'f', -1, 64))
	_, _ = fmt.Fprintf(w, "Original Price | %s\n", f.Format(result.OriginalAmount))
	_, _ = fmt.Fprintf(w, "Tax Amount     | + %s\n", f.Format(result.TaxAmount))
	_, _ = fmt.Fprintf(w, "%-14s | %s\n", direction.FinalLabel(), f.Format(result.FinalAmount))
}

// PrettyBatch writes every successful outcome in pretty form, separated by
// blank lines. Outcomes without a result are omitted.
func PrettyBatch(w io.Writer, f *format.Formatter, outcomes []calculator.Outcome) {
	first := true
	for _, outcome := range outcomes {
		if !outcome.OK {
			continue
		}
		if !first {
			_, _ = fmt.Fprintln(w)
		}
		first = false
		rate, _ := strconv.ParseFloat(strings.TrimSpace(outcome.Request.Rate), 64)
		PrettyFormat(w, f, outcome.Request.Direction, rate, outcome.Result)
	}
}

// CsvHeader is the first row written by CsvFormat.
var CsvHeader = []string{"amount", "rate", "direction", "original amount", "tax amount", "final amount"}

// CsvFormat writes outcomes in comma-separated value format. Amounts are
// rounded to cents without grouping. Rows without a result keep their input
// columns and leave the result columns empty.
func CsvFormat(w io.Writer, outcomes []calculator.Outcome) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CsvHeader); err != nil {
		return err
	}

	for _, outcome := range outcomes {
		row := []string{
			outcome.Request.Amount,
			outcome.Request.Rate,
			string(outcome.Request.Direction),
			"", "", "",
		}
		if outcome.OK {
			rounded := outcome.Result.Rounded()
			row[3] = cents(rounded.OriginalAmount)
			row[4] = cents(rounded.TaxAmount)
			row[5] = cents(rounded.FinalAmount)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func cents(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
