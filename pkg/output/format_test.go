package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/tax-calculator/internal/calculator"
	"github.com/iwvelando/tax-calculator/pkg/format"
	"github.com/iwvelando/tax-calculator/pkg/taxmath"
)

func TestPrettyFormatAdd(t *testing.T) {
	var buf bytes.Buffer
	f := format.NewFormatter("en-US", "$")

	PrettyFormat(&buf, f, taxmath.Add, 20, taxmath.AddTax(1000, 20))
	output := buf.String()

	if !strings.Contains(output, "--- Calculates Gross from Net at 20% ---") {
		t.Errorf("PrettyFormat missing header, got %q", output)
	}
	if !strings.Contains(output, "Original Price | $1,000.00") {
		t.Errorf("PrettyFormat missing original price, got %q", output)
	}
	if !strings.Contains(output, "Tax Amount     | + $200.00") {
		t.Errorf("PrettyFormat missing tax amount, got %q", output)
	}
	if !strings.Contains(output, "Gross Price    | $1,200.00") {
		t.Errorf("PrettyFormat missing gross price, got %q", output)
	}
}

func TestPrettyFormatRemove(t *testing.T) {
	var buf bytes.Buffer
	f := format.NewFormatter("en-US", "$")

	PrettyFormat(&buf, f, taxmath.Remove, 8.875, taxmath.RemoveTax(100, 8.875))
	output := buf.String()

	if !strings.Contains(output, "Calculates Net from Gross at 8.875%") {
		t.Errorf("PrettyFormat missing header, got %q", output)
	}
	if !strings.Contains(output, "Net Price      | $91.85") {
		t.Errorf("PrettyFormat missing net price, got %q", output)
	}
	if !strings.Contains(output, "Tax Amount     | + $8.15") {
		t.Errorf("PrettyFormat missing tax amount, got %q", output)
	}
}

func TestPrettyBatchSkipsMissingResults(t *testing.T) {
	var buf bytes.Buffer
	f := format.NewFormatter("en-US", "$")
	outcomes := []calculator.Outcome{
		{Request: calculator.Request{Amount: "100", Rate: "20", Direction: taxmath.Add}, Result: taxmath.AddTax(100, 20), OK: true},
		{Request: calculator.Request{Amount: "abc", Rate: "20", Direction: taxmath.Add}},
		{Request: calculator.Request{Amount: "110", Rate: "10", Direction: taxmath.Remove}, Result: taxmath.RemoveTax(110, 10), OK: true},
	}

	PrettyBatch(&buf, f, outcomes)
	output := buf.String()

	if strings.Count(output, "---") != 4 {
		t.Errorf("expected two headers, got %q", output)
	}
	if strings.Contains(output, "abc") {
		t.Errorf("invalid row must not be displayed, got %q", output)
	}
	if !strings.Contains(output, "\n\n--- Calculates Net from Gross at 10% ---") {
		t.Errorf("expected blank line between results, got %q", output)
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	outcomes := []calculator.Outcome{
		{Request: calculator.Request{Amount: "1000", Rate: "20", Direction: taxmath.Add}, Result: taxmath.AddTax(1000, 20), OK: true},
		{Request: calculator.Request{Amount: "abc", Rate: "20", Direction: taxmath.Remove}},
		{Request: calculator.Request{Amount: "100", Rate: "20", Direction: taxmath.Remove}, Result: taxmath.RemoveTax(100, 20), OK: true},
	}

	if err := CsvFormat(&buf, outcomes); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	expected := []string{
		"amount,rate,direction,original amount,tax amount,final amount",
		"1000,20,add,1000.00,200.00,1200.00",
		"abc,20,remove,,,",
		"100,20,remove,100.00,16.67,83.33",
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d: %q", len(expected), len(lines), buf.String())
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], expected[i])
		}
	}
}

func TestCsvFormatMatchesDisplayRounding(t *testing.T) {
	// 0.125 is an exact binary tie; display rounding takes it up to 0.13.
	result := taxmath.Result{OriginalAmount: 0.125, TaxAmount: 0, FinalAmount: 0.125}
	outcomes := []calculator.Outcome{
		{Request: calculator.Request{Amount: "0.125", Rate: "0", Direction: taxmath.Add}, Result: result, OK: true},
	}

	var buf bytes.Buffer
	if err := CsvFormat(&buf, outcomes); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[1] != "0.125,0,add,0.13,0.00,0.13" {
		t.Fatalf("unexpected CSV %q", buf.String())
	}

	display := format.NewFormatter("en-US", "$").Format(result.FinalAmount)
	if display != "$0.13" {
		t.Errorf("display = %q, expected CSV and display to agree on $0.13", display)
	}
}

func TestCsvFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, nil); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != strings.Join(CsvHeader, ",") {
		t.Errorf("expected header only, got %q", buf.String())
	}
}
