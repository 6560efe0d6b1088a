package calculator

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/tax-calculator/pkg/taxmath"
	"go.uber.org/zap"
)

// Request is one conversion as entered by a user or read from a batch file.
type Request struct {
	Amount    string
	Rate      string
	Direction taxmath.Direction
}

// Outcome pairs a Request with its result. OK is false when the request
// produced no result.
type Outcome struct {
	Request Request
	Result  taxmath.Result
	OK      bool
}

// CalculateBatch converts every request independently. Invalid rows produce
// an Outcome with OK set to false and never stop the batch.
func (c *Calculator) CalculateBatch(requests []Request) []Outcome {
	outcomes := make([]Outcome, 0, len(requests))
	skipped := 0
	for _, req := range requests {
		result, ok := c.Calculate(req.Amount, req.Rate, req.Direction)
		if !ok {
			skipped++
		}
		outcomes = append(outcomes, Outcome{Request: req, Result: result, OK: ok})
	}

	c.logger.Info("batch converted",
		zap.String("op", "calculator.CalculateBatch"),
		zap.Int("rows", len(requests)),
		zap.Int("skipped", skipped),
	)
	return outcomes
}

// ReadRequests parses CSV rows of the form amount,rate[,direction]. A first
// row starting with "amount" is treated as a header. Rows without a direction
// use defaultDirection. Values are kept as text; validation happens when the
// batch is calculated.
func ReadRequests(r io.Reader, defaultDirection taxmath.Direction) ([]Request, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var requests []Request
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read batch row %d: %w", line, err)
		}
		if line == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "amount") {
			continue
		}
		if len(record) < 2 || len(record) > 3 {
			return nil, fmt.Errorf("batch row %d: expected amount,rate[,direction], got %d fields", line, len(record))
		}

		req := Request{
			Amount:    record[0],
			Rate:      record[1],
			Direction: defaultDirection,
		}
		if len(record) == 3 && strings.TrimSpace(record[2]) != "" {
			req.Direction = taxmath.Direction(strings.ToLower(strings.TrimSpace(record[2])))
		}
		requests = append(requests, req)
	}

	return requests, nil
}
