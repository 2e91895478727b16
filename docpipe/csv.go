// CLAUDE:SUMMARY CSV extractor — encoding/csv parse into a Table plus an aligned text rendition.
package docpipe

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode"
)

// extractCSV parses a CSV payload into a Table. The text rendition joins
// cells with " | " so row structure survives into downstream analysis.
func (p *Pipeline) extractCSV(ctx context.Context, data []byte) (*Result, error) {
	text, warnings := decodeText(data)

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv parse: %v", ErrExtractionFailure, err)
	}
	if len(records) == 0 {
		return &Result{Method: "csv", Warnings: warnings}, nil
	}

	table := Table{HasHeader: csvHasHeader(records)}
	rows := records
	if table.HasHeader {
		table.Headers = records[0]
		rows = records[1:]
	}
	table.Rows = rows

	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString(strings.Join(rec, " | "))
		sb.WriteByte('\n')
	}

	return &Result{
		Text:     strings.TrimSpace(sb.String()),
		Tables:   []Table{table},
		Warnings: warnings,
		Method:   "csv",
	}, nil
}

// csvHasHeader guesses at a header row: every first-row cell is non-numeric
// while at least one cell of the second row is numeric.
func csvHasHeader(records [][]string) bool {
	if len(records) < 2 {
		return false
	}
	for _, cell := range records[0] {
		if cell == "" || looksNumeric(cell) {
			return false
		}
	}
	for _, cell := range records[1] {
		if looksNumeric(cell) {
			return true
		}
	}
	return false
}

func looksNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',' || r == '-' || r == '+' || r == ' ' || r == '%':
		default:
			return false
		}
	}
	return digits > 0
}
