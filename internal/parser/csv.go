package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// CSVParser extracts raw rows from delimited statement exports with
// arbitrary header naming.
type CSVParser struct{}

// Source returns the provenance tag for records this parser produces.
func (p *CSVParser) Source() string { return "csv" }

// Parse reads the whole file (header position varies between banks, so no
// sampling), applies the encoding fallback, locates the header row past any
// preamble, resolves columns and converts every data row. Rows that fail to
// parse are dropped and reported in the result.
func (p *CSVParser) Parse(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text, encName, err := decodeStatement(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv %s: %w", path, err)
	}

	cols, headerIdx, err := locateHeader(records)
	if err != nil {
		return nil, err
	}

	result := &Result{Encoding: encName}
	for i := headerIdx + 1; i < len(records); i++ {
		rec := records[i]
		if emptyRecord(rec) {
			continue
		}
		row, err := rowFromRecord(rec, cols)
		if err != nil {
			result.Dropped = append(result.Dropped, RowError{Line: i + 1, Err: err})
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// locateHeader scans for the first row whose cells resolve the required
// columns. Bank exports often put account metadata above the real header.
// When nothing resolves, the error names the row that matched the most
// roles: the closest header candidate, not the preamble above it.
func locateHeader(records [][]string) (ColumnMap, int, error) {
	var best []string
	bestRoles := -1
	for i, rec := range records {
		if emptyRecord(rec) {
			continue
		}
		cols, err := Resolve(rec)
		if err == nil && cols.HasAmount() {
			return cols, i, nil
		}
		if n := resolvedRoles(cols); n > bestRoles {
			best, bestRoles = rec, n
		}
	}
	found := make([]string, 0, len(best))
	for _, h := range best {
		if h = strings.TrimSpace(h); h != "" {
			found = append(found, h)
		}
	}
	return ColumnMap{}, -1, &ColumnResolutionError{Found: found}
}

func resolvedRoles(cm ColumnMap) int {
	n := 0
	for _, idx := range []int{cm.Date, cm.Description, cm.Debit, cm.Credit, cm.Amount, cm.Balance, cm.Reference} {
		if idx >= 0 {
			n++
		}
	}
	return n
}

func rowFromRecord(rec []string, cols ColumnMap) (RawRow, error) {
	dateStr := cell(rec, cols.Date)
	if dateStr == "" {
		return RawRow{}, errors.New("missing date")
	}

	amount, txType, ambiguous, err := ResolveAmount(rec, cols)
	if err != nil {
		return RawRow{}, err
	}

	row := RawRow{
		DateStr:     dateStr,
		Description: cell(rec, cols.Description),
		Amount:      amount,
		Type:        txType,
		Ambiguous:   ambiguous,
	}

	// Balance is optional, but a parseable zero is a real value and must
	// survive as zero rather than absent.
	if bal := cell(rec, cols.Balance); bal != "" {
		b, err := parseAmount(bal)
		if err != nil {
			return RawRow{}, fmt.Errorf("balance cell: %w", err)
		}
		row.Balance = &b
	}
	return row, nil
}

func emptyRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
