package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// PDFParser extracts raw rows from line-oriented statement PDFs.
type PDFParser struct{}

// Source returns the provenance tag for records this parser produces.
func (p *PDFParser) Source() string { return "pdf" }

// datePattern anchors a transaction line: it must BEGIN with a date token.
// Continuation lines of a wrapped description have no leading date and are
// skipped rather than misread as transactions.
var datePattern = regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}[/-]\d{1,4}|\d{4}-\d{1,2}-\d{1,2}|\d{1,2}[-/ ][A-Za-z]{3}[-/ ]\d{2,4})$`)

// numberPattern matches an amount-like token, optionally parenthesized or
// followed by a Cr/Dr marker.
var numberPattern = regexp.MustCompile(`^\(?-?(?:\d{1,3}(?:,\d{2,3})+|\d+)(?:\.\d{1,2})?\)?(?:cr|dr)?$`)

// Parse extracts the PDF's plain text and scans it line by line.
func (p *PDFParser) Parse(path string) (*Result, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrUnreadableFile, err)
	}

	var buf bytes.Buffer
	text, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrUnreadableFile, err)
	}
	if _, err := buf.ReadFrom(text); err != nil {
		return nil, fmt.Errorf("reading pdf text %s: %w", path, err)
	}

	return parseStatementText(buf.String()), nil
}

// parseStatementText recognizes a transaction only on a line that starts
// with a date token and carries at least two numeric fields: amount and
// balance. Everything else (headers, footers, wrapped description lines) is
// skipped.
func parseStatementText(text string) *Result {
	result := &Result{}
	for ln, line := range strings.Split(text, "\n") {
		row, ok, err := parseStatementLine(line)
		if err != nil {
			result.Dropped = append(result.Dropped, RowError{Line: ln + 1, Err: err})
			continue
		}
		if ok {
			result.Rows = append(result.Rows, row)
		}
	}
	return result
}

func parseStatementLine(line string) (RawRow, bool, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return RawRow{}, false, nil
	}
	if !datePattern.MatchString(fields[0]) {
		return RawRow{}, false, nil
	}

	// Collect numeric tokens from the tail of the line. The last one is the
	// running balance, the one before it the amount.
	tail := len(fields)
	var numbers []string
	for tail > 1 && isNumericToken(fields[tail-1]) {
		numbers = append([]string{fields[tail-1]}, numbers...)
		tail--
	}
	if len(numbers) < 2 {
		return RawRow{}, false, nil
	}

	amountTok := numbers[len(numbers)-2]
	balanceTok := numbers[len(numbers)-1]

	amount, err := parseAmount(strings.TrimSuffix(strings.TrimSuffix(strings.ToLower(amountTok), "cr"), "dr"))
	if err != nil {
		return RawRow{}, false, err
	}
	balance, err := parseAmount(strings.TrimSuffix(strings.TrimSuffix(strings.ToLower(balanceTok), "cr"), "dr"))
	if err != nil {
		return RawRow{}, false, err
	}

	row := RawRow{
		DateStr:     fields[0],
		Description: strings.Join(fields[1:tail], " "),
		Balance:     &balance,
	}

	// Direction: an explicit Cr/Dr marker on the amount token wins; without
	// one the single-signed-amount rule applies.
	lowerAmt := strings.ToLower(amountTok)
	switch {
	case strings.HasSuffix(lowerAmt, "cr"):
		row.Type = model.Credit
		row.Amount = amount.Abs()
	case strings.HasSuffix(lowerAmt, "dr"):
		row.Type = model.Debit
		row.Amount = amount.Abs()
	case amount.IsNegative():
		row.Type = model.Debit
		row.Amount = amount.Abs()
	default:
		row.Type = model.Credit
		row.Amount = amount
	}
	return row, true, nil
}

func isNumericToken(tok string) bool {
	return numberPattern.MatchString(strings.ToLower(tok))
}
