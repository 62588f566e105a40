package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

var errNoAmount = errors.New("no amount in row")

// currencyMarkers are stripped from amount cells before numeric parsing.
// Multi-character markers with a trailing dot come first so "rs." does not
// leave a stray decimal point behind.
var currencyMarkers = []string{"rs.", "rs", "inr", "usd", "eur", "gbp", "₹", "$", "€", "£"}

// ResolveAmount computes the non-negative magnitude and direction for one
// record. With separate debit/credit columns the non-empty cell decides;
// when both carry a value the debit side wins deterministically and the
// ambiguous flag is raised so the caller can surface it. A single signed
// amount column maps non-negative to credit, negative to debit.
func ResolveAmount(record []string, cols ColumnMap) (decimal.Decimal, model.Type, bool, error) {
	if cols.Debit >= 0 && cols.Credit >= 0 {
		debit, err := cellAmount(record, cols.Debit)
		if err != nil {
			return decimal.Zero, "", false, fmt.Errorf("debit cell: %w", err)
		}
		credit, err := cellAmount(record, cols.Credit)
		if err != nil {
			return decimal.Zero, "", false, fmt.Errorf("credit cell: %w", err)
		}
		hasDebit := !debit.IsZero()
		hasCredit := !credit.IsZero()
		switch {
		case hasDebit && hasCredit:
			return debit.Abs(), model.Debit, true, nil
		case hasDebit:
			return debit.Abs(), model.Debit, false, nil
		case hasCredit:
			return credit.Abs(), model.Credit, false, nil
		}
		// Both empty: fall through to a signed amount column if present.
	}

	if cols.Amount >= 0 {
		amt, err := cellAmount(record, cols.Amount)
		if err != nil {
			return decimal.Zero, "", false, fmt.Errorf("amount cell: %w", err)
		}
		if cell(record, cols.Amount) == "" {
			return decimal.Zero, "", false, errNoAmount
		}
		if amt.IsNegative() {
			return amt.Abs(), model.Debit, false, nil
		}
		return amt, model.Credit, false, nil
	}

	return decimal.Zero, "", false, errNoAmount
}

// cellAmount parses the cell at idx, treating a missing or empty cell as
// zero. An unparsable non-empty cell is an error: the row is dropped, never
// silently zeroed.
func cellAmount(record []string, idx int) (decimal.Decimal, error) {
	s := cell(record, idx)
	if s == "" {
		return decimal.Zero, nil
	}
	return parseAmount(s)
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseAmount cleans thousands separators, currency symbols and accounting
// parentheses before numeric parsing.
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ToLower(strings.TrimSpace(s))

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	for _, marker := range currencyMarkers {
		cleaned = strings.ReplaceAll(cleaned, marker, "")
	}
	// Some exports suffix cells with a redundant Dr/Cr marker; the column
	// role already carries the direction.
	cleaned = strings.TrimSpace(cleaned)
	if strings.HasSuffix(cleaned, "dr") || strings.HasSuffix(cleaned, "cr") {
		cleaned = strings.TrimSpace(cleaned[:len(cleaned)-2])
	}

	var b strings.Builder
	for _, r := range cleaned {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == ',', r == ' ', r == ' ':
			// grouping separators
		default:
			return decimal.Zero, fmt.Errorf("unparsable amount %q", s)
		}
	}
	if b.Len() == 0 {
		return decimal.Zero, fmt.Errorf("unparsable amount %q", s)
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparsable amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
