// Package parser turns bank and credit-card statement exports into raw
// transaction rows. Format detection picks one of a closed set of parsers;
// column and amount resolution tolerate the arbitrary header naming and
// amount layouts found in real exports.
package parser

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// RawRow is one statement line as extracted by a parser, before canonical
// formatting.
type RawRow struct {
	DateStr     string
	Description string
	Amount      decimal.Decimal // non-negative magnitude
	Type        model.Type
	Balance     *decimal.Decimal // nil = absent; explicit zero is kept
	Ambiguous   bool             // both debit and credit cells carried a value
}

// Result is a parser's output for one file. Dropped rows are counted and
// reported, never silently ignored.
type Result struct {
	Rows     []RawRow
	Dropped  []RowError
	Encoding string // for CSV, the encoding that decoded the file
}

// Parser extracts raw rows from a statement file.
type Parser interface {
	Parse(path string) (*Result, error)
	Source() string
}

// ForFormat returns the parser for a detected format. Adding a format means
// adding a case here, not patching callers.
func ForFormat(f Format) Parser {
	switch f {
	case FormatCSV:
		return &CSVParser{}
	case FormatPDF:
		return &PDFParser{}
	}
	return nil
}
