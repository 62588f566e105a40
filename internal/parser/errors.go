package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat means the file is neither CSV nor PDF.
	ErrUnsupportedFormat = errors.New("unsupported statement format")
	// ErrUnreadableFile means no encoding in the fallback list could
	// decode the file (or a PDF could not be opened).
	ErrUnreadableFile = errors.New("unreadable statement file")
)

// ColumnResolutionError reports that the required date/description columns
// could not be located. It names the columns that were found so the caller
// can see what the export actually contained.
type ColumnResolutionError struct {
	Found []string
}

func (e *ColumnResolutionError) Error() string {
	return fmt.Sprintf("could not resolve date/description columns, found: %s",
		strings.Join(e.Found, ", "))
}

// RowError records a single row that could not be parsed. Such rows are
// dropped and counted; they never abort the rest of the file.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }
