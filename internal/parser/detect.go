package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the closed set of supported statement formats.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Detect picks the statement format. An explicit content type wins; the
// filename extension is the fallback. No file content is read.
func Detect(filename, contentType string) (Format, error) {
	switch normalizeContentType(contentType) {
	case "text/csv", "application/csv", "application/vnd.ms-excel":
		return FormatCSV, nil
	case "application/pdf":
		return FormatPDF, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".pdf":
		return FormatPDF, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

// normalizeContentType strips parameters like "; charset=utf-8".
func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
