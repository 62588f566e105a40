// Package runlog appends per-file ingestion summaries to a CSV audit log,
// so operators can answer "what did that import do" after the fact.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Entry is one ingest summary row in the run log.
type Entry struct {
	Timestamp  time.Time
	File       string
	Source     string
	Found      int
	Imported   int
	Duplicates int
	Errors     int
	Dropped    int
}

// Header is the CSV header for the run log.
const Header = "timestamp,file,source,found,imported,duplicates,errors,dropped"

const (
	numFields     = 8
	colTimestamp  = 0
	colFile       = 1
	colSource     = 2
	colFound      = 3
	colImported   = 4
	colDuplicates = 5
	colErrors     = 6
	colDropped    = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colSource] = e.Source
	row[colFound] = strconv.Itoa(e.Found)
	row[colImported] = strconv.Itoa(e.Imported)
	row[colDuplicates] = strconv.Itoa(e.Duplicates)
	row[colErrors] = strconv.Itoa(e.Errors)
	row[colDropped] = strconv.Itoa(e.Dropped)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, numFields)
	for _, col := range []int{colFound, colImported, colDuplicates, colErrors, colDropped} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts[col] = n
	}

	return Entry{
		Timestamp:  ts,
		File:       record[colFile],
		Source:     record[colSource],
		Found:      counts[colFound],
		Imported:   counts[colImported],
		Duplicates: counts[colDuplicates],
		Errors:     counts[colErrors],
		Dropped:    counts[colDropped],
	}, nil
}

// Append writes entries to the log at path, creating the file and header if
// needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating run log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	w := csv.NewWriter(f)
	for _, e := range entries {
		if err := w.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing run log row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing run log: %w", err)
	}
	return nil
}

// Read loads all entries from the log at path. A missing file is an empty
// log.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = numFields

	var entries []Entry
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading run log: %w", err)
		}
		if first {
			first = false
			if record[colTimestamp] == "timestamp" {
				continue
			}
		}
		e, err := UnmarshalEntry(record)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
