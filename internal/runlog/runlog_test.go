package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(file string) Entry {
	return Entry{
		Timestamp:  time.Date(2024, time.April, 1, 10, 30, 0, 0, time.UTC),
		File:       file,
		Source:     "csv",
		Found:      426,
		Imported:   420,
		Duplicates: 4,
		Errors:     0,
		Dropped:    2,
	}
}

func TestAppendRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")

	require.NoError(t, Append(path, []Entry{entry("statement_april.csv")}))
	require.NoError(t, Append(path, []Entry{entry("statement_may.csv")}))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entry("statement_april.csv"), entries[0])
	assert.Equal(t, "statement_may.csv", entries[1].File)
}

func TestAppend_WritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")

	require.NoError(t, Append(path, []Entry{entry("a.csv")}))
	require.NoError(t, Append(path, []Entry{entry("b.csv")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,file"))
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, Header, lines[0])
	assert.Len(t, lines, 3)
}

func TestRead_MissingFileIsEmpty(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnmarshalEntry_BadInput(t *testing.T) {
	_, err := UnmarshalEntry([]string{"too", "short"})
	assert.Error(t, err)

	row := MarshalEntry(entry("a.csv"))
	row[0] = "notatime"
	_, err = UnmarshalEntry(row)
	assert.Error(t, err)

	row = MarshalEntry(entry("a.csv"))
	row[3] = "many"
	_, err = UnmarshalEntry(row)
	assert.Error(t, err)
}
