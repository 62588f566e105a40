package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func TestCSVParser_DebitCreditExport(t *testing.T) {
	p := &CSVParser{}
	res, err := p.Parse("../../testdata/statement_axis.csv")
	require.NoError(t, err)

	assert.Equal(t, "utf-8", res.Encoding)
	assert.Len(t, res.Rows, 6)
	// One unparsable amount and one row with no amount at all.
	assert.Len(t, res.Dropped, 2)

	first := res.Rows[0]
	assert.Equal(t, "01/04/2024", first.DateStr)
	assert.Equal(t, "UPI/GROCERY MART/408912345678/payment/okhdfc", first.Description)
	assert.Equal(t, "1250.00", first.Amount.StringFixed(2))
	assert.Equal(t, model.Debit, first.Type)
	require.NotNil(t, first.Balance)
	assert.Equal(t, "74750.00", first.Balance.StringFixed(2))

	salary := res.Rows[1]
	assert.Equal(t, model.Credit, salary.Type)
	assert.Equal(t, "85000.00", salary.Amount.StringFixed(2))
}

func TestCSVParser_ZeroBalanceIsKept(t *testing.T) {
	p := &CSVParser{}
	res, err := p.Parse("../../testdata/statement_axis.csv")
	require.NoError(t, err)

	reversal := res.Rows[5]
	assert.Equal(t, "CHARGES REVERSAL CREDIT", reversal.Description)
	// An explicit zero balance is a value, not an absent balance.
	require.NotNil(t, reversal.Balance)
	assert.True(t, reversal.Balance.IsZero())
}

func TestCSVParser_SignedAmountExport(t *testing.T) {
	p := &CSVParser{}
	res, err := p.Parse("../../testdata/statement_signed.csv")
	require.NoError(t, err)

	require.Len(t, res.Rows, 3)
	assert.Empty(t, res.Dropped)

	assert.Equal(t, model.Debit, res.Rows[0].Type)
	assert.Equal(t, "4.00", res.Rows[0].Amount.StringFixed(2))
	assert.Equal(t, model.Credit, res.Rows[1].Type)
	assert.Equal(t, model.Debit, res.Rows[2].Type)
	assert.Equal(t, "12.50", res.Rows[2].Amount.StringFixed(2))
}

func TestCSVParser_UnknownHeaders(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse("../../testdata/statement_unknown.csv")
	require.Error(t, err)

	var cre *ColumnResolutionError
	require.ErrorAs(t, err, &cre)
	assert.Equal(t, []string{"Foo", "Bar", "Baz"}, cre.Found)
}

func TestCSVParser_ErrorNamesClosestHeaderCandidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preamble.csv")
	content := "Statement of Account,,\n" +
		"Branch 042,,\n" +
		"Foo,Amount,Balance\n" +
		"1,2,3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p := &CSVParser{}
	_, err := p.Parse(path)
	require.Error(t, err)

	// The row matching the most roles is reported, not the preamble line.
	var cre *ColumnResolutionError
	require.ErrorAs(t, err, &cre)
	assert.Equal(t, []string{"Foo", "Amount", "Balance"}, cre.Found)
}

func TestCSVParser_Windows1252File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.csv")
	data := []byte("Date,Narration,Amount\n01/04/2024,CAF\xc9 PARIS,-12.00\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p := &CSVParser{}
	res, err := p.Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "windows-1252", res.Encoding)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "CAFÉ PARIS", res.Rows[0].Description)
}

func TestCSVParser_BinaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.csv")
	require.NoError(t, os.WriteFile(path, []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0x01}, 0o644))

	p := &CSVParser{}
	_, err := p.Parse(path)
	assert.ErrorIs(t, err, ErrUnreadableFile)
}

func TestCSVParser_MissingFile(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
