package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func TestRowFromTransaction(t *testing.T) {
	tx := sampleTxn()
	tx.MerchantRaw = "GROCERY MART"
	tx.MerchantCanonical = "Grocery Mart"
	tx.Category = "Groceries"
	tx.Channel = model.ChannelTransfer
	tx.Source = "csv"
	b := decimal.RequireFromString("74750.00")
	tx.Balance = &b

	row := rowFromTransaction(tx)
	assert.Equal(t, tx.ID, row.ID)
	assert.Equal(t, "u1", row.UserID)
	assert.Equal(t, "acc1", row.AccountID)
	assert.Equal(t, tx.DescriptionRaw, row.Description)
	assert.Equal(t, "74750.00", row.BalanceKey)
	assert.Equal(t, "debit", row.Type)
	assert.Equal(t, "transfer", row.Channel)
}

func TestRowFromTransaction_Sentinels(t *testing.T) {
	tx := sampleTxn()
	tx.Owner.AccountID = ""
	tx.Balance = nil

	row := rowFromTransaction(tx)
	// Absent account and balance land as concrete sentinel values so the
	// unique index treats them as equal rather than as SQL NULL wildcards.
	assert.Equal(t, model.AccountAbsent, row.AccountID)
	assert.Equal(t, model.BalanceAbsent, row.BalanceKey)
	assert.Nil(t, row.Balance)
}
