package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type is the direction of a transaction. Amounts are stored as
// non-negative magnitudes; direction is carried solely by Type.
type Type string

const (
	Debit  Type = "debit"
	Credit Type = "credit"
)

// Channel is a coarse classification of the payment rail used.
type Channel string

const (
	ChannelCard     Channel = "card"
	ChannelTransfer Channel = "transfer"
	ChannelCash     Channel = "cash"
	ChannelOther    Channel = "other"
)

// AccountAbsent is stored in place of a missing account id so that
// uniqueness treats "no account" as one concrete value rather than a
// wildcard.
const AccountAbsent = "-"

// BalanceAbsent is the uniqueness-key stand-in for a missing balance.
// A balance that parses to zero is a real value and never maps to this.
const BalanceAbsent = "-"

// OwnerKey is the (user, account-or-absent) scope within which
// uniqueness is enforced. The pipeline treats it as opaque input.
type OwnerKey struct {
	UserID    string
	AccountID string // empty = absent
}

// Account returns the account id with the absent sentinel applied.
func (k OwnerKey) Account() string {
	if k.AccountID == "" {
		return AccountAbsent
	}
	return k.AccountID
}

// Transaction is the canonical representation of one statement line.
// DescriptionRaw, Amount, Date and Type are immutable once persisted;
// MerchantCanonical and Category are derived and may be corrected later.
type Transaction struct {
	ID                string
	Owner             OwnerKey
	Date              time.Time // date precision, UTC midnight
	Amount            decimal.Decimal
	Type              Type
	DescriptionRaw    string
	MerchantRaw       string
	MerchantCanonical string // "" = unresolved
	Category          string
	Channel           Channel
	Balance           *decimal.Decimal // nil = absent from source
	Source            string           // which parser produced it
	Duplicates        int              // in-batch fuzzy duplicates folded into this record
}

// SignedAmount reconstructs the source's signed amount from (Amount, Type).
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// BalanceKey returns the normalized balance component of the uniqueness
// key: the fixed sentinel when absent, the exact value otherwise.
func (t *Transaction) BalanceKey() string {
	if t.Balance == nil {
		return BalanceAbsent
	}
	return t.Balance.StringFixed(2)
}
