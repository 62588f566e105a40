package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// transactionRow is the gorm mapping for the transactions table. The
// composite unique index is the exact-match persistence guard; absent
// account and balance are stored as sentinels so they collide as equal
// values instead of acting as wildcards.
type transactionRow struct {
	ID                string           `gorm:"primaryKey;size:36"`
	UserID            string           `gorm:"size:64;not null;uniqueIndex:idx_owner_txn"`
	AccountID         string           `gorm:"size:64;not null;uniqueIndex:idx_owner_txn"`
	Date              time.Time        `gorm:"type:date;not null;uniqueIndex:idx_owner_txn"`
	Amount            decimal.Decimal  `gorm:"type:numeric(18,2);not null;uniqueIndex:idx_owner_txn"`
	Description       string           `gorm:"size:512;not null;uniqueIndex:idx_owner_txn"`
	BalanceKey        string           `gorm:"size:32;not null;uniqueIndex:idx_owner_txn"`
	Type              string           `gorm:"size:8;not null"`
	Balance           *decimal.Decimal `gorm:"type:numeric(18,2)"`
	MerchantRaw       string           `gorm:"size:256"`
	MerchantCanonical string           `gorm:"size:128"`
	Category          string           `gorm:"size:64"`
	Channel           string           `gorm:"size:16"`
	Source            string           `gorm:"size:16"`
	Duplicates        int
	CreatedAt         time.Time
}

func (transactionRow) TableName() string { return "transactions" }

// Postgres is the gorm-backed Store.
type Postgres struct {
	db *gorm.DB
}

// OpenPostgres connects using the DSN and migrates the transactions table.
// TranslateError is required so unique violations surface as
// gorm.ErrDuplicatedKey.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connecting postgres: %w", err)
	}
	if err := db.AutoMigrate(&transactionRow{}); err != nil {
		return nil, fmt.Errorf("migrating transactions: %w", err)
	}
	return &Postgres{db: db}, nil
}

// InsertOne writes a single record in its own implicit transaction, mapping
// a unique-index violation to ErrDuplicate.
func (p *Postgres) InsertOne(ctx context.Context, tx *model.Transaction) error {
	row := rowFromTransaction(tx)
	if err := p.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicate, tx.ID)
		}
		return fmt.Errorf("inserting transaction %s: %w", tx.ID, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("unwrapping db: %w", err)
	}
	return sqlDB.Close()
}

func rowFromTransaction(tx *model.Transaction) *transactionRow {
	return &transactionRow{
		ID:                tx.ID,
		UserID:            tx.Owner.UserID,
		AccountID:         tx.Owner.Account(),
		Date:              tx.Date,
		Amount:            tx.Amount,
		Description:       tx.DescriptionRaw,
		BalanceKey:        tx.BalanceKey(),
		Type:              string(tx.Type),
		Balance:           tx.Balance,
		MerchantRaw:       tx.MerchantRaw,
		MerchantCanonical: tx.MerchantCanonical,
		Category:          tx.Category,
		Channel:           string(tx.Channel),
		Source:            tx.Source,
		Duplicates:        tx.Duplicates,
	}
}
