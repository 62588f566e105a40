// Package store persists canonical transactions. It is the authoritative
// duplicate-prevention layer: every insert is an isolated write, and exact
// uniqueness violations surface as ErrDuplicate rather than real errors.
package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// ErrDuplicate reports an exact-match uniqueness violation. Callers count
// it separately from errors: "nothing new to import" is not a failure.
var ErrDuplicate = errors.New("duplicate transaction")

// Store is the storage collaborator contract. InsertOne must fail with
// ErrDuplicate (possibly wrapped) on a uniqueness violation and enforce the
// owner-scoped (date, amount, description, normalized balance) invariant,
// treating an absent balance as one concrete value rather than a wildcard.
type Store interface {
	InsertOne(ctx context.Context, tx *model.Transaction) error
	Close() error
}

// Report summarizes one InsertBatch call.
type Report struct {
	Inserted   int
	Duplicates int
	Errors     int
}

// InsertBatch writes each record as its own isolated operation. A duplicate
// or failure never affects records already written or still to come;
// sharing one transaction across the batch would let a single duplicate
// poison every other record's commit. Progress is logged every
// progressEvery records for operator visibility on large files.
func InsertBatch(ctx context.Context, s Store, txns []*model.Transaction, progressEvery int, log zerolog.Logger) Report {
	var r Report
	for i, tx := range txns {
		err := s.InsertOne(ctx, tx)
		switch {
		case err == nil:
			r.Inserted++
		case errors.Is(err, ErrDuplicate):
			r.Duplicates++
		default:
			r.Errors++
			log.Error().Err(err).Str("txn_id", tx.ID).Msg("insert failed")
		}
		if progressEvery > 0 && (i+1)%progressEvery == 0 {
			log.Info().
				Int("processed", i+1).
				Int("total", len(txns)).
				Int("inserted", r.Inserted).
				Int("duplicates", r.Duplicates).
				Msg("insert progress")
		}
	}
	return r
}
