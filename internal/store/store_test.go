package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// flakyStore fails InsertOne for chosen transaction ids and delegates the
// rest to a Memory store.
type flakyStore struct {
	inner   *Memory
	failIDs map[string]bool
}

func (f *flakyStore) InsertOne(ctx context.Context, tx *model.Transaction) error {
	if f.failIDs[tx.ID] {
		return errors.New("connection reset")
	}
	return f.inner.InsertOne(ctx, tx)
}

func (f *flakyStore) Close() error { return nil }

func TestInsertBatch_CountsOutcomes(t *testing.T) {
	m := NewMemory()

	a := sampleTxn()
	a.ID = "a"
	b := sampleTxn()
	b.ID = "b"
	b.DescriptionRaw = "NEFT SALARY ACME CORP"
	dup := sampleTxn()
	dup.ID = "dup"

	r := InsertBatch(context.Background(), m, []*model.Transaction{a, b, dup}, 0, zerolog.Nop())
	assert.Equal(t, Report{Inserted: 2, Duplicates: 1, Errors: 0}, r)
	assert.Equal(t, 2, m.Len())
}

func TestInsertBatch_FailureIsIsolated(t *testing.T) {
	s := &flakyStore{inner: NewMemory(), failIDs: map[string]bool{"b": true}}

	a := sampleTxn()
	a.ID = "a"
	b := sampleTxn()
	b.ID = "b"
	b.DescriptionRaw = "NEFT SALARY ACME CORP"
	c := sampleTxn()
	c.ID = "c"
	c.DescriptionRaw = "POS SWIGGY BANGALORE"

	// The failing middle record must not stop a or c from landing.
	r := InsertBatch(context.Background(), s, []*model.Transaction{a, b, c}, 1, zerolog.Nop())
	assert.Equal(t, Report{Inserted: 2, Duplicates: 0, Errors: 1}, r)
	assert.Equal(t, 2, s.inner.Len())
}

func TestInsertBatch_Empty(t *testing.T) {
	r := InsertBatch(context.Background(), NewMemory(), nil, 0, zerolog.Nop())
	assert.Equal(t, Report{}, r)
}
