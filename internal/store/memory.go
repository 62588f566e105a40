package store

import (
	"context"
	"strings"
	"sync"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Memory is an in-memory Store used by tests and dry runs. It enforces the
// same uniqueness invariant as the Postgres store.
type Memory struct {
	mu    sync.Mutex
	byKey map[string]*model.Transaction
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{byKey: make(map[string]*model.Transaction)}
}

// InsertOne stores the record, failing with ErrDuplicate when its
// uniqueness key is already present.
func (m *Memory) InsertOne(_ context.Context, tx *model.Transaction) error {
	key := uniquenessKey(tx)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byKey[key]; exists {
		return ErrDuplicate
	}
	cp := *tx
	m.byKey[key] = &cp
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Len returns the number of persisted records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byKey)
}

// All returns a copy of every persisted record, in no particular order.
func (m *Memory) All() []*model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Transaction, 0, len(m.byKey))
	for _, tx := range m.byKey {
		cp := *tx
		out = append(out, &cp)
	}
	return out
}

// uniquenessKey mirrors the composite unique index of the Postgres store:
// owner scope (absent account normalized), date, amount, raw description
// and normalized balance.
func uniquenessKey(tx *model.Transaction) string {
	return strings.Join([]string{
		tx.Owner.UserID,
		tx.Owner.Account(),
		tx.Date.Format("2006-01-02"),
		tx.Amount.StringFixed(2),
		tx.DescriptionRaw,
		tx.BalanceKey(),
	}, "\x1f")
}
