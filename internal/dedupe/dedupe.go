// Package dedupe folds fuzzy duplicates within a single ingestion batch.
// It never consults persisted history; re-ingestion of an old file is
// handled by the store's exact-match uniqueness guard.
package dedupe

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/merchant"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Policy holds the tunable knobs for in-batch duplicate grouping. The
// defaults are policy choices, not derived constants; keep them
// configurable.
type Policy struct {
	DayWindow           int             // dates may differ by up to this many days
	AmountTolerance     decimal.Decimal // absolute signed-amount tolerance
	SimilarityThreshold int             // merchant/description similarity floor
}

// DefaultPolicy returns the documented defaults: ±1 day, 0.01, 85.
func DefaultPolicy() Policy {
	return Policy{
		DayWindow:           1,
		AmountTolerance:     decimal.New(1, -2),
		SimilarityThreshold: 85,
	}
}

// Collapse removes fuzzy duplicates from a batch. When two records are the
// same real-world event, the earlier-by-date record survives with its
// duplicate counter incremented and the later one is dropped. Order of
// survivors follows the input.
func Collapse(txns []*model.Transaction, p Policy) []*model.Transaction {
	kept := make([]*model.Transaction, 0, len(txns))
	for _, tx := range txns {
		merged := false
		for i, k := range kept {
			if !p.sameEvent(k, tx) {
				continue
			}
			if tx.Date.Before(k.Date) {
				tx.Duplicates = k.Duplicates + 1
				kept[i] = tx
			} else {
				k.Duplicates++
			}
			merged = true
			break
		}
		if !merged {
			kept = append(kept, tx)
		}
	}
	return kept
}

// sameEvent applies ALL of: date window, signed-amount tolerance and fuzzy
// similarity at or above the threshold. Two records carrying different
// explicit balances are distinct real-world events (same-day, same-amount
// payments to one payee land on different running balances) and are never
// grouped.
func (p Policy) sameEvent(a, b *model.Transaction) bool {
	if a.Balance != nil && b.Balance != nil && !a.Balance.Equal(*b.Balance) {
		return false
	}
	if dayDiff(a, b) > p.DayWindow {
		return false
	}
	if a.SignedAmount().Sub(b.SignedAmount()).Abs().GreaterThan(p.AmountTolerance) {
		return false
	}
	return merchant.Similarity(matchText(a), matchText(b)) >= p.SimilarityThreshold
}

func matchText(t *model.Transaction) string {
	if t.MerchantRaw != "" {
		return t.MerchantRaw
	}
	return t.DescriptionRaw
}

func dayDiff(a, b *model.Transaction) int {
	d := int(a.Date.Sub(b.Date).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}
