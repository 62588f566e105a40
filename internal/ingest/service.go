package ingest

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ledgerline-dev/ledgerline/internal/categorize"
	"github.com/ledgerline-dev/ledgerline/internal/dedupe"
	"github.com/ledgerline-dev/ledgerline/internal/merchant"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/parser"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// Summary is the per-file ingestion outcome reported to callers. Row-level
// problems never surface as errors; they are counted here.
type Summary struct {
	File       string
	Source     string
	Found      int // rows the parser recognized
	Imported   int
	Duplicates int
	Errors     int
	Dropped    int // rows discarded during parse or formatting
	Ambiguous  int // rows where both debit and credit carried a value
}

// Params collects the collaborators and policy for a Service.
type Params struct {
	Store         store.Store
	Merchants     *merchant.Normalizer
	Rules         *categorize.RuleSet
	Model         *categorize.Model // nil = rule-based only
	Dedupe        dedupe.Policy
	ProgressEvery int
	Log           zerolog.Logger
}

// Service wires the parsing, enrichment and persistence stages. All loaded
// state (merchant list, rules, classifier) is read-only after construction,
// so one Service may serve many sequential ingestion runs.
type Service struct {
	store         store.Store
	merchants     *merchant.Normalizer
	rules         *categorize.RuleSet
	model         *categorize.Model
	dedupe        dedupe.Policy
	progressEvery int
	log           zerolog.Logger
}

// NewService builds a Service from Params.
func NewService(p Params) *Service {
	return &Service{
		store:         p.Store,
		merchants:     p.Merchants,
		rules:         p.Rules,
		model:         p.Model,
		dedupe:        p.Dedupe,
		progressEvery: p.ProgressEvery,
		log:           p.Log,
	}
}

// IngestFile runs one statement file through the pipeline start to finish.
// File-level failures (unsupported format, unreadable file, unresolvable
// columns) return before any write. Row-level problems are skipped and
// counted so one malformed row never blocks the rest of a large statement.
func (s *Service) IngestFile(ctx context.Context, path, contentType string, owner model.OwnerKey) (Summary, error) {
	sum := Summary{File: path}

	format, err := parser.Detect(filepath.Base(path), contentType)
	if err != nil {
		return sum, err
	}
	p := parser.ForFormat(format)
	sum.Source = p.Source()

	result, err := p.Parse(path)
	if err != nil {
		return sum, err
	}
	sum.Found = len(result.Rows)
	sum.Dropped = len(result.Dropped)
	for _, d := range result.Dropped {
		s.log.Warn().Str("file", path).Int("line", d.Line).Err(d.Err).Msg("row dropped")
	}

	txns := make([]*model.Transaction, 0, len(result.Rows))
	for _, raw := range result.Rows {
		tx, err := Format(raw, p.Source(), owner)
		if err != nil {
			sum.Dropped++
			s.log.Warn().Str("file", path).Str("date", raw.DateStr).Err(err).Msg("row dropped")
			continue
		}
		if raw.Ambiguous {
			sum.Ambiguous++
			s.log.Warn().
				Str("file", path).
				Str("description", tx.DescriptionRaw).
				Msg("both debit and credit populated, preferring debit")
		}
		s.enrich(tx)
		txns = append(txns, tx)
	}

	txns = dedupe.Collapse(txns, s.dedupe)

	report := store.InsertBatch(ctx, s.store, txns, s.progressEvery, s.log)
	sum.Imported = report.Inserted
	sum.Duplicates = report.Duplicates
	sum.Errors = report.Errors

	s.log.Info().
		Str("file", path).
		Int("found", sum.Found).
		Int("imported", sum.Imported).
		Int("duplicates", sum.Duplicates).
		Int("errors", sum.Errors).
		Int("dropped", sum.Dropped).
		Msg("ingest complete")
	return sum, nil
}

// enrich resolves the canonical merchant and assigns a category. The
// classifier, when loaded, overrides the rules only above its confidence
// gate.
func (s *Service) enrich(tx *model.Transaction) {
	canonical, score := s.merchants.Normalize(tx.MerchantRaw, tx.DescriptionRaw)
	tx.MerchantCanonical = canonical
	if canonical != "" {
		s.log.Debug().Str("merchant", tx.MerchantRaw).Str("canonical", canonical).Int("score", score).Msg("merchant resolved")
	}

	name := tx.MerchantRaw
	if canonical != "" {
		name = canonical
	}
	if s.model != nil {
		tx.Category = s.model.Categorize(name, tx.DescriptionRaw, s.rules)
		return
	}
	tx.Category = s.rules.Categorize(name, tx.DescriptionRaw)
}
