package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/categorize"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/ingest"
	"github.com/ledgerline-dev/ledgerline/internal/logger"
	"github.com/ledgerline-dev/ledgerline/internal/merchant"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/runlog"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

func newIngestCommand() *cobra.Command {
	var (
		cfgPath     string
		user        string
		account     string
		contentType string
		dsn         string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Ingest statement files into the ledger",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return errors.New("--user is required")
			}
			return runIngest(cmd, args, cfgPath, user, account, contentType, dsn, dryRun)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "ledgerline.yaml", "configuration file")
	cmd.Flags().StringVar(&user, "user", "", "owner user id")
	cmd.Flags().StringVar(&account, "account", "", "owner account id (optional)")
	cmd.Flags().StringVar(&contentType, "content-type", "", "explicit content type override")
	cmd.Flags().StringVar(&dsn, "dsn", "", "postgres DSN (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and enrich without persisting")

	return cmd
}

func runIngest(cmd *cobra.Command, files []string, cfgPath, user, account, contentType, dsn string, dryRun bool) error {
	log := logger.New()

	cfg := config.Default()
	if _, err := os.Stat(cfgPath); err == nil {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	st, err := openStore(cfg, dsn, dryRun)
	if err != nil {
		return err
	}
	defer st.Close()

	var clf *categorize.Model
	if cfg.Classifier.ModelPath != "" {
		clf, err = categorize.Load(cfg.Classifier.ModelPath, cfg.Classifier.MinConfidence)
		if err != nil {
			log.Warn().Err(err).Msg("classifier unavailable, using rule-based categorization")
			clf = nil
		}
	}

	svc := ingest.NewService(ingest.Params{
		Store:         st,
		Merchants:     merchant.NewNormalizer(cfg.Merchants.Canonical, cfg.Merchants.SimilarityThreshold),
		Rules:         categorize.NewRuleSet(cfg.Rules()),
		Model:         clf,
		Dedupe:        cfg.DedupePolicy(),
		ProgressEvery: cfg.ProgressEvery,
		Log:           log,
	})

	owner := model.OwnerKey{UserID: user, AccountID: account}

	failed := 0
	for _, file := range files {
		sum, err := svc.IngestFile(cmd.Context(), file, contentType, owner)
		if err != nil {
			// Fatal for this file only; remaining files still run.
			failed++
			color.New(color.FgRed).Fprintf(cmd.OutOrStdout(), "%s: %v\n", file, err)
			continue
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
			"%s: found=%d imported=%d duplicates=%d errors=%d dropped=%d\n",
			sum.File, sum.Found, sum.Imported, sum.Duplicates, sum.Errors, sum.Dropped)

		if cfg.RunLog != "" {
			entry := runlog.Entry{
				Timestamp:  time.Now(),
				File:       sum.File,
				Source:     sum.Source,
				Found:      sum.Found,
				Imported:   sum.Imported,
				Duplicates: sum.Duplicates,
				Errors:     sum.Errors,
				Dropped:    sum.Dropped,
			}
			if err := runlog.Append(cfg.RunLog, []runlog.Entry{entry}); err != nil {
				log.Warn().Err(err).Msg("run log append failed")
			}
		}
	}

	if failed == len(files) {
		return fmt.Errorf("all %d files failed", failed)
	}
	return nil
}

func openStore(cfg *config.Config, dsnFlag string, dryRun bool) (store.Store, error) {
	if dryRun {
		return store.NewMemory(), nil
	}
	dsn := cfg.Storage.DSN
	if dsnFlag != "" {
		dsn = dsnFlag
	}
	if dsn == "" {
		return nil, errors.New("no storage DSN configured (set storage.dsn or --dsn, or use --dry-run)")
	}
	return store.OpenPostgres(dsn)
}
