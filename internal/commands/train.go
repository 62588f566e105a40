package commands

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/categorize"
)

func newTrainCommand() *cobra.Command {
	var (
		out           string
		folds         int
		minConfidence float64
	)

	cmd := &cobra.Command{
		Use:   "train <labeled.csv>",
		Short: "Train the category classifier from a labeled CSV",
		Long: `Train fits the text classifier on a CSV with a
merchant,description,category header, reports stratified k-fold
cross-validation accuracy and writes the model artifact.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd, args[0], out, folds, minConfidence)
		},
	}

	cmd.Flags().StringVar(&out, "out", "classifier.model", "artifact output path")
	cmd.Flags().IntVar(&folds, "folds", 5, "cross-validation folds")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", categorize.DefaultMinConfidence, "prediction confidence gate")

	return cmd
}

func runTrain(cmd *cobra.Command, path, out string, folds int, minConfidence float64) error {
	samples, err := readSamples(path)
	if err != nil {
		return err
	}

	accuracy, err := categorize.CrossValidate(samples, folds, minConfidence)
	if err != nil {
		return fmt.Errorf("cross-validation: %w", err)
	}

	m, err := categorize.Train(samples, minConfidence)
	if err != nil {
		return err
	}
	if err := m.Save(out); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
		"trained on %d samples, %d-fold accuracy %.1f%%, artifact: %s\n",
		len(samples), folds, accuracy*100, out)
	return nil
}

// readSamples loads labeled examples from a merchant,description,category
// CSV.
func readSamples(path string) ([]categorize.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = 3
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) <= 1 {
		return nil, fmt.Errorf("%s has no samples", path)
	}

	samples := make([]categorize.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		samples = append(samples, categorize.Sample{
			Merchant:    rec[0],
			Description: rec[1],
			Category:    rec[2],
		})
	}
	return samples, nil
}
