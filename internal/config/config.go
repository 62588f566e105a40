// Package config loads and saves the ledgerline.yaml configuration.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ledgerline-dev/ledgerline/internal/categorize"
	"github.com/ledgerline-dev/ledgerline/internal/dedupe"
	"github.com/ledgerline-dev/ledgerline/internal/merchant"
)

// Config is the top-level ledgerline.yaml configuration.
type Config struct {
	Storage       StorageConfig    `yaml:"storage"`
	Dedupe        DedupeConfig     `yaml:"dedupe"`
	Merchants     MerchantsConfig  `yaml:"merchants"`
	Categories    []CategoryConfig `yaml:"categories,omitempty"`
	Classifier    ClassifierConfig `yaml:"classifier"`
	ProgressEvery int              `yaml:"progress_every"`
	RunLog        string           `yaml:"run_log,omitempty"`
}

// StorageConfig points at the transaction store.
type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

// DedupeConfig holds the in-batch fuzzy grouping knobs. The defaults are
// policy choices without empirical grounding, so they stay configurable.
// DayWindow is a pointer so an explicit zero (same-day grouping only) is
// distinguishable from an unset field.
type DedupeConfig struct {
	DayWindow           *int   `yaml:"day_window"`
	AmountTolerance     string `yaml:"amount_tolerance"`
	SimilarityThreshold int    `yaml:"similarity_threshold"`
}

// MerchantsConfig holds the canonical merchant list and match threshold.
type MerchantsConfig struct {
	Canonical           []string `yaml:"canonical"`
	SimilarityThreshold int      `yaml:"similarity_threshold"`
}

// CategoryConfig maps a category to its trigger keywords, in priority
// order.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// ClassifierConfig points at the optional trained model artifact.
type ClassifierConfig struct {
	ModelPath     string  `yaml:"model_path,omitempty"`
	MinConfidence float64 `yaml:"min_confidence"`
}

// Load reads a ledgerline.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the documented defaults.
func Default() *Config {
	dayWindow := 1
	return &Config{
		Dedupe: DedupeConfig{
			DayWindow:           &dayWindow,
			AmountTolerance:     "0.01",
			SimilarityThreshold: 85,
		},
		Merchants: MerchantsConfig{
			SimilarityThreshold: merchant.DefaultThreshold,
		},
		Classifier: ClassifierConfig{
			MinConfidence: categorize.DefaultMinConfidence,
		},
		ProgressEvery: 100,
	}
}

// DedupePolicy converts the config into a dedupe.Policy, falling back to
// the defaults for missing or unparsable values.
func (c *Config) DedupePolicy() dedupe.Policy {
	p := dedupe.DefaultPolicy()
	if c.Dedupe.DayWindow != nil && *c.Dedupe.DayWindow >= 0 {
		p.DayWindow = *c.Dedupe.DayWindow
	}
	if c.Dedupe.SimilarityThreshold > 0 {
		p.SimilarityThreshold = c.Dedupe.SimilarityThreshold
	}
	if tol, err := decimal.NewFromString(c.Dedupe.AmountTolerance); err == nil && tol.IsPositive() {
		p.AmountTolerance = tol
	}
	return p
}

// Rules flattens the category configuration into an ordered rule list,
// falling back to the built-in rules when none are configured.
func (c *Config) Rules() []categorize.Rule {
	if len(c.Categories) == 0 {
		return categorize.DefaultRules()
	}
	var rules []categorize.Rule
	for _, cat := range c.Categories {
		for _, kw := range cat.Keywords {
			rules = append(rules, categorize.Rule{Keyword: kw, Category: cat.Name})
		}
	}
	return rules
}
