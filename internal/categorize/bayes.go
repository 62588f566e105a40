package categorize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jbrukh/bayesian"
)

// DefaultMinConfidence is the gate below which a classifier prediction is
// discarded in favor of the rule-based result.
const DefaultMinConfidence = 0.65

// Sample is one labeled training example.
type Sample struct {
	Merchant    string
	Description string
	Category    string
}

// Model is a TF-IDF naive-Bayes text classifier over merchant+description
// features. It is read-only after Train/Load and safe to share across
// ingestion runs.
type Model struct {
	classifier    *bayesian.Classifier
	labels        []string
	minConfidence float64
}

// Train fits a classifier on the labeled samples. Classes are balanced by
// resampling each class up to the majority class count so that frequent
// categories do not drown out rare ones. At least two distinct categories
// are required.
func Train(samples []Sample, minConfidence float64) (*Model, error) {
	byClass := make(map[string][]Sample)
	var labels []string
	for _, s := range samples {
		if _, seen := byClass[s.Category]; !seen {
			labels = append(labels, s.Category)
		}
		byClass[s.Category] = append(byClass[s.Category], s)
	}
	if len(labels) < 2 {
		return nil, errors.New("training requires at least two categories")
	}

	classes := make([]bayesian.Class, len(labels))
	for i, l := range labels {
		classes[i] = bayesian.Class(l)
	}
	cl := bayesian.NewClassifierTfIdf(classes...)

	majority := 0
	for _, group := range byClass {
		if len(group) > majority {
			majority = len(group)
		}
	}
	for _, label := range labels {
		group := byClass[label]
		for i := 0; i < majority; i++ {
			s := group[i%len(group)]
			cl.Learn(features(s.Merchant, s.Description), bayesian.Class(label))
		}
	}
	cl.ConvertTermsFreqToTfIdf()

	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Model{classifier: cl, labels: labels, minConfidence: minConfidence}, nil
}

// Predict returns the best category and its posterior probability.
func (m *Model) Predict(merchant, description string) (string, float64) {
	scores, inx, _ := m.classifier.ProbScores(features(merchant, description))
	return m.labels[inx], scores[inx]
}

// Categorize applies the confidence gate: a prediction below the minimum
// falls back to the rule-based result.
func (m *Model) Categorize(merchant, description string, rules *RuleSet) string {
	category, confidence := m.Predict(merchant, description)
	if confidence < m.minConfidence {
		return rules.Categorize(merchant, description)
	}
	return category
}

// MinConfidence returns the configured gate.
func (m *Model) MinConfidence() float64 { return m.minConfidence }

// Save writes the classifier artifact (term frequencies + label list) to
// path.
func (m *Model) Save(path string) error {
	if err := m.classifier.WriteToFile(path); err != nil {
		return fmt.Errorf("writing classifier %s: %w", path, err)
	}
	return nil
}

// Load reads a classifier artifact written by Save. The label list is
// recovered from the serialized classes.
func Load(path string, minConfidence float64) (*Model, error) {
	cl, err := bayesian.NewClassifierFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading classifier %s: %w", path, err)
	}
	labels := make([]string, len(cl.Classes))
	for i, c := range cl.Classes {
		labels[i] = string(c)
	}
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Model{classifier: cl, labels: labels, minConfidence: minConfidence}, nil
}

// CrossValidate runs stratified k-fold cross-validation and returns the
// mean accuracy across folds. Samples of each class are dealt round-robin
// into folds so every fold keeps the class mix of the full set.
func CrossValidate(samples []Sample, k int, minConfidence float64) (float64, error) {
	if k < 2 {
		return 0, errors.New("k must be at least 2")
	}

	folds := make([][]Sample, k)
	byClass := make(map[string][]Sample)
	var order []string
	for _, s := range samples {
		if _, seen := byClass[s.Category]; !seen {
			order = append(order, s.Category)
		}
		byClass[s.Category] = append(byClass[s.Category], s)
	}
	for _, label := range order {
		for i, s := range byClass[label] {
			folds[i%k] = append(folds[i%k], s)
		}
	}

	correct, total := 0, 0
	for i := 0; i < k; i++ {
		var train []Sample
		for j := 0; j < k; j++ {
			if j != i {
				train = append(train, folds[j]...)
			}
		}
		m, err := Train(train, minConfidence)
		if err != nil {
			return 0, fmt.Errorf("fold %d: %w", i, err)
		}
		for _, s := range folds[i] {
			predicted, _ := m.Predict(s.Merchant, s.Description)
			if predicted == s.Category {
				correct++
			}
			total++
		}
	}
	if total == 0 {
		return 0, errors.New("no samples to evaluate")
	}
	return float64(correct) / float64(total), nil
}

// features tokenizes merchant+description into lowercase unigrams plus
// adjacent bigrams (n-gram term frequency feeds the TF-IDF weighting).
func features(merchant, description string) []string {
	tokens := strings.Fields(strings.ToLower(merchant + " " + description))
	out := make([]string, 0, len(tokens)*2)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+"_"+tokens[i+1])
	}
	return out
}
