package categorize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingSamples() []Sample {
	return []Sample{
		{"Swiggy", "UPI SWIGGY BANGALORE ORDER", "Food & Dining"},
		{"Swiggy", "POS SWIGGY DINNER", "Food & Dining"},
		{"Zomato", "ZOMATO ONLINE ORDER LUNCH", "Food & Dining"},
		{"Zomato", "UPI ZOMATO DELIVERY", "Food & Dining"},
		{"Uber", "UBER TRIP AIRPORT", "Transport"},
		{"Uber", "UBER RIDES BLR", "Transport"},
		{"Ola", "OLA CAB OFFICE COMMUTE", "Transport"},
		{"Ola", "OLA AUTO RIDE", "Transport"},
	}
}

func TestTrain_RequiresTwoCategories(t *testing.T) {
	_, err := Train([]Sample{
		{"Swiggy", "order", "Food & Dining"},
		{"Zomato", "order", "Food & Dining"},
	}, 0)
	assert.Error(t, err)
}

func TestModel_Predict(t *testing.T) {
	m, err := Train(trainingSamples(), 0)
	require.NoError(t, err)

	category, confidence := m.Predict("Swiggy", "swiggy order")
	assert.Equal(t, "Food & Dining", category)
	assert.Greater(t, confidence, 0.5)

	category, _ = m.Predict("Uber", "uber trip")
	assert.Equal(t, "Transport", category)
}

func TestModel_ClassImbalance(t *testing.T) {
	// One lone Transport sample against many food samples still predicts
	// Transport for transport-looking text.
	samples := append(trainingSamples()[:4],
		Sample{"Uber", "UBER TRIP AIRPORT", "Transport"})
	m, err := Train(samples, 0)
	require.NoError(t, err)

	category, _ := m.Predict("Uber", "uber trip")
	assert.Equal(t, "Transport", category)
}

func TestModel_ConfidenceGateFallsBackToRules(t *testing.T) {
	// A gate above 1.0 can never be cleared, so every prediction falls back.
	m, err := Train(trainingSamples(), 1.5)
	require.NoError(t, err)

	rs := NewRuleSet(DefaultRules())
	assert.Equal(t, "Income", m.Categorize("", "NEFT SALARY ACME CORP", rs))
	assert.Equal(t, Uncategorized, m.Categorize("", "MISC NARRATION 42", rs))
}

func TestModel_SaveLoadRoundTrip(t *testing.T) {
	m, err := Train(trainingSamples(), 0.4)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "classifier.bin")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path, 0.4)
	require.NoError(t, err)

	wantCat, _ := m.Predict("Swiggy", "swiggy order")
	gotCat, _ := loaded.Predict("Swiggy", "swiggy order")
	assert.Equal(t, wantCat, gotCat)
	assert.ElementsMatch(t, m.labels, loaded.labels)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"), 0)
	assert.Error(t, err)
}

func TestCrossValidate(t *testing.T) {
	acc, err := CrossValidate(trainingSamples(), 2, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, acc, 0.0)
	assert.LessOrEqual(t, acc, 1.0)
}

func TestCrossValidate_BadK(t *testing.T) {
	_, err := CrossValidate(trainingSamples(), 1, 0)
	assert.Error(t, err)
}

func TestFeatures_Bigrams(t *testing.T) {
	got := features("Grocery Mart", "upi payment")
	assert.Contains(t, got, "grocery")
	assert.Contains(t, got, "grocery_mart")
	assert.Contains(t, got, "mart_upi")
}
