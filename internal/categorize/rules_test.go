package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleSet_FirstMatchWins(t *testing.T) {
	rs := NewRuleSet([]Rule{
		{"swiggy instamart", "Groceries"},
		{"swiggy", "Food & Dining"},
	})

	assert.Equal(t, "Groceries", rs.Categorize("", "UPI SWIGGY INSTAMART ORDER"))
	assert.Equal(t, "Food & Dining", rs.Categorize("", "UPI SWIGGY ORDER"))
}

func TestRuleSet_CaseInsensitive(t *testing.T) {
	rs := NewRuleSet(DefaultRules())
	assert.Equal(t, "Transport", rs.Categorize("UBER", ""))
	assert.Equal(t, "Transport", rs.Categorize("uber", ""))
}

func TestRuleSet_MatchesMerchantOrDescription(t *testing.T) {
	rs := NewRuleSet(DefaultRules())
	assert.Equal(t, "Income", rs.Categorize("", "NEFT SALARY ACME CORP APRIL"))
	assert.Equal(t, "Cash", rs.Categorize("", "ATW/CASH WDL/MG ROAD ATM"))
	assert.Equal(t, "Shopping", rs.Categorize("Amazon", "order 4411"))
}

func TestRuleSet_NoMatch(t *testing.T) {
	rs := NewRuleSet(DefaultRules())
	assert.Equal(t, Uncategorized, rs.Categorize("", "MISC NARRATION 42"))
}

func TestRuleSet_Deterministic(t *testing.T) {
	rs := NewRuleSet(DefaultRules())
	first := rs.Categorize("", "UPI SWIGGY BANGALORE")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, rs.Categorize("", "UPI SWIGGY BANGALORE"))
	}
}
