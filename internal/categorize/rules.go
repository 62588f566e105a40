// Package categorize assigns spend/income categories to transactions using
// an ordered keyword rule set, optionally overridden by a trained text
// classifier when its confidence clears a configured gate.
package categorize

import "strings"

// Uncategorized is assigned when no rule matches and no classifier override
// applies.
const Uncategorized = "Uncategorized"

// Rule maps a keyword to a category. Rules are evaluated in order; the
// first case-insensitive substring hit in the merchant or description wins.
type Rule struct {
	Keyword  string
	Category string
}

// RuleSet is a deterministic, explainable keyword classifier. Read-only
// after construction.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet builds a RuleSet preserving rule order.
func NewRuleSet(rules []Rule) *RuleSet {
	return &RuleSet{rules: rules}
}

// Categorize returns the category of the first matching rule, or
// Uncategorized.
func (rs *RuleSet) Categorize(merchant, description string) string {
	text := strings.ToLower(merchant + " " + description)
	for _, r := range rs.rules {
		if strings.Contains(text, strings.ToLower(r.Keyword)) {
			return r.Category
		}
	}
	return Uncategorized
}

// DefaultRules is the built-in keyword mapping used when no configuration
// overrides it. Order matters: more specific keywords come first.
func DefaultRules() []Rule {
	return []Rule{
		{"salary", "Income"},
		{"interest", "Income"},
		{"refund", "Income"},
		{"swiggy", "Food & Dining"},
		{"zomato", "Food & Dining"},
		{"restaurant", "Food & Dining"},
		{"grocery", "Groceries"},
		{"bigbasket", "Groceries"},
		{"supermarket", "Groceries"},
		{"uber", "Transport"},
		{"ola", "Transport"},
		{"fuel", "Transport"},
		{"petrol", "Transport"},
		{"amazon", "Shopping"},
		{"flipkart", "Shopping"},
		{"myntra", "Shopping"},
		{"netflix", "Entertainment"},
		{"spotify", "Entertainment"},
		{"electricity", "Utilities"},
		{"broadband", "Utilities"},
		{"recharge", "Utilities"},
		{"insurance", "Insurance"},
		{"pharmacy", "Health"},
		{"hospital", "Health"},
		{"rent", "Housing"},
		{"emi", "Loan"},
		{"atm", "Cash"},
		{"atw", "Cash"},
	}
}
