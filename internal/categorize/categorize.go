// Package categorize assigns categories to expenses from an ordered rule list.
//
// Evaluation is pure: rules are checked in the order given and the first
// active match wins. Callers load and sort rules once per batch.
package categorize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spendcat/internal/model"
)

// Expense is the subset of an expense that rules look at.
// Empty strings and an invalid Amount mean "absent".
type Expense struct {
	Vendor      string
	Description string
	Amount      decimal.NullDecimal
}

// FromExpense builds a categorizer input from a parsed expense.
func FromExpense(e model.Expense) Expense {
	return Expense{
		Vendor:      e.Vendor,
		Description: e.Description,
		Amount:      decimal.NewNullDecimal(e.Amount),
	}
}

// RuleMatch is the outcome of evaluating one rule.
type RuleMatch struct {
	Rule    model.Rule
	Matched bool
}

// Categorize returns the category of the first rule that matches e.
// It reports false when no rule matches or rules is empty.
func Categorize(e Expense, rules []model.Rule) (string, bool) {
	for _, r := range rules {
		if Matches(e, r) {
			return r.Category, true
		}
	}
	return "", false
}

// TestAllRules evaluates every rule without stopping at the first match.
func TestAllRules(e Expense, rules []model.Rule) []RuleMatch {
	out := make([]RuleMatch, len(rules))
	for i, r := range rules {
		out[i] = RuleMatch{Rule: r, Matched: Matches(e, r)}
	}
	return out
}

// Matches reports whether a single rule applies to e. Inactive rules and
// unknown pattern types never match.
func Matches(e Expense, r model.Rule) bool {
	if !r.Active {
		return false
	}
	switch r.PatternType {
	case model.PatternVendor:
		return containsFold(e.Vendor, r.PatternValue)
	case model.PatternDescription:
		return containsFold(e.Description, r.PatternValue)
	case model.PatternAmountRange:
		if !e.Amount.Valid {
			return false
		}
		return matchAmount(e.Amount.Decimal, r.PatternValue)
	default:
		return false
	}
}

func containsFold(field, pattern string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(pattern))
}
