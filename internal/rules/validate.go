package rules

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/spendcat/internal/categorize"
	"github.com/cleared-dev/spendcat/internal/model"
)

// ValidationError describes why a rule cannot be stored.
type ValidationError struct {
	RuleID string
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %q: %s: %s", e.RuleID, e.Field, e.Reason)
}

// Validate checks that a rule can be evaluated as written. Multi-dash
// amount ranges are rejected here so they never silently truncate.
func Validate(r model.Rule) error {
	if !r.PatternType.Known() {
		return ValidationError{RuleID: r.ID, Field: "pattern_type", Reason: fmt.Sprintf("unknown pattern type %q", r.PatternType)}
	}
	if strings.TrimSpace(r.PatternValue) == "" {
		return ValidationError{RuleID: r.ID, Field: "pattern_value", Reason: "must not be empty"}
	}
	if strings.TrimSpace(r.Category) == "" {
		return ValidationError{RuleID: r.ID, Field: "category", Reason: "must not be empty"}
	}
	if r.PatternType == model.PatternAmountRange {
		if _, err := categorize.ParseAmountRange(r.PatternValue); err != nil {
			return ValidationError{RuleID: r.ID, Field: "pattern_value", Reason: err.Error()}
		}
	}
	return nil
}
