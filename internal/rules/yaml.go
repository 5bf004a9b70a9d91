package rules

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/spendcat/internal/model"
)

// document is the on-disk shape of categorization-rules.yaml.
type document struct {
	Rules []model.Rule `yaml:"rules"`
}

// ReadRules reads a categorization-rules.yaml document.
func ReadRules(r io.Reader) ([]model.Rule, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rules YAML: %w", err)
	}
	seen := make(map[string]bool, len(doc.Rules))
	for i, rule := range doc.Rules {
		if err := Validate(rule); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		if rule.ID != "" && seen[rule.ID] {
			return nil, fmt.Errorf("rule %d: duplicate id %q", i+1, rule.ID)
		}
		seen[rule.ID] = true
	}
	return doc.Rules, nil
}

// WriteRules writes rules as a categorization-rules.yaml document.
func WriteRules(w io.Writer, rules []model.Rule) error {
	if rules == nil {
		rules = []model.Rule{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Rules: rules}); err != nil {
		return fmt.Errorf("writing rules YAML: %w", err)
	}
	return enc.Close()
}
