package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/cleared-dev/spendcat/internal/model"
)

// RulesFile is the rules path relative to the repo root.
var RulesFile = filepath.Join("rules", "categorization-rules.yaml")

// Service provides in-memory lookup and editing over the rule set.
type Service struct {
	rules []model.Rule
	byID  map[string]int
}

// NewService creates a Service from a slice of rules.
func NewService(rules []model.Rule) *Service {
	s := &Service{}
	s.reset(rules)
	return s
}

func (s *Service) reset(rules []model.Rule) {
	s.rules = rules
	s.byID = make(map[string]int, len(rules))
	for i, r := range rules {
		s.byID[r.ID] = i
	}
}

// Load reads rules/categorization-rules.yaml from a repo root.
func Load(repoRoot string) (*Service, error) {
	path := filepath.Join(repoRoot, RulesFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules: %w", err)
	}
	defer f.Close()

	rules, err := ReadRules(f)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	return NewService(rules), nil
}

// All returns all rules in file order.
func (s *Service) All() []model.Rule {
	return s.rules
}

// Get returns a rule by ID.
func (s *Service) Get(id string) (model.Rule, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.Rule{}, false
	}
	return s.rules[i], true
}

// Exists reports whether a rule ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByPatternType returns all rules of the given pattern type.
func (s *Service) ByPatternType(pt model.PatternType) []model.Rule {
	var result []model.Rule
	for _, r := range s.rules {
		if r.PatternType == pt {
			result = append(result, r)
		}
	}
	return result
}

// Active returns the active rules ordered by priority, highest first.
// Equal priorities keep file order. The result is a fresh slice meant to be
// computed once and reused for a whole import batch.
func (s *Service) Active() []model.Rule {
	var active []model.Rule
	for _, r := range s.rules {
		if r.Active {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority > active[j].Priority
	})
	return active
}

// Add validates and appends a rule, assigning a UUID when ID is empty.
// It returns the stored rule.
func (s *Service) Add(r model.Rule) (model.Rule, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if s.Exists(r.ID) {
		return model.Rule{}, fmt.Errorf("rule %q already exists", r.ID)
	}
	if err := Validate(r); err != nil {
		return model.Rule{}, err
	}
	s.reset(append(s.rules, r))
	return r, nil
}

// SetActive enables or disables a rule.
func (s *Service) SetActive(id string, active bool) error {
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("rule %q not found", id)
	}
	s.rules[i].Active = active
	return nil
}

// Remove deletes a rule.
func (s *Service) Remove(id string) error {
	i, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("rule %q not found", id)
	}
	kept := make([]model.Rule, 0, len(s.rules)-1)
	kept = append(kept, s.rules[:i]...)
	kept = append(kept, s.rules[i+1:]...)
	s.reset(kept)
	return nil
}

// Save writes the rule set to rules/categorization-rules.yaml.
func (s *Service) Save(repoRoot string) error {
	path := filepath.Join(repoRoot, RulesFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating rules dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating rules file: %w", err)
	}
	defer f.Close()

	if err := WriteRules(f, s.rules); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
