package model

// PatternType selects which matcher a categorization rule uses.
type PatternType string

const (
	PatternVendor      PatternType = "vendor"
	PatternDescription PatternType = "description"
	PatternAmountRange PatternType = "amountRange"
)

// PatternTypes lists every known pattern type.
var PatternTypes = []PatternType{PatternVendor, PatternDescription, PatternAmountRange}

// Known reports whether p is a recognized pattern type.
func (p PatternType) Known() bool {
	for _, k := range PatternTypes {
		if p == k {
			return true
		}
	}
	return false
}

// Rule maps a vendor, description or amount pattern to a category.
// Higher Priority is evaluated first.
type Rule struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	PatternType  PatternType `yaml:"pattern_type"`
	PatternValue string      `yaml:"pattern_value"`
	Category     string      `yaml:"category"`
	Priority     int         `yaml:"priority"`
	Active       bool        `yaml:"active"`
}
