package rules

import "github.com/cleared-dev/spendcat/internal/model"

// DefaultRules returns the starter rule set written by init.
func DefaultRules() []model.Rule {
	return []model.Rule{
		{ID: "default-travel-rides", Name: "Ride hailing", PatternType: model.PatternVendor, PatternValue: "uber", Category: "Travel", Priority: 50, Active: true},
		{ID: "default-travel-air", Name: "Airlines", PatternType: model.PatternDescription, PatternValue: "airlines", Category: "Travel", Priority: 50, Active: true},
		{ID: "default-meals-coffee", Name: "Coffee shops", PatternType: model.PatternVendor, PatternValue: "starbucks", Category: "Meals", Priority: 40, Active: true},
		{ID: "default-software-github", Name: "GitHub", PatternType: model.PatternVendor, PatternValue: "github", Category: "Software", Priority: 40, Active: true},
		{ID: "default-software-aws", Name: "AWS", PatternType: model.PatternVendor, PatternValue: "amazon web services", Category: "Software", Priority: 40, Active: true},
		{ID: "default-office-supplies", Name: "Office supplies", PatternType: model.PatternDescription, PatternValue: "office", Category: "Office Supplies", Priority: 20, Active: true},
		{ID: "default-review-large", Name: "Large purchases", PatternType: model.PatternAmountRange, PatternValue: ">1000", Category: "Needs Review", Priority: 1, Active: false},
	}
}
