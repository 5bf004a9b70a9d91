package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spendcat/internal/model"
)

// Uncategorized labels expenses without a category in summaries.
const Uncategorized = "(uncategorized)"

// CategoryTotal is the spend for one category.
type CategoryTotal struct {
	Category string
	Count    int
	Total    decimal.Decimal
}

// Summarize totals expenses per category, largest total first; ties sort by name.
func Summarize(expenses []model.Expense) []CategoryTotal {
	byCat := make(map[string]*CategoryTotal)
	for _, e := range expenses {
		cat := e.Category
		if cat == "" {
			cat = Uncategorized
		}
		ct, ok := byCat[cat]
		if !ok {
			ct = &CategoryTotal{Category: cat, Total: decimal.Zero}
			byCat[cat] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(e.Amount)
	}

	out := make([]CategoryTotal, 0, len(byCat))
	for _, ct := range byCat {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Total sums all expense amounts.
func Total(expenses []model.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}
