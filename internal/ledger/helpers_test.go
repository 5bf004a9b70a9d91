package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spendcat/internal/model"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(desc, amount string, d time.Time) model.Expense {
	return model.Expense{Vendor: desc, Description: desc, Amount: dec(amount), Date: d}
}
