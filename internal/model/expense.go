package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is one normalized statement row.
type Expense struct {
	ID          string // "YYYY-MM-NNN", assigned by the ledger
	Vendor      string // same as Description; bank exports do not separate them
	Description string
	Amount      decimal.Decimal // always >= 0
	Date        time.Time       // UTC midnight
	StartedAt   *time.Time
	CompletedAt *time.Time
	Category    string
	ProjectID   string
	Source      string // file the row was imported from
}

// IsCategorized reports whether a category has been assigned.
func (e Expense) IsCategorized() bool {
	return e.Category != ""
}

// Month returns the year and month the expense is filed under.
func (e Expense) Month() (year, month int) {
	return e.Date.Year(), int(e.Date.Month())
}
