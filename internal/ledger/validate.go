package ledger

import (
	"fmt"

	"github.com/cleared-dev/spendcat/internal/id"
	"github.com/cleared-dev/spendcat/internal/model"
)

// ValidationError describes a single ledger invariant violation.
type ValidationError struct {
	ExpenseID   string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s]: %s", e.ExpenseID, e.Description)
}

// ValidateExpenses checks one month's expenses: non-negative amounts, dates
// inside the month, well-formed IDs for that month, and sequence numbers
// that are unique and contiguous from 1.
func ValidateExpenses(expenses []model.Expense, year, month int) []ValidationError {
	var errs []ValidationError

	seqSeen := make(map[int]bool)
	for _, e := range expenses {
		if e.Amount.IsNegative() {
			errs = append(errs, ValidationError{
				ExpenseID:   e.ID,
				Description: fmt.Sprintf("amount %s is negative", e.Amount),
			})
		}

		if e.Date.Year() != year || int(e.Date.Month()) != month {
			errs = append(errs, ValidationError{
				ExpenseID:   e.ID,
				Description: fmt.Sprintf("date %s not in %s", e.Date.Format(dateFormat), id.MonthKey(year, month)),
			})
		}

		y, m, seq, err := id.ParseExpenseID(e.ID)
		if err != nil {
			errs = append(errs, ValidationError{
				ExpenseID:   e.ID,
				Description: fmt.Sprintf("invalid expense ID: %v", err),
			})
			continue
		}
		if y != year || m != month {
			errs = append(errs, ValidationError{
				ExpenseID:   e.ID,
				Description: fmt.Sprintf("ID belongs to %s, not %s", id.MonthKey(y, m), id.MonthKey(year, month)),
			})
		}
		if seqSeen[seq] {
			errs = append(errs, ValidationError{
				ExpenseID:   e.ID,
				Description: fmt.Sprintf("duplicate sequence %d", seq),
			})
		}
		seqSeen[seq] = true
	}

	for i := 1; i <= len(seqSeen); i++ {
		if !seqSeen[i] {
			errs = append(errs, ValidationError{
				ExpenseID:   fmt.Sprintf("seq %d", i),
				Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seqSeen)),
			})
		}
	}

	return errs
}
