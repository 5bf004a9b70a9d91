package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendcat/internal/id"
	"github.com/cleared-dev/spendcat/internal/ledger"
	"github.com/cleared-dev/spendcat/internal/model"
)

// readMonth parses a YYYY-MM key and loads that month's ledger.
func (p *project) readMonth(key string) ([]model.Expense, error) {
	year, month, err := id.ParseMonthKey(key)
	if err != nil {
		return nil, err
	}
	return ledger.NewService(p.root).ReadMonth(year, month)
}

func markMonthRequired(cmd *cobra.Command, month *string) {
	cmd.Flags().StringVar(month, "month", "", "month as YYYY-MM (required)")
	_ = cmd.MarkFlagRequired("month")
}

func noExpenses(key string) error {
	return fmt.Errorf("no expenses recorded for %s", key)
}
