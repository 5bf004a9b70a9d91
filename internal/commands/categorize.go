package commands

import (
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendcat/internal/categorize"
	"github.com/cleared-dev/spendcat/internal/ledger"
	"github.com/cleared-dev/spendcat/internal/rules"
)

// expenseFlags describes a single expense on the command line.
type expenseFlags struct {
	vendor      string
	description string
	amount      string
}

func (f *expenseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.vendor, "vendor", "", "vendor name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount, e.g. 42.50")
}

func (f *expenseFlags) expense() (categorize.Expense, error) {
	e := categorize.Expense{Vendor: f.vendor, Description: f.description}
	if f.amount != "" {
		d, err := decimal.NewFromString(f.amount)
		if err != nil {
			return categorize.Expense{}, fmt.Errorf("invalid amount %q: %w", f.amount, err)
		}
		e.Amount = decimal.NewNullDecimal(d)
	}
	return e, nil
}

// loadRules reads the rule set of the --repo project.
func (o *rootOptions) loadRules() (*rules.Service, error) {
	root, err := filepath.Abs(o.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	return rules.Load(root)
}

func newCategorizeCommand(opts *rootOptions) *cobra.Command {
	var flags expenseFlags

	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Print the category the active rules assign to an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.expense()
			if err != nil {
				return err
			}
			rs, err := opts.loadRules()
			if err != nil {
				return err
			}

			category, ok := categorize.Categorize(e, rs.Active())
			if !ok {
				category = ledger.Uncategorized
			}
			fmt.Fprintln(cmd.OutOrStdout(), category)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
