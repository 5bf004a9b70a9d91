package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendcat/internal/export"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var month string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a month of expenses to an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.open(cmd)
			if err != nil {
				return err
			}
			expenses, err := p.readMonth(month)
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				return noExpenses(month)
			}

			if outPath == "" {
				outPath = filepath.Join(p.root, "exports", "expenses-"+month+".xlsx")
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("creating export dir: %w", err)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			if err := export.WriteXLSX(f, expenses); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", outPath, err)
			}

			p.logger.Info().Str("path", outPath).Int("expenses", len(expenses)).Msg("exported")
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d expenses to %s\n", len(expenses), outPath)
			return nil
		},
	}
	markMonthRequired(cmd, &month)
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default exports/expenses-YYYY-MM.xlsx)")

	return cmd
}
