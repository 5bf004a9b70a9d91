package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendcat/internal/importer"
	"github.com/cleared-dev/spendcat/internal/ingest"
	"github.com/cleared-dev/spendcat/internal/ledger"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank statements into the ledger",
		Long: "Import the given statement files, or every CSV waiting in import/.\n" +
			"Files taken from import/ are moved to import/processed/ afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.open(cmd)
			if err != nil {
				return err
			}
			svc, err := ingest.NewService(p.root, p.cfg, p.logger, dryRun)
			if err != nil {
				return err
			}

			var reports []*ingest.Report
			if len(args) == 0 {
				reports, err = svc.ImportPending(cmd.Context())
			} else {
				for _, arg := range args {
					var r *ingest.Report
					r, err = svc.ImportFile(cmd.Context(), arg)
					if err != nil {
						break
					}
					reports = append(reports, r)
				}
			}

			out := cmd.OutOrStdout()
			for _, r := range reports {
				printReport(out, r)
			}
			if len(reports) == 0 && err == nil {
				fmt.Fprintln(out, "Nothing to import.")
			}

			if !dryRun && len(reports) > 0 {
				p.commit(importCommitMessage(reports), importPaths(p.root, reports)...)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and categorize without writing anything")

	return cmd
}

func printReport(out io.Writer, r *ingest.Report) {
	fmt.Fprintf(out, "%s: %d parsed, %d skipped, %d categorized, %d uncategorized\n",
		r.File, len(r.Expenses), len(r.Skipped), r.Categorized, r.Uncategorized)
	printSkipped(out, r.Skipped)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, e := range r.Expenses {
		expenseID := e.ID
		if expenseID == "" {
			expenseID = "-"
		}
		category := e.Category
		if category == "" {
			category = ledger.Uncategorized
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			expenseID, e.Date.Format("2006-01-02"), e.Amount.StringFixed(2), category, e.Vendor)
	}
	tw.Flush()
}

func printSkipped(out io.Writer, skipped []importer.SkippedRow) {
	for _, s := range skipped {
		fmt.Fprintf(out, "  skipped row %d: %s %q\n", s.Row, s.Reason, s.Value)
	}
}

func importCommitMessage(reports []*ingest.Report) string {
	names := make([]string, len(reports))
	for i, r := range reports {
		names[i] = r.File
	}
	return "import: " + strings.Join(names, ", ")
}

// importPaths lists the repo paths an import touches: the import log,
// each month ledger, and the files moved to import/processed/. Other files
// waiting in import/ are left out.
func importPaths(root string, reports []*ingest.Report) []string {
	seen := map[string]bool{}
	var months []string
	for _, r := range reports {
		for _, e := range r.Expenses {
			dir := ledger.MonthDir(e.Month())
			if !seen[dir] {
				seen[dir] = true
				months = append(months, dir)
			}
		}
	}
	sort.Strings(months)

	paths := append([]string{"logs"}, months...)
	for _, r := range reports {
		if r.ProcessedPath == "" {
			continue
		}
		if rel, err := filepath.Rel(root, r.ProcessedPath); err == nil {
			paths = append(paths, rel)
		}
	}
	return paths
}
