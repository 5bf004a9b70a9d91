package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendcat/internal/importer"
)

func newParseCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a statement and print the expenses it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := importer.DefaultRegistry(opts.newLogger(cmd, nil))
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q (known: %s)", format, strings.Join(registry.Formats(), ", "))
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening statement: %w", err)
			}
			defer f.Close()

			res, err := parser.Parse(f)
			if err != nil {
				return err
			}
			printParsed(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", importer.FormatRevolut, "statement format")

	return cmd
}

func printParsed(out io.Writer, res *importer.Result) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tVENDOR\tSTARTED\tCOMPLETED")
	for _, e := range res.Expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Date.Format("2006-01-02"), e.Amount.StringFixed(2), e.Vendor,
			formatOptionalTime(e.StartedAt), formatOptionalTime(e.CompletedAt))
	}
	tw.Flush()

	fmt.Fprintf(out, "%d parsed, %d skipped\n", len(res.Expenses), len(res.Skipped))
	printSkipped(out, res.Skipped)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
