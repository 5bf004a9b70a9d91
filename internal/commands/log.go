package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendcat/internal/importlog"
)

func newLogCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the import history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.open(cmd)
			if err != nil {
				return err
			}
			entries, err := importlog.Read(p.root)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No imports yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tFILE\tPARSED\tSKIPPED\tCATEGORIZED\tUNCATEGORIZED\tRUN")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					e.Timestamp.Local().Format(time.DateTime), e.File,
					e.Parsed, e.Skipped, e.Categorized, e.Uncategorized, e.RunID)
			}
			return tw.Flush()
		},
	}
}
