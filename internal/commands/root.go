package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendcat/internal/buildinfo"
	"github.com/cleared-dev/spendcat/internal/config"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	repo     string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "spendcat",
		Short:   "Import bank statements and categorize expenses",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(".env")
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.repo, "repo", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(opts),
		newParseCommand(opts),
		newCategorizeCommand(opts),
		newRulesCommand(opts),
		newSummaryCommand(opts),
		newExportCommand(opts),
		newLogCommand(opts),
	)

	return rootCmd
}
