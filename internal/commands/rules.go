package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendcat/internal/categorize"
	"github.com/cleared-dev/spendcat/internal/model"
	"github.com/cleared-dev/spendcat/internal/rules"
)

func newRulesCommand(opts *rootOptions) *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage categorization rules",
	}
	rulesCmd.AddCommand(
		newRulesListCommand(opts),
		newRulesAddCommand(opts),
		newRulesTestCommand(opts),
		newRulesToggleCommand(opts, "enable", true),
		newRulesToggleCommand(opts, "disable", false),
		newRulesRemoveCommand(opts),
	)
	return rulesCmd
}

func newRulesListCommand(opts *rootOptions) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rules in file order, or active rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.loadRules()
			if err != nil {
				return err
			}
			list := rs.All()
			if activeOnly {
				list = rs.Active()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPRIORITY\tACTIVE\tTYPE\tPATTERN\tCATEGORY\tNAME")
			for _, r := range list {
				fmt.Fprintf(tw, "%s\t%d\t%t\t%s\t%s\t%s\t%s\n",
					r.ID, r.Priority, r.Active, r.PatternType, r.PatternValue, r.Category, r.Name)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active rules, highest priority first")

	return cmd
}

func newRulesAddCommand(opts *rootOptions) *cobra.Command {
	var r model.Rule
	var patternType string
	var inactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a categorization rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.open(cmd)
			if err != nil {
				return err
			}
			rs, err := rules.Load(p.root)
			if err != nil {
				return err
			}

			r.PatternType = model.PatternType(patternType)
			r.Active = !inactive
			added, err := rs.Add(r)
			if err != nil {
				return err
			}
			if err := rs.Save(p.root); err != nil {
				return err
			}
			p.commit("rules: add "+added.ID, rules.RulesFile)

			fmt.Fprintf(cmd.OutOrStdout(), "Added rule %s\n", added.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&r.ID, "id", "", "rule ID (generated when empty)")
	cmd.Flags().StringVar(&r.Name, "name", "", "human readable name")
	cmd.Flags().StringVar(&patternType, "type", string(model.PatternVendor), "pattern type: vendor, description or amountRange")
	cmd.Flags().StringVar(&r.PatternValue, "pattern", "", "substring, or amount range like 10-50, >100, <5 (required)")
	cmd.Flags().StringVar(&r.Category, "category", "", "category to assign (required)")
	cmd.Flags().IntVar(&r.Priority, "priority", 0, "higher priorities are evaluated first")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "add the rule disabled")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newRulesTestCommand(opts *rootOptions) *cobra.Command {
	var flags expenseFlags

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Show which rules match an expense",
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

			active := rs.Active()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPRIORITY\tMATCH\tCATEGORY")
			for _, m := range categorize.TestAllRules(e, active) {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", m.Rule.ID, m.Rule.Priority, yesNo(m.Matched), m.Rule.Category)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if category, ok := categorize.Categorize(e, active); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "winner: %s\n", category)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "no rule matched")
			}
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newRulesToggleCommand(opts *rootOptions, verb string, active bool) *cobra.Command {
	short := "Disable a rule"
	if active {
		short = "Enable a rule"
	}
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRules(cmd, opts, "rules: "+verb+" "+args[0], func(rs *rules.Service) error {
				return rs.SetActive(args[0], active)
			})
		},
	}
}

func newRulesRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRules(cmd, opts, "rules: remove "+args[0], func(rs *rules.Service) error {
				return rs.Remove(args[0])
			})
		},
	}
}

// editRules loads the rule set, applies edit, and saves it.
func editRules(cmd *cobra.Command, opts *rootOptions, message string, edit func(*rules.Service) error) error {
	p, err := opts.open(cmd)
	if err != nil {
		return err
	}
	rs, err := rules.Load(p.root)
	if err != nil {
		return err
	}
	if err := edit(rs); err != nil {
		return err
	}
	if err := rs.Save(p.root); err != nil {
		return err
	}
	p.commit(message, rules.RulesFile)

	fmt.Fprintln(cmd.OutOrStdout(), "OK")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
