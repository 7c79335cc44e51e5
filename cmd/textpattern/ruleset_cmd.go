package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/textpattern/pkg/textpattern/ruleset"
	"github.com/randalmurphal/textpattern/pkg/textpattern/strmap"
)

func newRuleSetCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ruleset",
		Short:   "Manage named rule sets",
		Aliases: []string{"rs"},
		GroupID: GroupRuleSet,
		Long: `Manage named rule sets for the map command.

Rule sets live in the SQLite database named by ruleset.db in the config
file. Without it they only exist for the duration of one command, which
is only useful for rule sets listed under rulesets in the config file.`,
		Example: `  textpattern ruleset save html '&' '&amp;' '<' '&lt;' '>' '&gt;'
  textpattern ruleset list
  textpattern ruleset show html
  textpattern ruleset delete html`,
	}

	cmd.AddCommand(newRuleSetSaveCmd(opts))
	cmd.AddCommand(newRuleSetListCmd(opts))
	cmd.AddCommand(newRuleSetShowCmd(opts))
	cmd.AddCommand(newRuleSetDeleteCmd(opts))

	return cmd
}

func newRuleSetSaveCmd(opts *globalOptions) *cobra.Command {
	var (
		noCase bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "save <name> <old> <new> [<old> <new>...]",
		Short: "Save a rule set, replacing any with the same name",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := strmap.ParseRules(args[1:])
			if err != nil {
				return err
			}

			eng, err := openEngine(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer eng.Close()

			rs := ruleset.RuleSet{Name: args[0], Rules: rules, NoCase: noCase, Limit: limit}
			if err := eng.SaveRuleSet(cmd.Context(), rs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved rule set %s (%d rules)\n", rs.Name, len(rules))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&noCase, "nocase", "i", false, "Match old text case-insensitively")
	cmd.Flags().IntVar(&limit, "limit", strmap.Unlimited, "Maximum number of replacements per map (negative for no limit)")

	return cmd
}

func newRuleSetListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List saved rule sets",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer eng.Close()

			infos, err := eng.ListRuleSets(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No rule sets")
				return nil
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{
					info.Name,
					strconv.Itoa(info.Rules),
					strconv.FormatBool(info.NoCase),
					limitString(info.Limit),
					info.Updated.Local().Format(time.DateTime),
				})
			}
			writeTable(cmd.OutOrStdout(), []string{"NAME", "RULES", "NOCASE", "LIMIT", "UPDATED"}, rows)
			return nil
		},
	}
}

func newRuleSetShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the rules of a rule set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer eng.Close()

			rs, err := eng.LoadRuleSet(cmd.Context(), args[0])
			if errors.Is(err, ruleset.ErrNotFound) {
				return fmt.Errorf("rule set %q not found", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%s: nocase=%t limit=%s\n", rs.Name, rs.NoCase, limitString(rs.Limit))
			rows := make([][]string, 0, len(rs.Rules))
			for i, r := range rs.Rules {
				rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Quote(r.Old), strconv.Quote(r.New)})
			}
			writeTable(cmd.OutOrStdout(), []string{"#", "OLD", "NEW"}, rows)
			return nil
		},
	}
}

func newRuleSetDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>...",
		Short:   "Delete rule sets",
		Aliases: []string{"rm"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer eng.Close()

			for _, name := range args {
				if err := eng.DeleteRuleSet(cmd.Context(), name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted rule set %s\n", name)
			}
			return nil
		},
	}
}

func limitString(limit int) string {
	if limit < 0 {
		return "none"
	}
	return strconv.Itoa(limit)
}

// writeTable renders a bordered table on a terminal and tab-separated
// lines otherwise.
func writeTable(w io.Writer, headers []string, rows [][]string) {
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t.String())
}
