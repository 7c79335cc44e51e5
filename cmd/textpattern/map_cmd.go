package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/textpattern/pkg/textpattern/strmap"
)

func newMapCmd(opts *globalOptions) *cobra.Command {
	var (
		ruleSet string
		noCase  bool
		limit   int
		count   bool
	)

	cmd := &cobra.Command{
		Use:     "map <text> [<old> <new>...]",
		Short:   "Replace substrings using ordered rules",
		GroupID: GroupText,
		Long: `Replace substrings of text using ordered old/new rules.

At each position the first rule whose old text matches wins and scanning
resumes after the match. Replaced text is never rescanned. Rules are given
inline as old/new pairs or by naming a saved rule set with --ruleset.`,
		Example: `  textpattern map abc ab X a Y              # Xc
  textpattern map --limit 1 aaa a Z          # Zaa
  textpattern map --ruleset html 'a<b & c'   # a&lt;b &amp; c`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, pairs := args[0], args[1:]
			if ruleSet != "" && len(pairs) > 0 {
				return fmt.Errorf("give rules inline or with --ruleset, not both")
			}

			eng, err := openEngine(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer eng.Close()

			var res strmap.Result
			if ruleSet != "" {
				res, err = eng.MapRuleSet(cmd.Context(), ruleSet, text)
			} else {
				var rules []strmap.Rule
				rules, err = strmap.ParseRules(pairs)
				if err != nil {
					return err
				}
				res, err = eng.Map(cmd.Context(), text, rules,
					strmap.WithNoCase(noCase), strmap.WithLimit(limit))
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			if count {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d replacement(s)\n", res.Applied)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&ruleSet, "ruleset", "r", "", "Use a saved rule set")
	cmd.Flags().BoolVarP(&noCase, "nocase", "i", false, "Match old text case-insensitively")
	cmd.Flags().IntVar(&limit, "limit", strmap.Unlimited, "Maximum number of replacements (negative for no limit)")
	cmd.Flags().BoolVar(&count, "count", false, "Print the number of replacements to stderr")
	cmd.MarkFlagsMutuallyExclusive("ruleset", "nocase")
	cmd.MarkFlagsMutuallyExclusive("ruleset", "limit")

	return cmd
}
