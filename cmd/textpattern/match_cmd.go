package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/textpattern/pkg/textpattern/match"
)

// matchFlags are shared by match and switch.
type matchFlags struct {
	mode   string
	noCase bool
}

func (f *matchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "exact",
		"Match mode: exact, substring, glob, regexp or integer, plus nocase, forcecase, subpattern, emptysubpattern")
	cmd.Flags().BoolVarP(&f.noCase, "nocase", "i", false, "Compare case-insensitively unless the mode says forcecase")
}

func (f *matchFlags) parse() (match.Mode, error) {
	mode, err := match.ParseMode(f.mode)
	if err != nil {
		return match.Mode{}, err
	}
	if mode.Kind() == match.Callback {
		return match.Mode{}, fmt.Errorf("callback mode is only available through the library")
	}
	return mode, nil
}

func newMatchCmd(opts *globalOptions) *cobra.Command {
	var (
		flags matchFlags
		all   bool
	)

	cmd := &cobra.Command{
		Use:     "match <text> <pattern>...",
		Short:   "Test text against one or more patterns",
		Aliases: []string{"m"},
		GroupID: GroupText,
		Long: `Test text against one or more patterns and print true or false.

With several patterns the result is true if any matches, or if all match
when --all is given. Patterns are tried in order and testing stops as soon
as the result is known.`,
		Example: `  textpattern match -m glob main.go '*.go'                 # true
  textpattern match -m glob,subpattern main.go '*.{rs,go}'  # true
  textpattern match -m integer 007 7                        # true
  textpattern match -m regexp --all abc123 '^[a-z]' '\d$'   # true`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := flags.parse()
			if err != nil {
				return err
			}

			eng, err := openEngine(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer eng.Close()

			text, patterns := args[0], args[1:]
			var ok bool
			if all {
				ok, err = eng.MatchAll(cmd.Context(), mode, text, patterns, flags.noCase)
			} else {
				ok, err = eng.MatchAny(cmd.Context(), mode, text, patterns, flags.noCase)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(ok))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Require every pattern to match")

	return cmd
}
