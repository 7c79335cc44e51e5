package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/textpattern/pkg/textpattern/config"
)

func newExpandCmd(opts *globalOptions) *cobra.Command {
	var (
		start     int
		keepEmpty bool
	)

	cmd := &cobra.Command{
		Use:     "expand <pattern>",
		Short:   "Expand the brace groups of a pattern",
		Aliases: []string{"e"},
		GroupID: GroupText,
		Long: `Expand the top-level {a,b} groups of a pattern, one result per line.

Groups combine as a Cartesian product. Nested braces are kept as literal
text. A pattern without braces prints itself.`,
		Example: `  textpattern expand 'a{b,c}d{1,2}'        # abd1 abd2 acd1 acd2
  textpattern expand --keep-empty 'x{,y}'   # x xy
  textpattern expand --start 3 '{a}{b,c}'   # {a}b {a}c`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine(cmd, opts, func(s *config.Settings) {
				if cmd.Flags().Changed("keep-empty") {
					s.KeepEmptySubPatterns = keepEmpty
				}
			})
			if err != nil {
				return err
			}
			defer eng.Close()

			alts, err := eng.Expand(cmd.Context(), args[0], start)
			if err != nil {
				return err
			}
			if alts == nil {
				alts = []string{args[0]}
			}

			out := cmd.OutOrStdout()
			for _, alt := range alts {
				fmt.Fprintln(out, alt)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "Byte offset to start scanning for groups")
	cmd.Flags().BoolVar(&keepEmpty, "keep-empty", false, "Keep empty alternatives")

	return cmd
}
