package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/textpattern/pkg/textpattern/config"
)

func newFormatCmd(opts *globalOptions) *cobra.Command {
	var (
		noNewline   bool
		legacyOctal bool
		maxSize     int
	)

	cmd := &cobra.Command{
		Use:     "format <format> [arg...]",
		Short:   "Format arguments with a printf-style format string",
		Aliases: []string{"f"},
		GroupID: GroupText,
		Long: `Format arguments with a printf-style format string.

Directives have the form %[n$][flags][width][.precision][length]conversion.
Arguments are given as strings; numeric conversions parse them. A 0x, 0o,
0b or 0d prefix selects the radix, so "0x1f" is 31 while "017" is 17.`,
		Example: `  textpattern format '%-5s|%05.1f|%#x' ab 3.14159 255   # ab   |003.1|0xff
  textpattern format '%2$s %1$s' world hello           # hello world
  textpattern format -- '%*d' -5 3                     # "3    "`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine(cmd, opts, func(s *config.Settings) {
				if cmd.Flags().Changed("legacy-octal") {
					s.LegacyOctal = legacyOctal
				}
				if cmd.Flags().Changed("max-size") {
					s.MaxSize = maxSize
				}
			})
			if err != nil {
				return err
			}
			defer eng.Close()

			fmtArgs := make([]any, len(args)-1)
			for i, a := range args[1:] {
				fmtArgs[i] = a
			}

			out, err := eng.Format(cmd.Context(), args[0], fmtArgs...)
			if err != nil {
				return err
			}
			if noNewline {
				fmt.Fprint(cmd.OutOrStdout(), out)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&noNewline, "no-newline", "n", false, "Do not print a trailing newline")
	cmd.Flags().BoolVar(&legacyOctal, "legacy-octal", false, "Prefix %#o with 0 instead of 0o")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "Maximum output size in characters (negative for no limit)")

	return cmd
}
