package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/textpattern/pkg/textpattern/dispatch"
)

func newSwitchCmd(opts *globalOptions) *cobra.Command {
	var flags matchFlags

	cmd := &cobra.Command{
		Use:     "switch <text> <pattern> <body> [<pattern> <body>...]",
		Short:   "Print the body of the first pattern that matches",
		Aliases: []string{"s"},
		GroupID: GroupText,
		Long: `Print the body of the first pattern that matches text.

A body of "-" falls through to the body of the next arm. A last arm whose
pattern is "default" matches anything. Nothing is printed when no arm
matches.`,
		Example: `  textpattern switch -m glob main.go '*.c' C '*.go' Go default other   # Go
  textpattern switch -m glob x.h '*.c' - '*.h' 'C family'              # C family`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := flags.parse()
			if err != nil {
				return err
			}
			arms, err := dispatch.ParseArms(args[1:])
			if err != nil {
				return err
			}

			eng, err := openEngine(cmd, opts, nil)
			if err != nil {
				return err
			}
			defer eng.Close()

			res, err := eng.Switch(cmd.Context(), mode, args[0], arms, flags.noCase)
			if err != nil {
				return err
			}
			if res.Matched {
				fmt.Fprintln(cmd.OutOrStdout(), res.Body)
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
