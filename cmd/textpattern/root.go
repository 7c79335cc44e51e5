package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/textpattern/pkg/textpattern"
	"github.com/randalmurphal/textpattern/pkg/textpattern/config"
	"github.com/randalmurphal/textpattern/pkg/textpattern/observability"
)

// Command group IDs for organizing help output
const (
	GroupText    = "text"
	GroupRuleSet = "ruleset"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	verbose    bool
	quiet      bool
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "textpattern",
		Short: "Format, expand, match and map text",
		Long: `textpattern is a command line front end for the textpattern engine.

It formats printf-style strings, expands {a,b} brace patterns, matches text
in exact, substring, glob, regexp, integer modes, and applies ordered
replacement rules, either given inline or saved as named rule sets.`,
		Version:                    versionString(),
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose && opts.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("TEXTPATTERN_CONFIG"),
		"Config file (.yaml, .json or .toml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every operation at debug level")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only log errors")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddGroup(
		&cobra.Group{ID: GroupText, Title: "Text Commands:"},
		&cobra.Group{ID: GroupRuleSet, Title: "Rule Set Commands:"},
	)

	cmd.AddCommand(newFormatCmd(opts))
	cmd.AddCommand(newExpandCmd(opts))
	cmd.AddCommand(newMatchCmd(opts))
	cmd.AddCommand(newMapCmd(opts))
	cmd.AddCommand(newSwitchCmd(opts))
	cmd.AddCommand(newRuleSetCmd(opts))

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "textpattern:", err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'textpattern -h' for help")
		os.Exit(1)
	}
}

// newLogger builds the stderr logger for one invocation.
func newLogger(w io.Writer, settings config.Settings, opts *globalOptions) *slog.Logger {
	level := settings.LogLevel
	switch {
	case opts.verbose:
		level = slog.LevelDebug
	case opts.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openEngine loads the configuration, applies tweak, and builds an Engine.
// The caller must Close it.
func openEngine(cmd *cobra.Command, opts *globalOptions, tweak func(*config.Settings)) (*textpattern.Engine, error) {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if tweak != nil {
		tweak(&settings)
	}

	logger := newLogger(cmd.ErrOrStderr(), settings, opts)
	logger = observability.EnrichLogger(logger, cmd.CommandPath(), uuid.NewString())

	return textpattern.New(
		textpattern.WithSettings(settings),
		textpattern.WithLogger(logger),
	)
}
