package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/language"

	tperrors "github.com/randalmurphal/textpattern/pkg/textpattern/errors"
)

const op = "config"

// Settings is the decoded engine configuration.
type Settings struct {
	// MaxSize caps format and map output, in characters. Negative is unlimited.
	MaxSize int

	// LegacyOctal makes %#o prefix 0 instead of 0o.
	LegacyOctal bool

	// Culture drives collation for Exact/SubString matching and the decimal
	// separator accepted when parsing float arguments.
	Culture language.Tag

	// RegexTimeout bounds a single regular expression match. Zero is no limit.
	RegexTimeout time.Duration

	// RegexOptions are applied to every RegExp-mode pattern.
	RegexOptions regexp2.RegexOptions

	// KeepEmptySubPatterns keeps empty brace alternatives in Expand.
	KeepEmptySubPatterns bool

	// LogLevel is the minimum level the CLI logs at.
	LogLevel slog.Level

	// Metrics and Tracing enable OpenTelemetry instrumentation.
	Metrics bool
	Tracing bool

	// RuleSetDB is the SQLite path for saved rule sets. Empty keeps them in memory.
	RuleSetDB string

	// RuleSets are named rule lists given as flat old,new,... pairs.
	RuleSets map[string][]string
}

// DefaultSettings returns the configuration used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		MaxSize:      math.MaxInt32,
		Culture:      language.Und,
		RegexTimeout: 5 * time.Second,
		LogLevel:     slog.LevelInfo,
	}
}

var regexOptionNames = map[string]regexp2.RegexOptions{
	"ignorecase":              regexp2.IgnoreCase,
	"multiline":               regexp2.Multiline,
	"explicitcapture":         regexp2.ExplicitCapture,
	"compiled":                regexp2.Compiled,
	"singleline":              regexp2.Singleline,
	"ignorepatternwhitespace": regexp2.IgnorePatternWhitespace,
	"righttoleft":             regexp2.RightToLeft,
	"ecmascript":              regexp2.ECMAScript,
	"re2":                     regexp2.RE2,
}

var logLevelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Decode reads Settings from c, starting from DefaultSettings.
//
// Recognized layout (YAML shown; JSON and TOML use the same keys):
//
//	culture: de
//	format:
//	  max_size: 4096
//	  legacy_octal: true
//	match:
//	  regex_timeout: 2s
//	  regex_options: [multiline, singleline]
//	  keep_empty_subpatterns: true
//	observability:
//	  log_level: debug
//	  metrics: true
//	  tracing: false
//	ruleset:
//	  db: rules.db
//	rulesets:
//	  html: ["&", "&amp;", "<", "&lt;"]
func Decode(c Config) (Settings, error) {
	s := DefaultSettings()

	if name := c.String("culture", ""); name != "" {
		tag, err := language.Parse(name)
		if err != nil {
			return Settings{}, tperrors.Configuration(op, fmt.Sprintf("invalid culture %q: %v", name, err))
		}
		s.Culture = tag
	}

	f := c.Sub("format")
	s.MaxSize = f.Int("max_size", s.MaxSize)
	s.LegacyOctal = f.Bool("legacy_octal", s.LegacyOctal)

	m := c.Sub("match")
	s.RegexTimeout = m.Duration("regex_timeout", s.RegexTimeout)
	s.KeepEmptySubPatterns = m.Bool("keep_empty_subpatterns", s.KeepEmptySubPatterns)
	for _, name := range m.StringSlice("regex_options", nil) {
		opt, ok := regexOptionNames[strings.ToLower(name)]
		if !ok {
			return Settings{}, tperrors.Configuration(op, fmt.Sprintf("unknown regex option %q", name))
		}
		s.RegexOptions |= opt
	}

	o := c.Sub("observability")
	if name := o.String("log_level", ""); name != "" {
		lvl, ok := logLevelNames[strings.ToLower(name)]
		if !ok {
			return Settings{}, tperrors.Configuration(op, fmt.Sprintf("unknown log level %q", name))
		}
		s.LogLevel = lvl
	}
	s.Metrics = o.Bool("metrics", s.Metrics)
	s.Tracing = o.Bool("tracing", s.Tracing)

	s.RuleSetDB = c.Sub("ruleset").String("db", s.RuleSetDB)

	sets := c.Sub("rulesets")
	for name := range sets.Raw() {
		pairs := sets.StringSlice(name, nil)
		if pairs == nil {
			return Settings{}, tperrors.Configuration(op, fmt.Sprintf("rule set %q must be a list of strings", name))
		}
		if s.RuleSets == nil {
			s.RuleSets = make(map[string][]string)
		}
		s.RuleSets[name] = pairs
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if s.MaxSize == 0 {
		return tperrors.Configuration(op, "max_size must be non-zero")
	}
	if s.RegexTimeout < 0 {
		return tperrors.Configuration(op, "regex_timeout must not be negative")
	}
	for name, pairs := range s.RuleSets {
		if name == "" {
			return tperrors.Configuration(op, "rule set name must not be empty")
		}
		if len(pairs)%2 != 0 {
			return tperrors.Configuration(op, fmt.Sprintf("rule set %q: char map list unbalanced", name))
		}
	}
	return nil
}

// Load reads and decodes a configuration file. An empty path returns
// DefaultSettings. ${NAME} references to environment variables are expanded
// everywhere except in rule set pairs.
func Load(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	c, err := FromFile(path)
	if err != nil {
		return Settings{}, tperrors.Wrap(tperrors.KindConfiguration, op, "load "+path, err)
	}
	return Decode(ExpandEnv(c, os.LookupEnv, "rulesets"))
}
