package config

import (
	"regexp"
)

// envPattern matches ${NAME}. NAME follows shell variable rules.
var envPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Lookup resolves a variable name, reporting whether it is set.
// os.LookupEnv satisfies it.
type Lookup func(name string) (string, bool)

// ExpandEnv returns a copy of c with ${NAME} references in string values
// replaced by lookup results. Unset variables are kept as written. Values
// under the top-level keys in skip are copied untouched.
//
// Example:
//
//	c = ExpandEnv(c, os.LookupEnv, "rulesets")
//	// ruleset.db: "${HOME}/rules.db" -> "/home/me/rules.db"
func ExpandEnv(c Config, lookup Lookup, skip ...string) Config {
	out := make(map[string]any, len(c.data))
	for k, v := range c.data {
		if contains(skip, k) {
			out[k] = v
			continue
		}
		out[k] = expandValue(v, lookup)
	}
	return New(out)
}

// expandString replaces ${NAME} references in s.
func expandString(s string, lookup Lookup) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val, ok := lookup(match[2 : len(match)-1]); ok {
			return val
		}
		return match
	})
}

// expandValue expands strings, recursing into tables and lists.
func expandValue(v any, lookup Lookup) any {
	switch val := v.(type) {
	case string:
		return expandString(val, lookup)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = expandValue(item, lookup)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = expandValue(item, lookup)
		}
		return out
	case []string:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = expandString(item, lookup)
		}
		return out
	default:
		return v
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
