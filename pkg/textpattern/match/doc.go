/*
Package match decides whether a text matches a pattern under one of several
matching semantics.

# Modes

A Mode is one base Kind plus optional Modifier bits:

	Exact       whole-string equality (culture-aware, or a custom Comparer)
	SubString   the text starts with the pattern
	Glob        *, ?, [...] wildcards over the entire text
	RegExp      regular expression (regexp2 engine, .NET syntax)
	Integer     both sides parsed as integers; "007" matches "7"
	Callback    a caller-supplied predicate

	NoCase           case-insensitive
	ForceCase        case-sensitive, whatever the caller asked for
	SubPattern       brace-expand the pattern and match any alternative
	EmptySubPattern  keep empty alternatives when expanding

Modes are validated when built, so two kinds at once is an error rather than
a silent priority choice:

	mode, err := match.ParseMode("glob", "nocase", "subpattern")
	mode, err := match.ModeFromFlags(match.FlagGlob | match.FlagNoCase)
	mode := match.MustMode(match.Exact, match.ForceCase)

# Matching

	m := match.NewMatcher(match.WithRegexTimeout(time.Second))
	ok, err := m.Match(mode, "cat", "{dog,cat,bird}", false)

MatchAny and MatchAll apply one mode to a list of patterns, stopping as soon
as the outcome is known.

# Errors

Integer mode reports unparsable numbers as conversion errors, RegExp mode
reports compile and match failures (including timeouts) as engine errors,
and Callback mode without a callback reports ErrNoCallback. A mismatch is
never reported as an error.
*/
package match
