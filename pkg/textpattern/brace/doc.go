/*
Package brace expands brace groups ("sub-patterns") into alternative patterns.

# Overview

A pattern may contain any number of top-level groups of the form {a,b,c}.
Expanding it yields every combination of one alternative per group, joined
by the literal text around the groups:

	alts, _ := brace.Expand("a{1,2}b{x,y}", 0, false)
	// alts: [a1bx a1by a2bx a2by]

The first group varies slowest, matching nested loops over the groups in
order.

# No Braces

When the pattern has no brace at or after the start offset, Expand returns
a nil slice and no error. Callers treat the whole string as one pattern:

	alts, _ := brace.Expand("plain", 0, false)
	// alts: nil

# Nesting and Escaping

Only top-level groups are expanded. Braces inside an alternative are copied
as literal text, and commas inside them do not split alternatives:

	alts, _ := brace.Expand("{a{b,c}d,e}", 0, false)
	// alts: [a{b,c}d e]

A backslash makes the next character literal. Both characters are kept in
the output so a later glob or regex stage still sees the escape:

	alts, _ := brace.Expand(`{a\,b,c}`, 0, false)
	// alts: [a\,b c]

# Empty Alternatives

Empty alternatives are dropped unless keepEmpty is set:

	brace.Expand("x{,y}", 0, false) // [xy]
	brace.Expand("x{,y}", 0, true)  // [x xy]

# Errors

Unbalanced braces are parse errors and no partial result is returned.
Use errors.Is with ErrUnmatchedOpen or ErrUnmatchedClose from the
textpattern errors package.

# Thread Safety

Expander is safe for concurrent use after construction.
*/
package brace
