/*
Package dispatch implements switch-style selection over pattern/body arms.

# Overview

A Dispatcher walks an ordered list of arms and returns the body of the
first arm whose pattern matches the text under the configured match mode:

	arms, _ := dispatch.ParseArms([]string{
	    "*.go", "golang",
	    "*.c", "-",
	    "*.h", "c",
	    "default", "unknown",
	})
	d := dispatch.NewDispatcher(dispatch.WithMode(match.MustMode(match.Glob)))
	res, _ := d.Select("main.c", arms)
	// res.Body: "c" (the *.c arm falls through to *.h)

# Fall Through

A body of "-" means "use the next arm's body". Consecutive "-" bodies chain.
The last arm may not fall through; that is a parse error reported before
any pattern is tried.

# Default

"default" is only special as the pattern of the last arm, where it matches
every text. Elsewhere it is an ordinary pattern.
*/
package dispatch
