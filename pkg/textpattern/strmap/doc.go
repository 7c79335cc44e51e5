// Package strmap applies ordered (old, new) rewrite rules to a string in one
// left-to-right pass.
//
// Rule order matters: at every position the first rule in the list whose Old
// text matches wins, even when a later rule would match a longer span.
// Replaced text is never rescanned.
package strmap
