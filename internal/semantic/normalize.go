package semantic

import "strings"

// degreeSign marks the boundaries of a body in the request grammar. It is
// never part of the body text.
const degreeSign = "°"

// Digest parameters whose values are emitted without quote substitution.
var unquotedDigestElements = map[string]struct{}{
	"algorithm": {},
	"nc":        {},
	"qop":       {},
}

// NormalizeKey strips the apostrophes the front-end uses to quote keys,
// so "Host" and "'Host'" name the same header.
func NormalizeKey(s string) string {
	return strings.ReplaceAll(s, "'", "")
}

// EscapeLiteral makes s safe inside a Java string literal: double quotes
// are backslash-escaped and apostrophes are dropped.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(escapeQuotes(s), "'", "")
}

// EscapeDigestValue prepares the value of the digest parameter name.
// algorithm, nc and qop get EscapeLiteral; every other parameter has its
// apostrophe quoting turned into double quotes, which are then escaped.
func EscapeDigestValue(name, value string) string {
	if _, ok := unquotedDigestElements[name]; ok {
		return EscapeLiteral(value)
	}
	return escapeQuotes(strings.ReplaceAll(value, "'", `"`))
}

// EscapeBody escapes double quotes in a body and removes the degree-sign
// delimiters.
func EscapeBody(s string) string {
	return strings.ReplaceAll(escapeQuotes(s), degreeSign, "")
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
