package http2java

import (
	"fmt"
	"strings"
)

// CompileError lists the errors that prevented code generation.
type CompileError struct {
	Diagnostics []Diagnostic
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return "http2java: compile failed"
	case 1:
		return "http2java: " + flatten(e.Diagnostics[0].Text)
	}
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = flatten(d.Text)
	}
	return fmt.Sprintf("http2java: %d errors: %s", len(parts), strings.Join(parts, "; "))
}

// flatten replaces the tab between category and message with a space so
// the text fits on one line.
func flatten(s string) string {
	return strings.ReplaceAll(s, ":\t", ": ")
}
