// Package http2java turns the textual description of an HTTP request into
// Java code that builds the same request with java.net.http.HttpRequest.
//
// # Input
//
// The input is a request line, header lines and an optional body after an
// empty line, as in a raw HTTP/1.1 message:
//
//	POST /api/users HTTP/1.1
//	Host: example.com
//	Content-Type: application/json; charset=utf-8
//	Authorization: Digest username="Mufasa", realm='users', qop=auth
//
//	°{"name":"x"}°
//
// Header names may be quoted with apostrophes ('Host'). Content-Type,
// Authorization, WWW-Authenticate, Content-Language and Content-Encoding
// values are checked against their sub-grammars.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each call compiles in its own unit with no shared mutable state.
//
// # APIs
//
//   - Compile/CompileReader - analysis and code generation
//   - Validate - analysis only, errors as a Go error
//   - Parse/ParseReader - AST view via shape-core
//   - Render/Marshal - request description text from an AST or a Request
package http2java

import (
	"strings"

	"github.com/shapestone/http2java/internal/semantic"
)

// Request is a request description.
type Request struct {
	Method  string  // "GET" or "POST"
	Path    string  // "/api/users?q=foo"
	Version string  // "HTTP/1.1" or "HTTP/2"
	Headers Headers // ordered, as declared
	Body    []byte  // raw body (nil if none)
}

// Header is a single header line as written.
type Header struct {
	Key   string
	Value string
}

// Headers is an ordered list of headers.
type Headers []Header

// Get returns the first header value whose key matches after the quoting
// apostrophes are removed. Matching is case-sensitive, as in the analyzer.
func (h Headers) Get(key string) string {
	for _, hdr := range h {
		if semantic.NormalizeKey(hdr.Key) == key {
			return hdr.Value
		}
	}
	return ""
}

// Add appends a header.
func (h *Headers) Add(key, value string) {
	*h = append(*h, Header{Key: key, Value: value})
}

// Diagnostic is an error or warning raised while compiling.
// Line and Column are -1 when the diagnostic concerns the whole request.
type Diagnostic struct {
	Severity string `json:"severity"` // "error" or "warning"
	Code     string `json:"code"`     // e.g. "missing-host"
	Category string `json:"category"` // e.g. "Semantic error"
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Text     string `json:"text"` // rendered "[line:col] Category:\tmessage"
}

// String returns the rendered diagnostic.
func (d Diagnostic) String() string {
	return d.Text
}

// Result is the outcome of compiling one request description.
type Result struct {
	Code     string       `json:"code"` // empty when Errors is not
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`
}

// OK reports whether no error was raised.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Err returns a *CompileError listing the errors, or nil.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	return &CompileError{Diagnostics: r.Errors}
}

// Report renders every error and then every warning, one per line.
func (r *Result) Report() string {
	var b strings.Builder
	for _, d := range r.Errors {
		b.WriteString(d.Text)
		b.WriteByte('\n')
	}
	for _, d := range r.Warnings {
		b.WriteString(d.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func newResult(res *semantic.Result) *Result {
	return &Result{
		Code:     res.Code,
		Errors:   convertDiagnostics(res.Errors),
		Warnings: convertDiagnostics(res.Warnings),
	}
}

func convertDiagnostics(ds []semantic.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(ds))
	for i, d := range ds {
		out[i] = Diagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Category: d.Category(),
			Message:  d.Message(),
			Line:     d.Line,
			Column:   d.Column,
			Text:     d.String(),
		}
	}
	return out
}
