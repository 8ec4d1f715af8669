// Package semantic implements the semantic-analysis and code-generation stage
// of http2java.
//
// A front-end feeds a Unit with the request line, the headers, the tokens of
// the structured header sub-grammars and the body, in source order. The Unit
// validates each construct as it arrives, accumulates diagnostics and, once
// Finish is called, emits Java source that builds the same request with
// java.net.http.HttpRequest.
//
// # Thread Safety
//
// A Unit holds all state of one compilation and is not safe for concurrent
// use. Separate Units share nothing and may run in parallel.
package semantic

// Token is the view of a lexical token the analyzer needs.
// Line and Column are 1-based.
type Token interface {
	Text() string
	Line() int
	Column() int
	IsLexicalError() bool
}

// RequestLine is the method, path and protocol version of a request.
type RequestLine struct {
	Method  string // "GET" or "POST"
	Path    string // "/index"
	Version string // "HTTP/1.1" or "HTTP/2"
}

// Header is one declared header. Value holds the text that is embedded in
// the generated code, already passed through the normalizer by the front-end.
type Header struct {
	Key   Token
	Value string
}

// Name returns the header key with the front-end quoting removed.
func (h Header) Name() string {
	if h.Key == nil {
		return ""
	}
	return NormalizeKey(h.Key.Text())
}

// Body is the optional request body.
type Body struct {
	Text    string
	Present bool
}
