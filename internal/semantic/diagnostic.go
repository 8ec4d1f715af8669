package semantic

import "fmt"

// Severity separates diagnostics that block code generation from advisory ones.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Code identifies the kind of a diagnostic.
type Code int

const (
	// Errors
	CodeDuplicateHeader Code = iota + 1
	CodeMissingHost
	CodeCharsetKeyword
	CodeBoundaryKeyword
	CodeBasicKeyword
	CodeDigestKeyword
	CodeUnknownDigestElement
	CodeDuplicateDigestElement
	CodeLanguageTagLength
	CodeUnknownEncoding

	// Front-end errors carry their own detail text.
	CodeSyntax
	CodeLexical

	// Warnings
	CodeBodyOnGet
	CodeNoBodyOnPost
	CodeNoContentTypeOnPost
	CodeContentTypeOnGet
)

var codeNames = map[Code]string{
	CodeDuplicateHeader:        "duplicate-header",
	CodeMissingHost:            "missing-host",
	CodeCharsetKeyword:         "charset-keyword",
	CodeBoundaryKeyword:        "boundary-keyword",
	CodeBasicKeyword:           "basic-keyword",
	CodeDigestKeyword:          "digest-keyword",
	CodeUnknownDigestElement:   "unknown-digest-element",
	CodeDuplicateDigestElement: "duplicate-digest-element",
	CodeLanguageTagLength:      "language-tag-length",
	CodeUnknownEncoding:        "unknown-encoding",
	CodeSyntax:                 "syntax",
	CodeLexical:                "lexical",
	CodeBodyOnGet:              "body-on-get",
	CodeNoBodyOnPost:           "no-body-on-post",
	CodeNoContentTypeOnPost:    "no-content-type-on-post",
	CodeContentTypeOnGet:       "content-type-on-get",
}

// String returns a stable symbolic name, e.g. "missing-host".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Severity reports whether the code is an error or a warning.
func (c Code) Severity() Severity {
	switch c {
	case CodeBodyOnGet, CodeNoBodyOnPost, CodeNoContentTypeOnPost, CodeContentTypeOnGet:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Diagnostic is one recorded error or warning.
// Line and Column are -1 when the diagnostic is not tied to a token.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Text     string // text of the anchoring token
	Detail   string // free-form detail for CodeSyntax and CodeLexical
	Line     int
	Column   int
}

// Positioned reports whether the diagnostic is anchored to a token.
func (d Diagnostic) Positioned() bool {
	return d.Line >= 0 && d.Column >= 0
}

// Category is the label placed in front of the message.
func (d Diagnostic) Category() string {
	if d.Severity == SeverityWarning {
		return "Warning"
	}
	switch d.Code {
	case CodeSyntax:
		return "Syntax error"
	case CodeLexical:
		return "Lexical error"
	default:
		return "Semantic error"
	}
}

// Message renders the human-readable detail. Unknown codes render "".
func (d Diagnostic) Message() string {
	switch d.Code {
	case CodeDuplicateHeader:
		return d.Text + " header is already defined"
	case CodeMissingHost:
		return "Host header never defined"
	case CodeCharsetKeyword:
		return "expected 'charset' but found '" + d.Text + "'"
	case CodeBoundaryKeyword:
		return "expected 'boundary' but found '" + d.Text + "'"
	case CodeBasicKeyword:
		return "expected 'Basic' but found '" + d.Text + "'"
	case CodeDigestKeyword:
		return "expected 'Digest' but found '" + d.Text + "'"
	case CodeUnknownDigestElement:
		return "'" + d.Text + "' is not a valid digest parameter"
	case CodeDuplicateDigestElement:
		return d.Text + " digest parameter is already defined"
	case CodeLanguageTagLength:
		return "base language tag '" + d.Text + "' is incorrect, it must have 2 or 3 characters"
	case CodeUnknownEncoding:
		return "'" + d.Text + "' is not a valid encoding element"
	case CodeSyntax, CodeLexical:
		return d.Detail
	case CodeBodyOnGet:
		return "GET requests should not have a body"
	case CodeNoBodyOnPost:
		return "POST requests should have a body"
	case CodeNoContentTypeOnPost:
		return "POST requests should have the Content-Type header"
	case CodeContentTypeOnGet:
		return "GET requests should not have the Content-Type header"
	default:
		return ""
	}
}

// String renders the diagnostic as "[line:col] Category:\tmessage", or
// without the position prefix when it is not anchored to a token.
func (d Diagnostic) String() string {
	if d.Positioned() {
		return fmt.Sprintf("[%d:%d] %s:\t%s", d.Line, d.Column, d.Category(), d.Message())
	}
	return d.Category() + ":\t" + d.Message()
}

// Sink collects the diagnostics of one compilation in the order they are
// raised. Nothing is ever removed from it.
type Sink struct {
	errors   []Diagnostic
	warnings []Diagnostic
}

// Error records an error anchored to tok. A nil tok records an error
// without position.
func (s *Sink) Error(code Code, tok Token) {
	s.add(newDiagnostic(code, tok, ""))
}

// Errorf records a front-end error with a formatted detail. The category
// becomes "Lexical error" when tok is a lexical error token.
func (s *Sink) Errorf(tok Token, format string, args ...interface{}) {
	code := CodeSyntax
	if tok != nil && tok.IsLexicalError() {
		code = CodeLexical
	}
	s.add(newDiagnostic(code, tok, fmt.Sprintf(format, args...)))
}

// Warn records a request-level warning.
func (s *Sink) Warn(code Code) {
	s.add(newDiagnostic(code, nil, ""))
}

func (s *Sink) add(d Diagnostic) {
	if d.Severity == SeverityWarning {
		s.warnings = append(s.warnings, d)
		return
	}
	s.errors = append(s.errors, d)
}

// Errors returns a copy of the recorded errors.
func (s *Sink) Errors() []Diagnostic {
	return append([]Diagnostic(nil), s.errors...)
}

// Warnings returns a copy of the recorded warnings.
func (s *Sink) Warnings() []Diagnostic {
	return append([]Diagnostic(nil), s.warnings...)
}

// HasErrors reports whether any error was recorded.
func (s *Sink) HasErrors() bool {
	return len(s.errors) > 0
}

func newDiagnostic(code Code, tok Token, detail string) Diagnostic {
	d := Diagnostic{
		Severity: code.Severity(),
		Code:     code,
		Detail:   detail,
		Line:     -1,
		Column:   -1,
	}
	if tok != nil {
		d.Text = tok.Text()
		d.Line = tok.Line()
		d.Column = tok.Column()
	}
	return d
}
