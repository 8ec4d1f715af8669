// Package frontend reads a request description line by line and feeds the
// recognized constructs to a semantic.Unit in source order.
//
// The front-end only checks the shape of the input. Every rule about what
// the request means (duplicate headers, keywords, whitelists, method/body
// consistency) lives in package semantic.
package frontend

import (
	"strings"

	"github.com/shapestone/http2java/internal/semantic"
	"github.com/shapestone/http2java/internal/tokenizer"
)

// Request is the request as written, before any normalization. It backs
// the AST view in package parser.
type Request struct {
	Method  string
	Path    string
	Version string
	Headers []Header
	Body    string // raw body text, line endings preserved
	HasBody bool
}

// Header is a raw header line.
type Header struct {
	Key   string
	Value string
	Line  int
}

var (
	supportedMethods  = map[string]struct{}{"GET": {}, "POST": {}}
	supportedVersions = map[string]struct{}{"HTTP/1.1": {}, "HTTP/2": {}}
)

// Parser scans one request description.
type Parser struct {
	data   []byte
	pos    int
	length int
	line   int // 1-indexed number of the next line to read

	unit *semantic.Unit
	req  *Request
}

// NewParser creates a parser that reports into unit.
func NewParser(data []byte, unit *semantic.Unit) *Parser {
	return &Parser{
		data:   data,
		length: len(data),
		line:   1,
		unit:   unit,
		req:    &Request{},
	}
}

// Compile parses data into a fresh unit and finishes it.
func Compile(data []byte) (*Request, *semantic.Result) {
	unit := semantic.NewUnit()
	req := NewParser(data, unit).Parse()
	return req, unit.Finish()
}

// Parse consumes the whole input. Problems are reported to the unit and
// never stop the scan; the returned Request holds whatever was readable.
// Parse does not call Finish.
func (p *Parser) Parse() *Request {
	if p.length == 0 {
		p.unit.SyntaxError(nil, "missing request line")
		return p.req
	}

	lineNo := p.line
	first, _ := p.readLine()
	p.parseRequestLine(string(first), lineNo)

	for p.pos < p.length {
		lineNo = p.line
		line, ok := p.readLine()
		if !ok {
			break
		}
		if len(line) == 0 {
			p.parseBody()
			break
		}
		p.parseHeader(string(line), lineNo)
	}
	return p.req
}

func (p *Parser) parseRequestLine(line string, lineNo int) {
	lexemes := tokenizer.ScanLine(line, lineNo, 1)
	p.reportLexical(lexemes)

	parts := words(lexemes)
	if len(parts) != 3 {
		at := tokenizer.Lexeme{Kind: tokenizer.TokenText, Val: line, Ln: lineNo, Col: 1}
		if len(parts) > 0 {
			at = parts[0]
		}
		p.unit.SyntaxError(at, "malformed request line: expected METHOD PATH VERSION")
		return
	}

	method, path, version := parts[0], parts[1], parts[2]
	if _, ok := supportedMethods[method.Val]; !ok {
		p.unit.SyntaxError(method, "unsupported method '%s'", method.Val)
	}
	if !strings.HasPrefix(path.Val, "/") {
		p.unit.SyntaxError(path, "request path '%s' must start with '/'", path.Val)
	}
	if at, ok := unsafeChar(path); ok {
		p.unit.SyntaxError(at, "invalid character '%s' in request path '%s'", at.Val, path.Val)
	}
	if _, ok := supportedVersions[version.Val]; !ok {
		p.unit.SyntaxError(version, "unsupported protocol version '%s'", version.Val)
	}

	p.req.Method = method.Val
	p.req.Path = path.Val
	p.req.Version = version.Val
	p.unit.SetRequestLine(semantic.RequestLine{
		Method:  method.Val,
		Path:    path.Val,
		Version: version.Val,
	})
}

func (p *Parser) parseHeader(line string, lineNo int) {
	lexemes := tokenizer.ScanLine(line, lineNo, 1)
	p.reportLexical(lexemes)

	sig := tokenizer.Significant(lexemes)
	if len(sig) == 0 || lexemes[0].Kind == tokenizer.TokenSP {
		p.unit.SyntaxError(lexemes[0], "header line must start with a header name")
		return
	}
	key := sig[0]
	if key.Kind != tokenizer.TokenText && !strings.HasPrefix(key.Val, "'") {
		p.unit.SyntaxError(key, "invalid header name '%s'", key.Val)
		return
	}
	if at, ok := unsafeChar(key); ok {
		p.unit.SyntaxError(at, "invalid character '%s' in header name '%s'", at.Val, key.Val)
		return
	}
	if len(sig) < 2 || sig[1].Kind != tokenizer.TokenColon {
		at := key
		if len(sig) > 1 {
			at = sig[1]
		}
		p.unit.SyntaxError(at, "expected ':' after header name '%s'", key.Val)
		return
	}

	colon := sig[1]
	raw := trimOWS(tail(line, colon.End()))
	p.req.Headers = append(p.req.Headers, Header{Key: key.Val, Value: raw, Line: lineNo})

	h := headerLine{line: line, key: key, value: sig[2:], raw: raw}
	value := p.reduceValue(h)
	p.unit.AddHeader(semantic.Header{Key: key, Value: value})
}

// parseBody takes everything after the empty line. Line breaks become the
// Java escape \n so the body fits in a single string literal.
func (p *Parser) parseBody() {
	rest := string(p.data[p.pos:])
	p.pos = p.length

	rest = strings.TrimRight(rest, "\r\n")
	if rest == "" {
		return
	}
	p.req.Body = rest
	p.req.HasBody = true

	text := strings.ReplaceAll(rest, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n", `\n`)
	p.unit.SetBody(text)
}

func (p *Parser) reportLexical(lexemes []tokenizer.Lexeme) {
	for _, l := range lexemes {
		if l.IsLexicalError() {
			p.unit.SyntaxError(l, "unexpected character %q", l.Val)
		}
	}
}

// readLine reads bytes until CRLF or LF, advancing pos.
// Returns the line content (without line ending).
func (p *Parser) readLine() ([]byte, bool) {
	if p.pos >= p.length {
		return nil, false
	}

	start := p.pos
	for p.pos < p.length {
		if p.data[p.pos] == '\r' && p.pos+1 < p.length && p.data[p.pos+1] == '\n' {
			line := p.data[start:p.pos]
			p.pos += 2
			p.line++
			return line, true
		}
		if p.data[p.pos] == '\n' {
			line := p.data[start:p.pos]
			p.pos++
			p.line++
			return line, true
		}
		p.pos++
	}

	// Last line without a line ending
	p.line++
	return p.data[start:p.pos], true
}

// unsafeChar finds the first '"' or '\' in l. Paths and header names are
// copied into Java string literals without escaping, so neither may
// contain them.
func unsafeChar(l tokenizer.Lexeme) (tokenizer.Lexeme, bool) {
	col := l.Col
	for _, r := range l.Val {
		if r == '"' || r == '\\' {
			return tokenizer.Lexeme{Kind: tokenizer.TokenText, Val: string(r), Ln: l.Ln, Col: col}, true
		}
		col++
	}
	return tokenizer.Lexeme{}, false
}

// words joins runs of non-space lexemes into single Text lexemes.
func words(lexemes []tokenizer.Lexeme) []tokenizer.Lexeme {
	var out []tokenizer.Lexeme
	open := false
	for _, l := range lexemes {
		if l.Kind == tokenizer.TokenSP {
			open = false
			continue
		}
		if !open {
			out = append(out, tokenizer.Lexeme{Kind: tokenizer.TokenText, Val: l.Val, Ln: l.Ln, Col: l.Col})
			open = true
			continue
		}
		out[len(out)-1].Val += l.Val
	}
	return out
}

// tail returns line from the 1-based rune column col onwards.
func tail(line string, col int) string {
	return span(line, col, -1)
}

// span returns the runes of line in [from, to), both 1-based columns.
// A negative to means the end of the line.
func span(line string, from, to int) string {
	runes := []rune(line)
	start := from - 1
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		return ""
	}
	end := len(runes)
	if to >= 0 && to-1 < end {
		end = to - 1
	}
	if end < start {
		return ""
	}
	return string(runes[start:end])
}

// trimOWS trims optional whitespace (SP and HTAB) from both ends of s.
func trimOWS(s string) string {
	return strings.Trim(s, " \t")
}
