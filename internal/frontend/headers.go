package frontend

import (
	"strings"

	"github.com/shapestone/http2java/internal/semantic"
	"github.com/shapestone/http2java/internal/tokenizer"
)

// headerLine is one "key: value" line after the name and colon were read.
type headerLine struct {
	line  string
	key   tokenizer.Lexeme
	value []tokenizer.Lexeme // significant lexemes after the colon
	raw   string             // value text with surrounding whitespace trimmed
}

// reduceValue runs the sub-grammar of the header, if it has one, and returns
// the value to embed in the generated code.
func (p *Parser) reduceValue(h headerLine) string {
	switch semantic.NormalizeKey(h.key.Val) {
	case "Content-Type":
		p.reduceContentType(h)
	case "Authorization", "Proxy-Authorization", "WWW-Authenticate", "Proxy-Authenticate":
		return p.reduceAuth(h)
	case "Content-Language":
		p.reduceList(h, p.checkLanguageItem)
	case "Content-Encoding":
		p.reduceList(h, p.unit.CheckEncoding)
	}
	return semantic.EscapeLiteral(h.raw)
}

// reduceContentType reads "type/subtype *( ; name=value )". Parameters of a
// multipart type must be boundary, all others charset.
func (p *Parser) reduceContentType(h headerLine) {
	if len(h.value) == 0 {
		p.unit.SyntaxError(h.key, "missing media type for %s", h.key.Val)
		return
	}

	var media strings.Builder
	i := 0
	for ; i < len(h.value) && h.value[i].Kind != tokenizer.TokenSemicolon; i++ {
		media.WriteString(h.value[i].Val)
	}
	multipart := strings.HasPrefix(strings.ToLower(media.String()), "multipart/")

	for i < len(h.value) {
		// h.value[i] is a semicolon
		semi := h.value[i]
		i++
		if i >= len(h.value) {
			p.unit.SyntaxError(semi, "expected parameter after ';'")
			return
		}
		name := h.value[i]
		if multipart {
			p.unit.CheckBoundary(name)
		} else {
			p.unit.CheckCharset(name)
		}
		i++
		if i >= len(h.value) || h.value[i].Kind != tokenizer.TokenEquals {
			p.unit.SyntaxError(name, "expected '=' after parameter '%s'", name.Val)
		}
		for i < len(h.value) && h.value[i].Kind != tokenizer.TokenSemicolon {
			i++
		}
	}
}

// reduceAuth distinguishes "scheme credentials" (Basic) from
// "scheme name=value, ..." (Digest).
func (p *Parser) reduceAuth(h headerLine) string {
	if len(h.value) == 0 {
		p.unit.SyntaxError(h.key, "missing authentication scheme for %s", h.key.Val)
		return ""
	}
	scheme := h.value[0]
	rest := h.value[1:]

	if !isDigestForm(scheme, rest) {
		text := p.unit.CheckBasic(scheme)
		if len(rest) == 0 {
			p.unit.SyntaxError(scheme, "missing credentials after '%s'", scheme.Val)
			return semantic.EscapeLiteral(text)
		}
		creds := trimOWS(tail(h.line, rest[0].Col))
		return semantic.EscapeLiteral(text) + " " + semantic.EscapeLiteral(creds)
	}

	text := p.unit.CheckDigest(scheme)
	scope := p.unit.OpenDigest()
	var params []string
	for _, item := range splitItems(rest, rest[0].Col) {
		if len(item.lex) == 0 {
			p.unit.SyntaxError(item.at, "empty digest parameter")
			continue
		}
		name := item.lex[0]
		scope.Add(name)
		if len(item.lex) < 2 || item.lex[1].Kind != tokenizer.TokenEquals {
			p.unit.SyntaxError(name, "expected '=' after digest parameter '%s'", name.Val)
			continue
		}
		if len(item.lex) < 3 {
			p.unit.SyntaxError(item.lex[1], "missing value for digest parameter '%s'", name.Val)
			continue
		}
		value := trimOWS(span(h.line, item.lex[2].Col, item.lex[len(item.lex)-1].End()))
		params = append(params, name.Val+"="+semantic.EscapeDigestValue(name.Val, value))
	}
	return semantic.EscapeLiteral(text) + " " + strings.Join(params, ", ")
}

// isDigestForm reports whether the lexemes after the scheme are a
// name=value list. Base64 padding ("abc==") reads as Basic credentials.
// A lone trailing "=" ("YWI=" or "username=") is decided by the scheme.
func isDigestForm(scheme tokenizer.Lexeme, rest []tokenizer.Lexeme) bool {
	if len(rest) == 0 {
		return false
	}
	if rest[0].Kind == tokenizer.TokenComma {
		return true
	}
	if len(rest) < 2 || rest[0].Kind != tokenizer.TokenText || rest[1].Kind != tokenizer.TokenEquals {
		return false
	}
	if len(rest) == 2 {
		return semantic.NormalizeKey(scheme.Val) == "Digest"
	}
	switch rest[2].Kind {
	case tokenizer.TokenText, tokenizer.TokenQuoted, tokenizer.TokenComma:
		return true
	}
	return false
}

// reduceList hands the first lexeme of every comma-separated item to check.
func (p *Parser) reduceList(h headerLine, check func(semantic.Token)) {
	if len(h.value) == 0 {
		p.unit.SyntaxError(h.key, "empty value for %s", h.key.Val)
		return
	}
	for _, item := range splitItems(h.value, h.value[0].Col) {
		if len(item.lex) == 0 {
			p.unit.SyntaxError(item.at, "empty list element in %s", h.key.Val)
			continue
		}
		check(item.lex[0])
	}
}

// checkLanguageItem checks the base tag of a language range such as en-US.
func (p *Parser) checkLanguageItem(tok semantic.Token) {
	text := tok.Text()
	if i := strings.IndexByte(text, '-'); i >= 0 {
		text = text[:i]
	}
	p.unit.CheckLanguage(tokenizer.Lexeme{
		Kind: tokenizer.TokenText,
		Val:  text,
		Ln:   tok.Line(),
		Col:  tok.Column(),
	})
}

// listItem is one comma-separated element. at marks the column where the
// element starts, so empty elements can still be located.
type listItem struct {
	lex []tokenizer.Lexeme
	at  tokenizer.Lexeme
}

// splitItems splits lexemes on commas. start is the column of the first
// element.
func splitItems(lexemes []tokenizer.Lexeme, start int) []listItem {
	var items []listItem
	ln := 0
	if len(lexemes) > 0 {
		ln = lexemes[0].Ln
	}
	cur := listItem{at: tokenizer.Lexeme{Kind: tokenizer.TokenText, Ln: ln, Col: start}}
	for _, l := range lexemes {
		if l.Kind == tokenizer.TokenComma {
			items = append(items, cur)
			cur = listItem{at: tokenizer.Lexeme{Kind: tokenizer.TokenText, Ln: l.Ln, Col: l.End()}}
			continue
		}
		if len(cur.lex) == 0 {
			cur.at = l
		}
		cur.lex = append(cur.lex, l)
	}
	return append(items, cur)
}
