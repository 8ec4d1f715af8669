package tokenizer

import (
	"testing"

	coretok "github.com/shapestone/shape-core/pkg/tokenizer"
)

type kv struct {
	kind  string
	value string
}

func assertTokens(t *testing.T, tokens []coretok.Token, expected []kv) {
	t.Helper()
	if len(tokens) != len(expected) {
		t.Fatalf("token count = %d, want %d. tokens = %v", len(tokens), len(expected), formatTokens(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind() != exp.kind {
			t.Errorf("token[%d].Kind() = %q, want %q", i, tokens[i].Kind(), exp.kind)
		}
		if tokens[i].ValueString() != exp.value {
			t.Errorf("token[%d].Value() = %q, want %q", i, tokens[i].ValueString(), exp.value)
		}
	}
}

func TestTokenize_RequestLine(t *testing.T) {
	tok := NewTokenizer()
	tok.Initialize("GET /api HTTP/1.1")

	tokens, eos := tok.Tokenize()
	if !eos {
		t.Error("expected EOS")
	}

	assertTokens(t, tokens, []kv{
		{TokenText, "GET"},
		{TokenSP, " "},
		{TokenText, "/api"},
		{TokenSP, " "},
		{TokenVersion, "HTTP/1.1"},
	})
}

func TestTokenize_QuotedHeaderName(t *testing.T) {
	tok := NewTokenizer()
	tok.Initialize("'Host': example.com")

	tokens, eos := tok.Tokenize()
	if !eos {
		t.Error("expected EOS")
	}

	assertTokens(t, tokens, []kv{
		{TokenQuoted, "'Host'"},
		{TokenColon, ":"},
		{TokenSP, " "},
		{TokenText, "example.com"},
	})
}

func TestTokenize_ContentTypeParams(t *testing.T) {
	tok := NewTokenizer()
	tok.Initialize("text/html; charset=utf-8")

	tokens, _ := tok.Tokenize()
	assertTokens(t, tokens, []kv{
		{TokenText, "text/html"},
		{TokenSemicolon, ";"},
		{TokenSP, " "},
		{TokenText, "charset"},
		{TokenEquals, "="},
		{TokenText, "utf-8"},
	})
}

func TestTokenize_DigestParams(t *testing.T) {
	tok := NewTokenizer()
	tok.Initialize(`Digest username="Mufasa",	realm='x'`)

	tokens, _ := tok.Tokenize()
	assertTokens(t, tokens, []kv{
		{TokenText, "Digest"},
		{TokenSP, " "},
		{TokenText, "username"},
		{TokenEquals, "="},
		{TokenQuoted, `"Mufasa"`},
		{TokenComma, ","},
		{TokenSP, "\t"},
		{TokenText, "realm"},
		{TokenEquals, "="},
		{TokenQuoted, "'x'"},
	})
}

func TestTokenize_StrayCRStops(t *testing.T) {
	tok := NewTokenizer()
	tok.Initialize("Host\rx")

	tokens, eos := tok.Tokenize()
	if eos {
		t.Error("expected tokenization to stop at CR")
	}
	assertTokens(t, tokens, []kv{
		{TokenText, "Host"},
	})
}

func TestNewTokenizerWithStream(t *testing.T) {
	stream := coretok.NewStream("POST /api HTTP/2")
	tok := NewTokenizerWithStream(stream)

	tokens, eos := tok.Tokenize()
	if !eos {
		t.Error("expected EOS")
	}
	if len(tokens) == 0 {
		t.Fatal("expected tokens, got none")
	}
	if tokens[0].Kind() != TokenText || tokens[0].ValueString() != "POST" {
		t.Errorf("tokens[0] = %v, want Text('POST')", tokens[0])
	}
}

func TestQuotedMatcher(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"abc" rest`, `"abc"`},
		{"'a b'", "'a b'"},
		{`'it"s'`, `'it"s'`},
	}
	for _, tt := range tests {
		tok := QuotedMatcher()(coretok.NewStream(tt.input))
		if tok == nil {
			t.Fatalf("QuotedMatcher(%q) = nil", tt.input)
		}
		if tok.ValueString() != tt.want {
			t.Errorf("QuotedMatcher(%q) = %q, want %q", tt.input, tok.ValueString(), tt.want)
		}
	}
}

func TestQuotedMatcher_Unterminated(t *testing.T) {
	if tok := QuotedMatcher()(coretok.NewStream("'abc")); tok != nil {
		t.Errorf("expected nil for unterminated quote, got %v", tok)
	}
	if tok := QuotedMatcher()(coretok.NewStream("abc")); tok != nil {
		t.Errorf("expected nil for unquoted input, got %v", tok)
	}
}

func TestSPMatcher_Run(t *testing.T) {
	tok := SPMatcher()(coretok.NewStream(" \t x"))
	if tok == nil {
		t.Fatal("expected token, got nil")
	}
	if tok.ValueString() != " \t " {
		t.Errorf("Value = %q, want %q", tok.ValueString(), " \t ")
	}
	if tok := SPMatcher()(coretok.NewStream("X")); tok != nil {
		t.Errorf("expected nil for non-SP char, got %v", tok)
	}
}

func TestVersionMatcher_NonHTTP(t *testing.T) {
	matcher := VersionMatcher()
	stream := coretok.NewStream("GET /")
	tok := matcher(stream)
	if tok != nil {
		t.Errorf("expected nil for non-HTTP/ prefix, got %v", tok)
	}
}

func TestTextMatcher_StartWithStopChar(t *testing.T) {
	for _, input := range []string{": value", "; x", ", y", "=z", "\x01abc"} {
		if tok := TextMatcher()(coretok.NewStream(input)); tok != nil {
			t.Errorf("TextMatcher(%q) = %v, want nil", input, tok)
		}
	}
}

// ── ScanLine ───────────────────────────────────────────────────────────────

func TestScanLine_Positions(t *testing.T) {
	lexemes := ScanLine("Content-Type: text/html; charset=utf-8", 2, 1)

	want := []struct {
		kind string
		text string
		col  int
	}{
		{TokenText, "Content-Type", 1},
		{TokenColon, ":", 13},
		{TokenSP, " ", 14},
		{TokenText, "text/html", 15},
		{TokenSemicolon, ";", 24},
		{TokenSP, " ", 25},
		{TokenText, "charset", 26},
		{TokenEquals, "=", 33},
		{TokenText, "utf-8", 34},
	}
	if len(lexemes) != len(want) {
		t.Fatalf("lexeme count = %d, want %d: %+v", len(lexemes), len(want), lexemes)
	}
	for i, w := range want {
		l := lexemes[i]
		if l.Kind != w.kind || l.Val != w.text || l.Col != w.col || l.Ln != 2 {
			t.Errorf("lexeme[%d] = %+v, want %s %q at 2:%d", i, l, w.kind, w.text, w.col)
		}
	}
}

func TestScanLine_UnicodeColumns(t *testing.T) {
	lexemes := ScanLine("°x° y", 1, 1)
	last := lexemes[len(lexemes)-1]
	if last.Val != "y" || last.Col != 5 {
		t.Errorf("last lexeme = %+v, want y at column 5", last)
	}
}

func TestScanLine_LexicalError(t *testing.T) {
	lexemes := ScanLine("Host\x01: x", 3, 1)

	var errLex *Lexeme
	for i := range lexemes {
		if lexemes[i].IsLexicalError() {
			errLex = &lexemes[i]
			break
		}
	}
	if errLex == nil {
		t.Fatalf("no lexical error lexeme in %+v", lexemes)
	}
	if errLex.Col != 5 || errLex.Line() != 3 {
		t.Errorf("error lexeme at %d:%d, want 3:5", errLex.Line(), errLex.Column())
	}

	last := lexemes[len(lexemes)-1]
	if last.Val != "x" || last.Col != 8 {
		t.Errorf("scanning did not resume: last = %+v", last)
	}
}

func TestScanLine_StrayCR(t *testing.T) {
	lexemes := ScanLine("Host\r: x", 2, 1)
	if len(lexemes) < 2 {
		t.Fatalf("lexemes = %+v", lexemes)
	}
	cr := lexemes[1]
	if !cr.IsLexicalError() || cr.Val != "\r" || cr.Col != 5 {
		t.Errorf("lexeme[1] = %+v, want lexical error \\r at column 5", cr)
	}
	if lexemes[0].Kind != TokenText || lexemes[0].Val != "Host" {
		t.Errorf("lexeme[0] = %+v, want Text Host", lexemes[0])
	}
}

func TestSignificant(t *testing.T) {
	got := Significant(ScanLine("a , b", 1, 1))
	if len(got) != 3 {
		t.Fatalf("Significant() = %+v, want 3 lexemes", got)
	}
	if got[2].End() != 6 {
		t.Errorf("End() = %d, want 6", got[2].End())
	}
}

func formatTokens(tokens []coretok.Token) string {
	s := "["
	for i, t := range tokens {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	s += "]"
	return s
}
