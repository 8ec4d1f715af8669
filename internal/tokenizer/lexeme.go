package tokenizer

import (
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Lexeme is a token with its position in the source. It satisfies
// semantic.Token.
type Lexeme struct {
	Kind string
	Val  string
	Ln   int // 1-based line
	Col  int // 1-based column, counted in runes
}

func (l Lexeme) Text() string         { return l.Val }
func (l Lexeme) Line() int            { return l.Ln }
func (l Lexeme) Column() int          { return l.Col }
func (l Lexeme) IsLexicalError() bool { return l.Kind == TokenError }

// End returns the column just past the lexeme.
func (l Lexeme) End() int {
	return l.Col + utf8.RuneCountInString(l.Val)
}

// ScanLine tokenizes one line (without its line ending). line is the 1-based
// line number and col the column of the first character of text.
//
// Every character of text ends up in exactly one lexeme. A character no
// matcher accepts becomes a TokenError lexeme and scanning resumes after it.
func ScanLine(text string, line, col int) []Lexeme {
	var out []Lexeme
	for text != "" {
		tok := NewTokenizerWithStream(tokenizer.NewStream(text))
		tokens, eos := tok.Tokenize()
		consumed := 0
		for _, t := range tokens {
			v := t.ValueString()
			out = append(out, Lexeme{Kind: t.Kind(), Val: v, Ln: line, Col: col})
			col += utf8.RuneCountInString(v)
			consumed += len(v)
		}
		if eos || consumed >= len(text) {
			break
		}

		r, size := utf8.DecodeRuneInString(text[consumed:])
		out = append(out, Lexeme{Kind: TokenError, Val: string(r), Ln: line, Col: col})
		col++
		text = text[consumed+size:]
	}
	return out
}

// Significant drops SP lexemes.
func Significant(lexemes []Lexeme) []Lexeme {
	out := make([]Lexeme, 0, len(lexemes))
	for _, l := range lexemes {
		if l.Kind != TokenSP {
			out = append(out, l)
		}
	}
	return out
}
