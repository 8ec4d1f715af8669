package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a tokenizer for one line of the request grammar.
// Lines arrive without their line ending. Matchers are tried in order:
// 1. SP (space or tab)
// 2. Single-character separators (: ; , =)
// 3. HTTP version string
// 4. Quoted string
// 5. Generic text
//
// Whitespace is significant, so the default whitespace skipper is not used.
// Control characters other than tab, a stray CR included, match nothing
// and stop tokenization.
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		SPMatcher(),
		tokenizer.StringMatcherFunc(TokenColon, ":"),
		tokenizer.StringMatcherFunc(TokenSemicolon, ";"),
		tokenizer.StringMatcherFunc(TokenComma, ","),
		tokenizer.StringMatcherFunc(TokenEquals, "="),
		VersionMatcher(),
		QuotedMatcher(),
		TextMatcher(),
	)
}

// NewTokenizerWithStream creates a tokenizer using a pre-configured stream.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := NewTokenizer()
	tok.InitializeFromStream(stream)
	return tok
}

// SPMatcher matches a run of spaces and horizontal tabs.
func SPMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || (r != ' ' && r != '\t') {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenSP, value)
	}
}

// VersionMatcher matches "HTTP/" followed by digits and dots.
func VersionMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		prefix := []rune("HTTP/")
		var value []rune

		for _, expected := range prefix {
			r, ok := stream.PeekChar()
			if !ok || r != expected {
				return nil
			}
			stream.NextChar()
			value = append(value, r)
		}

		for {
			r, ok := stream.PeekChar()
			if !ok {
				break
			}
			if (r >= '0' && r <= '9') || r == '.' {
				stream.NextChar()
				value = append(value, r)
			} else {
				break
			}
		}

		return tokenizer.NewToken(TokenVersion, value)
	}
}

// QuotedMatcher matches a string enclosed in apostrophes or double quotes,
// quotes included. An unterminated quote matches nothing.
func QuotedMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		open, ok := stream.PeekChar()
		if !ok || (open != '\'' && open != '"') {
			return nil
		}
		stream.NextChar()
		value := []rune{open}

		for {
			r, ok := stream.PeekChar()
			if !ok || r == '\r' || r == '\n' {
				return nil
			}
			stream.NextChar()
			value = append(value, r)
			if r == open {
				return tokenizer.NewToken(TokenQuoted, value)
			}
		}
	}
}

// TextMatcher matches any run of printable characters up to a separator.
// Methods, paths, header names and bare values are all Text.
func TextMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune

		for {
			r, ok := stream.PeekChar()
			if !ok || isTextStop(r) {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}

		if len(value) == 0 {
			return nil
		}

		return tokenizer.NewToken(TokenText, value)
	}
}

func isTextStop(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', ':', ';', ',', '=':
		return true
	}
	return r < 0x20 || r == 0x7f
}
