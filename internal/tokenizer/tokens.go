// Package tokenizer splits the lines of a request description into tokens
// using Shape's tokenizer framework.
package tokenizer

// Token type constants for the request grammar.
// The grammar is line-oriented; a line is tokenized on its own.
const (
	// Start-line tokens
	TokenVersion = "Version" // HTTP/1.1, HTTP/2

	// Separators
	TokenSP        = "SP"        // space or horizontal tab
	TokenColon     = "Colon"     // :
	TokenSemicolon = "Semicolon" // ;
	TokenComma     = "Comma"     // ,
	TokenEquals    = "Equals"    // =

	// Values
	TokenQuoted = "Quoted" // 'Host', "Mufasa"
	TokenText   = "Text"   // methods, paths, names, bare values

	// Special
	TokenError = "Error" // character no matcher accepts
)
