package semantic

import "unicode/utf8"

const (
	hostHeader        = "Host"
	contentTypeHeader = "Content-Type"

	methodGet  = "GET"
	methodPost = "POST"
)

var encodingElements = map[string]struct{}{
	"gzip":     {},
	"compress": {},
	"deflate":  {},
	"br":       {},
	"identity": {},
}

// CheckCharset verifies the Content-Type parameter keyword of a non-multipart
// media type.
func (u *Unit) CheckCharset(tok Token) {
	u.expectKeyword(tok, "charset", CodeCharsetKeyword)
}

// CheckBoundary verifies the Content-Type parameter keyword of a multipart
// media type.
func (u *Unit) CheckBoundary(tok Token) {
	u.expectKeyword(tok, "boundary", CodeBoundaryKeyword)
}

// CheckBasic verifies a Basic authentication scheme and returns its text.
func (u *Unit) CheckBasic(tok Token) string {
	u.expectKeyword(tok, "Basic", CodeBasicKeyword)
	return tok.Text()
}

// CheckDigest verifies a Digest authentication scheme and returns its text.
func (u *Unit) CheckDigest(tok Token) string {
	u.expectKeyword(tok, "Digest", CodeDigestKeyword)
	return tok.Text()
}

func (u *Unit) expectKeyword(tok Token, want string, code Code) {
	if tok.Text() != want {
		u.sink.Error(code, tok)
	}
}

// CheckLanguage verifies that a base language tag has 2 or 3 characters.
func (u *Unit) CheckLanguage(tok Token) {
	n := utf8.RuneCountInString(tok.Text())
	if n < 2 || n > 3 {
		u.sink.Error(CodeLanguageTagLength, tok)
	}
}

// CheckEncoding verifies a Content-Encoding element.
func (u *Unit) CheckEncoding(tok Token) {
	if _, ok := encodingElements[tok.Text()]; !ok {
		u.sink.Error(CodeUnknownEncoding, tok)
	}
}

// CheckHeaders runs the checks that need the complete header set: Host must
// be present whatever the method, POST should declare a Content-Type and
// GET should not.
func (u *Unit) CheckHeaders() {
	if !u.registry.Has(hostHeader) {
		u.sink.Error(CodeMissingHost, nil)
	}
	hasContentType := u.registry.Has(contentTypeHeader)
	switch u.method() {
	case methodPost:
		if !hasContentType {
			u.sink.Warn(CodeNoContentTypeOnPost)
		}
	case methodGet:
		if hasContentType {
			u.sink.Warn(CodeContentTypeOnGet)
		}
	}
}

// CheckBody compares the method against the presence of a body.
func (u *Unit) CheckBody() {
	switch u.method() {
	case methodPost:
		if !u.body.Present {
			u.sink.Warn(CodeNoBodyOnPost)
		}
	case methodGet:
		if u.body.Present {
			u.sink.Warn(CodeBodyOnGet)
		}
	}
}

// method returns the request method, or "" while no request line is known.
func (u *Unit) method() string {
	if u.requestLine == nil {
		return ""
	}
	return u.requestLine.Method
}
