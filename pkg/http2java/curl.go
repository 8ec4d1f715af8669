package http2java

import "github.com/shapestone/http2java/internal/curlimport"

// FromCurl converts a curl command line into a Request. Flags and values
// that have no request-description equivalent are skipped and described
// in notes. The Request is nil when the command has no URL.
func FromCurl(cmd string) (*Request, []string) {
	imp, notes := curlimport.Import(cmd)
	if imp == nil {
		return nil, notes
	}
	req := &Request{
		Method:  imp.Method,
		Path:    imp.Path,
		Version: imp.Version,
	}
	for _, h := range imp.Headers {
		req.Headers.Add(h.Key, h.Value)
	}
	if imp.HasBody {
		req.Body = []byte(imp.Body)
	}
	return req, notes
}

// CompileCurl imports a curl command and compiles the result. It returns
// nil when the command has no URL.
func CompileCurl(cmd string) (*Result, []string) {
	req, notes := FromCurl(cmd)
	if req == nil {
		return nil, notes
	}
	text, err := Marshal(req)
	if err != nil {
		return nil, append(notes, err.Error())
	}
	return CompileBytes(text), notes
}
