package http2java

import "fmt"

// Marshal returns the request description text of req: the request line,
// one "Key: Value" line per header, and the body after an empty line.
// Line endings are LF. Missing version defaults to HTTP/1.1.
func Marshal(req *Request) ([]byte, error) {
	if req == nil {
		return nil, fmt.Errorf("http2java: Marshal(nil)")
	}
	if req.Method == "" {
		return nil, fmt.Errorf("http2java: request method is empty")
	}
	if req.Path == "" {
		return nil, fmt.Errorf("http2java: request path is empty")
	}

	version := req.Version
	if version == "" {
		version = "HTTP/1.1"
	}

	buf := make([]byte, 0, 256)
	buf = append(buf, req.Method...)
	buf = append(buf, ' ')
	buf = append(buf, req.Path...)
	buf = append(buf, ' ')
	buf = append(buf, version...)
	buf = append(buf, '\n')

	for _, h := range req.Headers {
		buf = append(buf, h.Key...)
		buf = append(buf, ':', ' ')
		buf = append(buf, h.Value...)
		buf = append(buf, '\n')
	}

	if req.Body != nil {
		buf = append(buf, '\n')
		buf = append(buf, req.Body...)
	}
	return buf, nil
}
