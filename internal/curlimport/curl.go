// Package curlimport turns a curl command line into the parts of a
// request description. It is best effort: anything it cannot represent
// is reported as a note and skipped.
package curlimport

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Header is one header taken from the command.
type Header struct {
	Key   string
	Value string
}

// Request is the imported request.
type Request struct {
	Method  string
	Path    string
	Version string
	Headers []Header
	Body    string
	HasBody bool
}

// Import parses cmd. The returned request is nil when no URL could be
// found. Notes describe every flag or value that was dropped.
func Import(cmd string) (*Request, []string) {
	im := &importer{}
	req := im.run(cmd)
	return req, im.notes
}

type importer struct {
	notes []string
}

func (im *importer) note(format string, args ...any) {
	im.notes = append(im.notes, fmt.Sprintf(format, args...))
}

func (im *importer) run(cmd string) *Request {
	if strings.TrimSpace(cmd) == "" {
		im.note("empty curl command")
		return nil
	}

	cmd = strings.ReplaceAll(cmd, "\\\r\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\\n", " ")

	args, err := splitWords(cmd)
	if err != nil {
		im.note("malformed curl command: %v", err)
		return nil
	}
	if len(args) > 0 && strings.EqualFold(args[0], "curl") {
		args = args[1:]
	}
	args = expandShortFlags(args)

	var (
		method   string
		rawURL   string
		version  = "HTTP/1.1"
		headers  []Header
		data     []string
		encoded  []string
		explicit bool
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func() (string, bool) {
			if i+1 < len(args) {
				i++
				return args[i], true
			}
			im.note("flag %s has no value", arg)
			return "", false
		}

		switch arg {
		case "-X", "--request":
			if v, ok := value(); ok {
				method = strings.ToUpper(v)
				explicit = true
			}
		case "-H", "--header":
			if v, ok := value(); ok {
				headers = append(headers, splitHeader(v))
			}
		case "-d", "--data", "--data-raw", "--data-binary", "--data-ascii":
			if v, ok := value(); ok {
				if strings.HasPrefix(v, "@") && arg != "--data-raw" {
					im.note("file body %q skipped", v)
					continue
				}
				data = append(data, v)
			}
		case "--data-urlencode":
			if v, ok := value(); ok {
				encoded = append(encoded, v)
			}
		case "-F", "--form":
			if v, ok := value(); ok {
				im.note("multipart field %q skipped", v)
			}
		case "-b", "--cookie":
			if v, ok := value(); ok {
				headers = append(headers, Header{Key: "Cookie", Value: v})
			}
		case "-A", "--user-agent":
			if v, ok := value(); ok {
				headers = append(headers, Header{Key: "User-Agent", Value: v})
			}
		case "-e", "--referer":
			if v, ok := value(); ok {
				headers = append(headers, Header{Key: "Referer", Value: v})
			}
		case "-u", "--user":
			if v, ok := value(); ok {
				headers = append(headers, Header{
					Key:   "Authorization",
					Value: "Basic " + base64.StdEncoding.EncodeToString([]byte(v)),
				})
			}
		case "--http2", "--http2-prior-knowledge":
			version = "HTTP/2"
		case "--http1.1":
			version = "HTTP/1.1"
		case "--http1.0", "--http3":
			im.note("%s is not supported, using HTTP/1.1", arg)
			version = "HTTP/1.1"
		case "-I", "--head":
			if !explicit {
				method = "HEAD"
			}
		case "-G", "--get":
			if !explicit {
				method = "GET"
				explicit = true
			}

		case "-v", "--verbose", "-s", "--silent", "-S", "--show-error",
			"-L", "--location", "--compressed", "-k", "--insecure",
			"-i", "--include", "-O", "-g", "--globoff", "--no-keepalive",
			"-f", "--fail", "--no-progress-meter", "-#", "--progress-bar":
		case "-o", "--output", "-m", "--max-time", "--connect-timeout",
			"-x", "--proxy", "--cert", "--key", "--cacert", "--resolve",
			"--limit-rate", "-w", "--write-out", "--retry", "--dns-servers",
			"--interface", "--local-port", "--max-redirs":
			value()

		default:
			switch {
			case strings.HasPrefix(arg, "-"):
				im.note("unknown curl flag %q skipped", arg)
			case rawURL == "":
				rawURL = arg
			default:
				im.note("extra argument %q skipped", arg)
			}
		}
	}

	if rawURL == "" {
		im.note("no URL found in curl command")
		return nil
	}

	body, hasBody := "", false
	switch {
	case len(encoded) > 0:
		body, hasBody = urlEncode(encoded), true
		if !hasHeader(headers, "Content-Type") {
			headers = append(headers, Header{Key: "Content-Type", Value: "application/x-www-form-urlencoded"})
		}
	case len(data) > 0:
		body, hasBody = strings.Join(data, "&"), true
		if !hasHeader(headers, "Content-Type") {
			headers = append(headers, Header{Key: "Content-Type", Value: "application/x-www-form-urlencoded"})
		}
	}

	if method == "" {
		method = "GET"
		if hasBody {
			method = "POST"
		}
	}
	if method != "GET" && method != "POST" {
		im.note("method %s cannot be generated", method)
	}

	host, path := splitURL(rawURL)
	if host != "" && !hasHeader(headers, "Host") {
		headers = append([]Header{{Key: "Host", Value: host}}, headers...)
	}

	return &Request{
		Method:  method,
		Path:    path,
		Version: version,
		Headers: headers,
		Body:    body,
		HasBody: hasBody,
	}
}

func splitHeader(s string) Header {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return Header{Key: strings.TrimSpace(s)}
	}
	return Header{
		Key:   strings.TrimRight(s[:colon], " \t"),
		Value: strings.TrimLeft(s[colon+1:], " \t"),
	}
}

// splitURL returns the authority and the path with its query. The
// fragment is dropped. A URL without a scheme is taken as a path.
func splitURL(raw string) (host, path string) {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	rest, ok := strings.CutPrefix(raw, "https://")
	if !ok {
		rest, ok = strings.CutPrefix(raw, "http://")
	}
	if !ok {
		if !strings.HasPrefix(raw, "/") {
			raw = "/" + raw
		}
		return "", raw
	}
	slash := strings.IndexAny(rest, "/?")
	if slash < 0 {
		return rest, "/"
	}
	if rest[slash] == '?' {
		return rest[:slash], "/" + rest[slash:]
	}
	return rest[:slash], rest[slash:]
}

func hasHeader(headers []Header, key string) bool {
	for _, h := range headers {
		if strings.EqualFold(h.Key, key) {
			return true
		}
	}
	return false
}

// urlEncode follows curl(1): "name=value" encodes value, "=value" and
// "value" encode the whole value.
func urlEncode(fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		name, value, ok := strings.Cut(f, "=")
		switch {
		case !ok:
			parts = append(parts, url.QueryEscape(f))
		case name == "":
			parts = append(parts, url.QueryEscape(value))
		default:
			parts = append(parts, name+"="+url.QueryEscape(value))
		}
	}
	return strings.Join(parts, "&")
}

// splitWords splits a shell command line, honouring single quotes,
// double quotes and backslash escapes.
func splitWords(s string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		single  bool
		double  bool
		pending bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case single:
			if c == '\'' {
				single = false
			} else {
				cur.WriteByte(c)
			}
		case double:
			switch {
			case c == '"':
				double = false
			case c == '\\' && i+1 < len(s) && strings.IndexByte("\"\\$`", s[i+1]) >= 0:
				i++
				cur.WriteByte(s[i])
			default:
				cur.WriteByte(c)
			}
		case c == '\'':
			single, pending = true, true
		case c == '"':
			double, pending = true, true
		case c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
			pending = true
		case c == ' ' || c == '\t' || c == '\n':
			if pending {
				words = append(words, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteByte(c)
			pending = true
		}
	}
	if single || double {
		return nil, fmt.Errorf("unclosed quote")
	}
	if pending {
		words = append(words, cur.String())
	}
	return words, nil
}

// shortValueFlags take a value; in a bundle like -XPOST the rest of the
// bundle is that value.
var shortValueFlags = map[byte]bool{
	'X': true, 'H': true, 'd': true, 'F': true, 'u': true, 'o': true,
	'A': true, 'e': true, 'm': true, 'w': true, 'x': true, 'b': true,
}

// expandShortFlags turns "-sS" into "-s -S" and "-XPOST" into "-X POST".
func expandShortFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if len(arg) <= 2 || arg[0] != '-' || arg[1] == '-' || arg[1] == '#' {
			out = append(out, arg)
			continue
		}
		chars := arg[1:]
		for i := 0; i < len(chars); i++ {
			out = append(out, "-"+string(chars[i]))
			if shortValueFlags[chars[i]] {
				if i+1 < len(chars) {
					out = append(out, chars[i+1:])
				}
				break
			}
		}
	}
	return out
}
