package semantic

import "strings"

const (
	builderOpen = "HttpRequest request = HttpRequest.newBuilder()\n"
	version11   = "\t.version(HttpClient.Version.HTTP_1_1)\n"
	version2    = "\t.version(HttpClient.Version.HTTP_2)\n"
	uriScheme   = "http://"
	callGet     = "\t.GET()\n"
	callNoBody  = "\t.POST(HttpRequest.BodyPublishers.noBody())\n"
	builderEnd  = "\t.build();"
)

// Emit renders the Java builder chain for a validated request. headers must
// be the effective, duplicate-free set in declaration order and body.Text
// must already be escaped.
//
// The Host header turns into the uri(...) call; all other headers follow it
// as header(...) calls in declaration order.
func Emit(rl RequestLine, headers []Header, body Body) string {
	var b strings.Builder
	b.WriteString(builderOpen)

	if rl.Version == "HTTP/1.1" {
		b.WriteString(version11)
	} else {
		b.WriteString(version2)
	}

	var hdrs strings.Builder
	for _, h := range headers {
		key := h.Name()
		if key == hostHeader {
			b.WriteString("\t.uri(new URI(\"" + uriScheme + h.Value + rl.Path + "\"))\n")
			continue
		}
		hdrs.WriteString("\t.header(\"" + key + "\", \"" + h.Value + "\")\n")
	}
	b.WriteString(hdrs.String())

	switch {
	case rl.Method == methodGet:
		b.WriteString(callGet)
	case body.Present:
		b.WriteString("\t.POST(HttpRequest.BodyPublishers.ofString(\"" + body.Text + "\"))\n")
	default:
		b.WriteString(callNoBody)
	}

	b.WriteString(builderEnd)
	return b.String()
}
