package http2java

import (
	"strings"
	"testing"

	udiff "github.com/aymanbagabas/go-udiff"
)

func TestFromCurl(t *testing.T) {
	req, notes := FromCurl(`curl -X POST https://example.com/api -H 'Content-Type: text/plain' -d hello`)
	if req == nil {
		t.Fatalf("nil request, notes = %v", notes)
	}
	if req.Method != "POST" || req.Path != "/api" {
		t.Errorf("request line = %s %s", req.Method, req.Path)
	}
	if got := req.Headers.Get("Host"); got != "example.com" {
		t.Errorf("Host = %q", got)
	}
	if string(req.Body) != "hello" {
		t.Errorf("Body = %q", req.Body)
	}
}

func TestFromCurl_NoURL(t *testing.T) {
	req, notes := FromCurl("curl -v")
	if req != nil || len(notes) == 0 {
		t.Errorf("req = %+v, notes = %v", req, notes)
	}
}

func TestCompileCurl(t *testing.T) {
	res, notes := CompileCurl(`curl -X POST https://example.com/api -H 'Content-Type: text/plain' -d hello`)
	if res == nil {
		t.Fatalf("nil result, notes = %v", notes)
	}
	if !res.OK() || len(res.Warnings) != 0 {
		t.Fatalf("report:\n%s", res.Report())
	}
	want := "HttpRequest request = HttpRequest.newBuilder()\n" +
		"\t.version(HttpClient.Version.HTTP_1_1)\n" +
		"\t.uri(new URI(\"http://example.com/api\"))\n" +
		"\t.header(\"Content-Type\", \"text/plain\")\n" +
		"\t.POST(HttpRequest.BodyPublishers.ofString(\"hello\"))\n" +
		"\t.build();"
	if res.Code != want {
		t.Errorf("code mismatch:\n%s", udiff.Unified("want", "got", want, res.Code))
	}
}

func TestCompileCurl_UnsupportedMethod(t *testing.T) {
	res, notes := CompileCurl("curl -X DELETE http://h/x")
	if res == nil || res.OK() {
		t.Fatalf("expected compile errors, res = %+v", res)
	}
	if len(notes) != 1 || !strings.Contains(notes[0], "DELETE") {
		t.Errorf("notes = %v", notes)
	}
}
