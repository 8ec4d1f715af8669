package http2java

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
)

func TestRender_Request(t *testing.T) {
	input := "POST /api HTTP/1.1\n'Host': example.com\nContent-Type: text/plain\n\nhello"
	node, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	data, err := Render(node)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(data) != input {
		t.Errorf("Render() =\n%q\nwant:\n%q", string(data), input)
	}
}

func TestRender_NotARequest(t *testing.T) {
	node := ast.NewObjectNode(map[string]ast.SchemaNode{
		"type": ast.NewLiteralNode("response", ast.Position{}),
	}, ast.Position{})
	if _, err := Render(node); err == nil {
		t.Error("Render() = nil error for a non-request node")
	}
}

func TestGenerate(t *testing.T) {
	node, err := Parse("GET /a HTTP/1.1\nHost: h\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	res, err := Generate(node)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(res.Code, `.uri(new URI("http://h/a"))`) {
		t.Errorf("code = %s", res.Code)
	}
}

func TestParseReader_SyntaxError(t *testing.T) {
	_, err := ParseReader(strings.NewReader("DELETE / HTTP/1.1\n"))
	if err == nil {
		t.Fatal("ParseReader() = nil error for unsupported method")
	}
}

func TestMarshal(t *testing.T) {
	req := &Request{Method: "GET", Path: "/"}
	req.Headers.Add("Host", "h")
	data, err := Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "GET / HTTP/1.1\nHost: h\n" {
		t.Errorf("Marshal() = %q", string(data))
	}

	if _, err := Marshal(&Request{Path: "/"}); err == nil {
		t.Error("Marshal() = nil error for empty method")
	}
	if _, err := Marshal(nil); err == nil {
		t.Error("Marshal(nil) = nil error")
	}
}
