package http2java

import (
	"io"

	"github.com/shapestone/http2java/internal/parser"
	"github.com/shapestone/shape-core/pkg/ast"
)

// Parse reads a request description into an AST.
//
// The result is an ast.ObjectNode:
//
//	{ "type": "request", "method": "GET", "path": "/api",
//	  "version": "HTTP/1.1",
//	  "headers": [{"key": "Host", "value": "example.com", "line": 2}, ...],
//	  "body": "..." }
//
// Parse fails only on syntax or lexical errors; use Compile for the
// semantic checks.
func Parse(input string) (ast.SchemaNode, error) {
	p := parser.NewParser([]byte(input))
	return p.Parse()
}

// ParseReader reads all data from r and parses it into an AST.
func ParseReader(r io.Reader) (ast.SchemaNode, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	p := parser.NewParser(data)
	return p.Parse()
}
