package http2java

import (
	"fmt"

	"github.com/shapestone/http2java/internal/parser"
	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node (from Parse) back to request description text.
func Render(node ast.SchemaNode) ([]byte, error) {
	req, err := NodeToRequest(node)
	if err != nil {
		return nil, fmt.Errorf("http2java: Render: %w", err)
	}
	return Marshal(req)
}

// Generate renders node and compiles the resulting description.
func Generate(node ast.SchemaNode) (*Result, error) {
	data, err := Render(node)
	if err != nil {
		return nil, err
	}
	return CompileBytes(data), nil
}

// NodeToRequest converts an AST ObjectNode into a Request.
func NodeToRequest(node ast.SchemaNode) (*Request, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("expected ObjectNode, got %T", node)
	}
	typeLit, ok := obj.Properties()["type"].(*ast.LiteralNode)
	if !ok || typeLit.Value() != "request" {
		return nil, fmt.Errorf("missing or invalid 'type' property")
	}

	internal, err := parser.NodeToRequest(node)
	if err != nil {
		return nil, err
	}
	req := &Request{
		Method:  internal.Method,
		Path:    internal.Path,
		Version: internal.Version,
	}
	for _, h := range internal.Headers {
		req.Headers.Add(h.Key, h.Value)
	}
	if internal.HasBody {
		req.Body = []byte(internal.Body)
	}
	return req, nil
}
