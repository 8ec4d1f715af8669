// Package parser builds a shape-core AST view of a request description.
//
// The request is mapped to an ObjectNode with the following structure:
//
//	{ "type": "request", "method": "POST", "path": "/api",
//	  "version": "HTTP/1.1",
//	  "headers": [{"key": "Host", "value": "example.com"}, ...],
//	  "body": "..." }
//
// Keys and values are kept exactly as written; no normalization is applied.
package parser

import (
	"fmt"

	"github.com/shapestone/http2java/internal/frontend"
	"github.com/shapestone/http2java/internal/semantic"
	"github.com/shapestone/shape-core/pkg/ast"
)

var zeroPos = ast.Position{}

// Parser produces AST nodes from request descriptions.
type Parser struct {
	data []byte
}

// NewParser creates a new AST parser for the given input.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse reads the request and returns an AST ObjectNode. It fails only when
// the input is not shaped like a request (syntax or lexical errors); semantic
// problems such as a missing Host header do not prevent the AST.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	unit := semantic.NewUnit()
	req := frontend.NewParser(p.data, unit).Parse()

	for _, d := range unit.Diagnostics().Errors() {
		if d.Code == semantic.CodeSyntax || d.Code == semantic.CodeLexical {
			return nil, fmt.Errorf("http2java: %s", d.String())
		}
	}
	return RequestToNode(req), nil
}

// RequestToNode converts a front-end request into an AST ObjectNode.
func RequestToNode(req *frontend.Request) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode("request", zeroPos),
		"method":  ast.NewLiteralNode(req.Method, zeroPos),
		"path":    ast.NewLiteralNode(req.Path, zeroPos),
		"version": ast.NewLiteralNode(req.Version, zeroPos),
		"headers": headersToNode(req.Headers),
	}

	if req.HasBody {
		props["body"] = ast.NewLiteralNode(req.Body, zeroPos)
	}

	return ast.NewObjectNode(props, zeroPos)
}

func headersToNode(headers []frontend.Header) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(headers))
	for i, h := range headers {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"key":   ast.NewLiteralNode(h.Key, zeroPos),
			"value": ast.NewLiteralNode(h.Value, zeroPos),
			"line":  ast.NewLiteralNode(int64(h.Line), zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

// NodeToRequest converts an AST ObjectNode back to a front-end request.
func NodeToRequest(node ast.SchemaNode) (*frontend.Request, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("expected ObjectNode, got %T", node)
	}

	props := obj.Properties()
	req := &frontend.Request{}

	req.Method = stringProp(props, "method")
	req.Path = stringProp(props, "path")
	req.Version = stringProp(props, "version")
	if v, ok := props["headers"]; ok {
		hdrs, err := nodeToHeaders(v)
		if err != nil {
			return nil, err
		}
		req.Headers = hdrs
	}
	if v, ok := props["body"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			if s, ok := lit.Value().(string); ok {
				req.Body = s
				req.HasBody = true
			}
		}
	}

	return req, nil
}

func nodeToHeaders(node ast.SchemaNode) ([]frontend.Header, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected ArrayDataNode for headers, got %T", node)
	}

	elements := arr.Elements()
	headers := make([]frontend.Header, 0, len(elements))
	for _, elem := range elements {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			continue
		}
		props := obj.Properties()
		h := frontend.Header{
			Key:   stringProp(props, "key"),
			Value: stringProp(props, "value"),
		}
		if v, ok := props["line"]; ok {
			if lit, ok := v.(*ast.LiteralNode); ok {
				switch n := lit.Value().(type) {
				case int64:
					h.Line = int(n)
				case float64:
					h.Line = int(n)
				}
			}
		}
		headers = append(headers, h)
	}

	return headers, nil
}

func stringProp(props map[string]ast.SchemaNode, name string) string {
	v, ok := props[name]
	if !ok {
		return ""
	}
	lit, ok := v.(*ast.LiteralNode)
	if !ok {
		return ""
	}
	s, _ := lit.Value().(string)
	return s
}
