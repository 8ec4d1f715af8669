package http2java

import (
	"bytes"
	"io"

	"github.com/shapestone/http2java/internal/frontend"
)

// Compile analyzes input and, when no error is found, generates the Java
// code. Warnings never prevent code generation.
func Compile(input string) *Result {
	return CompileBytes([]byte(input))
}

// CompileBytes is Compile for a byte slice.
func CompileBytes(data []byte) *Result {
	_, res := frontend.Compile(data)
	return newResult(res)
}

// CompileReader reads all data from r and compiles it.
func CompileReader(r io.Reader) (*Result, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return CompileBytes(data), nil
}

// Validate compiles input and returns its errors as a *CompileError,
// or nil when the request is valid.
func Validate(input string) error {
	return Compile(input).Err()
}

// readAll reads all data from r.
func readAll(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
