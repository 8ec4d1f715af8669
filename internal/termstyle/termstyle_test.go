package termstyle

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shapestone/http2java/internal/config"
)

// ── Colour resolution ──────────────────────────────────────────

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	if ColorEnabled(&buf, config.ColorAuto) {
		t.Error("auto on a buffer should be off")
	}
	if !ColorEnabled(&buf, config.ColorAlways) {
		t.Error("always should be on")
	}
	if ColorEnabled(&buf, config.ColorNever) {
		t.Error("never should be off")
	}
}

// ── Plain output ───────────────────────────────────────────────

func TestPrinter_PlainDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, config.ColorNever, "")
	if err := p.Error("Semantic error:\tHost header never defined"); err != nil {
		t.Fatalf("Error: %v", err)
	}
	if err := p.Warning("Warning:\tGET requests should not have a body"); err != nil {
		t.Fatalf("Warning: %v", err)
	}
	want := "Semantic error:\tHost header never defined\nWarning:\tGET requests should not have a body\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_PlainCode(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, config.ColorNever, "")
	if err := p.Code("\t.build();"); err != nil {
		t.Fatalf("Code: %v", err)
	}
	if buf.String() != "\t.build();\n" {
		t.Errorf("output = %q", buf.String())
	}
}

// ── Coloured output ────────────────────────────────────────────

func TestPrinter_ColorDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, config.ColorAlways, "")
	if !p.Color() {
		t.Fatal("expected colour on")
	}
	if err := p.Error("[3:26] Semantic error:\tbad"); err != nil {
		t.Fatalf("Error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected escape sequences, got %q", out)
	}
	if !strings.Contains(out, "[3:26]") || !strings.Contains(out, "bad") {
		t.Errorf("output lost text: %q", out)
	}
}

func TestPrinter_ColorCode(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, config.ColorAlways, "monokai")
	code := "HttpRequest request = HttpRequest.newBuilder()\n\t.GET()\n\t.build();"
	if err := p.Code(code); err != nil {
		t.Fatalf("Code: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") || !strings.Contains(out, "HttpRequest") {
		t.Errorf("expected highlighted Java, got %q", out)
	}
}

func TestSplitPosition(t *testing.T) {
	tests := []struct {
		in, prefix, rest string
	}{
		{"[1:2] Semantic error:\tx", "[1:2]", "Semantic error:\tx"},
		{"Warning:\tx", "", "Warning:\tx"},
		{"[broken", "", "[broken"},
	}
	for _, tt := range tests {
		prefix, rest := splitPosition(tt.in)
		if prefix != tt.prefix || rest != tt.rest {
			t.Errorf("splitPosition(%q) = %q, %q, want %q, %q", tt.in, prefix, rest, tt.prefix, tt.rest)
		}
	}
}
