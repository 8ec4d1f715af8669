// Package termstyle renders compiler output for a terminal: coloured
// diagnostic lines and syntax-highlighted Java.
package termstyle

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/shapestone/http2java/internal/config"
)

const defaultStyle = "monokai"

// Printer writes diagnostics and code to one writer.
type Printer struct {
	w     io.Writer
	color bool
	style string

	errStyle  lipgloss.Style
	warnStyle lipgloss.Style
	posStyle  lipgloss.Style
}

// New returns a printer for w. mode is one of the config color modes;
// auto enables colour only when w is a terminal.
func New(w io.Writer, mode, style string) *Printer {
	if strings.TrimSpace(style) == "" {
		style = defaultStyle
	}
	p := &Printer{w: w, color: ColorEnabled(w, mode), style: style}

	r := lipgloss.NewRenderer(w)
	if p.color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	p.errStyle = r.NewStyle().Foreground(lipgloss.Color("#F25F5C")).Bold(true)
	p.warnStyle = r.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	p.posStyle = r.NewStyle().Foreground(lipgloss.Color("#A6A1BB"))
	return p
}

// ColorEnabled resolves a color mode against w.
func ColorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Color reports whether the printer emits escape sequences.
func (p *Printer) Color() bool {
	return p.color
}

// Error writes one error line.
func (p *Printer) Error(text string) error {
	return p.line(p.errStyle, text)
}

// Warning writes one warning line.
func (p *Printer) Warning(text string) error {
	return p.line(p.warnStyle, text)
}

// line styles the "[l:c]" prefix and the rest of text separately.
func (p *Printer) line(s lipgloss.Style, text string) error {
	if !p.color {
		_, err := io.WriteString(p.w, text+"\n")
		return err
	}
	prefix, rest := splitPosition(text)
	out := s.Render(rest)
	if prefix != "" {
		out = p.posStyle.Render(prefix) + " " + out
	}
	_, err := io.WriteString(p.w, out+"\n")
	return err
}

// Code writes Java source, highlighted when colour is on. Highlighting
// failures fall back to the plain text.
func (p *Printer) Code(code string) error {
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	if p.color {
		var b strings.Builder
		if err := quick.Highlight(&b, code, "java", "terminal256", p.style); err == nil {
			_, err := io.WriteString(p.w, b.String())
			return err
		}
	}
	_, err := io.WriteString(p.w, code)
	return err
}

func splitPosition(text string) (string, string) {
	if !strings.HasPrefix(text, "[") {
		return "", text
	}
	end := strings.Index(text, "] ")
	if end < 0 {
		return "", text
	}
	return text[:end+1], text[end+2:]
}
