package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shapestone/http2java/internal/config"
	"github.com/shapestone/http2java/internal/termstyle"
	"github.com/shapestone/http2java/pkg/http2java"
)

type compileOptions struct {
	output string
	format string
	color  string
	style  string
	copy   bool
	strict bool
	curl   bool
}

// clipboard access is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func newCompileCmd(g *globalOptions) *cobra.Command {
	opts := &compileOptions{}
	cmd := &cobra.Command{
		Use:   "compile [file|-]",
		Short: "Compile one request description",
		Long: heredoc.Doc(`
			Compile reads a request description from a file, or from stdin
			when the argument is "-" or missing, and prints the Java code.

			Diagnostics go to stderr as "[line:col] Category:	message".
			The command fails when any error is reported, or any warning
			when --strict is set.
		`),
		Example: heredoc.Doc(`
			http2java compile login.http
			cat login.http | http2java compile --format json
			http2java compile login.http -o Login.java --strict
			echo "curl -d a=1 https://example.com/form" | http2java compile --curl
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			opts.merge(cmd.Flags(), cfg)
			in := "-"
			if len(args) == 1 {
				in = args[0]
			}
			return runCompile(cmd, in, *opts)
		},
	}
	addCompileFlags(cmd.Flags(), opts)
	return cmd
}

func addCompileFlags(fs *pflag.FlagSet, opts *compileOptions) {
	fs.StringVarP(&opts.output, "output", "o", "", "write the Java code to this file instead of stdout")
	fs.StringVar(&opts.format, "format", config.FormatText, "diagnostics format: text or json")
	fs.StringVar(&opts.color, "color", config.ColorAuto, "colour mode: auto, always or never")
	fs.StringVar(&opts.style, "style", "", "chroma style for Java highlighting")
	fs.BoolVar(&opts.copy, "copy", false, "copy the generated code to the clipboard")
	fs.BoolVar(&opts.strict, "strict", false, "treat warnings as errors")
	fs.BoolVar(&opts.curl, "curl", false, "input is a curl command line instead of a request description")
}

// merge fills every flag the user did not set from cfg.
func (o *compileOptions) merge(fs *pflag.FlagSet, cfg *config.Config) {
	if !fs.Changed("format") {
		o.format = cfg.Diagnostics.Format
	}
	if !fs.Changed("color") {
		o.color = cfg.Output.Color
	}
	if !fs.Changed("style") {
		o.style = cfg.Output.Style
	}
	if !fs.Changed("copy") {
		o.copy = cfg.Output.Copy
	}
	if !fs.Changed("strict") {
		o.strict = cfg.Diagnostics.WarningsAsErrors
	}
}

type jsonReport struct {
	OK       bool                   `json:"ok"`
	Code     string                 `json:"code,omitempty"`
	Errors   []http2java.Diagnostic `json:"errors"`
	Warnings []http2java.Diagnostic `json:"warnings"`
}

func runCompile(cmd *cobra.Command, in string, opts compileOptions) error {
	switch opts.format {
	case config.FormatText, config.FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (want text or json)", opts.format)
	}

	res, err := compileInput(cmd.InOrStdin(), in, opts.curl, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	failErr := failure(res, opts.strict)

	if opts.format == config.FormatJSON {
		rep := jsonReport{OK: failErr == nil, Errors: res.Errors, Warnings: res.Warnings}
		if failErr == nil {
			rep.Code = res.Code
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		diag := termstyle.New(cmd.ErrOrStderr(), opts.color, opts.style)
		for _, d := range res.Errors {
			if err := diag.Error(d.Text); err != nil {
				return err
			}
		}
		for _, d := range res.Warnings {
			if err := diag.Warning(d.Text); err != nil {
				return err
			}
		}
	}
	if failErr != nil {
		return failErr
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(res.Code+"\n"), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
	} else if opts.format == config.FormatText {
		if err := termstyle.New(cmd.OutOrStdout(), opts.color, opts.style).Code(res.Code); err != nil {
			return err
		}
	}

	if opts.copy {
		if err := writeClipboard(res.Code); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}

func compileInput(stdin io.Reader, in string, curl bool, notes io.Writer) (*http2java.Result, error) {
	r := stdin
	if strings.TrimSpace(in) != "-" {
		f, err := os.Open(in)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	if !curl {
		return http2java.CompileReader(r)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	res, msgs := http2java.CompileCurl(string(b))
	for _, m := range msgs {
		fmt.Fprintf(notes, "curl: %s\n", m)
	}
	if res == nil {
		return nil, errors.New("curl: no request could be imported")
	}
	return res, nil
}

func failure(res *http2java.Result, strict bool) error {
	if err := res.Err(); err != nil {
		return err
	}
	if strict && len(res.Warnings) > 0 {
		return errors.New(pluralize(len(res.Warnings), "warning") + " treated as errors (--strict)")
	}
	return nil
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
