// Package cli implements the http2java command line.
package cli

import (
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shapestone/http2java/internal/config"
)

type globalOptions struct {
	cfgPath string
}

// Execute runs the root command with args.
func Execute(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{cfgPath: config.DefaultPath}
	cmd := &cobra.Command{
		Use:   "http2java",
		Short: "Compile HTTP request descriptions to Java HttpRequest code",
		Long: heredoc.Doc(`
			http2java reads a request written as a raw HTTP message (request
			line, headers, optional body after an empty line) and prints the
			java.net.http.HttpRequest builder chain that sends it.

			Headers are checked as they are compiled: duplicates, a missing
			Host, Content-Type parameters, Basic/Digest credentials,
			Content-Language tags and Content-Encoding values.
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(cmd.PersistentFlags(), g)

	cmd.AddCommand(
		newCompileCmd(g),
		newWatchCmd(g),
		newServeCmd(g),
		newVersionCmd(),
	)
	return cmd
}

func addGlobalFlags(fs *pflag.FlagSet, g *globalOptions) {
	fs.StringVarP(&g.cfgPath, "config", "c", config.DefaultPath, "config yaml path (optional)")
}

func (g *globalOptions) load() (*config.Config, error) {
	return config.Load(strings.TrimSpace(g.cfgPath))
}
