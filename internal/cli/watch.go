package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/shapestone/http2java/internal/watch"
)

type watchOptions struct {
	debounceMs int
	strict     bool
}

func newWatchCmd(g *globalOptions) *cobra.Command {
	opts := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch <dir|file>",
		Short: "Recompile request files when they change",
		Long: heredoc.Doc(`
			Watch compiles every *.http file under the given directory (or
			the single given file) to a .java file next to it, then keeps
			recompiling changed files until interrupted.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("debounce-ms") {
				opts.debounceMs = cfg.Watch.DebounceMs
			}
			if !cmd.Flags().Changed("strict") {
				opts.strict = cfg.Diagnostics.WarningsAsErrors
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			w := watch.New(watch.Options{
				Root:     args[0],
				Debounce: time.Duration(opts.debounceMs) * time.Millisecond,
				Strict:   opts.strict,
			})
			return w.Run(ctx)
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&opts.debounceMs, "debounce-ms", 200, "delay before recompiling after a change")
	fs.BoolVar(&opts.strict, "strict", false, "do not write .java files for requests with warnings")
	return cmd
}
