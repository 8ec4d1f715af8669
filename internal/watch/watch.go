// Package watch recompiles request files whenever they change on disk.
// Each "<name>.http" file is compiled to "<name>.java" next to it.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shapestone/http2java/pkg/http2java"
)

const (
	SourceExt = ".http"
	OutputExt = ".java"
)

// Options configures a Watcher.
type Options struct {
	// Root is a directory (watched recursively) or a single .http file.
	Root     string
	Debounce time.Duration
	// Strict treats warnings as errors: no .java file is written.
	Strict bool
	Logger *log.Logger
}

// Outcome is the result of compiling one file.
type Outcome struct {
	Source string
	Output string // empty when nothing was written
	Result *http2java.Result
}

// Watcher compiles request files on change.
type Watcher struct {
	opts Options
	log  *log.Logger

	mu      sync.Mutex
	pending map[string]struct{}

	// OnCompile, when set, is called after every compilation.
	OnCompile func(Outcome)
}

// New returns a watcher for opts.
func New(opts Options) *Watcher {
	l := opts.Logger
	if l == nil {
		l = log.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	return &Watcher{opts: opts, log: l, pending: make(map[string]struct{})}
}

// Run compiles every existing source file, then recompiles changed files
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	root := strings.TrimSpace(w.opts.Root)
	if root == "" {
		return fmt.Errorf("watch: empty root")
	}
	fi, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if fi.IsDir() {
		if err := addWatchRecursive(watcher, root); err != nil {
			return err
		}
	} else {
		// Editors replace files on save; watch the parent directory.
		if err := watcher.Add(filepath.Dir(root)); err != nil {
			return err
		}
	}

	sources, err := Sources(root)
	if err != nil {
		return err
	}
	for _, src := range sources {
		w.CompileFile(src)
	}
	w.log.Printf("watch enabled: root=%q files=%d debounce_ms=%d", root, len(sources), w.opts.Debounce.Milliseconds())

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.opts.Debounce)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.opts.Debounce)
		timerC = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-timerC:
			timerC = nil
			w.flush()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Printf("watch error: %v", err)
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if evt.Op&fsnotify.Create != 0 && fi.IsDir() {
				if st, statErr := os.Stat(evt.Name); statErr == nil && st.IsDir() {
					if addErr := addWatchRecursive(watcher, evt.Name); addErr != nil {
						w.log.Printf("watch add failed: path=%q err=%v", evt.Name, addErr)
					}
				}
			}
			if !fi.IsDir() && filepath.Clean(evt.Name) != filepath.Clean(root) {
				continue
			}
			if shouldCompile(evt) {
				w.mu.Lock()
				w.pending[evt.Name] = struct{}{}
				w.mu.Unlock()
				resetTimer()
			}
		}
	}
}

func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	sort.Strings(paths)
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		w.CompileFile(p)
	}
}

// CompileFile compiles src and writes the Java file when compilation
// succeeded. Diagnostics are logged.
func (w *Watcher) CompileFile(src string) Outcome {
	out := Outcome{Source: src}
	data, err := os.ReadFile(src)
	if err != nil {
		w.log.Printf("compile failed: file=%q err=%v", src, err)
		w.notify(out)
		return out
	}

	res := http2java.CompileBytes(data)
	out.Result = res
	for _, d := range res.Errors {
		w.log.Printf("%s: %s", src, d.Text)
	}
	for _, d := range res.Warnings {
		w.log.Printf("%s: %s", src, d.Text)
	}

	switch {
	case !res.OK():
		w.log.Printf("compile failed: file=%q errors=%d", src, len(res.Errors))
	case w.opts.Strict && len(res.Warnings) > 0:
		w.log.Printf("compile failed: file=%q warnings=%d (strict)", src, len(res.Warnings))
	default:
		dst := OutputPath(src)
		if err := os.WriteFile(dst, []byte(res.Code+"\n"), 0o644); err != nil {
			w.log.Printf("write failed: file=%q err=%v", dst, err)
			break
		}
		out.Output = dst
		w.log.Printf("compile ok: file=%q output=%q warnings=%d", src, dst, len(res.Warnings))
	}
	w.notify(out)
	return out
}

func (w *Watcher) notify(o Outcome) {
	if w.OnCompile != nil {
		w.OnCompile(o)
	}
}

// OutputPath maps "dir/name.http" to "dir/name.java".
func OutputPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + OutputExt
}

// Sources lists the request files under root, or root itself when it
// is a file.
func Sources(root string) ([]string, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{root}, nil
	}
	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isSource(path) {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

func shouldCompile(evt fsnotify.Event) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return isSource(evt.Name)
}

func isSource(path string) bool {
	base := filepath.Base(path)
	return !strings.HasPrefix(base, ".") && filepath.Ext(base) == SourceExt
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}
