package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/xamlnav/internal/cli/output"
	"github.com/leapstack-labs/xamlnav/internal/provider"
	"github.com/leapstack-labs/xamlnav/pkg/outline"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-render the outline whenever a XAML file changes",
		Long: `Print the outline of a XAML file, then print it again each time the file
is written. Bursts of writes are coalesced (watch.debounce_ms, default
150ms). Press Ctrl+C to stop.`,
		Example: `  # Follow a window while editing it
  xamlnav watch Views/MainWindow.xaml

  # Stream JSON documents to another tool
  xamlnav watch -o json Views/MainWindow.xaml | jq .elements`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			if debounce <= 0 {
				debounce = time.Duration(c.Cfg.Project().Watch.DebounceMS) * time.Millisecond
			}
			w := &fileWatcher{
				ctx:      c,
				path:     args[0],
				debounce: debounce,
				render:   func(doc *provider.ParsedDocument) { renderWatched(c.Renderer, args[0], doc) },
			}
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before re-rendering (default from config)")

	return cmd
}

// fileWatcher re-parses a file through the provider cache when it changes.
type fileWatcher struct {
	ctx      *CommandContext
	path     string
	debounce time.Duration
	render   func(*provider.ParsedDocument)
}

// Run renders the file once and then after every debounced change until ctx
// is canceled.
func (w *fileWatcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}

	last, err := w.ctx.Load(ctx, abs, fileVersion(abs))
	if err != nil {
		return err
	}
	w.render(last)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so atomic saves (write temp file, rename) are seen.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	w.ctx.Logger.Info("Watching", "path", abs, "debounce", w.debounce)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			doc, err := w.ctx.Load(ctx, abs, fileVersion(abs))
			if err != nil {
				if errors.Is(err, ErrNotXAML) {
					return err
				}
				w.ctx.Renderer.Warning(err.Error())
				continue
			}
			if doc == last {
				w.ctx.Logger.Debug("Unchanged, skipping render", "path", abs)
				continue
			}
			last = doc
			w.render(doc)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.ctx.Logger.Warn("Watcher error", "error", err)
		}
	}
}

func renderWatched(r *output.Renderer, path string, doc *provider.ParsedDocument) {
	res := output.OutlineOutput{
		Path:     path,
		Elements: outline.Count(doc.Forest),
		Symbols:  doc.Symbols,
	}
	if doc.HasParseError() {
		res.Error = doc.ParseError.Error()
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		if err := r.Data(res); err != nil {
			r.Error(err.Error())
		}
	case output.ModeMarkdown:
		renderOutlineMarkdown(r, res)
		r.Println("")
	default:
		r.Muted(fmt.Sprintf("── %s ──", doc.ParsedAt.Format("15:04:05")))
		renderOutlineText(r, res)
		r.Println("")
	}
}
