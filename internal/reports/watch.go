package reports

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher regenerates the report index whenever report sources change.
type Watcher struct {
	dir          string
	regenerate   func() error
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
}

// NewWatcher creates a watcher over the report directory. regenerate is
// called once at start and after every (debounced) change burst.
func NewWatcher(dir string, regenerate func() error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("resolve report directory: %w", err)
	}
	return &Watcher{
		dir:          absDir,
		regenerate:   regenerate,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
	}, nil
}

// Run watches until the context is canceled. The initial regeneration error
// is fatal; later regeneration failures are logged and watching continues,
// so a half-saved file does not kill the watch session.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch report directory %s: %w", w.dir, err)
	}
	if err := w.regenerate(); err != nil {
		return err
	}
	slog.Info("Watching report directory", "dir", w.dir)

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Report source changed", "file", event.Name, "op", event.Op.String())
			if debounce == nil {
				debounce = time.NewTimer(w.debounceTime)
			} else {
				debounce.Reset(w.debounceTime)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			if err := w.regenerate(); err != nil {
				slog.Error("Failed to regenerate report index", "error", err)
			} else {
				slog.Info("Report index regenerated")
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", "error", err)
		}
	}
}

// relevant filters events down to report source files, ignoring the
// generated index and editor temp files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	return reportFile.MatchString(filepath.Base(event.Name))
}
