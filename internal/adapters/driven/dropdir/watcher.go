// Package dropdir watches a local directory and stages every file
// dropped into it, so documents can be queued for upload without
// touching the CLI.
package dropdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/briefdesk-cli/internal/logger"
)

// DefaultSettleDelay is how long a file must stay quiet after its
// last write before it is staged. Copies into the drop directory
// arrive as a create followed by a burst of writes.
const DefaultSettleDelay = 500 * time.Millisecond

// Watcher stages files dropped into a directory.
type Watcher struct {
	dir     string
	uploads driving.UploadService

	settleDelay time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a watcher over dir that stages into uploads.
func New(dir string, uploads driving.UploadService) *Watcher {
	return &Watcher{
		dir:         dir,
		uploads:     uploads,
		settleDelay: DefaultSettleDelay,
		timers:      make(map[string]*time.Timer),
	}
}

// Run watches the directory until the context is cancelled. Every
// settled new file is staged for the given target topic.
func (w *Watcher) Run(ctx context.Context, target string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for new documents", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.cancelTimers()
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if path, accept := w.handleFsEvent(event); accept {
				w.scheduleStage(path, target)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", w.dir, err)
		}
	}
}

// handleFsEvent filters an event down to a stageable file path.
// Directories, hidden files, and non-write operations are skipped.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

// scheduleStage (re)arms the settle timer for a path. The stage only
// fires once the file has been quiet for the settle delay.
func (w *Watcher) scheduleStage(path, target string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.settleDelay)
		return
	}
	w.timers[path] = time.AfterFunc(w.settleDelay, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		if _, err := w.uploads.Stage(path, target); err != nil {
			logger.Warn("stage dropped file %s: %v", path, err)
			return
		}
		logger.Info("Staged dropped file %s", filepath.Base(path))
	})
}

func (w *Watcher) cancelTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}

// isHidden reports whether any path element starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
