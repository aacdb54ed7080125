package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/histograph/importer/internal/core/domain"
	"github.com/histograph/importer/internal/core/ports/driving"
	"github.com/histograph/importer/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last filesystem
// event before re-importing the touched datasets. Editors and generators
// tend to produce bursts of writes.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-imports datasets when files under their directories change.
// fsnotify does not watch recursively, so the import roots and every
// dataset directory are watched individually; dataset directories created
// while watching are picked up from the root's create events.
type Watcher struct {
	importer driving.Importer
	dirs     []string
	debounce time.Duration

	// OnReport, if set, is called with the report of every triggered run.
	OnReport func(*driving.Report)
}

// NewWatcher creates a watcher over the given import roots.
// A zero debounce falls back to DefaultDebounce.
func NewWatcher(importer driving.Importer, dirs []string, debounce time.Duration) *Watcher {
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		importer: importer,
		dirs:     dirs,
		debounce: debounce,
	}
}

// Watch blocks until the context is cancelled, re-running the importer
// for each dataset whose files change. When ids is non-empty, only those
// datasets trigger a run.
func (w *Watcher) Watch(ctx context.Context, ids []string, opts driving.RunOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range w.dirs {
		if err := watcher.Add(root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
		entries, err := os.ReadDir(root)
		if err != nil {
			return fmt.Errorf("list import directory %s: %w", root, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() || domain.IgnoredDirs[entry.Name()] {
				continue
			}
			if err := watcher.Add(filepath.Join(root, entry.Name())); err != nil {
				return fmt.Errorf("watch %s: %w", filepath.Join(root, entry.Name()), err)
			}
		}
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	dirty := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	logger.Info("watching %d import directories", len(w.dirs))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			id, root, matched := DatasetForPath(w.dirs, event.Name)
			if !matched {
				continue
			}
			if len(want) > 0 && !want[id] {
				continue
			}

			// A new dataset directory needs its own watch.
			if event.Op&fsnotify.Create != 0 {
				created := filepath.Join(root, id)
				if info, err := os.Stat(created); err == nil && info.IsDir() {
					if err := watcher.Add(created); err != nil {
						logger.Warn("failed to watch %s: %v", created, err)
					}
				}
			}

			logger.Debug("change in dataset %s: %s", id, event.Name)
			dirty[id] = true
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-timer.C:
			changed := make([]string, 0, len(dirty))
			for id := range dirty {
				changed = append(changed, id)
			}
			dirty = make(map[string]bool)

			report, err := w.importer.Run(ctx, changed, opts)
			if err != nil {
				logger.Warn("re-import failed: %v", err)
				continue
			}
			if w.OnReport != nil {
				w.OnReport(report)
			}
		}
	}
}

// DatasetForPath maps a changed path to the dataset it belongs to: the
// first path element below whichever import root contains it. Returns
// the dataset ID, the containing root and whether the path belongs to a
// dataset at all (paths directly in a root, or under ignored names, do
// not).
func DatasetForPath(roots []string, path string) (id, root string, ok bool) {
	for _, r := range roots {
		rel, err := filepath.Rel(r, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		first := rel
		if i := strings.IndexRune(rel, filepath.Separator); i >= 0 {
			first = rel[:i]
		}
		if first == "" || domain.IgnoredDirs[first] {
			return "", "", false
		}
		return first, r, true
	}
	return "", "", false
}
