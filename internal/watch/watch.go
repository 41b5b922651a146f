// Package watch reruns a build whenever fragment or settings files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vvka-141/sqlbundle/pkg/sqlbundle"
)

// watchedExtensions are the file types that trigger a rebuild.
var watchedExtensions = map[string]bool{
	".sql":  true,
	".ini":  true,
	".yaml": true,
	".yml":  true,
	".env":  true,
}

// Relevant reports whether event should trigger a rebuild.
func Relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return watchedExtensions[strings.ToLower(filepath.Ext(event.Name))]
}

// Watcher debounces file events under a root directory into rebuild calls.
type Watcher struct {
	root     string
	exclude  []string
	debounce time.Duration
	logger   sqlbundle.Logger
	rebuild  func(context.Context)

	mu sync.Mutex // serializes rebuilds
}

// New creates a Watcher for root. Directories in exclude (typically the
// output directory) and hidden directories are not watched.
func New(root string, exclude []string, debounce time.Duration, logger sqlbundle.Logger, rebuild func(context.Context)) *Watcher {
	if debounce <= 0 {
		debounce = sqlbundle.DefaultWatchDebounce
	}
	abs := make([]string, 0, len(exclude))
	for _, e := range exclude {
		if p, err := filepath.Abs(e); err == nil {
			abs = append(abs, p)
		}
	}
	return &Watcher{
		root:     root,
		exclude:  abs,
		debounce: debounce,
		logger:   logger,
		rebuild:  rebuild,
	}
}

// Run watches until ctx is cancelled. The initial build is the caller's job.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := w.addTree(watcher, w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}

	w.logger.Info("Watching %s for changes (Ctrl+C to stop)", w.root)

	var timer *time.Timer
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

			if event.Has(fsnotify.Create) && w.isWatchableDir(event.Name) {
				if err := w.addTree(watcher, event.Name); err != nil {
					w.logger.Warn("Cannot watch %s: %v", event.Name, err)
				}
				continue
			}

			if !Relevant(event) || w.excluded(event.Name) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			name := event.Name
			timer = time.AfterFunc(w.debounce, func() {
				w.logger.Info("Change detected: %s", filepath.Base(name))
				w.run(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rebuild(ctx)
}

// addTree adds dir and its subdirectories, skipping hidden and excluded ones.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skipDir(path) {
			return filepath.SkipDir
		}
		if w.excluded(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (w *Watcher) isWatchableDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir() && !w.skipDir(path)
}

func (w *Watcher) skipDir(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// excluded reports whether path lies in an excluded directory.
func (w *Watcher) excluded(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, e := range w.exclude {
		if abs == e || strings.HasPrefix(abs, e+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
