package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher provides recursive file system watching with debouncing. It is
// meant to drive incremental rescans: each batch on Events means the
// project changed and the catalog is stale.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	root      string
	exclude   []string
	logger    *zap.Logger
}

// NewWatcher creates a recursive watcher on root. Dot directories and
// directories matching the exclude patterns are not registered.
func NewWatcher(root string, exclude []string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(debounce),
		root:      root,
		exclude:   exclude,
		logger:    logger,
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip entries that cannot be read
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldSkipDir(path, d.Name()) {
			return filepath.SkipDir
		}
		if watchErr := fsWatcher.Add(path); watchErr != nil {
			w.logger.Warn("Failed to watch directory", zap.String("path", path), zap.Error(watchErr))
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Events returns the channel that receives debounced event batches.
func (w *Watcher) Events() <-chan []Event {
	return w.debouncer.Output()
}

// Start listens for file system events until the watcher is closed.
// Call it in a goroutine.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	name := filepath.Base(path)

	// A newly created directory gets registered; its own creation is
	// not worth a rescan until files land in it.
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			if !w.shouldSkipDir(path, name) {
				if err := w.fsWatcher.Add(path); err != nil {
					w.logger.Warn("Failed to watch new directory", zap.String("path", path), zap.Error(err))
				}
			}
			return
		}
	}

	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".meta") {
		return
	}

	var op EventOp
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}

	w.debouncer.Add(path, op)
}

func (w *Watcher) shouldSkipDir(path, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.exclude {
		if pattern == name {
			return true
		}
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
