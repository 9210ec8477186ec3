package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent represents a document change.
type ChangeEvent struct {
	Path       string
	ChangeType string // "create", "write", "remove", "rename"
}

// DocWatcher watches a directory tree for document changes using fsnotify.
// Only paths passing the filter reach the callback; rapid event bursts are
// debounced into one invocation.
type DocWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	filter   *PatternFilter
	onChange func(ChangeEvent)
}

// NewDocWatcher creates a new document watcher. A nil filter watches the
// default document types.
func NewDocWatcher(debounce time.Duration, filter *PatternFilter, onChange func(ChangeEvent)) (*DocWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	if filter == nil {
		filter = DefaultDocumentFilter()
	}
	return &DocWatcher{
		watcher:  w,
		debounce: debounce,
		filter:   filter,
		onChange: onChange,
	}, nil
}

// WatchRecursive adds a directory and all its subdirectories to the watcher.
func (w *DocWatcher) WatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *DocWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	coalescer := newChangeCoalescer(w.debounce, func(e ChangeEvent) {
		if w.onChange != nil {
			w.onChange(e)
		}
	})
	defer coalescer.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			changeType := opToChangeType(event.Op)
			if changeType == "" {
				continue
			}

			// New directories join the watch before filtering so documents
			// created inside them are seen.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.WatchRecursive(event.Name)
					continue
				}
			}

			if !w.filter.Matches(event.Name) {
				continue
			}

			coalescer.Absorb(ChangeEvent{Path: event.Name, ChangeType: changeType})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func opToChangeType(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
