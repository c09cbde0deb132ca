// Package watch reports changes to input documents.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wethinkt/go-swatchsheet/internal/runlog"
)

// FileEvent is a settled change to one watched file.
type FileEvent struct {
	Path      string // Path as given to NewFileWatcher
	EventType string // "created" or "modified"
}

// FileWatcher watches a set of files. Their parent directories are watched
// so that editors which save by renaming a new file into place are noticed.
type FileWatcher struct {
	files    map[string]string // cleaned absolute path -> path as given
	debounce time.Duration
	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
}

// NewFileWatcher creates a watcher for the given files. Rapid successive
// changes to one file are reported once, debounce after the last of them.
func NewFileWatcher(paths []string, debounce time.Duration) (*FileWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		files[abs] = p
	}

	return &FileWatcher{
		files:    files,
		debounce: debounce,
		watcher:  fw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching and returns a channel of file events. The channel is
// closed when the context is canceled or Stop is called.
func (w *FileWatcher) Start(ctx context.Context) (<-chan FileEvent, error) {
	dirs := make(map[string]bool)
	for abs := range w.files {
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return nil, err
		}
		runlog.Log.Debug("Watching directory", "dir", dir)
	}

	events := make(chan FileEvent, 16)
	go w.watchLoop(ctx, events)
	return events, nil
}

// Stop stops the watcher and releases its resources.
func (w *FileWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *FileWatcher) watchLoop(ctx context.Context, events chan<- FileEvent) {
	defer close(events)

	// Debounce timers fire into settled; only this goroutine sends on events.
	timers := make(map[string]*time.Timer)
	settled := make(chan FileEvent, 16)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			given, watched := w.files[filepath.Clean(event.Name)]
			if !watched {
				continue
			}

			var eventType string
			switch {
			case event.Op.Has(fsnotify.Create):
				eventType = "created"
			case event.Op.Has(fsnotify.Write):
				eventType = "modified"
			default:
				continue
			}

			if timer, ok := timers[given]; ok {
				timer.Stop()
			}
			fe := FileEvent{Path: given, EventType: eventType}
			timers[given] = time.AfterFunc(w.debounce, func() {
				select {
				case settled <- fe:
				case <-w.done:
				case <-ctx.Done():
				}
			})

		case fe := <-settled:
			delete(timers, fe.Path)
			select {
			case events <- fe:
				runlog.Log.Debug("File event", "path", fe.Path, "type", fe.EventType)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			runlog.Log.Error("Watcher error", "error", err)

		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}
