package aerogui

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aeroki-lang/aerokiide"
)

// FileWatcher reports external changes to the open document. The parent
// directory is watched so editors that save by rename are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *aeroki.Logger
	debounce time.Duration
	onChange func(path string)

	mu      sync.Mutex
	path    string
	dir     string
	ignore  time.Time
	pending *time.Timer

	done chan struct{}
}

// NewFileWatcher starts a watcher. onChange is called from a background
// goroutine after writes to the watched file settle.
func NewFileWatcher(logger *aeroki.Logger, onChange func(path string)) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FileWatcher{
		watcher:  w,
		logger:   logger,
		debounce: 200 * time.Millisecond,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go fw.run()
	return fw, nil
}

// Watch switches the watcher to path. An empty path stops watching.
func (fw *FileWatcher) Watch(path string) error {
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if path == fw.path {
		return nil
	}
	if fw.dir != "" {
		_ = fw.watcher.Remove(fw.dir)
	}
	fw.path, fw.dir = "", ""
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if err := fw.watcher.Add(dir); err != nil {
		return err
	}
	fw.path, fw.dir = path, dir
	fw.logger.DebugCat(aeroki.CatEditor, "watching %s", path)
	return nil
}

// IgnoreFor suppresses notifications for d, covering the IDE's own saves.
func (fw *FileWatcher) IgnoreFor(d time.Duration) {
	fw.mu.Lock()
	fw.ignore = time.Now().Add(d)
	fw.mu.Unlock()
}

// Close stops the watcher.
func (fw *FileWatcher) Close() error {
	err := fw.watcher.Close()
	<-fw.done
	fw.mu.Lock()
	if fw.pending != nil {
		fw.pending.Stop()
	}
	fw.mu.Unlock()
	return err
}

func (fw *FileWatcher) run() {
	defer close(fw.done)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.WarnCat(aeroki.CatEditor, "file watcher: %v", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.path == "" || filepath.Clean(event.Name) != fw.path {
		return
	}
	if time.Now().Before(fw.ignore) {
		return
	}

	// Debounce: editors often write a file in several steps
	path := fw.path
	if fw.pending != nil {
		fw.pending.Stop()
	}
	fw.pending = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		current := fw.path
		fw.mu.Unlock()
		if current == path && fw.onChange != nil {
			fw.onChange(path)
		}
	})
}
