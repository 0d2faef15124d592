package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports external writes to the snapshot file, so a session can
// warn before overwriting changes made by another process between load
// and save.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
	target   string
	stopCh   chan struct{}
}

// Watch starts watching the store's snapshot file. onChange fires after
// every external write, debounced so a burst of events yields one call.
func (s *Store) Watch(onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		onChange: onChange,
		target:   filepath.Base(s.path),
		stopCh:   make(chan struct{}),
	}

	// Watch the containing directory (fsnotify works better with
	// directories, and atomic renames replace the file inode).
	if err := fw.Add(filepath.Dir(s.path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	go w.loop()
	return w, nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

func (w *Watcher) loop() {
	debounce := time.NewTimer(0)
	<-debounce.C // drain initial timer

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(100 * time.Millisecond)

		case <-debounce.C:
			if w.onChange != nil {
				w.onChange()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			_ = err
		}
	}
}
