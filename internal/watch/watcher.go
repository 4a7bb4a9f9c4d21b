// Package watch triggers icon regeneration when the source logo or the
// config file changes on disk.
package watch

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a set of files for changes and invokes a callback when
// one of them is modified. Rapid successive changes are coalesced into a
// single callback invocation.
//
// Files are watched through their parent directories, so editors that save
// by writing a temporary file and renaming it over the original are still
// noticed.
type Watcher struct {
	onChange func()
	debounce time.Duration
	ready    chan struct{}
	done     chan struct{}
	once     sync.Once

	mu    sync.Mutex
	files map[string]bool // cleaned absolute paths
	dirs  map[string]bool // directories registered with fsw
	fsw   *fsnotify.Watcher
}

// NewWatcher creates a Watcher for the given files. The onChange callback is
// invoked after changes have been debounced for the specified duration.
func NewWatcher(files []string, debounce time.Duration, onChange func()) *Watcher {
	return &Watcher{
		files:    absSet(files),
		dirs:     make(map[string]bool),
		onChange: onChange,
		debounce: debounce,
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func absSet(files []string) map[string]bool {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			set[abs] = true
		}
	}
	return set
}

// SetFiles replaces the set of watched files. It may be called before or
// while the watcher is running, including from the onChange callback.
// Directories of files that are no longer watched stay registered; their
// events are filtered out.
func (w *Watcher) SetFiles(files []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = absSet(files)
	if w.fsw != nil {
		w.addDirsLocked()
	}
}

// addDirsLocked registers the parent directory of every watched file that
// is not registered yet. w.mu must be held and w.fsw set.
func (w *Watcher) addDirsLocked() {
	for f := range w.files {
		dir := filepath.Dir(f)
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			// Directory may not exist yet (e.g. no config file); skip.
			log.Printf("warning: failed to watch %s: %v", dir, err)
			continue
		}
		w.dirs[dir] = true
	}
}

func (w *Watcher) watching(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(name)]
}

// Ready is closed once the watcher has registered its directories and is
// receiving events.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Start begins watching. It blocks until Stop is called or a fatal error
// occurs.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.fsw = fsw
	w.addDirsLocked()
	w.mu.Unlock()
	close(w.ready)

	var timer *time.Timer
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.watching(event.Name) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.onChange)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			w.mu.Lock()
			w.fsw = nil
			w.mu.Unlock()
			return fsw.Close()
		}
	}
}

// Stop signals the watcher to stop monitoring files.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
	})
}
