package git

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/branchwatch/domain"
)

// Watcher tracks the HEAD file of a single Git repository and publishes
// display-name changes to its subscribers. It owns one fsnotify watch on
// the directory containing HEAD, a one-slot signal channel that coalesces
// rapid change bursts, and one refresh goroutine that serializes every
// resolve-compare-publish pass.
type Watcher struct {
	mu       sync.Mutex
	location domain.RepositoryLocation
	valid    bool
	closed   bool
	name     string
	subs     []domain.Subscriber
	fsw      *fsnotify.Watcher

	signals chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

var _ domain.Watcher = (*Watcher)(nil)

// NewWatcher creates a watcher for the repository containing dir. When no
// repository is found the watcher is inert: Valid reports false, no watch
// is installed and no event ever fires. Otherwise an initial resolution
// runs synchronously before the watch goes live.
func NewWatcher(dir string) (*Watcher, error) {
	w := &Watcher{
		signals: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	gitDir, ok := FindRepositoryRoot(dir)
	if !ok {
		return w, nil
	}

	w.location = domain.RepositoryLocation{GitDir: gitDir, WorkDir: dir}
	w.valid = true
	w.name = ResolveDisplayName(gitDir)

	fsw, err := newHeadWatch(gitDir)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", gitDir, err)
	}
	w.fsw = fsw

	w.wg.Add(2)
	go w.watchLoop()
	go w.refreshLoop()

	return w, nil
}

// newHeadWatch creates an fsnotify watch on the directory holding HEAD.
// Watching the directory instead of the file survives the rename-based
// rewrites git performs on checkout.
func newHeadWatch(gitDir string) (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if addErr := fsw.Add(gitDir); addErr != nil {
		_ = fsw.Close()
		return nil, addErr
	}
	return fsw, nil
}

// Valid reports whether a repository was bound at construction.
func (w *Watcher) Valid() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.valid
}

// DisplayName returns the current resolved branch display name.
func (w *Watcher) DisplayName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.name
}

// Location returns the bound repository location.
func (w *Watcher) Location() domain.RepositoryLocation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.location
}

// Subscribe registers a change callback. Subscribing after Close is a no-op.
func (w *Watcher) Subscribe(fn domain.Subscriber) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.subs = append(w.subs, fn)
}

// Close stops the filesystem watch, unblocks the refresh goroutine and
// clears all subscribers. Close is idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	fsw := w.fsw
	w.fsw = nil
	w.subs = nil
	w.mu.Unlock()

	var err error
	if fsw != nil {
		err = fsw.Close()
	}
	w.wg.Wait()
	return err
}

// kick schedules at least one more resolution pass without blocking. A
// pass that is already pending absorbs the signal, so any burst of events
// collapses into "one more check after the current one".
func (w *Watcher) kick() {
	select {
	case w.signals <- struct{}{}:
	default:
	}
}

// watchLoop consumes filesystem events, forwarding HEAD changes to the
// refresh goroutine. Watch-level errors are handled by recreating the
// underlying watch and forcing a re-resolution, since a change may have
// been missed while the watch was broken.
func (w *Watcher) watchLoop() {
	defer w.wg.Done()

	for {
		w.mu.Lock()
		fsw := w.fsw
		w.mu.Unlock()
		if fsw == nil {
			return
		}

		select {
		case <-w.done:
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				if !w.rebuild() {
					return
				}
				continue
			}
			if filepath.Base(ev.Name) == headFileName {
				w.kick()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				if !w.rebuild() {
					return
				}
				continue
			}
			logger.Warnf("Watch error on %s, recreating watch: %v", w.Location().GitDir, err)
			if !w.rebuild() {
				return
			}
			w.kick()
		}
	}
}

// rebuild tears down and recreates the filesystem watch under the same
// lock as disposal. Returns false when the watcher was disposed meanwhile
// or the watch could not be recreated.
func (w *Watcher) rebuild() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}

	if w.fsw != nil {
		_ = w.fsw.Close()
		w.fsw = nil
	}

	fsw, err := newHeadWatch(w.location.GitDir)
	if err != nil {
		logger.Errorf("Failed to recreate watch on %s: %v", w.location.GitDir, err)
		return false
	}
	w.fsw = fsw
	return true
}

// refreshLoop processes coalesced change signals strictly in arrival
// order until disposal.
func (w *Watcher) refreshLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case <-w.signals:
			w.refresh()
		}
	}
}

// refresh re-resolves the display name and notifies subscribers when it
// genuinely changed. An empty resolution means HEAD was unreadable and is
// treated as "no change". Only the refresh goroutine calls this, so
// notifications are ordered and never concurrent.
func (w *Watcher) refresh() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	gitDir := w.location.GitDir
	w.mu.Unlock()

	name := ResolveDisplayName(gitDir)

	w.mu.Lock()
	if w.closed || name == "" || name == w.name {
		w.mu.Unlock()
		return
	}
	w.name = name
	subs := append([]domain.Subscriber(nil), w.subs...)
	w.mu.Unlock()

	logger.Debugf("Branch changed to %q in %s", name, gitDir)
	for _, fn := range subs {
		fn(name)
	}
}
