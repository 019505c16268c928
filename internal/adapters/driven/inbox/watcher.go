// Package inbox watches a directory and reports files dropped into it.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/zip2pdf/internal/core/ports/driven"
	"github.com/custodia-labs/zip2pdf/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DropWatcher = (*Watcher)(nil)

// DefaultSettle is how long a file must go without writes before it is
// reported, so files still being copied in are not delivered half-written.
const DefaultSettle = 300 * time.Millisecond

var (
	errClosed   = errors.New("inbox watcher closed")
	errWatching = errors.New("inbox watcher already running")
)

// Watcher reports every regular, non-hidden file created in or moved into
// one directory. Subdirectories are not watched.
type Watcher struct {
	dir    string
	settle time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a watcher for dir. Watching starts with Watch.
func New(dir string) *Watcher {
	return &Watcher{dir: dir, settle: DefaultSettle}
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string { return w.dir }

// Watch starts watching and returns a channel of dropped file paths. The
// channel is closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, errClosed
	}
	if w.watcher != nil {
		return nil, errWatching
	}

	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, fmt.Errorf("inbox dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inbox dir %s: not a directory", w.dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = fw

	drops := make(chan string, 16)
	go w.loop(ctx, fw, drops)
	logger.Debug("Watching inbox %s", w.dir)
	return drops, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, drops chan<- string) {
	defer close(drops)

	queue := newDropQueue()
	ticker := time.NewTicker(max(w.settle/2, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if path, ok := w.handleFsEvent(event); ok {
				queue.touch(path, time.Now())
			} else if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				queue.forget(event.Name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Inbox watcher: %v", err)

		case now := <-ticker.C:
			for _, path := range queue.settled(now, w.settle) {
				logger.Debug("Inbox drop: %s", path)
				select {
				case drops <- path:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// handleFsEvent returns the path of a file the event makes available.
// Hidden files, directories and removals yield nothing.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if isHidden(filepath.Base(event.Name)) {
		return "", false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

// dropQueue holds files waiting to settle and remembers the ones already
// delivered. A delivered file is only reported again after it has been
// removed or renamed away.
type dropQueue struct {
	pending   map[string]time.Time
	delivered map[string]struct{}
}

func newDropQueue() *dropQueue {
	return &dropQueue{
		pending:   make(map[string]time.Time),
		delivered: make(map[string]struct{}),
	}
}

// touch records activity on path. Writes to delivered files are ignored.
func (q *dropQueue) touch(path string, now time.Time) {
	if _, done := q.delivered[path]; done {
		return
	}
	q.pending[path] = now
}

func (q *dropQueue) forget(path string) {
	delete(q.pending, path)
	delete(q.delivered, path)
}

// settled removes and returns, in name order, the pending paths that have
// seen no event for at least settle, marking them delivered.
func (q *dropQueue) settled(now time.Time, settle time.Duration) []string {
	var ready []string
	for path, last := range q.pending {
		if now.Sub(last) >= settle {
			ready = append(ready, path)
			delete(q.pending, path)
			q.delivered[path] = struct{}{}
		}
	}
	sort.Strings(ready)
	return ready
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
