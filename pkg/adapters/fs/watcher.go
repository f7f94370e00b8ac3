package fs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/arbor/pkg/core"
)

// watchWorker observes the store root recursively and forwards
// debounced change batches. Registration emits no synthetic events, so
// the initial listing burst is suppressed by construction; only
// mutations after Start are reported.
type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	pattern   string
	events    chan core.Batch
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
	runCtx    context.Context

	dirsMu sync.Mutex
	dirs   map[string]bool // absolute paths currently known to be directories
}

func newWatchWorker(store *Store, pattern string, events chan core.Batch) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		store:      store,
		pattern:    pattern,
		events:     events,
		dirs:       make(map[string]bool),
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.recursiveAdd(watcher, w.store.Root); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.store.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.runCtx = runCtx
	w.debouncer = newDebouncer(w.store.config.StabilityWindow, w.send)

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// recursiveAdd registers every directory under root with the watcher.
func (w *watchWorker) recursiveAdd(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.store.skipEntry(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.dirsMu.Lock()
		w.dirs[path] = true
		w.dirsMu.Unlock()
		return nil
	})
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			var stack string
			if w.store.config.Logger != nil && w.store.config.Logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}
			if w.store.config.Logger != nil {
				if stack != "" {
					w.store.config.Logger.Error("watcher panic", "error", panicErr, "stack", stack)
				} else {
					w.store.config.Logger.Error("watcher panic", "error", panicErr)
				}
			}
		}
	}()
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Shutdown: stop accepting events, wait for any in-flight flush.
	// After this no debounced notification fires, so closing the
	// channel is safe.
	w.debouncer.stopAndWait(5 * time.Second)
	close(w.events)

	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processEvent(event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}

// processEvent filters, classifies, and debounces one raw event.
func (w *watchWorker) processEvent(event fsnotify.Event) {
	if w.store.config.Logger != nil {
		w.store.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
	}

	rel, err := w.store.relativeGroupPath(event.Name)
	if err != nil || rel == core.DefaultGroup {
		return
	}
	if w.shouldIgnore(rel) {
		return
	}

	switch {
	case event.Has(fsnotify.Create):
		info, statErr := os.Stat(event.Name)
		if statErr != nil {
			// Vanished between event and stat. A matching Remove
			// event follows; nothing to report yet.
			return
		}
		if info.IsDir() {
			w.handleNewDir(event.Name, rel)
			return
		}
		if w.matchesPattern(rel) {
			w.debouncer.add(core.Event{Kind: core.EventAdded, Path: rel, Timestamp: time.Now().Unix()})
		}

	case event.Has(fsnotify.Write):
		if w.isKnownDir(event.Name) {
			return
		}
		if w.matchesPattern(rel) {
			w.debouncer.add(core.Event{Kind: core.EventChanged, Path: rel, Timestamp: time.Now().Unix()})
		}

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if w.isKnownDir(event.Name) {
			w.forgetDirTree(event.Name)
			w.debouncer.add(core.Event{Kind: core.EventDirRemoved, Path: rel, Timestamp: time.Now().Unix()})
			return
		}
		if w.matchesPattern(rel) {
			w.debouncer.add(core.Event{Kind: core.EventRemoved, Path: rel, Timestamp: time.Now().Unix()})
		}
	}
}

// handleNewDir registers a freshly created directory (group creation)
// and reports its contents. Files written into the directory before the
// watch registration landed would otherwise go unseen; they join the
// same batch as the directory itself.
func (w *watchWorker) handleNewDir(abs, rel string) {
	w.debouncer.add(core.Event{Kind: core.EventDirAdded, Path: rel, Timestamp: time.Now().Unix()})

	err := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == abs {
			return w.addDir(path)
		}
		if w.store.skipEntry(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		sub, relErr := w.store.relativeGroupPath(path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			w.debouncer.add(core.Event{Kind: core.EventDirAdded, Path: sub, Timestamp: time.Now().Unix()})
			return w.addDir(path)
		}
		if w.matchesPattern(sub) {
			w.debouncer.add(core.Event{Kind: core.EventAdded, Path: sub, Timestamp: time.Now().Unix()})
		}
		return nil
	})
	if err != nil {
		w.handleWatcherError(fmt.Errorf("failed to register new directory %s: %w", rel, err))
	}
}

func (w *watchWorker) addDir(abs string) error {
	if err := w.watcher.Add(abs); err != nil {
		return err
	}
	w.dirsMu.Lock()
	w.dirs[abs] = true
	w.dirsMu.Unlock()
	return nil
}

func (w *watchWorker) isKnownDir(abs string) bool {
	w.dirsMu.Lock()
	defer w.dirsMu.Unlock()
	return w.dirs[abs]
}

// forgetDirTree drops a removed directory and its descendants from the
// known-dir set. fsnotify drops the underlying watches on its own.
func (w *watchWorker) forgetDirTree(abs string) {
	prefix := abs + string(os.PathSeparator)
	w.dirsMu.Lock()
	defer w.dirsMu.Unlock()
	delete(w.dirs, abs)
	for dir := range w.dirs {
		if strings.HasPrefix(dir, prefix) {
			delete(w.dirs, dir)
		}
	}
}

// shouldIgnore hides store internals and configured ignore patterns.
// Directory events are otherwise always forwarded; only file events go
// through the watch pattern.
func (w *watchWorker) shouldIgnore(rel string) bool {
	if rel == w.store.config.SystemDir || strings.HasPrefix(rel, w.store.config.SystemDir+"/") {
		return true
	}
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") || strings.HasPrefix(seg, TempFilePrefix) {
			return true
		}
	}
	return w.store.ignored(rel)
}

func (w *watchWorker) matchesPattern(rel string) bool {
	if w.pattern == "" {
		return true
	}
	ok, err := doublestar.Match(w.pattern, rel)
	if err != nil {
		w.handleWatcherError(fmt.Errorf("invalid watch pattern %q: %w", w.pattern, err))
		return false
	}
	return ok
}

// handleWatcherError logs a watch-loop failure and forwards it on the
// notification channel. The loop keeps running: one bad event must not
// end the watch.
func (w *watchWorker) handleWatcherError(err error) {
	if w.store.config.Logger != nil {
		w.store.config.Logger.Error("watcher error", "error", err)
	}
	if w.store.config.ErrorHandler != nil {
		w.store.config.ErrorHandler(err)
	}
	w.send(core.Batch{{Kind: core.EventError, Err: err, Timestamp: time.Now().Unix()}})
}

// send delivers a batch, protecting against channel closure during
// shutdown.
func (w *watchWorker) send(batch core.Batch) {
	defer func() {
		// Recover in case the channel closed while stopping.
		_ = recover()
	}()
	select {
	case w.events <- batch:
	case <-w.runCtx.Done():
	}
}
