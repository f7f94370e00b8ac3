package fs

import (
	"sync"
	"time"

	"github.com/aretw0/arbor/pkg/core"
)

// debouncer is the coalescing stage between the raw watch primitive and
// the consumer. Events accumulate until the stability window elapses
// with no further activity, then flush as one batch: a save-in-progress
// or a directory being populated yields a single notification.
type debouncer struct {
	window time.Duration
	emit   func(core.Batch)

	mu      sync.Mutex
	timer   *time.Timer
	pending core.Batch
	byPath  map[string]int // index into pending for per-path merging
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration, emit func(core.Batch)) *debouncer {
	return &debouncer{
		window: window,
		emit:   emit,
		byPath: make(map[string]int),
	}
}

// add merges an event into the pending batch and restarts the window.
func (d *debouncer) add(e core.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if i, ok := d.byPath[e.Path]; ok {
		d.pending[i] = mergeEvents(d.pending[i], e)
	} else {
		d.byPath[e.Path] = len(d.pending)
		d.pending = append(d.pending, e)
	}

	if d.timer != nil {
		if d.timer.Stop() {
			d.wg.Done() // canceled an armed timer
		}
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.window, d.flush)
}

// flush delivers the pending batch. Runs on the timer goroutine.
func (d *debouncer) flush() {
	defer d.wg.Done()

	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	batch := d.pending
	d.pending = nil
	d.byPath = make(map[string]int)
	d.mu.Unlock()

	d.emit(batch)
}

// stopAndWait stops accepting events, discards anything pending and
// waits (bounded) for an in-flight flush to finish. After it returns no
// callback will fire.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.pending = nil
	d.byPath = make(map[string]int)
	if d.timer != nil {
		if d.timer.Stop() {
			d.wg.Done()
		}
		d.timer = nil
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

// mergeEvents collapses two events for the same path observed within
// one window. A creation followed by writes is still a creation; a
// removal supersedes whatever came before.
func mergeEvents(old, next core.Event) core.Event {
	if old.Kind == core.EventAdded && next.Kind == core.EventChanged {
		next.Kind = core.EventAdded
	}
	if old.Kind == core.EventDirAdded && next.Kind == core.EventChanged {
		next.Kind = core.EventDirAdded
	}
	return next
}
