package fs

import (
	"context"
	"fmt"

	"github.com/aretw0/arbor/pkg/core"
)

// Watch starts observing the store root and returns the channel of
// debounced event batches. One watch per store; the channel is closed
// when the watch stops or the context is canceled.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Batch, error) {
	s.mu.Lock()
	if s.worker != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("watch already active for %s", s.Root)
	}
	s.mu.Unlock()

	events := make(chan core.Batch, s.config.EventBuffer)
	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.worker = w
	s.mu.Unlock()
	return events, nil
}

// StopWatch stops the active watch and waits for the worker to drain.
// When it returns, no pending debounced notification will fire. Calling
// it without an active watch is a no-op.
func (s *Store) StopWatch(ctx context.Context) error {
	s.mu.Lock()
	w := s.worker
	s.worker = nil
	s.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Stop(ctx)
}
