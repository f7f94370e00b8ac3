package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/arbor/pkg/core"
)

type storeSource struct {
	batches <-chan core.Batch
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits store change events.
// It bridges the typed batch channel to the generic lifecycle Event
// interface, flattening each batch into its individual events.
func NewSource(batches <-chan core.Batch) lifecycle.Source {
	return &storeSource{
		batches: batches,
		out:     make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case batch, ok := <-s.batches:
				if !ok {
					return nil
				}
				for _, e := range batch {
					// core.Event implements lifecycle.Event (has String())
					select {
					case s.out <- e:
					case <-ctx.Done():
						return nil
					}
				}
			}
		}
	})
	return nil
}
