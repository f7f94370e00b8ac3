package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/core"
)

func TestSource_FlattensBatches(t *testing.T) {
	batches := make(chan core.Batch, 2)
	src := NewSource(batches)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, src.Start(ctx))

	batches <- core.Batch{
		{Kind: core.EventDirAdded, Path: "Work"},
		{Kind: core.EventAdded, Path: "Work/a.md"},
	}
	batches <- core.Batch{
		{Kind: core.EventRemoved, Path: "b.md"},
	}
	close(batches)

	var got []string
	for e := range src.Events() {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{
		"DIR_ADDED Work",
		"ADDED Work/a.md",
		"REMOVED b.md",
	}, got)
}

func TestSource_StopsOnContextCancel(t *testing.T) {
	batches := make(chan core.Batch)
	src := NewSource(batches)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "event channel must close after cancellation")
	case <-time.After(time.Second):
		t.Fatal("event channel not closed after cancellation")
	}
}
