package platform

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/core"
)

func TestNew_EndToEnd(t *testing.T) {
	root := filepath.Join(t.TempDir(), "notes")
	svc, err := New(root)
	require.NoError(t, err)

	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "groceries", "Personal", "milk")
	require.NoError(t, err)
	assert.Equal(t, "Personal/groceries.md", note.Path)

	// The persisted file carries a stamped header and the body.
	data, err := os.ReadFile(filepath.Join(root, "Personal", "groceries.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: groceries")
	assert.Contains(t, string(data), "milk")

	require.NoError(t, svc.CreateGroup(ctx, "Work/Q3"))

	snap, err := svc.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Notes, 1)
	assert.ElementsMatch(t, []string{"Work", "Work/Q3"}, snap.EmptyGroups)

	dest, err := svc.MoveGroup(ctx, "Personal", "Work")
	require.NoError(t, err)
	assert.Equal(t, "Work/Personal", dest)

	snap, err = svc.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Notes, 1)
	assert.Equal(t, "Work/Personal/groceries.md", snap.Notes[0].Path)
}

func TestInit_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")

	_, err := Init(missing, WithMustExist(true))
	assert.Error(t, err)

	_, err = Init(missing)
	assert.NoError(t, err)
	assert.DirExists(t, missing)
}

func TestNew_SubscribeSeesExternalChanges(t *testing.T) {
	root := t.TempDir()
	svc, err := New(root, WithStabilityWindow(100*time.Millisecond))
	require.NoError(t, err)

	var mu sync.Mutex
	var batches []core.Batch
	stop, err := svc.Subscribe(context.Background(), "", func(b core.Batch) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, b)
	})
	require.NoError(t, err)

	// Simulate another process dropping a file into the store.
	require.NoError(t, os.WriteFile(filepath.Join(root, "external.md"), []byte("x"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(batches) == 1
	}, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, stop())

	// After stop returns the callback must stay silent.
	require.NoError(t, os.WriteFile(filepath.Join(root, "late.md"), []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, batches, 1)

	kinds := make(map[string]core.EventKind)
	for _, e := range batches[0] {
		kinds[e.Path] = e.Kind
	}
	assert.Equal(t, core.EventAdded, kinds["external.md"])
}

func TestNew_IgnorePatterns(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "drafts"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "drafts", "wip.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "done.md"), []byte("x"), 0644))

	svc, err := New(root, WithIgnore("drafts/**", "drafts"))
	require.NoError(t, err)

	snap, err := svc.Scan(context.Background())
	require.NoError(t, err)

	paths := make([]string, 0, len(snap.Notes))
	for _, n := range snap.Notes {
		paths = append(paths, n.Path)
	}
	assert.ElementsMatch(t, []string{"done.md"}, paths)
	assert.Empty(t, snap.EmptyGroups)
}
