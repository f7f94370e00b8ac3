package core

import "context"

// Store defines the contract for the hierarchical note store. Adhering
// to this interface keeps the domain independent of the underlying
// storage mechanism; the default implementation is the filesystem
// adapter, but nothing here assumes a disk.
//
// Every operation validates before mutating and returns a typed error
// from errors.go (wrapped with context) on failure. Collision checks
// are best-effort check-then-act: the physical tree is shared with
// other processes, so a true race can still surface as a late I/O
// error. That is a documented limitation, not a bug to retry around.
type Store interface {
	// Initialize ensures the underlying storage is ready.
	Initialize(ctx context.Context) error

	// Scan rebuilds the authoritative view from scratch.
	Scan(ctx context.Context) (Snapshot, error)

	// CreateNote writes a new note file into the group, creating the
	// group chain as needed. Fails with ErrNameCollision if the file
	// already exists.
	CreateNote(ctx context.Context, name, group, content string) (Note, error)

	// RenameNote renames a note within its directory and returns the
	// new root-relative path.
	RenameNote(ctx context.Context, path, newName string) (string, error)

	// DeleteNote removes the note file. The emptied parent directory is
	// left in place: an empty group is a valid state.
	DeleteNote(ctx context.Context, path string) error

	// CreateGroup creates the full nested directory chain. Idempotent.
	CreateGroup(ctx context.Context, group string) error

	// DeleteGroup recursively deletes the group directory and all its
	// contents. The default group is protected.
	DeleteGroup(ctx context.Context, group string) error

	// MoveNote relocates a note into the target group (copy then
	// delete) and returns the new path. A move to the note's current
	// group is a no-op.
	MoveNote(ctx context.Context, path, targetGroup string) (string, error)

	// MoveGroup relocates a whole subtree under the target group and
	// returns the new group path. The destination keeps the source's
	// leaf name; the default group as target means the root.
	MoveGroup(ctx context.Context, source, target string) (string, error)
}

// Watchable is implemented by stores that can observe external
// mutations of their backing storage.
type Watchable interface {
	// Watch starts observing the store root and returns a channel of
	// debounced event batches. File events are filtered by the glob
	// pattern; directory events are always forwarded.
	Watch(ctx context.Context, pattern string) (<-chan Batch, error)

	// StopWatch stops the active watch. When it returns, no pending
	// debounced notification will fire.
	StopWatch(ctx context.Context) error
}
