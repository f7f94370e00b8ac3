// Package arbor is the Composition Root for the Arbor note store.
//
// It connects the core business logic (Domain Layer) with the
// infrastructure adapters (Persistence Layer) using the Hexagonal
// Architecture pattern.
//
// Philosophy:
//
// Arbor organizes plain-text notes into a tree of named groups backed
// directly by the filesystem: groups are directories, the default group
// is the storage root itself. There is no hidden database to drift out
// of sync: the authoritative view is always re-derived from disk by a
// full scan, and a background watcher reports external mutations so
// consumers know when to re-scan.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Tree invariants**: implicit ancestor groups, protected root group, cycle-free moves.
//   - **Scan, don't cache**: consistency by re-derivation instead of incremental patching.
//   - **Change watcher**: recursive fsnotify watch with a stability-window debouncer.
//   - **Header aware**: native support for the title/id/date header block on note files.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := arbor.New("./notes",
//		arbor.WithLogger(logger),
//	)
//
//	// Create a note under a group
//	note, err := svc.CreateNote(ctx, "groceries", "Personal/Lists", "milk, eggs")
package arbor
