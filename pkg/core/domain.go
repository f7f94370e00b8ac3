// Note is the central entity of the domain.
package core

import (
	"fmt"
	"time"
)

// DefaultGroup is the internal sentinel for the storage root itself.
// It never corresponds to a named directory and cannot be renamed,
// deleted, or moved. Display layers may label it however they want;
// the domain only ever compares against this constant.
const DefaultGroup = "default"

// Note represents a single document file in the store.
// Its identity is the root-relative, slash-separated storage path.
type Note struct {
	Path    string    // e.g. "Work/groceries.md"
	ID      string    // header id, empty when the file carries none
	Name    string    // display name: header title, else filename stem
	Group   string    // logical group path, DefaultGroup for the root
	ModTime time.Time // last modification time on disk
}

// Snapshot is the complete view of the store produced by one scan.
// It is always derived fresh from disk and never patched incrementally.
type Snapshot struct {
	Notes       []Note
	EmptyGroups []string // group paths holding zero notes directly
}

// EventKind tags a change observed under the store root.
type EventKind string

const (
	EventAdded      EventKind = "ADDED"
	EventChanged    EventKind = "CHANGED"
	EventRemoved    EventKind = "REMOVED"
	EventDirAdded   EventKind = "DIR_ADDED"
	EventDirRemoved EventKind = "DIR_REMOVED"
	EventError      EventKind = "ERROR"
)

// Event represents a single observed change. Path is root-relative.
// Err is only set for EventError, which the watcher uses to report its
// own failures without terminating the watch loop.
type Event struct {
	Kind      EventKind
	Path      string
	Err       error
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	if e.Kind == EventError {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Path)
}

// Batch is one debounced notification: every event that settled within
// the same stability window. Consumers treat a batch as "re-scan now".
type Batch []Event
