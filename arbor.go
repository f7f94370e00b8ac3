package arbor

import (
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/platform"
	"github.com/aretw0/arbor/pkg/core"
)

// --- Types ---

// Service is a public alias for the domain service.
type Service = core.Service

// Note is a public alias for the domain note.
type Note = core.Note

// Snapshot is a public alias for the scan result.
type Snapshot = core.Snapshot

// Event is a public alias for a single observed change.
type Event = core.Event

// Batch is a public alias for one debounced notification.
type Batch = core.Batch

// DefaultGroup is the sentinel for the storage root itself.
const DefaultGroup = core.DefaultGroup

// --- Configuration ---

// Option defines a functional option for configuring Arbor.
type Option = platform.Option

// WithMustExist ensures the store root directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithNoteExtension sets the note file extension (default ".md").
func WithNoteExtension(ext string) Option {
	return platform.WithNoteExtension(ext)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".arbor").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithStabilityWindow sets the watcher coalescing window.
func WithStabilityWindow(window time.Duration) Option {
	return platform.WithStabilityWindow(window)
}

// WithEventBuffer allows specifying the size of the watch channel buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithIgnore adds glob patterns the scanner and watcher skip.
func WithIgnore(patterns ...string) Option {
	return platform.WithIgnore(patterns...)
}

// WithWatcherErrorHandler registers a callback for watch-loop errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a new Arbor Service.
func New(root string, opts ...Option) (*core.Service, error) {
	return platform.New(root, opts...)
}

// Init initializes a store explicitly.
func Init(root string, opts ...Option) (core.Store, error) {
	return platform.Init(root, opts...)
}

// --- Utils ---

// FindStoreRoot recursively looks upwards for a store root indicator.
func FindStoreRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
