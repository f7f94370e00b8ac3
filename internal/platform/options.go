package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/arbor/pkg/core"
)

// options holds the internal configuration for the Arbor service.
type options struct {
	store  core.Store
	logger *slog.Logger
	config map[string]interface{}
}

// Option defines a functional option for configuring Arbor.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		store:  nil,
		logger: nil,
		config: make(map[string]interface{}),
	}
}

// WithMustExist ensures the store root directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore allows injecting a custom storage adapter (e.g. mock).
// If provided, the default filesystem adapter will be skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithNoteExtension sets the note file extension (default ".md").
func WithNoteExtension(ext string) Option {
	return func(o *options) {
		o.config["extension"] = ext
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".arbor").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithStabilityWindow sets how long a path must stay quiet before the
// watcher reports a change. Zero means the adapter default.
func WithStabilityWindow(window time.Duration) Option {
	return func(o *options) {
		o.config["stability_window"] = window
	}
}

// WithEventBuffer allows specifying the size of the watch channel buffer.
// Zero means default.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithIgnore adds glob patterns (root-relative, doublestar syntax) the
// scanner and watcher skip.
func WithIgnore(patterns ...string) Option {
	return func(o *options) {
		existing, _ := o.config["ignore"].([]string)
		o.config["ignore"] = append(existing, patterns...)
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring
// during the watch loop. The loop keeps running either way; this is for
// applications that want to log or react to them out of band.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
