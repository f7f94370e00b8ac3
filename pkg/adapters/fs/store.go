package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/arbor/pkg/core"
)

const (
	// DefaultExtension is the note file extension.
	DefaultExtension = ".md"

	// DefaultSystemDir is the hidden directory holding store internals
	// (the scan index cache). It is invisible to scans and the watcher.
	DefaultSystemDir = ".arbor"

	// DefaultStabilityWindow is how long a path must stay quiet before
	// a change notification fires. Keeps one save-in-progress from
	// producing a burst of notifications.
	DefaultStabilityWindow = 1500 * time.Millisecond

	defaultEventBuffer = 16
)

// Config holds the configuration for the filesystem store.
type Config struct {
	Root            string
	Extension       string        // note extension, e.g. ".md"
	SystemDir       string        // e.g. ".arbor"
	MustExist       bool          // fail instead of creating the root
	StabilityWindow time.Duration // watcher coalescing window
	EventBuffer     int           // watch channel buffer
	Ignore          []string      // doublestar patterns, relative to root
	Logger          *slog.Logger
	ErrorHandler    func(error) // optional callback for watch-loop errors
}

// Store implements core.Store on a directory tree. Groups are
// directories; the default group is the root itself. The physical tree
// is shared with other processes, so every check is check-then-act.
type Store struct {
	Root   string
	config Config
	cache  *cache

	mu            sync.RWMutex
	worker        *watchWorker
	watcherActive bool
}

// NewStore creates a filesystem-backed store rooted at config.Root.
func NewStore(config Config) *Store {
	if config.Extension == "" {
		config.Extension = DefaultExtension
	}
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.StabilityWindow <= 0 {
		config.StabilityWindow = DefaultStabilityWindow
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = defaultEventBuffer
	}
	return &Store{
		Root:   config.Root,
		config: config,
		cache:  newCache(config.Root, config.SystemDir),
	}
}

// Initialize performs the necessary setup for the store (mkdir).
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Root)
		if os.IsNotExist(err) {
			return fmt.Errorf("store root does not exist: %s", s.Root)
		}
		if err != nil {
			return fmt.Errorf("failed to stat store root: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store root is not a directory: %s", s.Root)
		}
		return nil
	}
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return fmt.Errorf("failed to create store root: %w", err)
	}
	return nil
}

// noteFilename appends the configured extension when the name lacks it.
func (s *Store) noteFilename(name string) string {
	if strings.HasSuffix(name, s.config.Extension) {
		return name
	}
	return name + s.config.Extension
}

// absPath converts a root-relative slash path to a physical path.
func (s *Store) absPath(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// validateRelPath rejects note paths that are absolute or escape the root.
func (s *Store) validateRelPath(rel string) error {
	if rel == "" || strings.HasPrefix(rel, "/") || filepath.IsAbs(filepath.FromSlash(rel)) {
		return fmt.Errorf("path %q: %w", rel, core.ErrInvalidPath)
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("path %q: %w", rel, core.ErrInvalidPath)
		}
	}
	return nil
}

// noteGroup derives the logical group of a root-relative note path.
func noteGroup(rel string) string {
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return core.DefaultGroup
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
