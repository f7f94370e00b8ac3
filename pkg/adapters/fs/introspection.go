package fs

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Root              string `json:"root"`
	Extension         string `json:"extension"`
	SystemDir         string `json:"system_dir"`
	CacheSize         int    `json:"cache_size"`
	WatcherActive     bool   `json:"watcher_active"`
	StabilityWindowMS int64  `json:"stability_window_ms"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Root:              s.Root,
		Extension:         s.config.Extension,
		SystemDir:         s.config.SystemDir,
		CacheSize:         s.cache.Len(),
		WatcherActive:     s.watcherActive,
		StabilityWindowMS: s.config.StabilityWindow.Milliseconds(),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "fs-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
