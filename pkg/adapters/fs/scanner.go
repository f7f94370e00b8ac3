package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/arbor/pkg/core"
)

// Scan recursively reads the root and rebuilds the complete note set
// and empty-group set from scratch.
//
// Strategy:
//  1. Load the index cache (header metadata keyed by relpath+mtime).
//  2. Walk the tree by explicit recursion. Note-extension files become
//     notes tagged with the current group; a directory with zero direct
//     note files (other than the root) joins the empty-group set.
//  3. A second pass adds any ancestor segment not yet represented, so
//     the tree never has orphaned branches.
//  4. Persist the pruned cache.
//
// The output is deterministic as a set for a given filesystem state; no
// ordering is guaranteed.
func (s *Store) Scan(ctx context.Context) (core.Snapshot, error) {
	if err := s.cache.Load(); err != nil {
		if s.config.Logger != nil {
			s.config.Logger.Warn("failed to load scan cache", "error", err)
		}
	}

	snap := core.Snapshot{}
	seen := make(map[string]bool)
	groups := make(map[string]bool)

	if err := s.scanDir(ctx, s.Root, core.DefaultGroup, &snap, seen, groups); err != nil {
		return core.Snapshot{}, err
	}

	// Implicit-ancestor invariant: every segment of every group path is
	// itself a group node.
	for group := range groups {
		if group == core.DefaultGroup {
			continue
		}
		for _, anc := range core.Ancestors(group) {
			if !groups[anc] {
				groups[anc] = true
				snap.EmptyGroups = append(snap.EmptyGroups, anc)
			}
		}
	}

	s.cache.Prune(seen)
	if err := s.cache.Save(); err != nil {
		if s.config.Logger != nil {
			s.config.Logger.Warn("failed to save scan cache", "error", err)
		}
	}

	return snap, nil
}

// scanDir reads one directory level and recurses into subdirectories,
// extending the logical group path by their names.
func (s *Store) scanDir(ctx context.Context, dir, group string, snap *core.Snapshot, seen, groups map[string]bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read group directory %q: %w", group, err)
	}

	directNotes := 0
	for _, entry := range entries {
		name := entry.Name()
		if s.skipEntry(name) {
			continue
		}

		rel := name
		if group != core.DefaultGroup {
			rel = group + "/" + name
		}
		if s.ignored(rel) {
			continue
		}

		if entry.IsDir() {
			if err := s.scanDir(ctx, filepath.Join(dir, name), rel, snap, seen, groups); err != nil {
				return err
			}
			continue
		}

		if filepath.Ext(name) != s.config.Extension {
			continue
		}

		note, err := s.statNote(filepath.Join(dir, name), group)
		if err != nil {
			if s.config.Logger != nil {
				s.config.Logger.Warn("skipping unreadable note", "path", name, "error", err)
			}
			continue
		}
		seen[note.Path] = true
		snap.Notes = append(snap.Notes, note)
		directNotes++
	}

	groups[group] = true
	if directNotes == 0 && group != core.DefaultGroup {
		snap.EmptyGroups = append(snap.EmptyGroups, group)
	}
	return nil
}

// skipEntry hides store internals from the scan: the system directory,
// hidden files, and in-flight atomic write temp files.
func (s *Store) skipEntry(name string) bool {
	if name == s.config.SystemDir {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	return strings.HasPrefix(name, TempFilePrefix)
}

// ignored matches a root-relative path against the configured ignore
// patterns.
func (s *Store) ignored(rel string) bool {
	for _, pattern := range s.config.Ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// statNote builds a core.Note for a file, using the cache to avoid
// re-parsing headers of unchanged files.
func (s *Store) statNote(abs, group string) (core.Note, error) {
	info, err := os.Stat(abs)
	if err != nil {
		return core.Note{}, err
	}

	rel, err := s.relativeGroupPath(abs)
	if err != nil {
		return core.Note{}, err
	}

	note := core.Note{
		Path:    rel,
		Name:    core.DisplayName(filepath.Base(abs)),
		Group:   group,
		ModTime: info.ModTime(),
	}

	if entry, hit := s.cache.Get(rel, info.ModTime()); hit {
		note.ID = entry.ID
		if entry.Title != "" {
			note.Name = entry.Title
		}
		return note, nil
	}

	f, err := os.Open(abs)
	if err != nil {
		return core.Note{}, err
	}
	defer f.Close()

	doc, err := core.ParseDocument(f)
	if err != nil {
		return core.Note{}, err
	}

	note.ID = doc.Header.ID
	if doc.Header.Title != "" {
		note.Name = doc.Header.Title
	}

	s.cache.Set(rel, &indexEntry{
		ID:           doc.Header.ID,
		Title:        doc.Header.Title,
		LastModified: info.ModTime(),
	})

	return note, nil
}
