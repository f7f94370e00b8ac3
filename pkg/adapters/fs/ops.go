package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/arbor/pkg/core"
)

// CreateNote resolves (and creates) the group directory and writes the
// note file atomically. Fails with ErrNameCollision if the file exists.
func (s *Store) CreateNote(ctx context.Context, name, group, content string) (core.Note, error) {
	if err := core.ValidateNoteName(name); err != nil {
		return core.Note{}, err
	}

	dir, err := s.resolveGroupDir(group)
	if err != nil {
		return core.Note{}, err
	}

	full := filepath.Join(dir, s.noteFilename(name))
	if _, err := os.Lstat(full); err == nil {
		return core.Note{}, fmt.Errorf("note %q in group %q: %w", name, core.NormalizeGroup(group), core.ErrNameCollision)
	} else if !os.IsNotExist(err) {
		return core.Note{}, fmt.Errorf("failed to check note %q: %w", name, err)
	}

	if err := writeFileAtomic(full, []byte(content), 0644); err != nil {
		return core.Note{}, fmt.Errorf("failed to write note %q: %w", name, err)
	}

	note, err := s.statNote(full, core.NormalizeGroup(group))
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to stat created note %q: %w", name, err)
	}

	if s.config.Logger != nil {
		s.config.Logger.Debug("note written", "path", note.Path)
	}
	return note, nil
}

// RenameNote renames a note within its directory. Renaming to the
// current name is a no-op; any other existing target is a collision.
func (s *Store) RenameNote(ctx context.Context, path, newName string) (string, error) {
	if err := s.validateRelPath(path); err != nil {
		return "", err
	}
	if err := core.ValidateNoteName(newName); err != nil {
		return "", err
	}

	src := s.absPath(path)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return "", fmt.Errorf("note %q: %w", path, core.ErrNotFound)
	} else if err != nil {
		return "", fmt.Errorf("failed to stat note %q: %w", path, err)
	}

	dst := filepath.Join(filepath.Dir(src), s.noteFilename(newName))
	if dst == src {
		return path, nil
	}
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("note %q: %w", newName, core.ErrNameCollision)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check rename target %q: %w", newName, err)
	}

	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("failed to rename note %q: %w", path, err)
	}
	s.cache.Delete(path)

	return s.relativeGroupPath(dst)
}

// DeleteNote removes the note file. The parent directory is left in
// place even when it becomes empty: an empty group is a valid state.
func (s *Store) DeleteNote(ctx context.Context, path string) error {
	if err := s.validateRelPath(path); err != nil {
		return err
	}

	full := s.absPath(path)
	if _, err := os.Stat(full); os.IsNotExist(err) {
		return fmt.Errorf("note %q: %w", path, core.ErrNotFound)
	} else if err != nil {
		return fmt.Errorf("failed to stat note %q: %w", path, err)
	}

	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to remove note %q: %w", path, err)
	}
	s.cache.Delete(path)
	return nil
}

// CreateGroup creates the full nested directory chain. Re-creating an
// existing group is not an error.
func (s *Store) CreateGroup(ctx context.Context, group string) error {
	_, err := s.resolveGroupDir(group)
	return err
}

// DeleteGroup recursively deletes the group directory and all its
// contents. The default group (the root itself) is protected.
func (s *Store) DeleteGroup(ctx context.Context, group string) error {
	group = core.NormalizeGroup(group)
	if err := core.ValidateGroup(group); err != nil {
		return err
	}
	if group == core.DefaultGroup {
		return fmt.Errorf("delete group: %w", core.ErrProtectedGroup)
	}

	if err := os.RemoveAll(s.groupDir(group)); err != nil {
		return fmt.Errorf("failed to delete group %q: %w", group, err)
	}
	return nil
}

// MoveNote relocates a note into the target group using copy-then-
// delete, which tolerates cross-volume moves. Moving a note to its
// current group is a no-op.
func (s *Store) MoveNote(ctx context.Context, path, targetGroup string) (string, error) {
	if err := s.validateRelPath(path); err != nil {
		return "", err
	}
	targetGroup = core.NormalizeGroup(targetGroup)
	if err := core.ValidateGroup(targetGroup); err != nil {
		return "", err
	}

	if noteGroup(path) == targetGroup {
		return path, nil
	}

	src := s.absPath(path)
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("note %q: %w", path, core.ErrNotFound)
		}
		return "", fmt.Errorf("failed to read note %q: %w", path, err)
	}

	destDir, err := s.resolveGroupDir(targetGroup)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(destDir, filepath.Base(src))
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("note %q in group %q: %w", filepath.Base(src), targetGroup, core.ErrNameCollision)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check move target: %w", err)
	}

	if err := writeFileAtomic(dst, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write note at destination: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("failed to remove moved note %q: %w", path, err)
	}
	s.cache.Delete(path)

	return s.relativeGroupPath(dst)
}

// MoveGroup relocates a whole subtree. The destination is the target
// path extended by the source's leaf name, or the leaf alone when the
// target is the root. The subtree is copied recursively, then the
// source is recursively deleted.
func (s *Store) MoveGroup(ctx context.Context, source, target string) (string, error) {
	source = core.NormalizeGroup(source)
	target = core.NormalizeGroup(target)
	if err := core.ValidateGroup(source); err != nil {
		return "", err
	}
	if err := core.ValidateGroup(target); err != nil {
		return "", err
	}

	if source == core.DefaultGroup {
		return "", fmt.Errorf("move group: %w", core.ErrProtectedGroup)
	}
	if target != core.DefaultGroup && core.IsSubgroup(source, target) {
		return "", fmt.Errorf("move %q into %q: %w", source, target, core.ErrInvalidMove)
	}

	dest := core.GroupLeaf(source)
	if target != core.DefaultGroup {
		dest = target + "/" + dest
	}
	srcDir := s.groupDir(source)
	if info, err := os.Stat(srcDir); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("group %q: %w", source, core.ErrNotFound)
		}
		return "", fmt.Errorf("failed to stat group %q: %w", source, err)
	} else if !info.IsDir() {
		return "", fmt.Errorf("group %q: %w", source, core.ErrNotFound)
	}

	destDir := s.groupDir(dest)
	if _, err := os.Lstat(destDir); err == nil {
		return "", fmt.Errorf("group %q: %w", dest, core.ErrNameCollision)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check move target %q: %w", dest, err)
	}

	if target != core.DefaultGroup {
		if _, err := s.resolveGroupDir(target); err != nil {
			return "", err
		}
	}

	if err := copyTree(srcDir, destDir); err != nil {
		return "", fmt.Errorf("failed to copy group %q: %w", source, err)
	}
	if err := os.RemoveAll(srcDir); err != nil {
		return "", fmt.Errorf("failed to remove moved group %q: %w", source, err)
	}

	return dest, nil
}

// copyTree recursively copies a directory subtree.
func copyTree(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), TempFilePrefix) {
			continue
		}
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyTree(from, to); err != nil {
				return err
			}
			continue
		}
		data, err := os.ReadFile(from)
		if err != nil {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if err := os.WriteFile(to, data, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}
