package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/arbor/pkg/core"
)

// resolveGroupDir maps a logical group path to its physical directory,
// creating missing intermediate directories. Idempotent. The default
// group resolves to the store root itself.
func (s *Store) resolveGroupDir(group string) (string, error) {
	group = core.NormalizeGroup(group)
	if err := core.ValidateGroup(group); err != nil {
		return "", err
	}
	dir := s.groupDir(group)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create group directory %q: %w", group, err)
	}
	return dir, nil
}

// groupDir maps a logical group path to its physical directory without
// touching disk. Callers must have validated the group first.
func (s *Store) groupDir(group string) string {
	if group == core.DefaultGroup {
		return s.Root
	}
	return filepath.Join(s.Root, filepath.FromSlash(group))
}

// relativeGroupPath translates a physical path under the root back into
// logical group space. The root itself maps to the default group.
// Paths outside the root are rejected.
func (s *Store) relativeGroupPath(abs string) (string, error) {
	rel, err := filepath.Rel(s.Root, abs)
	if err != nil {
		return "", fmt.Errorf("path %q: %w", abs, core.ErrInvalidPath)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return core.DefaultGroup, nil
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %q escapes the store root: %w", abs, core.ErrInvalidPath)
	}
	return rel, nil
}
