package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-flight atomic writes. The scanner, the
// watcher, and copyTree all skip files carrying it.
const TempFilePrefix = "arbor-tmp-"

// writeFileAtomic stages data in a temp file next to the target and
// renames it into place, so readers never observe a half-written note.
// The temp file lives in the target's directory; rename is only atomic
// within one filesystem.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to stage atomic write: %w", err)
	}
	tmpName := tmp.Name()
	// Removes the stage file on any failure below; a no-op after rename.
	defer os.Remove(tmpName)

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write staged content: %w", err)
	}

	// CreateTemp uses 0600; widen to the requested mode before publishing.
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set mode on staged file: %w", err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to publish %s: %w", filename, err)
	}
	return nil
}
