package core

import (
	"fmt"
	"strings"
)

// NormalizeGroup maps the empty string to the DefaultGroup sentinel and
// trims trailing separators from a logical group path. A leading
// separator marks an absolute path and is kept so ValidateGroup can
// reject it.
func NormalizeGroup(group string) string {
	if group == "" {
		return DefaultGroup
	}
	trimmed := strings.TrimRight(group, "/")
	if trimmed == "" {
		// All separators. Left as-is for validation to reject.
		return group
	}
	return trimmed
}

// ValidateGroup checks a logical group path. The DefaultGroup sentinel
// is always valid. Each slash-separated segment must be a plain name:
// no empty segments, no "." or "..", no backslashes.
func ValidateGroup(group string) error {
	if group == DefaultGroup {
		return nil
	}
	if group == "" || strings.HasPrefix(group, "/") {
		return fmt.Errorf("group %q: %w", group, ErrInvalidPath)
	}
	for _, seg := range strings.Split(group, "/") {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsRune(seg, '\\') {
			return fmt.Errorf("group %q: %w", group, ErrInvalidPath)
		}
	}
	return nil
}

// ValidateNoteName checks a note display name. Names map to a single
// filename segment, so separators and traversal are rejected.
func ValidateNoteName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("note name %q: %w", name, ErrInvalidPath)
	}
	return nil
}

// GroupLeaf returns the last segment of a group path.
func GroupLeaf(group string) string {
	if group == DefaultGroup {
		return DefaultGroup
	}
	if i := strings.LastIndex(group, "/"); i >= 0 {
		return group[i+1:]
	}
	return group
}

// GroupParent returns the parent of a group path and whether one exists.
// Top-level groups and the default group have no parent.
func GroupParent(group string) (string, bool) {
	if group == DefaultGroup {
		return "", false
	}
	if i := strings.LastIndex(group, "/"); i >= 0 {
		return group[:i], true
	}
	return "", false
}

// IsSubgroup reports whether child equals parent or lives underneath it.
// This is the string-prefix test the move validation relies on.
func IsSubgroup(parent, child string) bool {
	if parent == child {
		return true
	}
	return strings.HasPrefix(child, parent+"/")
}

// Ancestors returns every proper ancestor path of a group, nearest last.
// "a/b/c" yields ["a", "a/b"].
func Ancestors(group string) []string {
	if group == DefaultGroup {
		return nil
	}
	var out []string
	for i, r := range group {
		if r == '/' {
			out = append(out, group[:i])
		}
	}
	return out
}
