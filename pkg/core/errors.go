package core

import "errors"

// Common errors. Storage operations return these sentinels (usually
// wrapped with operation and path context) so callers can branch with
// errors.Is. Anything else reaching the caller is an OS-level failure
// wrapped verbatim.
var (
	// ErrNameCollision signals that the target name already exists.
	// User-recoverable: the store never overwrites implicitly.
	ErrNameCollision = errors.New("name already exists")

	// ErrProtectedGroup signals a disallowed operation on the default group.
	ErrProtectedGroup = errors.New("operation not allowed on the default group")

	// ErrInvalidMove signals a move of a group into itself or a descendant.
	ErrInvalidMove = errors.New("cannot move a group into itself or a descendant")

	// ErrNotFound signals that the source vanished between check and act.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPath signals a malformed or escaping group path or note name.
	ErrInvalidPath = errors.New("invalid path")
)
