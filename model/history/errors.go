package history

import "errors"

var (
	// ErrInvalidState is returned by Append when the supplied before snapshot
	// does not match the state at the cursor: the canvas diverged from history.
	ErrInvalidState = errors.New("history: invalid state")

	// ErrInvalidGraph is returned by Validate for a graph violating the tree
	// invariant (typically a corrupted persisted copy).
	ErrInvalidGraph = errors.New("history: invalid graph")
)
