package scldiff

import "errors"

var (
	// ErrInvalidPolicy indicates a Policy value a host should never construct
	ErrInvalidPolicy = errors.New("invalid policy")
	// ErrNilNode is returned when a traversal is asked to start at nothing
	ErrNilNode = errors.New("nil node")
	// ErrNilIndex is returned when Diff is handed a missing index
	ErrNilIndex = errors.New("nil index")
	// ErrDepthExceeded is returned when a tree nests deeper than the
	// configured maximum. Traversals never silently truncate
	ErrDepthExceeded = errors.New("maximum depth exceeded")
	// ErrSizeExceeded is returned when a tree holds more included elements
	// than the configured maximum
	ErrSizeExceeded = errors.New("maximum node count exceeded")
)
