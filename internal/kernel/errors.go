package kernel

import "errors"

var (
	// ErrNotFound is returned when a path or pid lookup fails.
	ErrNotFound = errors.New("not found")

	// ErrNoFreeFrames is returned by the memory manager only in the
	// degenerate case where even eviction cannot make room: no frame is
	// free and no page is resident to evict (e.g. a memory with no frames).
	ErrNoFreeFrames = errors.New("no free frames available")
)
