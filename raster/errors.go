package raster

import "errors"

// Error taxonomy (§7). The core never panics or exits on its own:
// upstream-invariant violations are logged at FATAL through the
// caller's Logger; BuildEdgeTable (and so Draw) returns ErrInvariant
// for a primitive whose area reciprocal is non-finite, including a
// zero-area triangle. Horizontal edges and edges that cover no
// scanline are not errors — BuildEdgeTable drops them, and a triangle
// left with no edges yields zero spans.
var (
	// ErrInvariant signals an upstream-invariant violation: a
	// triangle acquired a third simultaneous active edge, or a
	// primitive's area reciprocal was non-finite. The coarsest
	// recovery unit is the draw that produced it.
	ErrInvariant = errors.New("raster: upstream invariant violated")

	// ErrResourceExhausted names an allocation failure while building
	// the GET/AET or triangle arena for a draw. No function in this
	// package returns it.
	ErrResourceExhausted = errors.New("raster: resource exhausted during draw setup")
)
