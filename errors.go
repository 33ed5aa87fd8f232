package spineflow

import "errors"

// Construction errors. Callers get them wrapped with context; use errors.Is.
var (
	// ErrTooFewAnchors is returned when fewer than two anchors are supplied:
	// a single anchor cannot define a bridging curve.
	ErrTooFewAnchors = errors.New("spineflow: at least 2 anchors are required")

	// ErrDegenerateAnchor is returned for anchors with a non-positive or
	// non-finite size, or a non-finite position.
	ErrDegenerateAnchor = errors.New("spineflow: degenerate anchor rectangle")

	// ErrInvalidOffsetUnit is returned for a negative or non-finite vertical
	// offset unit.
	ErrInvalidOffsetUnit = errors.New("spineflow: invalid vertical offset unit")

	// ErrDegenerateExtent is returned when a mesh or follower extent is
	// non-positive or non-finite.
	ErrDegenerateExtent = errors.New("spineflow: degenerate extent")

	// ErrZeroLengthPath is returned when a path is nil or has no length.
	ErrZeroLengthPath = errors.New("spineflow: zero-length path")

	// ErrUnknownParam is returned by Params.Set for names outside the
	// parameter contract.
	ErrUnknownParam = errors.New("spineflow: unknown parameter")

	// ErrInvalidLayout is returned when a layout file fails validation.
	ErrInvalidLayout = errors.New("spineflow: invalid layout")

	// ErrDisposed is returned when a disposed coordinator is asked to rebuild.
	ErrDisposed = errors.New("spineflow: coordinator disposed")

	// ErrInvalidScript is returned when a scroll script fails to parse.
	ErrInvalidScript = errors.New("spineflow: invalid scroll script")
)
