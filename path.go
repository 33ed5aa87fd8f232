package spineflow

import "fmt"

// Path is the product of a PathBuilder: the reference points of every screen
// and the spine curve threaded through them. A Path is rebuilt wholesale on
// layout changes, never mutated.
type Path struct {
	Screens            []ScreenPoints
	Curve              *CurvePath
	VerticalOffsetUnit float64
}

// PathBuilder turns anchor rectangles into a Path.
type PathBuilder struct {
	Mapper CoordinateMapper
	// ArcDivisions is the sample count of each segment's arc-length table
	// (DefaultArcDivisions when 0).
	ArcDivisions int
}

// Build computes the screen points of each anchor and joins them into a
// spine: one Line per anchor (top to bottom) and one CubicBezier bridging
// each adjacent pair (bottom[i], handle2[i], handle1[i+1], top[i+1]).
//
// Anchor i is pushed down by i*verticalOffsetUnit. The synthetic spacing
// stretches the bridges independently of the real layout gaps, so the
// stiffness of the curve is controlled by the unit alone. Handles sit one
// unit beyond the anchor along the direction of travel: the outgoing handle
// below the bottom, the incoming handle above the top.
//
// Anchors must be in top-to-bottom visual order; they are not re-sorted.
func (b PathBuilder) Build(anchors []AnchorRect, verticalOffsetUnit float64) (*Path, error) {
	if len(anchors) < 2 {
		return nil, fmt.Errorf("build path: got %d anchors: %w", len(anchors), ErrTooFewAnchors)
	}
	if !isFinite(verticalOffsetUnit) || verticalOffsetUnit < 0 {
		return nil, fmt.Errorf("build path: unit %v: %w", verticalOffsetUnit, ErrInvalidOffsetUnit)
	}

	screens := make([]ScreenPoints, len(anchors))
	for i, r := range anchors {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("build path: anchor %d: %w", i, err)
		}
		screens[i] = b.screenPoints(i, len(anchors), r, verticalOffsetUnit)
	}

	segments := make([]Segment, 0, 2*len(screens)-1)
	for i, s := range screens {
		// The straight run keeps the mesh undistorted while it sits on a screen.
		segments = append(segments, Line{P0: s.Top, P1: s.Bottom})
		if i < len(screens)-1 {
			next := screens[i+1]
			segments = append(segments, CubicBezier{
				P0: s.Bottom,
				C0: s.Handle2,
				C1: next.Handle1,
				P1: next.Top,
			})
		}
	}

	curve, err := NewCurvePath(segments, b.ArcDivisions)
	if err != nil {
		return nil, fmt.Errorf("build path: %w", err)
	}

	Logger().Debug("spineflow: path built",
		"anchors", len(anchors),
		"segments", curve.Len(),
		"length", curve.Length(),
		"unit", verticalOffsetUnit)

	return &Path{
		Screens:            screens,
		Curve:              curve,
		VerticalOffsetUnit: verticalOffsetUnit,
	}, nil
}

func (b PathBuilder) screenPoints(i, n int, r AnchorRect, unit float64) ScreenPoints {
	top := b.Mapper.TopCenter(r)
	top.Y -= float64(i) * unit

	s := ScreenPoints{
		Rect:   r,
		Top:    top,
		Center: Vec3{X: top.X, Y: top.Y - r.Height/2},
		Bottom: Vec3{X: top.X, Y: top.Y - r.Height},
	}
	if i > 0 {
		s.Handle1 = Vec3{X: top.X, Y: s.Top.Y + unit}
		s.HasHandle1 = true
	}
	if i < n-1 {
		s.Handle2 = Vec3{X: top.X, Y: s.Bottom.Y - unit}
		s.HasHandle2 = true
	}
	return s
}
