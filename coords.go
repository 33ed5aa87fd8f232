package spineflow

import "fmt"

// AnchorRect is a layout rectangle in DOM pixel space: origin at the top-left
// of the viewport, Y growing downward. One anchor marks one scroll screen.
type AnchorRect struct {
	X      float64 `toml:"x" json:"x"`
	Y      float64 `toml:"y" json:"y"`
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// validate reports ErrDegenerateAnchor for empty or non-finite rectangles.
func (r AnchorRect) validate() error {
	if !isFinite(r.X) || !isFinite(r.Y) || !isFinite(r.Width) || !isFinite(r.Height) {
		return fmt.Errorf("%w: non-finite value in %+v", ErrDegenerateAnchor, r)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: size %vx%v", ErrDegenerateAnchor, r.Width, r.Height)
	}
	return nil
}

// Viewport is the visible area, in pixels.
type Viewport struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// CoordinateMapper converts layout pixels into mesh space, which is centered
// on the viewport with Y growing upward.
type CoordinateMapper struct {
	Viewport Viewport
}

// ToMesh converts a layout pixel position to mesh space.
func (m CoordinateMapper) ToMesh(x, y float64) Vec3 {
	return Vec3{
		X: x - m.Viewport.Width/2,
		Y: -(y - m.Viewport.Height/2),
	}
}

// TopCenter returns the mesh-space point at the horizontal center of the
// rectangle's top edge.
func (m CoordinateMapper) TopCenter(r AnchorRect) Vec3 {
	return m.ToMesh(r.X+r.Width/2, r.Y)
}

// ScreenPoints are the mesh-space reference points derived from one anchor.
// Top.Y > Center.Y > Bottom.Y always holds. Handle1 (incoming) is absent on
// the first screen and Handle2 (outgoing) on the last.
type ScreenPoints struct {
	Rect   AnchorRect
	Top    Vec3
	Center Vec3
	Bottom Vec3

	Handle1    Vec3
	Handle2    Vec3
	HasHandle1 bool
	HasHandle2 bool
}
