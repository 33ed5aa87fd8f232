package render

import (
	"github.com/phanxgames/spineflow"
)

// Camera is an orthographic view onto mesh space. The viewport is centered on
// (X, Y); mesh space is Y-up while the screen is Y-down.
type Camera struct {
	// X and Y are the mesh-space point at the center of the viewport.
	X, Y float64
	// Zoom is the scale factor (1.0 = one mesh unit per pixel).
	Zoom float64
	// Width and Height are the viewport size in pixels.
	Width, Height float64
}

// NewCamera creates a camera centered on the origin.
func NewCamera(width, height float64) *Camera {
	return &Camera{Zoom: 1, Width: width, Height: height}
}

// WorldToScreen converts a mesh-space point to screen pixels. Z is ignored.
func (c *Camera) WorldToScreen(p spineflow.Vec3) (sx, sy float64) {
	sx = c.Width/2 + (p.X-c.X)*c.Zoom
	sy = c.Height/2 - (p.Y-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen pixels to a point on the z = 0 plane.
func (c *Camera) ScreenToWorld(sx, sy float64) spineflow.Vec3 {
	return spineflow.Vec3{
		X: c.X + (sx-c.Width/2)/c.Zoom,
		Y: c.Y - (sy-c.Height/2)/c.Zoom,
	}
}

// VisibleBounds returns the mesh-space rectangle the camera sees as min and
// max corners.
func (c *Camera) VisibleBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.Width / (2 * c.Zoom)
	halfH := c.Height / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// visible reports whether a box of half extents (hw, hh) around p intersects
// the view. Edges touching count as visible.
func (c *Camera) visible(p spineflow.Vec3, hw, hh float64) bool {
	minX, minY, maxX, maxY := c.VisibleBounds()
	return p.X+hw >= minX && p.X-hw <= maxX && p.Y+hh >= minY && p.Y-hh <= maxY
}

// Resize changes the viewport size.
func (c *Camera) Resize(width, height float64) {
	c.Width = width
	c.Height = height
}
