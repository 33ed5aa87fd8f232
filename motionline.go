package spineflow

import (
	"fmt"
	"math"
)

// DefaultMotionLineShapes are the control points of the motion line around
// each screen, as fractions of the anchor rectangle: X from its left edge,
// Y downward from its top edge, Z as absolute depth. Screens past the end of
// the table reuse it cyclically.
var DefaultMotionLineShapes = [][]Vec3{
	{
		{0.5, 0.5, -1},
		{-0.5, 1, 1},
		{1.25, 1.1, -1},
	},
	{
		{-0.5, -0.75, -1},
		{1.5, -0.5, 1},
		{-0.5, 0, -1},
		{0.5, 0.5, -1},
	},
}

// DefaultMotionLineDivisions is the number of samples along the motion line.
const DefaultMotionLineDivisions = 200

// BuildMotionLine places each screen's shape on its anchor (shifted by the
// same synthetic spacing as the spine) and samples a Catmull-Rom curve through
// all control points.
func BuildMotionLine(m CoordinateMapper, anchors []AnchorRect, verticalOffsetUnit float64, shapes [][]Vec3, divisions int) ([]Vec3, error) {
	if len(shapes) == 0 {
		shapes = DefaultMotionLineShapes
	}
	var ctrl []Vec3
	for i, r := range anchors {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("motion line: anchor %d: %w", i, err)
		}
		origin := m.ToMesh(r.X, r.Y)
		origin.Y -= float64(i) * verticalOffsetUnit
		for _, v := range shapes[i%len(shapes)] {
			ctrl = append(ctrl, Vec3{
				X: origin.X + r.Width*v.X,
				Y: origin.Y - r.Height*v.Y,
				Z: v.Z,
			})
		}
	}
	if len(ctrl) < 2 {
		return nil, fmt.Errorf("motion line: %d control points: %w", len(ctrl), ErrTooFewAnchors)
	}
	if divisions < 1 {
		divisions = DefaultMotionLineDivisions
	}
	pts := make([]Vec3, divisions+1)
	for i := range pts {
		pts[i] = catmullRom(ctrl, float64(i)/float64(divisions), 1)
	}
	return pts, nil
}

// catmullRom evaluates an open uniform Catmull-Rom spline through pts at
// t in [0, 1]. Missing neighbours at the ends are mirrored.
func catmullRom(pts []Vec3, t, tension float64) Vec3 {
	l := len(pts)
	p := float64(l-1) * t
	seg := int(math.Floor(p))
	weight := p - float64(seg)
	if seg >= l-1 {
		seg = l - 2
		weight = 1
	}
	if seg < 0 {
		seg = 0
		weight = 0
	}

	p1 := pts[seg]
	p2 := pts[seg+1]
	var p0, p3 Vec3
	if seg > 0 {
		p0 = pts[seg-1]
	} else {
		p0 = p1.Sub(p2).Add(p1)
	}
	if seg+2 < l {
		p3 = pts[seg+2]
	} else {
		p3 = p2.Sub(p1).Add(p2)
	}

	return Vec3{
		X: hermite(p1.X, p2.X, tension*(p2.X-p0.X), tension*(p3.X-p1.X), weight),
		Y: hermite(p1.Y, p2.Y, tension*(p2.Y-p0.Y), tension*(p3.Y-p1.Y), weight),
		Z: hermite(p1.Z, p2.Z, tension*(p2.Z-p0.Z), tension*(p3.Z-p1.Z), weight),
	}
}

// hermite evaluates the cubic Hermite polynomial from x0 to x1 with tangents
// t0 and t1.
func hermite(x0, x1, t0, t1, s float64) float64 {
	c0 := x0
	c1 := t0
	c2 := -3*x0 + 3*x1 - 2*t0 - t1
	c3 := 2*x0 - 2*x1 + t0 + t1
	return c0 + s*(c1+s*(c2+s*c3))
}
