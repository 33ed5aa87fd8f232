// Package snapshot renders a single spineflow frame to an image on the CPU
// with gogpu/gg, for previews, documentation and golden tests without a
// window.
package snapshot

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/phanxgames/spineflow"
)

// Options controls what a snapshot shows.
type Options struct {
	// Width and Height default to the coordinator's viewport.
	Width, Height int
	// ShowSpine strokes the spine's lines and Bézier bridges.
	ShowSpine bool
	// ShowPoints marks every screen's top, center, bottom and handles.
	ShowPoints bool
	// Background fills the canvas (default off-white).
	Background *gg.RGBA
}

// Colors used by snapshots.
var (
	background = gg.RGB(0.98, 0.96, 0.93)
	packageCol = gg.RGB(0.95, 0.55, 0.35)
	stripeCol  = gg.RGB(0.25, 0.30, 0.55)
	lineCol    = gg.RGB(0.10, 0.10, 0.10)
	spineCol   = gg.RGB(1, 0, 1)
	backdropA  = gg.RGB(0.98, 0.80, 0.70)
	backdropB  = gg.RGB(0.75, 0.85, 0.98)
	pointCol   = gg.RGB(1, 0, 0)
	handleCol  = gg.RGB(0, 0.6, 0)
	ingredient = map[string]gg.RGBA{
		"salmon":      gg.RGB(0.98, 0.50, 0.45),
		"peas":        gg.RGB(0.45, 0.75, 0.30),
		"blueberries": gg.RGB(0.30, 0.35, 0.75),
		"sweetpotato": gg.RGB(0.95, 0.65, 0.25),
	}
)

const stripeCount = 8

// view maps mesh space to canvas pixels, centered on the camera.
type view struct {
	w, h    float64
	cameraY float64
	scale   float64
}

func (v view) point(p spineflow.Vec3) (float64, float64) {
	return v.w/2 + p.X*v.scale, v.h/2 - (p.Y-v.cameraY)*v.scale
}

// Render draws the coordinator's current frame.
func Render(c *spineflow.Coordinator, opts Options) (*gg.Context, error) {
	if c == nil || c.IsDisposed() {
		return nil, fmt.Errorf("snapshot: %w", spineflow.ErrDisposed)
	}
	vp := c.Layout().Viewport
	if opts.Width <= 0 {
		opts.Width = int(vp.Width)
	}
	if opts.Height <= 0 {
		opts.Height = int(vp.Height)
	}
	bg := background
	if opts.Background != nil {
		bg = *opts.Background
	}

	p := c.Params()
	v := view{
		w:       float64(opts.Width),
		h:       float64(opts.Height),
		cameraY: p.CameraY,
		scale:   float64(opts.Width) / vp.Width,
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.ClearWithColor(bg)

	if err := drawBackdrops(dc, v, c.Backdrops(), p.BackdropColorMix); err != nil {
		return nil, err
	}
	if opts.ShowSpine {
		if err := drawSpine(dc, v, c.Path().Curve); err != nil {
			return nil, err
		}
	}
	if err := drawMotionLine(dc, v, c.MotionLine(), p.DashOffset, c.Config().DashRatio); err != nil {
		return nil, err
	}
	if err := drawMesh(dc, v, c.Flow().Node(), p.AlphaTransition); err != nil {
		return nil, err
	}
	if err := drawIngredients(dc, v, c.Follower().Node()); err != nil {
		return nil, err
	}
	if opts.ShowPoints {
		if err := drawPoints(dc, v, c.Path().Screens, c.Follower()); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

// WritePNG renders the current frame and encodes it as PNG to w.
func WritePNG(w io.Writer, c *spineflow.Coordinator, opts Options) error {
	dc, err := Render(c, opts)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// SavePNG renders the current frame to a PNG file.
func SavePNG(path string, c *spineflow.Coordinator, opts Options) error {
	dc, err := Render(c, opts)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}

func drawBackdrops(dc *gg.Context, v view, l *spineflow.BackdropLayer, colorMix float64) error {
	col := backdropA.Lerp(backdropB, 0.5-0.5*math.Cos(2*math.Pi*colorMix))
	for _, b := range l.Backdrops() {
		n := b.Node()
		s := n.WorldScale()
		if s.X == 0 || s.Y == 0 {
			continue
		}
		w, h := n.Width*s.X*v.scale, n.Height*s.Y*v.scale
		x, y := v.point(n.WorldPosition())
		dc.SetRGBA(col.R, col.G, col.B, col.A*n.WorldAlpha())
		dc.DrawRoundedRectangle(x-w/2, y-h/2, w, h, math.Min(w, h)*0.085)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("snapshot: backdrop: %w", err)
		}
	}
	return nil
}

// drawSpine strokes the curve from its own segments, so Bézier bridges are
// drawn exactly rather than sampled.
func drawSpine(dc *gg.Context, v view, curve *spineflow.CurvePath) error {
	dc.SetRGBA(spineCol.R, spineCol.G, spineCol.B, 1)
	dc.SetLineWidth(1.5)
	x, y := v.point(curve.Start())
	dc.MoveTo(x, y)
	for _, seg := range curve.Segments() {
		switch s := seg.(type) {
		case spineflow.CubicBezier:
			c0x, c0y := v.point(s.C0)
			c1x, c1y := v.point(s.C1)
			px, py := v.point(s.P1)
			dc.CubicTo(c0x, c0y, c1x, c1y, px, py)
		default:
			px, py := v.point(seg.End())
			dc.LineTo(px, py)
		}
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("snapshot: spine: %w", err)
	}
	return nil
}

// drawMotionLine strokes the motion line with the canvas's native dashing.
func drawMotionLine(dc *gg.Context, v view, l *spineflow.MotionLineLayer, dashOffset, dashRatio float64) error {
	pts := l.Node().Vertices
	if len(pts) < 2 {
		return nil
	}
	on, off, phase := spineflow.DashPattern(l.Length()*v.scale, dashOffset, dashRatio)
	if on <= 0 {
		return nil
	}
	dc.Push()
	defer dc.Pop()
	dc.SetRGBA(lineCol.R, lineCol.G, lineCol.B, 1)
	dc.SetLineWidth(2)
	dc.SetDash(on, off)
	dc.SetDashOffset(phase)
	x, y := v.point(pts[0])
	dc.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = v.point(p)
		dc.LineTo(x, y)
	}
	err := dc.Stroke()
	dc.ClearDash()
	if err != nil {
		return fmt.Errorf("snapshot: motion line: %w", err)
	}
	return nil
}

// drawMesh fills every triangle of the deformed mesh, banded by the alpha
// transition.
func drawMesh(dc *gg.Context, v view, n *spineflow.Node, transition float64) error {
	verts, uvs, idx := n.Vertices, n.UVs, n.Indices
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		band := 0.0
		if int(a) < len(uvs) {
			band = math.Floor(uvs[a].Y*stripeCount) / stripeCount
		}
		col := packageCol.Lerp(stripeCol, math.Max(0, math.Min(1, transition-band)))
		dc.SetRGBA(col.R, col.G, col.B, n.WorldAlpha())
		ax, ay := v.point(n.LocalToWorld(verts[a]))
		bx, by := v.point(n.LocalToWorld(verts[b]))
		cx, cy := v.point(n.LocalToWorld(verts[c]))
		dc.MoveTo(ax, ay)
		dc.LineTo(bx, by)
		dc.LineTo(cx, cy)
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("snapshot: mesh: %w", err)
		}
	}
	return nil
}

// drawIngredients fills each visible ingredient as an ellipse in its own
// rotated frame.
func drawIngredients(dc *gg.Context, v view, follower *spineflow.Node) error {
	var err error
	follower.Walk(func(n *spineflow.Node) bool {
		if err != nil {
			return false
		}
		if n.Type != spineflow.NodeTypeSprite || n.WorldAlpha() <= 0 {
			return true
		}
		col, ok := ingredient[n.Name]
		if !ok {
			return true
		}
		s := n.WorldScale()
		if s.X == 0 || s.Y == 0 {
			return true
		}
		x, y := v.point(n.WorldPosition())
		rx := n.Width * math.Abs(s.X) * v.scale / 2
		ry := n.Height * math.Abs(s.Y) * v.scale / 2
		dc.SetRGBA(col.R, col.G, col.B, n.WorldAlpha())
		dc.DrawEllipse(x, y, rx, ry)
		if ferr := dc.Fill(); ferr != nil {
			err = fmt.Errorf("snapshot: ingredient %s: %w", n.Name, ferr)
		}
		return true
	})
	return err
}

func drawPoints(dc *gg.Context, v view, screens []spineflow.ScreenPoints, f *spineflow.CurveFollower) error {
	dot := func(p spineflow.Vec3, col gg.RGBA, r float64) error {
		x, y := v.point(p)
		dc.SetRGBA(col.R, col.G, col.B, 1)
		dc.DrawCircle(x, y, r)
		return dc.Fill()
	}
	for i, s := range screens {
		for _, p := range []spineflow.Vec3{s.Top, s.Center, s.Bottom} {
			if err := dot(p, pointCol, 4); err != nil {
				return fmt.Errorf("snapshot: screen %d: %w", i, err)
			}
		}
		if s.HasHandle1 {
			if err := dot(s.Handle1, handleCol, 3); err != nil {
				return fmt.Errorf("snapshot: screen %d: %w", i, err)
			}
		}
		if s.HasHandle2 {
			if err := dot(s.Handle2, handleCol, 3); err != nil {
				return fmt.Errorf("snapshot: screen %d: %w", i, err)
			}
		}
	}
	if err := dot(f.Position(), stripeCol, 6); err != nil {
		return fmt.Errorf("snapshot: follower: %w", err)
	}
	return nil
}
