package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/spineflow"
)

// Palette colors the scene. Nodes keep their own Color as a tint on top.
type Palette struct {
	Background spineflow.Color
	Package    spineflow.Color
	Stripe     spineflow.Color
	Line       spineflow.Color
	BackdropA  spineflow.Color
	BackdropB  spineflow.Color
	Spine      spineflow.Color
	Debug      spineflow.Color
	Ingredient map[string]spineflow.Color
}

// DefaultPalette is a pastel scheme on an off-white page.
var DefaultPalette = Palette{
	Background: spineflow.Color{R: 0.98, G: 0.96, B: 0.93, A: 1},
	Package:    spineflow.Color{R: 0.95, G: 0.55, B: 0.35, A: 1},
	Stripe:     spineflow.Color{R: 0.25, G: 0.30, B: 0.55, A: 1},
	Line:       spineflow.Color{R: 0.10, G: 0.10, B: 0.10, A: 1},
	BackdropA:  spineflow.Color{R: 0.98, G: 0.80, B: 0.70, A: 1},
	BackdropB:  spineflow.Color{R: 0.75, G: 0.85, B: 0.98, A: 1},
	Spine:      spineflow.Color{R: 1, G: 0, B: 1, A: 1},
	Debug:      spineflow.Color{R: 1, G: 0, B: 0, A: 1},
	Ingredient: map[string]spineflow.Color{
		"salmon":      {R: 0.98, G: 0.50, B: 0.45, A: 1},
		"peas":        {R: 0.45, G: 0.75, B: 0.30, A: 1},
		"blueberries": {R: 0.30, G: 0.35, B: 0.75, A: 1},
		"sweetpotato": {R: 0.95, G: 0.65, B: 0.25, A: 1},
	},
}

// stripeCount is the number of reveal bands across the package.
const stripeCount = 8

// drawCommand is one node queued for drawing. Commands are stably sorted by
// depth, so equal depths keep tree order.
type drawCommand struct {
	node *spineflow.Node
	z    float64
}

// renderer turns a node tree into ebiten draw calls.
type renderer struct {
	palette   Palette
	dashRatio float64
	debug     bool

	commands []drawCommand
	verts    []ebiten.Vertex
	inds     []uint16
	white    *ebiten.Image
}

func newRenderer(p Palette, dashRatio float64) *renderer {
	return &renderer{
		palette:   p,
		dashRatio: dashRatio,
		commands:  make([]drawCommand, 0, 64),
	}
}

// ensureWhitePixel returns a lazily-created 1x1 white image used as the
// source of every untextured triangle.
func (r *renderer) ensureWhitePixel() *ebiten.Image {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	return r.white
}

// collect walks the tree and queues every visible node.
func (r *renderer) collect(root *spineflow.Node) {
	r.commands = r.commands[:0]
	var walk func(n *spineflow.Node)
	walk = func(n *spineflow.Node) {
		if !n.Visible || n.IsDisposed() {
			return
		}
		if n.Type != spineflow.NodeTypeContainer {
			r.commands = append(r.commands, drawCommand{node: n, z: n.WorldPosition().Z})
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(root)
	sort.SliceStable(r.commands, func(i, j int) bool {
		return r.commands[i].z < r.commands[j].z
	})
}

// draw renders the queued commands through cam.
func (r *renderer) draw(dst *ebiten.Image, cam *Camera, p spineflow.Params) {
	for i := range r.commands {
		n := r.commands[i].node
		if n.WorldAlpha() <= 0 {
			continue
		}
		switch n.Type {
		case spineflow.NodeTypeMesh:
			r.drawMesh(dst, cam, n, p.AlphaTransition)
		case spineflow.NodeTypeLine:
			r.drawLine(dst, cam, n, p.DashOffset)
		case spineflow.NodeTypeSprite:
			r.drawSprite(dst, cam, n, p.BackdropColorMix)
		case spineflow.NodeTypeMarker:
			if r.debug {
				r.drawMarker(dst, cam, n)
			}
		}
	}
}

// drawMesh draws the deformed package. Each horizontal band fades from the
// base color to the stripe color once the alpha transition passes the
// band's threshold.
func (r *renderer) drawMesh(dst *ebiten.Image, cam *Camera, n *spineflow.Node, transition float64) {
	if len(n.Vertices) == 0 || len(n.Indices) == 0 {
		return
	}
	r.verts = r.verts[:0]
	alpha := n.WorldAlpha()
	for i, v := range n.Vertices {
		sx, sy := cam.WorldToScreen(n.LocalToWorld(v))
		band := 0.0
		if i < len(n.UVs) {
			band = math.Floor(n.UVs[i].Y*stripeCount) / stripeCount
		}
		reveal := clamp01(transition - band)
		c := mix(r.palette.Package, r.palette.Stripe, reveal)
		r.verts = append(r.verts, vertex(sx, sy, tint(c, n.Color), alpha))
	}
	r.inds = append(r.inds[:0], n.Indices...)
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	dst.DrawTriangles(r.verts, r.inds, r.ensureWhitePixel(), &op)
}

// drawLine strokes a polyline. The motion line is dashed: a segment is drawn
// when its midpoint falls inside the dash.
func (r *renderer) drawLine(dst *ebiten.Image, cam *Camera, n *spineflow.Node, dashOffset float64) {
	pts := n.Vertices
	if len(pts) < 2 {
		return
	}
	dashed := n.Name == "motion_line"
	c := r.palette.Line
	if n.Name == "spine" {
		c = r.palette.Spine
	}
	clr := toRGBA(tint(c, n.Color), n.WorldAlpha())

	var total float64
	if dashed {
		for i := 1; i < len(pts); i++ {
			total += pts[i].Distance(pts[i-1])
		}
	}
	var walked float64
	for i := 1; i < len(pts); i++ {
		seg := pts[i].Distance(pts[i-1])
		mid := walked + seg/2
		walked += seg
		if dashed && total > 0 && !spineflow.DashVisible(mid/total, dashOffset, r.dashRatio) {
			continue
		}
		x0, y0 := cam.WorldToScreen(n.LocalToWorld(pts[i-1]))
		x1, y1 := cam.WorldToScreen(n.LocalToWorld(pts[i]))
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 2, clr, true)
	}
}

// drawSprite fills a quad. Backdrops take the tint cycling between the two
// backdrop colors; ingredients take their palette color.
func (r *renderer) drawSprite(dst *ebiten.Image, cam *Camera, n *spineflow.Node, colorMix float64) {
	s := n.WorldScale()
	if s.X == 0 || s.Y == 0 {
		return
	}
	var c spineflow.Color
	if _, ok := n.UserData.(*spineflow.Backdrop); ok {
		c = mix(r.palette.BackdropA, r.palette.BackdropB, 0.5-0.5*math.Cos(2*math.Pi*colorMix))
	} else if ic, ok := r.palette.Ingredient[n.Name]; ok {
		c = ic
	} else {
		c = r.palette.Package
	}
	if !cam.visible(n.WorldPosition(), n.Width*math.Abs(s.X)/2, n.Height*math.Abs(s.Y)/2) {
		return
	}
	r.quad(dst, cam, n, n.Width, n.Height, tint(c, n.Color))
}

// drawMarker draws debug markers as small squares. Markers without a size
// (the follower) get a tangent tick instead.
func (r *renderer) drawMarker(dst *ebiten.Image, cam *Camera, n *spineflow.Node) {
	if n.Width > 0 && n.Height > 0 {
		r.quad(dst, cam, n, n.Width, n.Height, n.Color)
		return
	}
	from := n.LocalToWorld(spineflow.Vec3{})
	to := n.LocalToWorld(spineflow.Vec3{Y: -40})
	x0, y0 := cam.WorldToScreen(from)
	x1, y1 := cam.WorldToScreen(to)
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 3, toRGBA(r.palette.Debug, 1), true)
}

// quad draws a w x h rectangle centered on the node's origin in its local
// frame.
func (r *renderer) quad(dst *ebiten.Image, cam *Camera, n *spineflow.Node, w, h float64, c spineflow.Color) {
	corners := [4]spineflow.Vec3{
		{X: -w / 2, Y: h / 2},
		{X: w / 2, Y: h / 2},
		{X: w / 2, Y: -h / 2},
		{X: -w / 2, Y: -h / 2},
	}
	alpha := n.WorldAlpha()
	r.verts = r.verts[:0]
	for _, p := range corners {
		sx, sy := cam.WorldToScreen(n.LocalToWorld(p))
		r.verts = append(r.verts, vertex(sx, sy, c, alpha))
	}
	r.inds = append(r.inds[:0], 0, 1, 2, 0, 2, 3)
	var op ebiten.DrawTrianglesOptions
	dst.DrawTriangles(r.verts, r.inds, r.ensureWhitePixel(), &op)
}

// vertex builds a premultiplied vertex sampling the white pixel.
func vertex(x, y float64, c spineflow.Color, alpha float64) ebiten.Vertex {
	a := float32(c.A * alpha)
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R) * a,
		ColorG: float32(c.G) * a,
		ColorB: float32(c.B) * a,
		ColorA: a,
	}
}

func tint(c, t spineflow.Color) spineflow.Color {
	return spineflow.Color{R: c.R * t.R, G: c.G * t.G, B: c.B * t.B, A: c.A * t.A}
}

func mix(a, b spineflow.Color, t float64) spineflow.Color {
	return spineflow.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// toRGBA converts to a premultiplied color.RGBA.
func toRGBA(c spineflow.Color, alpha float64) color.RGBA {
	a := clamp01(c.A * alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}
