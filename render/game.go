// Package render draws a spineflow coordinator with Ebitengine: the
// deformed package mesh, the dashed motion line, backdrops and ingredients,
// viewed through an orthographic camera that follows the coordinator's
// camera track. Mouse wheel and keyboard input drive the scroll position.
package render

import (
	"errors"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/spineflow"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	Debug         bool
	Palette       *Palette

	// ResizeThreshold is the smallest change in viewport width or height,
	// in pixels, that rebuilds the spine (default 50).
	ResizeThreshold float64
	// ResizeDebounce is the number of frames the size must stay put before
	// a rebuild (default 15).
	ResizeDebounce int

	// Script, when set, replaces interactive input.
	Script *spineflow.ScrollScript
	// ScreenshotDir receives script snapshots (default "screenshots").
	ScreenshotDir string
}

// Game adapts a Coordinator to ebiten.Game.
type Game struct {
	coord  *spineflow.Coordinator
	cfg    RunConfig
	cam    *Camera
	rend   *renderer
	scroll scroller
	hud    *overlay
	params spineflow.Params

	width, height   int
	pendingW        int
	pendingH        int
	pendingFrames   int
	screenshotQueue []string
}

// NewGame wraps c for rendering. Zero config fields take their defaults.
func NewGame(c *spineflow.Coordinator, cfg RunConfig) *Game {
	vp := c.Layout().Viewport
	if cfg.Width <= 0 {
		cfg.Width = int(vp.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(vp.Height)
	}
	if cfg.ResizeThreshold <= 0 {
		cfg.ResizeThreshold = 50
	}
	if cfg.ResizeDebounce <= 0 {
		cfg.ResizeDebounce = 15
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	palette := DefaultPalette
	if cfg.Palette != nil {
		palette = *cfg.Palette
	}

	g := &Game{
		coord:  c,
		cfg:    cfg,
		cam:    NewCamera(vp.Width, vp.Height),
		rend:   newRenderer(palette, c.Config().DashRatio),
		params: c.Params(),
		width:  int(vp.Width),
		height: int(vp.Height),
	}
	g.rend.debug = cfg.Debug
	g.scroll.setScrollable(c.Layout().ScrollableHeight)
	if cfg.ShowFPS {
		g.hud = newOverlay()
	}
	return g
}

// Update reads input, applies pending resizes and advances the coordinator
// one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	dt := time.Second / time.Duration(ebiten.TPS())

	if err := g.applyResize(); err != nil {
		spineflow.Logger().Warn("spineflow: resize rebuild failed", "error", err)
	}

	if g.cfg.Script != nil {
		if g.cfg.Script.Done() {
			return ebiten.Termination
		}
		_, label, err := g.cfg.Script.Step(g.coord)
		if err != nil {
			return err
		}
		if label != "" {
			g.Screenshot(label)
		}
	} else if g.scroll.update(dt, float64(g.height)) {
		g.coord.OnScroll(g.scroll.ratio())
	}

	g.params, _ = g.coord.Frame(dt)
	g.cam.Y = g.params.CameraY

	if g.hud != nil {
		g.hud.update(dt.Seconds(), g.params)
	}
	return nil
}

// Draw renders the scene tree.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(g.rend.palette.Background, 1))
	g.rend.collect(g.coord.Root())
	g.rend.draw(screen, g.cam, g.params)
	if g.hud != nil {
		g.hud.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout tracks the outside size. A size change beyond the threshold starts
// the resize debounce; the rebuild itself happens in Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if math.Abs(float64(outsideWidth-g.width)) >= g.cfg.ResizeThreshold ||
		math.Abs(float64(outsideHeight-g.height)) >= g.cfg.ResizeThreshold {
		if outsideWidth != g.pendingW || outsideHeight != g.pendingH {
			g.pendingW, g.pendingH = outsideWidth, outsideHeight
			g.pendingFrames = g.cfg.ResizeDebounce
		}
	} else {
		g.pendingW, g.pendingH, g.pendingFrames = 0, 0, 0
	}
	return outsideWidth, outsideHeight
}

// applyResize rebuilds the coordinator once a pending size has been stable
// for the debounce period.
func (g *Game) applyResize() error {
	if g.pendingFrames == 0 {
		return nil
	}
	g.pendingFrames--
	if g.pendingFrames > 0 {
		return nil
	}
	w, h := g.pendingW, g.pendingH
	g.pendingW, g.pendingH = 0, 0
	if w <= 0 || h <= 0 {
		return errors.New("render: empty window")
	}
	if err := g.coord.Resize(spineflow.Viewport{Width: float64(w), Height: float64(h)}); err != nil {
		return err
	}
	g.width, g.height = w, h
	g.cam.Resize(float64(w), float64(h))
	g.scroll.setScrollable(g.coord.Layout().ScrollableHeight)
	return nil
}

// Run opens a window and drives c until the window closes, Escape is
// pressed, or the script finishes.
func Run(c *spineflow.Coordinator, cfg RunConfig) error {
	g := NewGame(c, cfg)
	title := cfg.Title
	if title == "" {
		title = "spineflow"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
