package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/spineflow"
	"github.com/spf13/cobra"
)

// Terminal scroll steps, as fractions of the whole page.
const (
	termLineStep = 0.02
	termPageStep = 0.2
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Preview the animation in the terminal",
	Long: `Draw the spine, the flowing mesh, the dashed motion line and the follower as
text. Scroll with the mouse wheel, arrow keys, j/k, Page Up/Down, Home and End.
Escape, q or Ctrl-C quits.`,
	Args: cobra.NoArgs,
	RunE: runTerm,
}

func init() {
	rootCmd.AddCommand(termCmd)
}

// termView fits the spine's bounding box into the terminal. Cells are about
// twice as tall as they are wide, so x is stretched to keep proportions.
type termView struct {
	width, height int
	minX, maxY    float64
	scale         float64
	offX, offY    float64
}

func newTermView(c *spineflow.Coordinator, width, height int) termView {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	grow := func(p spineflow.Vec3) {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	for _, p := range c.Path().Curve.Points(100) {
		grow(p)
	}
	for _, p := range c.MotionLine().Node().Vertices {
		grow(p)
	}
	half := c.Flow().Extent() / 2
	minX, maxX = minX-half, maxX+half

	// Two rows are reserved for the status line and the progress bar.
	rows := max(height-2, 1)
	sx := float64(width) / math.Max(2*(maxX-minX), 1)
	sy := float64(rows) / math.Max(maxY-minY, 1)
	v := termView{width: width, height: height, minX: minX, maxY: maxY}
	v.scale = math.Min(sx, sy)
	v.offX = (float64(width) - 2*(maxX-minX)*v.scale) / 2
	v.offY = 1 + (float64(rows)-(maxY-minY)*v.scale)/2
	return v
}

func (v termView) cell(p spineflow.Vec3) (int, int, bool) {
	x := int(v.offX + 2*(p.X-v.minX)*v.scale)
	y := int(v.offY + (v.maxY-p.Y)*v.scale)
	ok := x >= 0 && x < v.width && y >= 1 && y < v.height-1
	return x, y, ok
}

type termPreview struct {
	screen tcell.Screen
	coord  *spineflow.Coordinator
	view   termView
	ratio  float64
}

func runTerm(cmd *cobra.Command, args []string) error {
	c, err := newCoordinator(spineflow.Config{})
	if err != nil {
		return err
	}
	defer c.Dispose()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	t := &termPreview{screen: screen, coord: c}
	t.resize()
	t.run()
	return nil
}

func (t *termPreview) resize() {
	w, h := t.screen.Size()
	t.view = newTermView(t.coord, w, h)
}

func (t *termPreview) scrollBy(d float64) {
	t.ratio = max(0, min(1, t.ratio+d))
	t.coord.OnScroll(t.ratio)
}

func (t *termPreview) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return
			}
		case <-ticker.C:
			p, _ := t.coord.Frame(16 * time.Millisecond)
			t.draw(p)
		}
	}
}

func (t *termPreview) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown:
			t.scrollBy(termLineStep)
		case tcell.KeyUp:
			t.scrollBy(-termLineStep)
		case tcell.KeyPgDn:
			t.scrollBy(termPageStep)
		case tcell.KeyPgUp:
			t.scrollBy(-termPageStep)
		case tcell.KeyHome:
			t.scrollBy(-1)
		case tcell.KeyEnd:
			t.scrollBy(1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'j', ' ':
				t.scrollBy(termLineStep)
			case 'k':
				t.scrollBy(-termLineStep)
			}
		}
	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelDown != 0:
			t.scrollBy(termLineStep)
		case ev.Buttons()&tcell.WheelUp != 0:
			t.scrollBy(-termLineStep)
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}
	return true
}

var (
	termSpineStyle    = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	termLineStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	termMeshStyle     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	termFollowerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	termStatusStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	termBarStyle      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

func (t *termPreview) plot(p spineflow.Vec3, r rune, style tcell.Style) {
	if x, y, ok := t.view.cell(p); ok {
		t.screen.SetContent(x, y, r, nil, style)
	}
}

func (t *termPreview) draw(p spineflow.Params) {
	s := t.screen
	s.Clear()

	for _, pt := range t.coord.Path().Curve.Points(200) {
		t.plot(pt, '·', termSpineStyle)
	}
	t.drawMotionLine(p)

	mesh := t.coord.Flow().Node()
	for _, v := range mesh.Vertices {
		t.plot(mesh.LocalToWorld(v), '█', termMeshStyle)
	}
	t.plot(p.FollowerPosition, '@', termFollowerStyle)

	status := fmt.Sprintf(" progress %.3f  offset %.3f/%.3f  dash %.3f  alpha %.3f ",
		p.Progress, p.PathOffset, p.MaxFlowOffset, p.DashOffset, p.AlphaTransition)
	for x := 0; x < t.view.width; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		s.SetContent(x, 0, r, nil, termStatusStyle)
	}

	filled := int(math.Round(p.Progress * float64(t.view.width)))
	for x := 0; x < t.view.width; x++ {
		r := '░'
		if x < filled {
			r = '█'
		}
		s.SetContent(x, t.view.height-1, r, nil, termBarStyle)
	}
	s.Show()
}

// drawMotionLine plots the visible dashes of the motion line.
func (t *termPreview) drawMotionLine(p spineflow.Params) {
	ml := t.coord.MotionLine()
	pts := ml.Node().Vertices
	total := ml.Length()
	if len(pts) < 2 || total <= 0 {
		return
	}
	ratio := t.coord.Config().DashRatio
	run := 0.0
	for i, pt := range pts {
		if i > 0 {
			run += pt.Sub(pts[i-1]).Len()
		}
		if spineflow.DashVisible(run/total, p.DashOffset, ratio) {
			t.plot(pt, '•', termLineStyle)
		}
	}
}
