package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/spineflow"
)

// overlay displays FPS/TPS and the current frame parameters. The text is
// redrawn every ~0.5 seconds into a cached image.
type overlay struct {
	img        *ebiten.Image
	lastUpdate float64
}

func newOverlay() *overlay {
	// 180x64 fits four short lines of debug text.
	return &overlay{img: ebiten.NewImage(180, 64), lastUpdate: 1}
}

func (o *overlay) update(dt float64, p spineflow.Params) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f  TPS: %.1f\nprogress: %.3f\npathOffset: %.3f\ndash: %.3f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), p.Progress, p.PathOffset, p.DashOffset))
}

func (o *overlay) draw(screen *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(8, 8)
	screen.DrawImage(o.img, &op)
}
