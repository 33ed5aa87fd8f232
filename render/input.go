package render

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Scroll input tuning.
const (
	wheelStep        = 60.0 // pixels per wheel notch
	arrowStep        = 40.0 // pixels per arrow key press
	pageJumpDuration = 0.6  // seconds
)

// scroller holds the simulated page scroll position and turns wheel and
// keyboard input into scroll ratios.
type scroller struct {
	y          float64
	scrollable float64
	jump       *gween.Tween
}

// setScrollable changes the page's scrollable height, keeping the current
// ratio.
func (s *scroller) setScrollable(h float64) {
	if s.scrollable > 0 {
		s.y = s.y / s.scrollable * h
	}
	s.scrollable = h
	s.clamp()
}

func (s *scroller) clamp() {
	s.y = max(0, min(s.scrollable, s.y))
}

// jumpTo animates the scroll position to y. A new jump replaces the
// running one.
func (s *scroller) jumpTo(y float64) {
	y = max(0, min(s.scrollable, y))
	s.jump = gween.New(float32(s.y), float32(y), pageJumpDuration, ease.OutCubic)
}

// update reads input for one frame and reports whether the position moved.
func (s *scroller) update(dt time.Duration, viewportH float64) bool {
	prev := s.y

	if _, dy := ebiten.Wheel(); dy != 0 {
		s.jump = nil
		s.y -= dy * wheelStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyJ) {
		s.jump = nil
		s.y += arrowStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyK) {
		s.jump = nil
		s.y -= arrowStep
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.jumpTo(s.y + viewportH)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		s.jumpTo(s.y - viewportH)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		s.jumpTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		s.jumpTo(s.scrollable)
	}

	if s.jump != nil {
		v, done := s.jump.Update(float32(dt.Seconds()))
		s.y = float64(v)
		if done {
			s.jump = nil
		}
	}
	s.clamp()
	return s.y != prev
}

// ratio returns scrollY / (scrollHeight - viewportHeight).
func (s *scroller) ratio() float64 {
	if s.scrollable <= 0 {
		return 0
	}
	return s.y / s.scrollable
}
