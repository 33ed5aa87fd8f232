package spineflow

import (
	"math"
	"time"
)

// Backdrop defaults.
const (
	DefaultBackdropColorSpeed    = 0.005
	DefaultBackdropTimeEvery     = 25
	DefaultBackdropTweenDuration = time.Second
	backdropSeedStep             = 28965
	backdropDepth                = -2
)

// BackdropShape sizes and places a backdrop relative to its screen: Scale is
// the fully-entered scale, Translate is an offset in fractions of the anchor
// size.
type BackdropShape struct {
	ScaleX, ScaleY         float64
	TranslateX, TranslateY float64
}

// DefaultBackdropShapes are used in order; extra screens cycle through them.
var DefaultBackdropShapes = []BackdropShape{
	{ScaleX: 1, ScaleY: 0.8, TranslateX: -0.25, TranslateY: 0},
	{ScaleX: 1.4, ScaleY: 1.2, TranslateX: 0.1, TranslateY: -0.2},
	{ScaleX: 2, ScaleY: 1.5, TranslateX: 0, TranslateY: -0.1},
}

// Backdrop is one tinted plane behind a screen.
type Backdrop struct {
	Shape    BackdropShape
	ColorMix float64
	Time     float64

	node    *Node
	tween   *TweenGroup
	entered bool
}

// Node returns the backdrop's sprite node.
func (b *Backdrop) Node() *Node { return b.node }

// Entered reports whether the backdrop is scaled in (or scaling in).
func (b *Backdrop) Entered() bool { return b.entered }

// BackdropLayer animates one backdrop per screen. Every frame each tint
// advances and wraps; every TimeEvery frames each noise clock ticks. The
// backdrop of the screen nearest to progress scales in and the others scale
// out.
type BackdropLayer struct {
	ColorSpeed    float64
	TimeEvery     int
	TweenDuration time.Duration

	node      *Node
	backdrops []*Backdrop
	frames    int
	active    int
}

// NewBackdropLayer builds a backdrop for every screen, scaled to zero.
func NewBackdropLayer(screens []ScreenPoints, shapes []BackdropShape, colorSpeed float64, timeEvery int, tweenDuration time.Duration) *BackdropLayer {
	if len(shapes) == 0 {
		shapes = DefaultBackdropShapes
	}
	l := &BackdropLayer{
		ColorSpeed:    colorSpeed,
		TimeEvery:     timeEvery,
		TweenDuration: tweenDuration,
		node:          NewContainer("backdrops"),
		active:        -1,
	}
	for i, s := range screens {
		shape := shapes[i%len(shapes)]
		n := NewSprite("backdrop", s.Rect.Width, s.Rect.Height)
		n.Position = Vec3{
			X: s.Center.X + s.Rect.Width*shape.TranslateX,
			Y: s.Center.Y + s.Rect.Height*shape.TranslateY,
			Z: backdropDepth,
		}
		n.Scale = Vec3{0, 0, 1}
		b := &Backdrop{Shape: shape, Time: float64(i * backdropSeedStep), node: n}
		n.UserData = b
		l.node.AddChild(n)
		l.backdrops = append(l.backdrops, b)
	}
	return l
}

// Advance runs one frame: tints, clocks and scale tweens. dt is the frame
// duration.
func (l *BackdropLayer) Advance(progress float64, dt time.Duration) {
	if len(l.backdrops) == 0 {
		return
	}
	l.frames++
	tick := false
	if l.TimeEvery > 0 && l.frames > l.TimeEvery {
		tick = true
		l.frames = 0
	}

	l.enter(l.screenAt(progress))

	for _, b := range l.backdrops {
		b.ColorMix += l.ColorSpeed
		if b.ColorMix > 1 {
			b.ColorMix = 0
		}
		if tick {
			b.Time++
		}
		if b.tween != nil {
			b.tween.Update(seconds(dt))
			if b.tween.Done {
				b.tween = nil
			}
		}
	}
}

// screenAt returns the index of the screen nearest to progress.
func (l *BackdropLayer) screenAt(progress float64) int {
	n := len(l.backdrops)
	i := int(math.Round(clamp01(progress) * float64(n-1)))
	return max(0, min(n-1, i))
}

// enter starts scale tweens for backdrops whose state flips. A new tween
// replaces whatever tween the backdrop was running and starts from its
// current scale.
func (l *BackdropLayer) enter(idx int) {
	if idx == l.active {
		return
	}
	l.active = idx
	for i, b := range l.backdrops {
		want := i == idx
		if want == b.entered {
			continue
		}
		b.entered = want
		to := Vec3{0, 0, 1}
		if want {
			to = Vec3{b.Shape.ScaleX, b.Shape.ScaleY, 1}
		}
		b.tween = TweenScale(b.node, to, l.TweenDuration, BackdropEase)
	}
}

// Active returns the index of the entered screen, or -1 before the first frame.
func (l *BackdropLayer) Active() int { return l.active }

// Backdrops returns the backdrops in screen order.
func (l *BackdropLayer) Backdrops() []*Backdrop { return l.backdrops }

// ColorMix returns the tint of the first backdrop. All tints advance in
// lockstep.
func (l *BackdropLayer) ColorMix() float64 {
	if len(l.backdrops) == 0 {
		return 0
	}
	return l.backdrops[0].ColorMix
}

// Time returns the noise clock of the first backdrop.
func (l *BackdropLayer) Time() float64 {
	if len(l.backdrops) == 0 {
		return 0
	}
	return l.backdrops[0].Time
}

// Node returns the container holding every backdrop.
func (l *BackdropLayer) Node() *Node { return l.node }
