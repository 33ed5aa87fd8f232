package spineflow

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing presets used by the coordinator.
var (
	// IntroEase eases the flow offset in on load.
	IntroEase ease.TweenFunc = ease.OutQuint
	// BackdropEase eases backdrop plane scale changes.
	BackdropEase ease.TweenFunc = ease.OutCubic
)

// TweenGroup animates up to 3 float64 fields simultaneously. Create one via
// the constructors (TweenValue, TweenScale) and call Update(dt)
// each frame. The group writes values back and marks the target node dirty.
// If the target node is disposed, the group stops immediately.
//
// There is no global animation manager: the coordinator owns its groups.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	fields [3]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set and no writes
// occur.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Finish jumps every field to its end value.
func (g *TweenGroup) Finish() {
	if g == nil || g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		val, _ := g.tweens[i].Update(float32(1 << 20))
		*g.fields[i] = float64(val)
	}
	g.Done = true
	if g.target != nil {
		g.target.MarkDirty()
	}
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

// TweenValue animates a bare field from one value to another. The field is
// set to from immediately.
func TweenValue(field *float64, from, to float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(from), float32(to), seconds(duration), fn)
	g.fields[0] = field
	*field = from
	return g
}

// TweenScale animates node.Scale to the target over the duration.
func TweenScale(node *Node, to Vec3, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(float32(node.Scale.X), float32(to.X), seconds(duration), fn)
	g.tweens[1] = gween.New(float32(node.Scale.Y), float32(to.Y), seconds(duration), fn)
	g.tweens[2] = gween.New(float32(node.Scale.Z), float32(to.Z), seconds(duration), fn)
	g.fields[0] = &node.Scale.X
	g.fields[1] = &node.Scale.Y
	g.fields[2] = &node.Scale.Z
	return g
}
