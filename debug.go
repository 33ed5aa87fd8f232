package spineflow

import (
	"fmt"
	"time"
)

// globalDebug enables node-tree sanity checks. Nodes have no back pointer to
// their coordinator, so the flag is package-wide.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, coordinators
// attach debug markers for every screen point, and per-frame timings are
// logged at debug level.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is on.
func DebugMode() bool {
	return globalDebug
}

// frameStats holds per-frame timings. Only populated in debug mode.
type frameStats struct {
	smoothTime time.Duration
	applyTime  time.Duration
	vertices   int
}

func (s frameStats) log(frame uint64) {
	Logger().Debug("spineflow: frame",
		"frame", frame,
		"smooth", s.smoothTime,
		"apply", s.applyTime,
		"vertices", s.vertices)
}

// debugCheckDisposed panics when a disposed node is used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("spineflow debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("spineflow: tree too deep", "node", n.Name, "depth", depth, "max", debugMaxTreeDepth)
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns if a node has more than debugMaxChildCount children.
func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("spineflow: too many children", "node", n.Name, "children", len(n.children), "max", debugMaxChildCount)
	}
}

// newDebugPoints builds marker nodes for every reference point of every
// screen: top, center, bottom and the handles that exist.
func newDebugPoints(screens []ScreenPoints, size float64) *Node {
	root := NewContainer("debug_points")
	add := func(name string, p Vec3, c Color) {
		m := NewMarker(name, size, size)
		m.Position = Vec3{p.X, p.Y, 1}
		m.Color = c
		root.AddChild(m)
	}
	red := Color{1, 0, 0, 1}
	blue := Color{0, 0, 1, 1}
	green := Color{0, 1, 0, 1}
	for i, s := range screens {
		add(fmt.Sprintf("screen%d_top", i), s.Top, red)
		add(fmt.Sprintf("screen%d_center", i), s.Center, blue)
		add(fmt.Sprintf("screen%d_bottom", i), s.Bottom, red)
		if s.HasHandle1 {
			add(fmt.Sprintf("screen%d_handle1", i), s.Handle1, green)
		}
		if s.HasHandle2 {
			add(fmt.Sprintf("screen%d_handle2", i), s.Handle2, green)
		}
	}
	return root
}
