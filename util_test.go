package spineflow

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	assertWithin(t, name, got, want, epsilon)
}

func assertWithin(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

func assertVec(t *testing.T, name string, got, want Vec3, tol float64) {
	t.Helper()
	if !got.ApproxEqual(want, tol) {
		t.Errorf("%s = %+v, want %+v (±%v)", name, got, want, tol)
	}
}

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// testLayout is a 1000x800 viewport with three 200x400 anchors stacked one
// screen apart, alternating sides.
func testLayout() Layout {
	return Layout{
		Viewport:         Viewport{Width: 1000, Height: 800},
		ScrollableHeight: 1600,
		Anchors: []AnchorRect{
			{X: 400, Y: 100, Width: 200, Height: 400},
			{X: 200, Y: 900, Width: 200, Height: 400},
			{X: 400, Y: 1700, Width: 200, Height: 400},
		},
	}
}
