package spineflow

import (
	"errors"
	"testing"
)

func TestBuildMotionLineEndpoints(t *testing.T) {
	l := testLayout()
	m := CoordinateMapper{Viewport: l.Viewport}
	pts, err := BuildMotionLine(m, l.Anchors, 400, nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 101 {
		t.Fatalf("points = %d, want 101", len(pts))
	}
	// First control point: the center of anchor 0, at the back.
	assertVec(t, "first", pts[0], Vec3{0, 100, -1}, 1e-9)
	// Last control point: anchor 2 reuses the first shape's last point, two
	// units further down.
	assertVec(t, "last", pts[len(pts)-1], Vec3{150, -2540, -1}, 1e-9)
	for i, p := range pts {
		if !p.IsFinite() {
			t.Fatalf("point %d = %+v", i, p)
		}
	}
}

func TestBuildMotionLinePassesThroughControls(t *testing.T) {
	l := testLayout()
	m := CoordinateMapper{Viewport: l.Viewport}
	shape := [][]Vec3{{{0, 0, 0}, {1, 1, 0}}}
	// Two anchors, two points each: four controls, so t = 1/3 is the second.
	pts, err := BuildMotionLine(m, l.Anchors[:2], 0, shape, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := m.ToMesh(l.Anchors[0].X+l.Anchors[0].Width, l.Anchors[0].Y+l.Anchors[0].Height)
	assertVec(t, "control 1", pts[1], want, 1e-9)
}

func TestBuildMotionLineErrors(t *testing.T) {
	l := testLayout()
	m := CoordinateMapper{Viewport: l.Viewport}

	_, err := BuildMotionLine(m, l.Anchors[:1], 0, [][]Vec3{{{0, 0, 0}}}, 10)
	if !errors.Is(err, ErrTooFewAnchors) {
		t.Errorf("single control point: err = %v", err)
	}
	bad := []AnchorRect{l.Anchors[0], {X: 0, Y: 0, Width: -1, Height: 10}}
	_, err = BuildMotionLine(m, bad, 0, nil, 10)
	if !errors.Is(err, ErrDegenerateAnchor) {
		t.Errorf("degenerate anchor: err = %v", err)
	}
}

func TestCatmullRomStraightLine(t *testing.T) {
	pts := []Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	for _, tt := range []float64{0, 0.2, 0.5, 0.9, 1} {
		got := catmullRom(pts, tt, 1)
		// Evenly spaced collinear points with tension 1 are not evenly
		// parameterized, but stay on the line and in order.
		if got.Y != 0 || got.Z != 0 || got.X < 0 || got.X > 3 {
			t.Errorf("catmullRom(%v) = %+v left the line", tt, got)
		}
	}
	assertVec(t, "t=0", catmullRom(pts, 0, 1), pts[0], epsilon)
	assertVec(t, "t=1", catmullRom(pts, 1, 1), pts[3], epsilon)
}
