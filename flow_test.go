package spineflow

import (
	"errors"
	"math"
	"testing"
)

// straightSpine is a 1000 unit line running down from the origin.
func straightSpine(t *testing.T) *CurvePath {
	t.Helper()
	p, err := NewCurvePath([]Segment{Line{Vec3{0, 0, 0}, Vec3{0, -1000, 0}}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPlaneMeshGrid(t *testing.T) {
	m := NewPlaneMesh(100, 200, 2, 4)
	if got, want := len(m.Rest), 3*5; got != want {
		t.Fatalf("vertices = %d, want %d", got, want)
	}
	if got, want := len(m.Indices), 2*4*6; got != want {
		t.Fatalf("indices = %d, want %d", got, want)
	}
	assertVec(t, "first", m.Rest[0], Vec3{-50, 100, 0}, epsilon)
	assertVec(t, "last", m.Rest[len(m.Rest)-1], Vec3{50, -100, 0}, epsilon)
	if m.UVs[0] != (Vec2{0, 0}) || m.UVs[len(m.UVs)-1] != (Vec2{1, 1}) {
		t.Errorf("uv corners = %v, %v", m.UVs[0], m.UVs[len(m.UVs)-1])
	}
	for _, i := range m.Indices {
		if int(i) >= len(m.Rest) {
			t.Fatalf("index %d out of range", i)
		}
	}
}

func TestPlaneMeshClampsSegments(t *testing.T) {
	m := NewPlaneMesh(10, 10, 0, -3)
	if m.WidthSegments != 1 || m.HeightSegments != 1 || len(m.Rest) != 4 {
		t.Errorf("segments = %dx%d, vertices %d", m.WidthSegments, m.HeightSegments, len(m.Rest))
	}
}

func TestBindFlowState(t *testing.T) {
	f, err := BindFlow(NewPlaneMesh(100, 200, 1, 4), straightSpine(t), 200, 3)
	if err != nil {
		t.Fatal(err)
	}
	s := f.State()
	assertNear(t, "SpineLength", s.SpineLength, 1000)
	assertNear(t, "SpineOffset", s.SpineOffset, 100)
	assertNear(t, "MaxFlowOffset", s.MaxFlowOffset, 0.8)
	assertNear(t, "PathOffset", s.PathOffset, 0)
}

func TestBindFlowTruncatesMaxOffset(t *testing.T) {
	// 1 - 300/900 = 0.6666..., truncated, never rounded up.
	spine, err := NewCurvePath([]Segment{Line{Vec3{0, 0, 0}, Vec3{0, -900, 0}}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	f, err := BindFlow(NewPlaneMesh(50, 300, 1, 1), spine, 300, 3)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "MaxFlowOffset", f.MaxFlowOffset(), 0.666)
}

func TestBindFlowNearlySpineLongMesh(t *testing.T) {
	// 1 - 999.5/1000 truncates to zero at 3 decimals.
	f, err := BindFlow(NewPlaneMesh(10, 999.5, 1, 4), straightSpine(t), 999.5, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.MaxFlowOffset(); got <= 0 || got >= 0.001 {
		t.Fatalf("MaxFlowOffset = %v, want inside (0, 0.001)", got)
	}
	assertWithin(t, "MaxFlowOffset", f.MaxFlowOffset(), 0.0005, 1e-9)
}

func TestMaxFlowOffset(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		decimals int
		want     float64
	}{
		{"truncates", 0.66666, 3, 0.666},
		{"exact", 0.8, 3, 0.8},
		{"more decimals", 0.0005, 3, 0.0005},
		{"tiny", 3e-7, 3, 3e-7},
		{"zero", 0, 3, 0},
		{"negative", -1, 3, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertWithin(t, "maxFlowOffset", maxFlowOffset(tt.raw, tt.decimals), tt.want, 1e-12)
		})
	}
}

func TestSpineFlowDeformStraight(t *testing.T) {
	f, err := BindFlow(NewPlaneMesh(100, 200, 1, 4), straightSpine(t), 200, 3)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name       string
		offset     float64
		top, bot   float64
		wantCenter float64
	}{
		{"start", 0, 0, -200, -100},
		{"middle", 0.4, -400, -600, -500},
		{"end", 0.8, -800, -1000, -900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.SetOffset(tt.offset)
			f.Apply()
			v := f.Node().Vertices
			// On a straight spine the mesh is translated, not bent: X is kept.
			assertVec(t, "top-left", v[0], Vec3{-50, tt.top, 0}, 1e-9)
			assertVec(t, "bottom-right", v[len(v)-1], Vec3{50, tt.bot, 0}, 1e-9)
			assertVec(t, "center", f.Center(), Vec3{0, tt.wantCenter, 0}, 1e-9)
		})
	}
}

func TestSpineFlowUpdateMapsProgress(t *testing.T) {
	f, err := BindFlow(NewPlaneMesh(100, 200, 1, 4), straightSpine(t), 200, 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []float64{0, 0.25, 0.5, 1} {
		f.Update(p)
		assertNear(t, "offset", f.Offset(), p*0.8)
	}
}

func TestSpineFlowWrapsPastEnd(t *testing.T) {
	f, err := BindFlow(NewPlaneMesh(100, 200, 1, 4), straightSpine(t), 200, 3)
	if err != nil {
		t.Fatal(err)
	}
	f.SetOffset(0.9)
	f.Apply()
	// Top row sits at 0.9 of the spine; the bottom row runs past the end
	// and wraps to the start.
	v := f.Node().Vertices
	assertWithin(t, "top y", v[0].Y, -900, 1e-9)
	assertWithin(t, "bottom y", v[len(v)-1].Y, -100, 1e-9)
}

func TestSpineFlowDeformFinite(t *testing.T) {
	p := buildTestPath(t, 400)
	f, err := BindFlow(NewPlaneMesh(200, 400, 1, 20), p.Curve, 400, 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, off := range []float64{-0.2, 0, 0.33, f.MaxFlowOffset(), 1.5} {
		f.SetOffset(off)
		for i, v := range f.Deform(nil) {
			if !v.IsFinite() {
				t.Fatalf("offset %v: vertex %d = %+v", off, i, v)
			}
		}
	}
}

func TestSpineFlowKeepsWidthAcrossBend(t *testing.T) {
	p := buildTestPath(t, 400)
	f, err := BindFlow(NewPlaneMesh(200, 400, 1, 20), p.Curve, 400, 3)
	if err != nil {
		t.Fatal(err)
	}
	f.Update(0.5)
	v := f.Deform(nil)
	// Each row's two vertices straddle the spine perpendicular to it.
	for i := 0; i+1 < len(v); i += 2 {
		assertWithin(t, "row width", v[i].Distance(v[i+1]), 200, 1e-6)
	}
}

func TestBindFlowErrors(t *testing.T) {
	spine := straightSpine(t)
	tests := []struct {
		name   string
		mesh   *PlaneMesh
		curve  *CurvePath
		extent float64
		want   error
	}{
		{"nil curve", NewPlaneMesh(10, 10, 1, 1), nil, 10, ErrZeroLengthPath},
		{"zero extent", NewPlaneMesh(10, 10, 1, 1), spine, 0, ErrDegenerateExtent},
		{"NaN extent", NewPlaneMesh(10, 10, 1, 1), spine, math.NaN(), ErrDegenerateExtent},
		{"flat mesh", NewPlaneMesh(0, 10, 1, 1), spine, 10, ErrDegenerateExtent},
		{"nil mesh", nil, spine, 10, ErrDegenerateExtent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BindFlow(tt.mesh, tt.curve, tt.extent, 3)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBindFlowMeshLongerThanSpine(t *testing.T) {
	f, err := BindFlow(NewPlaneMesh(10, 2000, 1, 4), straightSpine(t), 2000, 3)
	if err != nil {
		t.Fatalf("oversized mesh should bind, got %v", err)
	}
	if f.MaxFlowOffset() > 0 {
		t.Errorf("MaxFlowOffset = %v, want <= 0", f.MaxFlowOffset())
	}
}
