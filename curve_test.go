package spineflow

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCubicBezierEndpoints(t *testing.T) {
	c := CubicBezier{P0: Vec3{0, 0, 0}, C0: Vec3{0, -1, 0}, C1: Vec3{2, -1, 0}, P1: Vec3{2, -2, 0}}
	assertVec(t, "B(0)", c.Point(0), c.P0, epsilon)
	assertVec(t, "B(1)", c.Point(1), c.P1, epsilon)
	// B'(0) = 3(C0-P0), B'(1) = 3(P1-C1)
	assertVec(t, "B'(0)", c.Derivative(0), Vec3{0, -3, 0}, epsilon)
	assertVec(t, "B'(1)", c.Derivative(1), Vec3{0, -3, 0}, epsilon)
}

func TestCurvePathLineLength(t *testing.T) {
	p, err := NewCurvePath([]Segment{Line{Vec3{0, 0, 0}, Vec3{0, -10, 0}}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "length", p.Length(), 10)
	assertVec(t, "PointAt(0.3)", p.PointAt(0.3), Vec3{0, -3, 0}, epsilon)
	assertVec(t, "TangentAt(0.5)", p.TangentAt(0.5), Vec3{0, -1, 0}, epsilon)
}

func TestCurvePathArcLengthUniform(t *testing.T) {
	// A line followed by a quarter-ish bend: equal steps of u must cover equal
	// distances on both sides of the join.
	segs := []Segment{
		Line{Vec3{0, 0, 0}, Vec3{0, -100, 0}},
		CubicBezier{Vec3{0, -100, 0}, Vec3{0, -150, 0}, Vec3{100, -150, 0}, Vec3{100, -200, 0}},
	}
	p, err := NewCurvePath(segs, 1000)
	if err != nil {
		t.Fatal(err)
	}
	pts := p.Points(50)
	step := p.Length() / 50
	for i := 1; i < len(pts); i++ {
		// Chords of a gently curving path are slightly shorter than the arc.
		assertWithin(t, "chord", pts[i].Distance(pts[i-1]), step, step*0.02)
	}
}

func TestCurvePathContinuityAcrossSegments(t *testing.T) {
	segs := []Segment{
		Line{Vec3{0, 0, 0}, Vec3{0, -10, 0}},
		Line{Vec3{0, -10, 0}, Vec3{0, -20, 0}},
	}
	p, err := NewCurvePath(segs, 0)
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "PointAt(0.5)", p.PointAt(0.5), Vec3{0, -10, 0}, 1e-9)
	diff(t, []float64{10, 10}, p.SegmentLengths(), cmpopts.EquateApprox(0, 1e-12))
}

func TestCurvePathExtrapolates(t *testing.T) {
	p, err := NewCurvePath([]Segment{Line{Vec3{0, 0, 0}, Vec3{0, -10, 0}}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "PointAt(-0.1)", p.PointAt(-0.1), Vec3{0, 1, 0}, epsilon)
	assertVec(t, "PointAt(1.2)", p.PointAt(1.2), Vec3{0, -12, 0}, epsilon)
}

func TestCurvePathRejectsGaps(t *testing.T) {
	segs := []Segment{
		Line{Vec3{0, 0, 0}, Vec3{0, -10, 0}},
		Line{Vec3{1, -10, 0}, Vec3{1, -20, 0}},
	}
	if _, err := NewCurvePath(segs, 0); err == nil {
		t.Fatal("expected error for disconnected segments")
	}
}

func TestCurvePathZeroLength(t *testing.T) {
	tests := []struct {
		name string
		segs []Segment
	}{
		{"empty", nil},
		{"point", []Segment{Line{Vec3{1, 1, 0}, Vec3{1, 1, 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCurvePath(tt.segs, 0)
			if !errors.Is(err, ErrZeroLengthPath) {
				t.Fatalf("err = %v, want ErrZeroLengthPath", err)
			}
		})
	}
}

func TestSegmentTangentDegenerateHandle(t *testing.T) {
	// C0 == P0 zeroes the derivative at t=0; the tangent must still point
	// along the curve.
	c := CubicBezier{P0: Vec3{0, 0, 0}, C0: Vec3{0, 0, 0}, C1: Vec3{0, -10, 0}, P1: Vec3{0, -10, 0}}
	got := segmentTangent(c, 0)
	if !got.IsFinite() || math.Abs(got.Len()-1) > 1e-9 {
		t.Fatalf("tangent = %+v, want unit vector", got)
	}
	assertVec(t, "tangent", got, Vec3{0, -1, 0}, 1e-6)
}
