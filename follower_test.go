package spineflow

import (
	"errors"
	"math"
	"testing"
)

func TestCurveFollowerStraight(t *testing.T) {
	f, err := NewCurveFollower(straightSpine(t), 200)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "NormalizedOffset", f.NormalizedOffset(), 0.1)

	tests := []struct {
		t    float64
		want Vec3
	}{
		{0, Vec3{0, -100, 0}},
		{0.5, Vec3{0, -500, 0}},
		{1, Vec3{0, -900, 0}},
	}
	for _, tt := range tests {
		f.Update(tt.t)
		assertVec(t, "position", f.Position(), tt.want, 1e-9)
		// The default up already points down the spine.
		if f.Rotation() != QuatIdentity {
			t.Errorf("t=%v: rotation = %+v, want identity", tt.t, f.Rotation())
		}
		if f.Node().Position != f.Position() {
			t.Errorf("t=%v: node position not updated", tt.t)
		}
	}
}

func TestCurveFollowerMatchesFlowCenter(t *testing.T) {
	p := buildTestPath(t, 400)
	flow, err := BindFlow(NewPlaneMesh(200, 400, 1, 20), p.Curve, 400, 3)
	if err != nil {
		t.Fatal(err)
	}
	f, err := NewCurveFollower(p.Curve, 400)
	if err != nil {
		t.Fatal(err)
	}
	// Progress 0 puts both the follower and the mesh center half an extent
	// into the spine.
	flow.Update(0)
	f.Update(0)
	assertVec(t, "start", f.Position(), flow.Center(), 1e-6)
}

func TestCurveFollowerOrientation(t *testing.T) {
	spine, err := NewCurvePath([]Segment{Line{Vec3{0, 0, 0}, Vec3{1000, 0, 0}}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	f, err := NewCurveFollower(spine, 100)
	if err != nil {
		t.Fatal(err)
	}
	f.Update(0.5)
	assertVec(t, "tangent", f.Tangent(), AxisX, 1e-12)
	assertWithin(t, "angle", f.Rotation().Angle(), math.Pi/2, 1e-12)
	assertVec(t, "rotated up", f.Rotation().Rotate(DefaultReferenceUp), AxisX, 1e-12)
}

func TestCurveFollowerOppositeUp(t *testing.T) {
	f, err := NewCurveFollower(straightSpine(t), 100)
	if err != nil {
		t.Fatal(err)
	}
	// Up and tangent are opposite: the axis is undefined, so no rotation.
	f.SetReferenceUp(Vec3{0, 1, 0})
	if f.Rotation() != QuatIdentity {
		t.Errorf("rotation = %+v, want identity", f.Rotation())
	}
	f.SetReferenceUp(Vec3{})
	f.Update(0.3)
	if f.Rotation() != QuatIdentity {
		t.Errorf("zero up changed the reference: rotation %+v", f.Rotation())
	}
}

func TestCurveFollowerExtrapolates(t *testing.T) {
	f, err := NewCurveFollower(straightSpine(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	f.Update(1.1)
	assertVec(t, "past end", f.Position(), Vec3{0, -1100, 0}, 1e-9)
	if f.Progress() != 1.1 {
		t.Errorf("Progress = %v, want 1.1", f.Progress())
	}
}

func TestCurveFollowerErrors(t *testing.T) {
	if _, err := NewCurveFollower(nil, 10); !errors.Is(err, ErrZeroLengthPath) {
		t.Errorf("nil curve: err = %v", err)
	}
	if _, err := NewCurveFollower(straightSpine(t), -1); !errors.Is(err, ErrDegenerateExtent) {
		t.Errorf("negative extent: err = %v", err)
	}
}
