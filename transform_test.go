package spineflow

import (
	"math"
	"testing"
)

// --- UpdateWorldTransforms ---

func TestWorldTransformParentChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.Position = Vec3{100, 0, 0}
	child.Position = Vec3{10, 0, 0}

	parent.UpdateWorldTransforms()

	assertVec(t, "parent", parent.WorldPosition(), Vec3{100, 0, 0}, epsilon)
	assertVec(t, "child", child.WorldPosition(), Vec3{110, 0, 0}, epsilon)
}

func TestWorldTransformRotation(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.Position = Vec3{5, 5, 0}
	parent.Rotation = QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2)
	child.Position = Vec3{10, 0, 0}

	parent.UpdateWorldTransforms()

	// A quarter turn about +Z maps +X onto +Y.
	assertVec(t, "child", child.WorldPosition(), Vec3{5, 15, 0}, 1e-9)
	if !child.WorldRotation().ApproxEqual(parent.Rotation, 1e-9) {
		t.Errorf("child rotation = %v, want parent's %v", child.WorldRotation(), parent.Rotation)
	}
}

func TestWorldTransformScale(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.Scale = Vec3{2, 0.5, 1}
	child.Position = Vec3{10, 10, 3}
	child.Scale = Vec3{3, 3, 1}

	parent.UpdateWorldTransforms()

	assertVec(t, "child position", child.WorldPosition(), Vec3{20, 5, 3}, epsilon)
	assertVec(t, "child scale", child.WorldScale(), Vec3{6, 1.5, 1}, epsilon)
}

func TestAlphaPropagation(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.Alpha = 0.5
	child.Alpha = 0.5

	parent.UpdateWorldTransforms()

	assertNear(t, "parent.worldAlpha", parent.WorldAlpha(), 0.5)
	assertNear(t, "child.worldAlpha", child.WorldAlpha(), 0.25)
}

func TestDirtyFlagSkipsClean(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.Position = Vec3{100, 0, 0}
	child.Position = Vec3{10, 0, 0}
	parent.UpdateWorldTransforms()

	// Writing the field directly leaves the flag clear.
	child.Position = Vec3{999, 0, 0}
	parent.UpdateWorldTransforms()

	assertVec(t, "child (stale)", child.WorldPosition(), Vec3{110, 0, 0}, epsilon)

	child.MarkDirty()
	parent.UpdateWorldTransforms()
	assertVec(t, "child (marked)", child.WorldPosition(), Vec3{1099, 0, 0}, epsilon)
}

func TestDirtyFlagRecomputes(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.Position = Vec3{100, 0, 0}
	child.Position = Vec3{10, 0, 0}
	parent.UpdateWorldTransforms()

	child.SetPosition(Vec3{20, 0, 0})
	parent.UpdateWorldTransforms()

	assertVec(t, "child (updated)", child.WorldPosition(), Vec3{120, 0, 0}, epsilon)
}

func TestParentRecomputedPropagates(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.Position = Vec3{100, 0, 0}
	child.Position = Vec3{10, 0, 0}
	parent.UpdateWorldTransforms()

	// The child is clean but its parent moved.
	parent.SetPosition(Vec3{200, 0, 0})
	parent.UpdateWorldTransforms()

	assertVec(t, "child (from parent)", child.WorldPosition(), Vec3{210, 0, 0}, epsilon)
}

// --- LocalToWorld ---

func TestLocalToWorld(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.Position = Vec3{100, 50, 0}
	child.Position = Vec3{10, 20, 0}
	child.Scale = Vec3{2, 3, 1}
	child.Rotation = QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi)

	parent.UpdateWorldTransforms()

	assertVec(t, "origin", child.LocalToWorld(Vec3{}), Vec3{110, 70, 0}, 1e-9)
	// Scaled to (2, 3), then a half turn flips both axes.
	assertVec(t, "point", child.LocalToWorld(Vec3{1, 1, 0}), Vec3{108, 67, 0}, 1e-9)
}

func TestLocalToWorldIdentity(t *testing.T) {
	n := NewContainer("test")
	n.Position = Vec3{50, 100, 2}
	n.UpdateWorldTransforms()

	assertVec(t, "origin", n.LocalToWorld(Vec3{}), Vec3{50, 100, 2}, epsilon)
}

func TestDeepHierarchy(t *testing.T) {
	nodes := make([]*Node, 10)
	for i := range nodes {
		nodes[i] = NewContainer("")
		nodes[i].Position = Vec3{0, -10, 0}
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}

	nodes[0].UpdateWorldTransforms()

	assertNear(t, "deep.y", nodes[9].WorldPosition().Y, -100)
}

// --- Setters ---

func TestSettersDirty(t *testing.T) {
	n := NewContainer("test")
	setters := []struct {
		name string
		fn   func()
	}{
		{"SetPosition", func() { n.SetPosition(Vec3{1, 2, 3}) }},
		{"SetRotation", func() { n.SetRotation(QuatFromAxisAngle(Vec3{0, 0, 1}, 1)) }},
		{"SetScale", func() { n.SetScale(Vec3{2, 2, 1}) }},
		{"SetAlpha", func() { n.SetAlpha(0.5) }},
		{"MarkDirty", n.MarkDirty},
	}
	for _, s := range setters {
		n.transformDirty = false
		s.fn()
		if !n.transformDirty {
			t.Errorf("%s should set dirty", s.name)
		}
	}
}

// --- Benchmarks ---

func BenchmarkUpdateWorldTransform10k(b *testing.B) {
	root := NewContainer("root")
	for i := 0; i < 100; i++ {
		parent := NewContainer("")
		parent.Position = Vec3{float64(i), 0, 0}
		root.AddChild(parent)
		for j := 0; j < 100; j++ {
			child := NewContainer("")
			child.Position = Vec3{float64(j), 0, 0}
			parent.AddChild(child)
		}
	}
	root.UpdateWorldTransforms()

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		root.transformDirty = true
		root.UpdateWorldTransforms()
	}
}

func BenchmarkUpdateWorldTransformStatic(b *testing.B) {
	root := NewContainer("root")
	for i := 0; i < 100; i++ {
		parent := NewContainer("")
		root.AddChild(parent)
		for j := 0; j < 100; j++ {
			parent.AddChild(NewContainer(""))
		}
	}
	root.UpdateWorldTransforms()

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		root.UpdateWorldTransforms()
	}
}
