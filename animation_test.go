package spineflow

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestTweenValueReachesTarget(t *testing.T) {
	var v float64
	g := TweenValue(&v, 0.5, 0, time.Second, ease.Linear)
	if v != 0.5 {
		t.Fatalf("field = %v, want 0.5 immediately", v)
	}

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be Done at halfway")
	}
	if math.Abs(v-0.25) > 0.01 {
		t.Errorf("field = %f, want ~0.25 at halfway", v)
	}
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if v != 0 {
		t.Errorf("field = %f, want 0", v)
	}
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewSprite("scale", 10, 10)
	node.Scale = Vec3{0, 0, 1}

	g := TweenScale(node, Vec3{1.4, 1.2, 1}, 500*time.Millisecond, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.Scale.X-1.4) > 1e-6 || math.Abs(node.Scale.Y-1.2) > 1e-6 || node.Scale.Z != 1 {
		t.Errorf("Scale = %+v, want ~{1.4 1.2 1}", node.Scale)
	}
}

func TestTweenGroupFinish(t *testing.T) {
	node := NewSprite("finish", 10, 10)
	node.Scale = Vec3{0, 0, 1}
	g := TweenScale(node, Vec3{2, 1.5, 1}, time.Second, ease.OutCubic)
	g.Update(0.1)
	g.Finish()
	if !g.Done {
		t.Fatal("Finish did not mark Done")
	}
	if math.Abs(node.Scale.X-2) > 1e-6 || math.Abs(node.Scale.Y-1.5) > 1e-6 {
		t.Errorf("Scale = %+v, want end values", node.Scale)
	}
}

func TestTweenGroupNilSafe(t *testing.T) {
	var g *TweenGroup
	g.Update(0.1)
	g.Finish()
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	var v float64
	g := TweenValue(&v, 0, 50, 500*time.Millisecond, ease.Linear)

	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done is a no-op.
	v = 7
	g.Update(0.1)
	if !g.Done || v != 7 {
		t.Fatalf("update after Done wrote %v", v)
	}
}

func TestTweenGroupMarksDirty(t *testing.T) {
	node := NewContainer("dirty")
	node.transformDirty = false

	g := TweenScale(node, Vec3{2, 2, 1}, time.Second, ease.Linear)
	g.Update(0.1)

	if !node.transformDirty {
		t.Fatal("expected node to be marked dirty after TweenGroup update")
	}
}

func TestTweenGroupDisposedMidAnimation(t *testing.T) {
	node := NewSprite("mid-dispose", 10, 10)
	node.Scale = Vec3{0, 0, 1}

	g := TweenScale(node, Vec3{1, 1, 1}, time.Second, ease.Linear)
	g.Update(0.1)
	if g.Done {
		t.Fatal("should not be Done yet")
	}

	node.Dispose()
	saved := node.Scale
	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done after node disposed mid-animation")
	}
	if node.Scale != saved {
		t.Error("node fields should not change after disposal")
	}
}

func TestIntroEaseLeadsLinear(t *testing.T) {
	var linear, intro float64
	gl := TweenValue(&linear, 0.5, 0, 2*time.Second, ease.Linear)
	gi := TweenValue(&intro, 0.5, 0, 2*time.Second, IntroEase)
	gl.Update(0.5)
	gi.Update(0.5)
	// An out-ease covers most of the distance early.
	if intro >= linear {
		t.Errorf("intro = %f, linear = %f: intro should be further along", intro, linear)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	node := NewSprite("alloc", 10, 10)
	g := TweenScale(node, Vec3{5, 5, 1}, time.Second, ease.Linear)
	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
