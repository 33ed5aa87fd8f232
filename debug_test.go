package spineflow

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

// captureLog routes the package logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func withDebug(t *testing.T) {
	t.Helper()
	SetDebugMode(true)
	t.Cleanup(func() { SetDebugMode(false) })
}

func TestDebugMode_DisposedNodePanics(t *testing.T) {
	withDebug(t)

	parent := NewContainer("parent")
	child := NewMarker("child", 10, 10)
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed node, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestDebugMode_DisposedParentPanics(t *testing.T) {
	withDebug(t)

	parent := NewContainer("parent")
	parent.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild to disposed parent, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(NewMarker("child", 10, 10))
}

func TestReleaseMode_DisposedNodeNoPanic(t *testing.T) {
	SetDebugMode(false)

	parent := NewContainer("parent")
	child := NewMarker("child", 10, 10)
	child.Dispose()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode should not panic on disposed node, got: %v", r)
		}
	}()
	parent.AddChild(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	withDebug(t)
	buf := captureLog(t)

	current := NewContainer("root")
	for i := 0; i < debugMaxTreeDepth+5; i++ {
		child := NewContainer(fmt.Sprintf("depth_%d", i))
		current.AddChild(child)
		current = child
	}

	if !strings.Contains(buf.String(), "tree too deep") {
		t.Errorf("expected tree depth warning, got: %q", buf.String())
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	withDebug(t)
	buf := captureLog(t)

	parent := NewContainer("many_children")
	for i := 0; i < debugMaxChildCount+1; i++ {
		parent.AddChild(NewContainer(fmt.Sprintf("c_%d", i)))
	}

	out := buf.String()
	if !strings.Contains(out, "too many children") || !strings.Contains(out, "many_children") {
		t.Errorf("expected child count warning, got: %q", out)
	}
}

func TestDebugMode_NoWarningsWhenOff(t *testing.T) {
	SetDebugMode(false)
	buf := captureLog(t)

	parent := NewContainer("quiet")
	for i := 0; i < debugMaxChildCount+1; i++ {
		parent.AddChild(NewContainer(""))
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %q", buf.String())
	}
}

func TestFrameStatsLog(t *testing.T) {
	buf := captureLog(t)
	frameStats{vertices: 42}.log(7)
	out := buf.String()
	if !strings.Contains(out, "frame=7") || !strings.Contains(out, "vertices=42") {
		t.Errorf("frame stats = %q", out)
	}
}

func TestNewDebugPoints(t *testing.T) {
	p := buildTestPath(t, 400)
	root := newDebugPoints(p.Screens, 6)

	// Every screen has top, center and bottom; the outer screens have one
	// handle and the middle screen two.
	want := 3*3 + 1 + 2 + 1
	if root.NumChildren() != want {
		t.Fatalf("markers = %d, want %d", root.NumChildren(), want)
	}
	for _, name := range []string{"screen0_handle2", "screen1_handle1", "screen1_handle2", "screen2_handle1"} {
		if root.FindChild(name) == nil {
			t.Errorf("missing %s", name)
		}
	}
	if root.FindChild("screen0_handle1") != nil || root.FindChild("screen2_handle2") != nil {
		t.Error("outer screens should not carry their outward handle")
	}

	top := root.FindChild("screen1_top")
	if top.Type != NodeTypeMarker || top.Width != 6 {
		t.Errorf("top marker = %v %vx%v", top.Type, top.Width, top.Height)
	}
	s := p.Screens[1]
	assertVec(t, "top position", top.Position, Vec3{s.Top.X, s.Top.Y, 1}, epsilon)
}
