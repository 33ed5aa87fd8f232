package render

import (
	"testing"

	"github.com/phanxgames/spineflow"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"start", "start"},
		{"after-scroll", "after-scroll"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#", "special___"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		100, 50, 0, 200, // half-ish alpha
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{127, 63, 0, 200, 10, 20, 30, 255, 0, 0, 0, 0}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], b)
		}
	}
}

func newTestGame(t *testing.T, cfg RunConfig) *Game {
	t.Helper()
	c, err := spineflow.NewCoordinator(spineflow.DefaultLayout(), spineflow.Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Dispose)
	return NewGame(c, cfg)
}

func TestGameDefaults(t *testing.T) {
	g := newTestGame(t, RunConfig{})
	vp := spineflow.DefaultLayout().Viewport
	if g.cfg.Width != int(vp.Width) || g.cfg.Height != int(vp.Height) {
		t.Errorf("size = %dx%d, want viewport", g.cfg.Width, g.cfg.Height)
	}
	if g.cfg.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want screenshots", g.cfg.ScreenshotDir)
	}
	if g.cfg.ResizeThreshold != 50 || g.cfg.ResizeDebounce != 15 {
		t.Errorf("resize = %v / %d", g.cfg.ResizeThreshold, g.cfg.ResizeDebounce)
	}
	if g.hud != nil {
		t.Error("overlay created without ShowFPS")
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	g := newTestGame(t, RunConfig{})
	g.Screenshot("a")
	g.Screenshot("b")
	if len(g.screenshotQueue) != 2 || g.screenshotQueue[0] != "a" || g.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", g.screenshotQueue)
	}
}
