package snapshot

import (
	"bytes"
	"errors"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/phanxgames/spineflow"
)

func newTestCoordinator(t *testing.T) *spineflow.Coordinator {
	t.Helper()
	c, err := spineflow.NewCoordinator(spineflow.DefaultLayout(), spineflow.Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Dispose)
	return c
}

func TestRender(t *testing.T) {
	c := newTestCoordinator(t)
	c.Seek(0.8)
	c.Frame(0)

	dc, err := Render(c, Options{Width: 160, Height: 120, ShowSpine: true, ShowPoints: true})
	if err != nil {
		t.Fatal(err)
	}
	if dc == nil {
		t.Fatal("nil context")
	}
	if dc.Width() != 160 || dc.Height() != 120 {
		t.Errorf("size = %dx%d, want 160x120", dc.Width(), dc.Height())
	}
}

func TestWritePNG(t *testing.T) {
	c := newTestCoordinator(t)
	var buf bytes.Buffer
	if err := WritePNG(&buf, c, Options{Width: 64, Height: 48}); err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("png size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestSavePNG(t *testing.T) {
	c := newTestCoordinator(t)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(path, c, Options{Width: 32, Height: 32}); err != nil {
		t.Fatal(err)
	}
}

func TestRenderDisposed(t *testing.T) {
	c := newTestCoordinator(t)
	c.Dispose()
	if _, err := Render(c, Options{}); !errors.Is(err, spineflow.ErrDisposed) {
		t.Errorf("err = %v, want ErrDisposed", err)
	}
	if _, err := Render(nil, Options{}); !errors.Is(err, spineflow.ErrDisposed) {
		t.Errorf("nil coordinator: err = %v", err)
	}
}
