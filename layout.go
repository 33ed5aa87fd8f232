package spineflow

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Layout is everything a Coordinator needs from the page: the anchors in
// top-to-bottom order, the viewport, how far the page scrolls, and the mesh
// size. A zero mesh size takes the size of the first anchor.
type Layout struct {
	Viewport         Viewport     `toml:"viewport"`
	ScrollableHeight float64      `toml:"scrollable_height"`
	MeshWidth        float64      `toml:"mesh_width"`
	MeshHeight       float64      `toml:"mesh_height"`
	Anchors          []AnchorRect `toml:"anchor"`
	Config           Config       `toml:"config"`
}

// DefaultLayout is a 1280x800 page of three screens, each with an anchor
// offset to alternate sides.
func DefaultLayout() Layout {
	const screenH = 800
	return Layout{
		Viewport:         Viewport{Width: 1280, Height: screenH},
		ScrollableHeight: 2 * screenH,
		Anchors: []AnchorRect{
			{X: 640, Y: 150, Width: 300, Height: 500},
			{X: 340, Y: screenH + 150, Width: 300, Height: 500},
			{X: 640, Y: 2*screenH + 150, Width: 300, Height: 500},
		},
	}
}

// meshSize returns the mesh dimensions, falling back to the first anchor.
func (l Layout) meshSize() (w, h float64) {
	w, h = l.MeshWidth, l.MeshHeight
	if len(l.Anchors) > 0 {
		if w <= 0 {
			w = l.Anchors[0].Width
		}
		if h <= 0 {
			h = l.Anchors[0].Height
		}
	}
	return w, h
}

// Validate checks the layout for values no component can work with.
func (l Layout) Validate() error {
	if l.Viewport.Width <= 0 || l.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %vx%v", ErrInvalidLayout, l.Viewport.Width, l.Viewport.Height)
	}
	if len(l.Anchors) < 2 {
		return fmt.Errorf("%w: %d anchors: %w", ErrInvalidLayout, len(l.Anchors), ErrTooFewAnchors)
	}
	for i, a := range l.Anchors {
		if err := a.validate(); err != nil {
			return fmt.Errorf("%w: anchor %d: %w", ErrInvalidLayout, i, err)
		}
	}
	if l.ScrollableHeight < 0 || !isFinite(l.ScrollableHeight) {
		return fmt.Errorf("%w: scrollable height %v", ErrInvalidLayout, l.ScrollableHeight)
	}
	return nil
}

// DecodeLayout reads a TOML layout. Keys that match no field are logged and
// ignored.
func DecodeLayout(r io.Reader) (Layout, error) {
	var l Layout
	md, err := toml.NewDecoder(r).Decode(&l)
	if err != nil {
		return Layout{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		Logger().Warn("spineflow: unknown layout keys", "keys", strings.Join(keys, ", "))
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LoadLayout reads a TOML layout file.
func LoadLayout(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("load layout: %w", err)
	}
	defer f.Close()

	l, err := DecodeLayout(f)
	if err != nil {
		return Layout{}, fmt.Errorf("load layout %s: %w", path, err)
	}
	return l, nil
}
