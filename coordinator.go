package spineflow

import (
	"fmt"
	"time"
)

// sceneSet is one generation of geometry: the spine, everything bound to it,
// and the subtree that holds their nodes. A rebuild replaces it whole.
type sceneSet struct {
	node *Node

	path        *Path
	flow        *SpineFlow
	follower    *CurveFollower
	motion      *MotionLineLayer
	ingredients *IngredientsLayer
	alpha       AlphaTransitionLayer
	backdrops   *BackdropLayer
	camera      CameraTrack
}

// Coordinator owns a scene and drives it from scroll input. Scroll events
// only move the smoother's target; Frame resolves the smoothed progress once
// and passes that single value to every consumer.
//
// A Coordinator is not safe for concurrent use. Call OnScroll, Frame and
// Rebuild from the render goroutine.
type Coordinator struct {
	cfg    Config
	layout Layout

	root     *Node
	scene    *sceneSet
	smoother *ScrollProgressSmoother

	intro       *TweenGroup
	introOffset float64

	inspector Inspector
	params    Params
	frame     uint64
	disposed  bool
}

// NewCoordinator validates the layout and builds the first scene. Config
// values in the layout file are used for every field cfg leaves at zero.
func NewCoordinator(layout Layout, cfg Config) (*Coordinator, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("new coordinator: %w", err)
	}
	cfg = mergeConfig(cfg, layout.Config).withDefaults()

	c := &Coordinator{
		cfg:      cfg,
		layout:   layout,
		root:     NewContainer("root"),
		smoother: NewScrollProgressSmoother(cfg.SmoothingFactor, cfg.SmoothingThreshold),
	}
	scene, err := buildScene(layout, cfg)
	if err != nil {
		return nil, fmt.Errorf("new coordinator: %w", err)
	}
	c.install(scene)

	if cfg.Intro {
		c.intro = TweenValue(&c.introOffset, cfg.IntroFrom, 0, cfg.IntroDuration, IntroEase)
	}
	c.apply(c.smoother.Value())

	Logger().Info("spineflow: coordinator ready",
		"anchors", len(layout.Anchors),
		"spineLength", scene.flow.SpineLength(),
		"maxFlowOffset", scene.flow.MaxFlowOffset())
	return c, nil
}

// mergeConfig fills zero fields of c from fallback.
func mergeConfig(c, fallback Config) Config {
	if c.VerticalOffsetUnit == 0 {
		c.VerticalOffsetUnit = fallback.VerticalOffsetUnit
	}
	if c.MaxOffsetDecimals == 0 {
		c.MaxOffsetDecimals = fallback.MaxOffsetDecimals
	}
	if c.SmoothingFactor == 0 {
		c.SmoothingFactor = fallback.SmoothingFactor
	}
	if c.SmoothingThreshold == 0 {
		c.SmoothingThreshold = fallback.SmoothingThreshold
	}
	if c.ReferenceUp == (Vec3{}) {
		c.ReferenceUp = fallback.ReferenceUp
	}
	if c.DashRatio == 0 {
		c.DashRatio = fallback.DashRatio
	}
	if c.IngredientMinScale == 0 {
		c.IngredientMinScale = fallback.IngredientMinScale
	}
	if c.IngredientTextureWidth == 0 {
		c.IngredientTextureWidth = fallback.IngredientTextureWidth
	}
	if c.AlphaTransitionMax == 0 {
		c.AlphaTransitionMax = fallback.AlphaTransitionMax
	}
	if c.LayerActivation == 0 {
		c.LayerActivation = fallback.LayerActivation
	}
	if c.MeshWidthSegments == 0 {
		c.MeshWidthSegments = fallback.MeshWidthSegments
	}
	if c.MeshHeightSegments == 0 {
		c.MeshHeightSegments = fallback.MeshHeightSegments
	}
	if c.CurveArcDivisions == 0 {
		c.CurveArcDivisions = fallback.CurveArcDivisions
	}
	if c.MotionLineDivisions == 0 {
		c.MotionLineDivisions = fallback.MotionLineDivisions
	}
	c.Intro = c.Intro || fallback.Intro
	if c.IntroFrom == 0 {
		c.IntroFrom = fallback.IntroFrom
	}
	if c.IntroDuration == 0 {
		c.IntroDuration = fallback.IntroDuration
	}
	if c.BackdropColorSpeed == 0 {
		c.BackdropColorSpeed = fallback.BackdropColorSpeed
	}
	if c.BackdropTimeEvery == 0 {
		c.BackdropTimeEvery = fallback.BackdropTimeEvery
	}
	if c.BackdropTweenDuration == 0 {
		c.BackdropTweenDuration = fallback.BackdropTweenDuration
	}
	if c.FrameRate == 0 {
		c.FrameRate = fallback.FrameRate
	}
	return c
}

// buildScene constructs a complete scene generation. Nothing is attached to
// a live tree until it has fully succeeded.
func buildScene(layout Layout, cfg Config) (*sceneSet, error) {
	meshW, meshH := layout.meshSize()
	unit := cfg.VerticalOffsetUnit
	if unit == 0 {
		unit = meshH
	}
	mapper := CoordinateMapper{Viewport: layout.Viewport}

	path, err := PathBuilder{Mapper: mapper, ArcDivisions: cfg.CurveArcDivisions}.Build(layout.Anchors, unit)
	if err != nil {
		return nil, err
	}

	mesh := NewPlaneMesh(meshW, meshH, cfg.MeshWidthSegments, cfg.MeshHeightSegments)
	flow, err := BindFlow(mesh, path.Curve, meshH, cfg.MaxOffsetDecimals)
	if err != nil {
		return nil, err
	}

	follower, err := NewCurveFollower(path.Curve, meshH)
	if err != nil {
		return nil, err
	}
	follower.SetReferenceUp(cfg.ReferenceUp)

	linePoints, err := BuildMotionLine(mapper, layout.Anchors, unit, nil, cfg.MotionLineDivisions)
	if err != nil {
		return nil, err
	}

	s := &sceneSet{
		node:     NewContainer("scene"),
		path:     path,
		flow:     flow,
		follower: follower,
		motion:   NewMotionLineLayer(linePoints, cfg.layerRange(), cfg.DashRatio),
		ingredients: NewIngredientsLayer(DefaultIngredients, cfg.layerRange(),
			meshH, cfg.IngredientMinScale, meshW/cfg.IngredientTextureWidth),
		alpha: AlphaTransitionLayer{Range: cfg.layerRange(), Max: cfg.AlphaTransitionMax},
		backdrops: NewBackdropLayer(path.Screens, nil,
			cfg.BackdropColorSpeed, cfg.BackdropTimeEvery, cfg.BackdropTweenDuration),
		camera: CameraTrack{
			ScrollableHeight:   layout.ScrollableHeight,
			VerticalOffsetUnit: unit,
			Screens:            len(layout.Anchors),
		},
	}

	follower.Node().AddChild(s.ingredients.Node())

	s.node.AddChild(s.backdrops.Node())
	s.node.AddChild(s.motion.Node())
	s.node.AddChild(flow.Node())
	s.node.AddChild(follower.Node())

	if globalDebug {
		spine := NewLine("spine", path.Curve.Points(cfg.CurveArcDivisions))
		spine.Color = Color{1, 0, 1, 1}
		s.node.AddChild(spine)
		s.node.AddChild(newDebugPoints(path.Screens, 8))
	}
	return s, nil
}

// install swaps scene in as the current generation and disposes the old one.
func (c *Coordinator) install(scene *sceneSet) {
	old := c.scene
	c.scene = scene
	c.root.AddChild(scene.node)
	if old != nil {
		old.node.Dispose()
	}
}

// OnScroll records a new scroll ratio, scrollY / (scrollHeight - viewportHeight).
// Nothing moves until the next Frame.
func (c *Coordinator) OnScroll(ratio float64) {
	c.smoother.SetTarget(ratio)
}

// Frame advances one frame of dt (the configured frame rate when dt <= 0).
// It returns the frame's parameters and whether the scroll-driven outputs
// were recomputed. Backdrops animate every frame regardless.
func (c *Coordinator) Frame(dt time.Duration) (Params, bool) {
	if c.disposed {
		return c.params, false
	}
	if dt <= 0 {
		dt = c.cfg.frameDuration()
	}
	c.frame++

	var stats frameStats
	start := time.Now()

	progress, changed := c.smoother.Tick()
	if c.intro != nil {
		c.intro.Update(seconds(dt))
		if c.intro.Done {
			// Hand the flow back to scroll progress on the final frame.
			c.intro = nil
		}
		changed = true
	}
	stats.smoothTime = time.Since(start)

	c.scene.backdrops.Advance(progress, dt)

	// An inspector may pin backdrop values, so it sees every frame.
	if changed || c.inspector != nil {
		start = time.Now()
		c.apply(progress)
		stats.applyTime = time.Since(start)
		stats.vertices = len(c.scene.flow.Node().Vertices)
	} else {
		c.params.BackdropColorMix = c.scene.backdrops.ColorMix()
		c.params.BackdropTime = c.scene.backdrops.Time()
	}

	c.root.UpdateWorldTransforms()

	if globalDebug {
		stats.log(c.frame)
	}
	return c.params, changed
}

// apply computes every scroll-driven parameter from one progress value, lets
// the inspector adjust them, then writes them to the scene.
func (c *Coordinator) apply(progress float64) {
	s := c.scene
	p := Params{
		Progress:      progress,
		MaxFlowOffset: s.flow.MaxFlowOffset(),
		DashOffset:    s.motion.DashOffset(progress),
		CameraY:       s.camera.Y(progress),
	}
	s.flow.Update(progress)
	p.PathOffset = s.flow.Offset()
	if c.intro != nil {
		p.PathOffset = c.introOffset * p.MaxFlowOffset
	}
	p.IngredientOpacity, p.IngredientScale = s.ingredients.Update(progress)
	p.AlphaTransition = s.alpha.Value(progress)
	p.BackdropColorMix = s.backdrops.ColorMix()
	p.BackdropTime = s.backdrops.Time()

	scrolled := p.PathOffset
	if c.inspector != nil {
		c.inspector.Observe(&p)
	}

	// The follower tracks the flow's offset when something other than
	// scrolling placed it.
	t := p.Progress
	if p.PathOffset != scrolled && p.MaxFlowOffset > 0 {
		t = p.PathOffset / p.MaxFlowOffset
	}

	s.flow.SetOffset(p.PathOffset)
	s.flow.Apply()
	s.follower.Update(t)
	s.ingredients.Apply(p.IngredientOpacity, p.IngredientScale)

	p.FollowerPosition = s.follower.Position()
	p.FollowerRotation = s.follower.Rotation()
	c.params = p
}

// Seek jumps straight to progress, skipping smoothing and any running intro,
// and applies it.
func (c *Coordinator) Seek(progress float64) {
	if c.disposed || !isFinite(progress) {
		return
	}
	if c.intro != nil {
		c.intro.Finish()
		c.intro = nil
	}
	c.smoother.Reset(progress)
	c.apply(c.smoother.Value())
	c.root.UpdateWorldTransforms()
}

// Settled reports whether smoothing and the intro have both come to rest.
func (c *Coordinator) Settled() bool {
	return !c.smoother.Active() && c.intro == nil
}

// Refresh recomputes the scroll-driven outputs at the current progress, for
// instance after an inspector changed what it overrides.
func (c *Coordinator) Refresh() {
	if c.disposed {
		return
	}
	c.apply(c.smoother.Value())
	c.root.UpdateWorldTransforms()
}

// Rebuild replaces the path, flow and follower with ones built from new
// anchors, viewport and mesh size (zero mesh dimensions take the first
// anchor's). The new generation is built completely before the old one is
// released; on error the current scene stays in place untouched. Smoothing
// state carries over, so the next frame continues from the same progress.
func (c *Coordinator) Rebuild(anchors []AnchorRect, viewport Viewport, meshWidth, meshHeight float64) error {
	layout := c.layout
	layout.Anchors = append([]AnchorRect(nil), anchors...)
	layout.Viewport = viewport
	layout.MeshWidth = meshWidth
	layout.MeshHeight = meshHeight
	return c.rebuild(layout)
}

func (c *Coordinator) rebuild(layout Layout) error {
	if c.disposed {
		return fmt.Errorf("rebuild: %w", ErrDisposed)
	}
	if err := layout.Validate(); err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	scene, err := buildScene(layout, c.cfg)
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	c.install(scene)
	c.layout = layout
	c.apply(c.smoother.Value())
	c.root.UpdateWorldTransforms()

	Logger().Info("spineflow: rebuilt",
		"anchors", len(layout.Anchors),
		"spineLength", scene.flow.SpineLength(),
		"maxFlowOffset", scene.flow.MaxFlowOffset())
	return nil
}

// Resize rebuilds with the same anchors scaled from the old viewport to the
// new one. It is a convenience for hosts that cannot re-measure anchors.
func (c *Coordinator) Resize(viewport Viewport) error {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return fmt.Errorf("resize: %w: viewport %vx%v", ErrInvalidLayout, viewport.Width, viewport.Height)
	}
	layout := c.layout
	sx := viewport.Width / layout.Viewport.Width
	sy := viewport.Height / layout.Viewport.Height
	layout.Anchors = make([]AnchorRect, len(c.layout.Anchors))
	for i, a := range c.layout.Anchors {
		layout.Anchors[i] = AnchorRect{X: a.X * sx, Y: a.Y * sy, Width: a.Width * sx, Height: a.Height * sy}
	}
	layout.Viewport = viewport
	layout.ScrollableHeight *= sy
	layout.MeshWidth *= sx
	layout.MeshHeight *= sy
	return c.rebuild(layout)
}

// SetInspector installs an inspector (nil removes it). It sees the parameters
// of every recomputed frame.
func (c *Coordinator) SetInspector(in Inspector) {
	c.inspector = in
}

// Dispose releases the scene. Frame becomes a no-op.
func (c *Coordinator) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.root.Dispose()
	c.scene = nil
	c.intro = nil
}

// IsDisposed reports whether Dispose has been called.
func (c *Coordinator) IsDisposed() bool { return c.disposed }

// Root returns the root of the scene tree.
func (c *Coordinator) Root() *Node { return c.root }

// Path returns the current spine. Nil after Dispose.
func (c *Coordinator) Path() *Path {
	if c.scene == nil {
		return nil
	}
	return c.scene.path
}

// Flow returns the current flow binding. Nil after Dispose.
func (c *Coordinator) Flow() *SpineFlow {
	if c.scene == nil {
		return nil
	}
	return c.scene.flow
}

// Follower returns the current follower. Nil after Dispose.
func (c *Coordinator) Follower() *CurveFollower {
	if c.scene == nil {
		return nil
	}
	return c.scene.follower
}

// MotionLine returns the current motion line layer. Nil after Dispose.
func (c *Coordinator) MotionLine() *MotionLineLayer {
	if c.scene == nil {
		return nil
	}
	return c.scene.motion
}

// Backdrops returns the current backdrop layer. Nil after Dispose.
func (c *Coordinator) Backdrops() *BackdropLayer {
	if c.scene == nil {
		return nil
	}
	return c.scene.backdrops
}

// Params returns the parameters of the last recomputed frame.
func (c *Coordinator) Params() Params { return c.params }

// Progress returns the current smoothed progress.
func (c *Coordinator) Progress() float64 { return c.smoother.Value() }

// Layout returns the layout the current scene was built from.
func (c *Coordinator) Layout() Layout { return c.layout }

// Config returns the effective configuration.
func (c *Coordinator) Config() Config { return c.cfg }

// FrameCount returns the number of frames run.
func (c *Coordinator) FrameCount() uint64 { return c.frame }
