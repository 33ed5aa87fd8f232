package spineflow

// Layer defaults.
const (
	DefaultLayerActivation         = 0.5
	DefaultDashRatio               = 0.88
	DefaultAlphaTransitionMax      = 1.35
	DefaultIngredientTextureWidth  = 800
	DefaultIngredientTextureHeight = 346
)

// ProgressRange is the slice of progress over which a layer animates. Below
// Min a layer rests; above Max it holds its end value.
type ProgressRange struct {
	Min, Max float64
}

// normalize maps p into [0, 1] over the range. ok is false while p has not
// passed Min, in which case the layer stays at rest.
func (r ProgressRange) normalize(p float64) (t float64, ok bool) {
	if p <= r.Min {
		return 0, false
	}
	return clamp01(mapRange(p, r.Min, r.Max, 0, 1)), true
}

// MotionLineLayer maps progress to the dash offset of the motion line, so the
// visible dash travels backward along the line as progress increases.
type MotionLineLayer struct {
	Range     ProgressRange
	DashRatio float64

	node   *Node
	length float64
}

// NewMotionLineLayer wraps the sampled motion line points in a line node.
func NewMotionLineLayer(points []Vec3, rng ProgressRange, dashRatio float64) *MotionLineLayer {
	l := &MotionLineLayer{Range: rng, DashRatio: dashRatio}
	l.node = NewLine("motion_line", points)
	l.node.Color = Color{0, 0, 0, 1}
	l.node.UserData = l
	for i := 1; i < len(points); i++ {
		l.length += points[i].Distance(points[i-1])
	}
	return l
}

// DashOffset returns 1 at rest and -(1-DashRatio) at the end of the range.
func (l *MotionLineLayer) DashOffset(progress float64) float64 {
	t, ok := l.Range.normalize(progress)
	if !ok {
		return 1
	}
	return mapRange(t, 0, 1, 1, -(1 - l.DashRatio))
}

// DashVisible reports whether the point at fraction u of the line's length is
// inside the dash. The line carries a single dash of 1-dashRatio of its
// length; the offset slides it along the line and wraps.
func DashVisible(u, dashOffset, dashRatio float64) bool {
	return wrap01(u+dashOffset) >= dashRatio
}

// DashPattern converts a dash offset into an on/off stroke pattern and phase
// for a line of the given length, for canvases that dash natively.
func DashPattern(length, dashOffset, dashRatio float64) (on, off, phase float64) {
	on = (1 - dashRatio) * length
	off = dashRatio * length
	phase = wrap01(dashOffset-dashRatio) * length
	return on, off, phase
}

// Length returns the polyline length of the motion line.
func (l *MotionLineLayer) Length() float64 { return l.length }

// Node returns the line node.
func (l *MotionLineLayer) Node() *Node { return l.node }

// Ingredient is one image revealed around the package.
type Ingredient struct {
	Name string
	// Y is the vertical position as a fraction of the package height.
	Y float64
}

// DefaultIngredients are laid out top to bottom behind the package.
var DefaultIngredients = []Ingredient{
	{Name: "salmon", Y: 0.4},
	{Name: "peas", Y: 0.125},
	{Name: "blueberries", Y: -0.125},
	{Name: "sweetpotato", Y: -0.4},
}

// IngredientsLayer fades and scales ingredient sprites in over its range.
type IngredientsLayer struct {
	Range              ProgressRange
	MinScale, MaxScale float64

	node    *Node
	sprites []*Node
}

// NewIngredientsLayer builds one sprite per ingredient, positioned relative to
// a package of the given height, one unit behind it. Attach Node() to the
// follower so the ingredients travel with the package.
func NewIngredientsLayer(items []Ingredient, rng ProgressRange, packageHeight, minScale, maxScale float64) *IngredientsLayer {
	l := &IngredientsLayer{Range: rng, MinScale: minScale, MaxScale: maxScale}
	l.node = NewContainer("ingredients")
	for _, it := range items {
		s := NewSprite(it.Name, DefaultIngredientTextureWidth, DefaultIngredientTextureHeight)
		s.Position = Vec3{Y: it.Y * packageHeight, Z: -1}
		l.node.AddChild(s)
		l.sprites = append(l.sprites, s)
	}
	l.Apply(0, 0)
	return l
}

// Update returns the opacity and scale for progress. Both rest at 0 until
// progress passes the start of the range.
func (l *IngredientsLayer) Update(progress float64) (opacity, scale float64) {
	t, ok := l.Range.normalize(progress)
	if !ok {
		return 0, 0
	}
	return t, mapRange(t, 0, 1, l.MinScale, l.MaxScale)
}

// Apply writes opacity and scale to every sprite.
func (l *IngredientsLayer) Apply(opacity, scale float64) {
	for _, s := range l.sprites {
		s.SetAlpha(opacity)
		s.SetScale(Vec3{scale, scale, 1})
	}
}

// Node returns the container holding the ingredient sprites.
func (l *IngredientsLayer) Node() *Node { return l.node }

// AlphaTransitionLayer drives the staggered stripe reveal on the package. Its
// output range extends past 1 so that every stripe, each with its own
// threshold, has finished by the end of the scroll; the result is cubed for
// an ease-in and is not clamped to 1.
type AlphaTransitionLayer struct {
	Range ProgressRange
	Max   float64
}

// Value returns the transition parameter for progress.
func (l AlphaTransitionLayer) Value(progress float64) float64 {
	t, ok := l.Range.normalize(progress)
	if !ok {
		return 0
	}
	x := t * l.Max
	return x * x * x
}

// CameraTrack moves the camera faster than the page scrolls to make up for
// the synthetic spacing between screens, keeping mesh and layout visually on
// the same plane.
type CameraTrack struct {
	ScrollableHeight   float64
	VerticalOffsetUnit float64
	Screens            int
}

// Y returns the camera's vertical position for progress.
func (c CameraTrack) Y(progress float64) float64 {
	extra := 0.0
	if c.Screens > 1 {
		extra = c.VerticalOffsetUnit * float64(c.Screens-1)
	}
	return -progress * (c.ScrollableHeight + extra)
}
