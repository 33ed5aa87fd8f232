package spineflow

import (
	"fmt"
	"math"
	"sort"
)

// DefaultArcDivisions is the number of samples used to build a segment's
// arc-length table.
const DefaultArcDivisions = 200

// Segment is one piece of a CurvePath, evaluated with a parametric t in [0, 1].
// Implementations are Line and CubicBezier.
type Segment interface {
	Start() Vec3
	End() Vec3
	// Point returns the position at parametric t.
	Point(t float64) Vec3
	// Derivative returns the unnormalized first derivative at parametric t.
	Derivative(t float64) Vec3
}

// Line is a straight segment from P0 to P1.
type Line struct {
	P0, P1 Vec3
}

func (l Line) Start() Vec3             { return l.P0 }
func (l Line) End() Vec3               { return l.P1 }
func (l Line) Point(t float64) Vec3    { return l.P0.Lerp(l.P1, t) }
func (l Line) Derivative(float64) Vec3 { return l.P1.Sub(l.P0) }

// CubicBezier is a cubic Bézier segment from P0 to P1 with control points C0
// and C1.
type CubicBezier struct {
	P0, C0, C1, P1 Vec3
}

func (c CubicBezier) Start() Vec3 { return c.P0 }
func (c CubicBezier) End() Vec3   { return c.P1 }

// Point evaluates the Bernstein form.
func (c CubicBezier) Point(t float64) Vec3 {
	u := 1 - t
	u2 := u * u
	t2 := t * t
	return c.P0.Scale(u2 * u).
		Add(c.C0.Scale(3 * u2 * t)).
		Add(c.C1.Scale(3 * u * t2)).
		Add(c.P1.Scale(t2 * t))
}

// Derivative evaluates B'(t) = 3(1-t)²(C0-P0) + 6(1-t)t(C1-C0) + 3t²(P1-C1).
func (c CubicBezier) Derivative(t float64) Vec3 {
	u := 1 - t
	return c.C0.Sub(c.P0).Scale(3 * u * u).
		Add(c.C1.Sub(c.C0).Scale(6 * u * t)).
		Add(c.P1.Sub(c.C1).Scale(3 * t * t))
}

// arcTable holds cumulative chord lengths sampled at uniform parametric steps.
// lengths[0] is 0 and lengths[len-1] is the segment's total length.
type arcTable struct {
	lengths []float64
}

func newArcTable(s Segment, divisions int) arcTable {
	if _, ok := s.(Line); ok {
		divisions = 1
	}
	lengths := make([]float64, divisions+1)
	prev := s.Point(0)
	for i := 1; i <= divisions; i++ {
		p := s.Point(float64(i) / float64(divisions))
		lengths[i] = lengths[i-1] + p.Distance(prev)
		prev = p
	}
	return arcTable{lengths: lengths}
}

func (a arcTable) total() float64 {
	return a.lengths[len(a.lengths)-1]
}

// paramAt maps a normalized arc length u in [0, 1] to the parametric t that
// lies at that fraction of the segment's length.
func (a arcTable) paramAt(u float64) float64 {
	n := len(a.lengths) - 1
	total := a.total()
	if total == 0 || n == 0 {
		return u
	}
	target := u * total
	// First index whose cumulative length reaches the target.
	i := sort.SearchFloat64s(a.lengths, target)
	if i <= 0 {
		return 0
	}
	if i > n {
		return 1
	}
	before := a.lengths[i-1]
	span := a.lengths[i] - before
	if span == 0 {
		return float64(i) / float64(n)
	}
	return (float64(i-1) + (target-before)/span) / float64(n)
}

// CurvePath is an ordered, continuous sequence of segments evaluated by
// normalized arc length, so equal steps of u travel equal distances across
// segment joins. A CurvePath is immutable once built.
type CurvePath struct {
	segments []Segment
	tables   []arcTable
	cum      []float64 // cum[i] is the length of segments[0..i] inclusive
	length   float64
}

// NewCurvePath builds a path from segments, caching per-segment arc-length
// tables with the given number of divisions (DefaultArcDivisions when <= 0).
// Consecutive segments must share an endpoint.
func NewCurvePath(segments []Segment, arcDivisions int) (*CurvePath, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("curve path: no segments: %w", ErrZeroLengthPath)
	}
	if arcDivisions <= 0 {
		arcDivisions = DefaultArcDivisions
	}
	p := &CurvePath{
		segments: append([]Segment(nil), segments...),
		tables:   make([]arcTable, len(segments)),
		cum:      make([]float64, len(segments)),
	}
	for i, s := range p.segments {
		if i > 0 && !p.segments[i-1].End().ApproxEqual(s.Start(), 1e-9) {
			return nil, fmt.Errorf("curve path: segment %d starts at %v, previous ends at %v",
				i, s.Start(), p.segments[i-1].End())
		}
		p.tables[i] = newArcTable(s, arcDivisions)
		p.length += p.tables[i].total()
		p.cum[i] = p.length
	}
	if p.length == 0 || !isFinite(p.length) {
		return nil, fmt.Errorf("curve path: length %v: %w", p.length, ErrZeroLengthPath)
	}
	return p, nil
}

// Segments returns the segment list. The returned slice MUST NOT be mutated.
func (p *CurvePath) Segments() []Segment {
	return p.segments
}

// Len returns the number of segments.
func (p *CurvePath) Len() int {
	return len(p.segments)
}

// Length returns the total arc length.
func (p *CurvePath) Length() float64 {
	return p.length
}

// SegmentLengths returns the arc length of every segment.
func (p *CurvePath) SegmentLengths() []float64 {
	out := make([]float64, len(p.tables))
	for i, t := range p.tables {
		out[i] = t.total()
	}
	return out
}

// Start returns the first point of the path.
func (p *CurvePath) Start() Vec3 {
	return p.segments[0].Start()
}

// End returns the last point of the path.
func (p *CurvePath) End() Vec3 {
	return p.segments[len(p.segments)-1].End()
}

// locate returns the segment index and the segment-local parametric t for a
// normalized arc length u in [0, 1].
func (p *CurvePath) locate(u float64) (int, float64) {
	d := u * p.length
	i := sort.SearchFloat64s(p.cum, d)
	if i >= len(p.segments) {
		i = len(p.segments) - 1
	}
	segLen := p.tables[i].total()
	if segLen == 0 {
		return i, 0
	}
	prev := 0.0
	if i > 0 {
		prev = p.cum[i-1]
	}
	local := clamp01((d - prev) / segLen)
	return i, p.tables[i].paramAt(local)
}

// PointAt returns the point at normalized arc length u. Values outside [0, 1]
// are extrapolated along the end tangents rather than rejected.
func (p *CurvePath) PointAt(u float64) Vec3 {
	switch {
	case u < 0:
		return p.Start().Add(p.TangentAt(0).Scale(u * p.length))
	case u > 1:
		return p.End().Add(p.TangentAt(1).Scale((u - 1) * p.length))
	}
	i, t := p.locate(u)
	return p.segments[i].Point(t)
}

// TangentAt returns the unit tangent at normalized arc length u, clamped to
// [0, 1].
func (p *CurvePath) TangentAt(u float64) Vec3 {
	i, t := p.locate(clamp01(u))
	return segmentTangent(p.segments[i], t)
}

// segmentTangent returns a unit tangent, falling back to a central difference
// and then to the chord where the derivative vanishes (a control point that
// coincides with its endpoint).
func segmentTangent(s Segment, t float64) Vec3 {
	d := s.Derivative(t)
	if d.Len() > 1e-12 {
		return d.Normalize()
	}
	const delta = 1e-4
	t0 := math.Max(0, t-delta)
	t1 := math.Min(1, t+delta)
	d = s.Point(t1).Sub(s.Point(t0))
	if d.Len() > 1e-12 {
		return d.Normalize()
	}
	return s.End().Sub(s.Start()).Normalize()
}

// Points samples divisions+1 points spaced evenly by arc length.
func (p *CurvePath) Points(divisions int) []Vec3 {
	if divisions < 1 {
		divisions = 1
	}
	pts := make([]Vec3, divisions+1)
	for i := range pts {
		pts[i] = p.PointAt(float64(i) / float64(divisions))
	}
	return pts
}
