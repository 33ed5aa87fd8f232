package spineflow

import "fmt"

// DefaultMaxOffsetDecimals is the precision maxFlowOffset is truncated to.
const DefaultMaxOffsetDecimals = 3

// maxOffsetDecimals bounds the precision fallback of maxFlowOffset.
const maxOffsetDecimals = 15

// FlowState holds the scalar parameters of a mesh bound to a spine.
type FlowState struct {
	// SpineLength is the spine's total arc length, read at bind time.
	SpineLength float64
	// SpineOffset is half the mesh extent: it centers the mesh on the spine
	// start instead of anchoring it by one edge.
	SpineOffset float64
	// PathOffset is the normalized position along the spine; the only value
	// that changes per frame.
	PathOffset float64
	// MaxFlowOffset is the PathOffset that places the mesh exactly at the
	// end of the spine. Beyond it the mesh wraps back to the start.
	MaxFlowOffset float64
}

// SpineFlow binds a mesh to a spine and drives its position along it.
//
// SetOffset does not clamp: callers keep the offset within [0, MaxFlowOffset]
// in steady state and may leave that range on purpose during transitions.
type SpineFlow struct {
	node   *Node
	mesh   *PlaneMesh
	curve  *CurvePath
	extent float64
	state  FlowState
}

// BindFlow binds mesh to curve. extent is the mesh's size along the spine
// (its height); decimals is the truncation precision of MaxFlowOffset
// (DefaultMaxOffsetDecimals when negative).
func BindFlow(mesh *PlaneMesh, curve *CurvePath, extent float64, decimals int) (*SpineFlow, error) {
	if curve == nil || curve.Length() <= 0 {
		return nil, fmt.Errorf("bind flow: %w", ErrZeroLengthPath)
	}
	if !isFinite(extent) || extent <= 0 {
		return nil, fmt.Errorf("bind flow: extent %v: %w", extent, ErrDegenerateExtent)
	}
	if mesh == nil || !isFinite(mesh.Area()) || mesh.Area() <= 0 {
		return nil, fmt.Errorf("bind flow: zero-area mesh: %w", ErrDegenerateExtent)
	}
	if decimals < 0 {
		decimals = DefaultMaxOffsetDecimals
	}

	f := &SpineFlow{
		mesh:   mesh,
		curve:  curve,
		extent: extent,
	}
	f.state.SpineLength = curve.Length()
	f.state.SpineOffset = extent / 2
	f.state.MaxFlowOffset = maxFlowOffset(1-extent/f.state.SpineLength, decimals)
	if f.state.MaxFlowOffset <= 0 {
		Logger().Warn("spineflow: mesh extent reaches past the spine",
			"extent", extent, "spineLength", f.state.SpineLength)
	}

	f.node = NewMesh("flow", make([]Vec3, 0, len(mesh.Rest)), mesh.UVs, mesh.Indices)
	f.node.UserData = f
	f.Apply()
	return f, nil
}

// maxFlowOffset truncates raw to decimals places. A positive raw value that
// truncates to zero keeps as many more places as it needs to stay positive.
func maxFlowOffset(raw float64, decimals int) float64 {
	v := truncDecimals(raw, decimals)
	for d := decimals + 1; v <= 0 && raw > 0 && d <= maxOffsetDecimals; d++ {
		v = truncDecimals(raw, d)
	}
	if v <= 0 && raw > 0 {
		return raw
	}
	return v
}

// SetOffset sets the path offset. The value is not clamped.
func (f *SpineFlow) SetOffset(v float64) {
	f.state.PathOffset = v
}

// Offset returns the current path offset.
func (f *SpineFlow) Offset() float64 {
	return f.state.PathOffset
}

// Update maps a progress in [0, 1] onto [0, MaxFlowOffset].
func (f *SpineFlow) Update(progress float64) {
	f.SetOffset(progress * f.state.MaxFlowOffset)
}

// State returns a copy of the flow parameters.
func (f *SpineFlow) State() FlowState {
	return f.state
}

// SpineLength returns the bound spine's length.
func (f *SpineFlow) SpineLength() float64 { return f.state.SpineLength }

// SpineOffset returns the static centering offset (half the mesh extent).
func (f *SpineFlow) SpineOffset() float64 { return f.state.SpineOffset }

// MaxFlowOffset returns the offset that puts the mesh at the spine end.
func (f *SpineFlow) MaxFlowOffset() float64 { return f.state.MaxFlowOffset }

// Extent returns the mesh extent along the spine.
func (f *SpineFlow) Extent() float64 { return f.extent }

// Curve returns the bound spine.
func (f *SpineFlow) Curve() *CurvePath { return f.curve }

// Mesh returns the rest mesh.
func (f *SpineFlow) Mesh() *PlaneMesh { return f.mesh }

// Node returns the mesh node holding the deformed vertices.
func (f *SpineFlow) Node() *Node { return f.node }

// Deform appends the mesh vertices bent at the current offset to dst[:0] and
// returns it.
func (f *SpineFlow) Deform(dst []Vec3) []Vec3 {
	return deformVertices(dst, f.mesh.Rest, f.curve, f.state.PathOffset, f.state.SpineOffset)
}

// Apply writes the deformed vertices into the flow's node.
func (f *SpineFlow) Apply() {
	f.node.Vertices = f.Deform(f.node.Vertices)
}

// Center returns the point on the spine under the mesh's center at the
// current offset.
func (f *SpineFlow) Center() Vec3 {
	u := f.state.PathOffset + f.state.SpineOffset/f.state.SpineLength
	return f.curve.PointAt(wrap01(u))
}
