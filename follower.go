package spineflow

import (
	"fmt"
	"math"
)

// DefaultReferenceUp is the follower's rest orientation: the spine's direction
// of travel on a straight, downward run.
var DefaultReferenceUp = Vec3{0, -1, 0}

// degenerateAxisEpsilon is the cross-product length below which the rotation
// axis is treated as undefined.
const degenerateAxisEpsilon = 1e-9

// CurveFollower tracks the position and orientation of a mesh flowing along a
// spine. The deformed mesh itself is not readable back as a transform, so the
// follower recomputes where the mesh's center sits and carries children
// (ingredients, camera targets) along with it.
type CurveFollower struct {
	node   *Node
	curve  *CurvePath
	extent float64
	up     Vec3

	// normalizedOffset is half the follower's extent as a fraction of the
	// spine length. Update maps [0, 1] onto [offset, 1-offset] so the
	// follower's center, not its edge, lands on the screen.
	normalizedOffset float64

	t        float64
	position Vec3
	rotation Quat
	tangent  Vec3
}

// NewCurveFollower creates a follower on curve for an object of the given
// extent along the spine. The follower starts at t = 0.
func NewCurveFollower(curve *CurvePath, extent float64) (*CurveFollower, error) {
	if curve == nil || curve.Length() <= 0 {
		return nil, fmt.Errorf("curve follower: %w", ErrZeroLengthPath)
	}
	if !isFinite(extent) || extent < 0 {
		return nil, fmt.Errorf("curve follower: extent %v: %w", extent, ErrDegenerateExtent)
	}
	f := &CurveFollower{
		node:             NewMarker("follower", 0, extent),
		curve:            curve,
		extent:           extent,
		up:               DefaultReferenceUp,
		normalizedOffset: extent / curve.Length() / 2,
	}
	f.node.UserData = f
	f.Update(0)
	return f, nil
}

// SetReferenceUp changes the rest direction used to derive orientation. A zero
// vector is ignored.
func (f *CurveFollower) SetReferenceUp(up Vec3) {
	if n := up.Normalize(); n != (Vec3{}) {
		f.up = n
		f.Update(f.t)
	}
}

// Update moves the follower to progress t. t outside [0, 1] is accepted and
// extrapolates past the spine ends.
func (f *CurveFollower) Update(t float64) {
	f.t = t
	u := mapRange(t, 0, 1, f.normalizedOffset, 1-f.normalizedOffset)

	f.tangent = f.curve.TangentAt(u).Normalize()
	f.rotation = orientationFrom(f.up, f.tangent)
	f.position = f.curve.PointAt(u)

	f.node.Position = f.position
	f.node.Rotation = f.rotation
	f.node.MarkDirty()
}

// orientationFrom returns the rotation taking up onto tangent. When the two
// are parallel or opposite the axis is undefined and the zero rotation is
// returned.
func orientationFrom(up, tangent Vec3) Quat {
	axis := up.Cross(tangent)
	if axis.Len() < degenerateAxisEpsilon {
		return QuatIdentity
	}
	dot := math.Max(-1, math.Min(1, up.Dot(tangent)))
	return QuatFromAxisAngle(axis.Normalize(), math.Acos(dot))
}

// Position returns the follower's current point on the spine.
func (f *CurveFollower) Position() Vec3 { return f.position }

// Rotation returns the follower's current orientation.
func (f *CurveFollower) Rotation() Quat { return f.rotation }

// Tangent returns the unit tangent at the follower's position.
func (f *CurveFollower) Tangent() Vec3 { return f.tangent }

// NormalizedOffset returns half the extent as a fraction of the spine length.
func (f *CurveFollower) NormalizedOffset() float64 { return f.normalizedOffset }

// Progress returns the last t passed to Update.
func (f *CurveFollower) Progress() float64 { return f.t }

// Node returns the follower's marker node.
func (f *CurveFollower) Node() *Node { return f.node }
