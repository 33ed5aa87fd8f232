package spineflow

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D point or direction in mesh space. X grows to the right,
// Y grows upward on screen and Z points toward the viewer.
type Vec3 struct {
	X, Y, Z float64
}

// Axis constants.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// gl converts v for mgl64 arithmetic.
func (v Vec3) gl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromGL(v mgl64.Vec3) Vec3 { return Vec3{v[0], v[1], v[2]} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return fromGL(v.gl().Add(o.gl())) }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return fromGL(v.gl().Sub(o.gl())) }

// Scale multiplies every component by s.
func (v Vec3) Scale(s float64) Vec3 { return fromGL(v.gl().Mul(s)) }

// Mul multiplies component-wise.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 { return v.gl().Dot(o.gl()) }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 { return fromGL(v.gl().Cross(o.gl())) }

// Len returns the Euclidean length.
func (v Vec3) Len() float64 { return v.gl().Len() }

// Distance returns the distance between two points.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	if v.Len() == 0 {
		return Vec3{}
	}
	return fromGL(v.gl().Normalize())
}

// Lerp interpolates linearly from v to o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	a := v.gl()
	return fromGL(a.Add(o.gl().Sub(a).Mul(t)))
}

// ApproxEqual reports whether every component of v is within eps of o.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps &&
		math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Quat is a rotation quaternion (X, Y, Z imaginary, W real).
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the zero rotation.
var QuatIdentity = Quat{W: 1}

func (q Quat) gl() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

func quatFromGL(q mgl64.Quat) Quat {
	return Quat{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// QuatFromAxisAngle builds a rotation of angle radians around axis. The axis
// must already be normalized.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	return quatFromGL(mgl64.QuatRotate(angle, axis.gl()))
}

// Mul returns the Hamilton product q * r (apply r first, then q).
func (q Quat) Mul(r Quat) Quat { return quatFromGL(q.gl().Mul(r.gl())) }

// Normalize returns q scaled to unit length. A zero quaternion becomes the
// identity.
func (q Quat) Normalize() Quat { return quatFromGL(q.gl().Normalize()) }

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 { return fromGL(q.gl().Rotate(v.gl())) }

// Angle returns the rotation angle in radians, in [0, 2π].
func (q Quat) Angle() float64 {
	return 2 * math.Acos(mgl64.Clamp(q.W, -1, 1))
}

// ApproxEqual reports whether q and r are component-wise within eps.
func (q Quat) ApproxEqual(r Quat, eps float64) bool {
	return math.Abs(q.X-r.X) <= eps && math.Abs(q.Y-r.Y) <= eps &&
		math.Abs(q.Z-r.Z) <= eps && math.Abs(q.W-r.W) <= eps
}
