package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Forward is the local axis a segment prism is modelled along
var Forward = Vector3{X: 0, Y: 0, Z: 1}

// Quaternion is a unit rotation
type Quaternion struct {
	q mgl64.Quat
}

// IdentityQuaternion returns the rotation that changes nothing
func IdentityQuaternion() Quaternion {
	return Quaternion{q: mgl64.QuatIdent()}
}

// RotationBetween returns the shortest rotation taking from onto to.
// Antiparallel inputs rotate half a turn around an axis perpendicular to from.
// Zero-length inputs yield the identity.
func RotationBetween(from, to Vector3) Quaternion {
	if from.Length() == 0 || to.Length() == 0 {
		return IdentityQuaternion()
	}
	f := toMgl(from).Normalize()
	t := toMgl(to).Normalize()

	d := f.Dot(t)
	if d < -1+1e-12 {
		axis := mgl64.Vec3{1, 0, 0}.Cross(f)
		if axis.Len() < 1e-6 {
			axis = mgl64.Vec3{0, 1, 0}.Cross(f)
		}
		return Quaternion{q: mgl64.QuatRotate(math.Pi, axis.Normalize())}
	}

	// half-angle form, accurate up to the antiparallel cutoff above
	q := mgl64.Quat{W: 1 + d, V: f.Cross(t)}
	return Quaternion{q: q.Normalize()}
}

// Rotate applies the rotation to v
func (q Quaternion) Rotate(v Vector3) Vector3 {
	return fromMgl(q.q.Rotate(toMgl(v)))
}

// W returns the scalar part
func (q Quaternion) W() float64 {
	return q.q.W
}

// XYZ returns the vector part
func (q Quaternion) XYZ() Vector3 {
	return fromMgl(q.q.V)
}

// AxisAngle decomposes the rotation into a unit axis and an angle in radians.
// The identity reports the Y axis and a zero angle.
func (q Quaternion) AxisAngle() (Vector3, float64) {
	w := math.Max(-1, math.Min(1, q.q.W))
	angle := 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return Vector3{Y: 1}, 0
	}
	return fromMgl(q.q.V).Mul(1 / s), angle
}

// ApproxEqual treats q and -q as the same rotation
func (q Quaternion) ApproxEqual(other Quaternion, epsilon float64) bool {
	return q.q.ApproxEqualThreshold(other.q, epsilon) ||
		q.q.ApproxEqualThreshold(other.q.Scale(-1), epsilon)
}

func toMgl(v Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) Vector3 {
	return Vector3{X: v[0], Y: v[1], Z: v[2]}
}
