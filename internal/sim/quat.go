package sim

import (
	"math"
)

// Quat is a unit quaternion (W scalar part) representing orientation.
type Quat struct {
	W, X, Y, Z float64
}

func QuatIdentity() Quat { return Quat{W: 1} }

// QuatFromAxisAngle builds a rotation of angle radians about axis.
// The axis must be unit length.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	half := angle * 0.5
	s := math.Sin(half)
	return Quat{
		W: math.Cos(half),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

func (q Quat) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return QuatIdentity()
	}
	inv := 1.0 / n
	return Quat{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

// RotateVec rotates v by q using q*v*q^-1 expanded to the two-cross form.
func (q Quat) RotateVec(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Integrate advances orientation by angular velocity omega (rad/s, world
// frame) over dt via an axis-angle exponential step, then renormalizes.
// A near-zero omega magnitude leaves the orientation unchanged so the axis
// extraction never divides by zero.
func (q Quat) Integrate(omega Vec3, dt float64) Quat {
	const minOmega = 1e-9
	mag := omega.Length()
	if mag < minOmega || dt == 0 {
		return q
	}
	axis := omega.Mul(1.0 / mag)
	step := QuatFromAxisAngle(axis, mag*dt)
	return step.Mul(q).Normalize()
}

// RollPitch extracts the roll (about Z) and pitch (about X) angles in
// radians from the orientation. Used by auto-hover to level the craft.
func (q Quat) RollPitch() (roll, pitch float64) {
	// Roll: rotation of body X axis out of the horizontal plane.
	sinRoll := 2 * (q.W*q.Z + q.X*q.Y)
	cosRoll := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	roll = math.Atan2(sinRoll, cosRoll)

	// Pitch: rotation of body Z axis out of the horizontal plane.
	sinPitch := 2 * (q.W*q.X - q.Y*q.Z)
	sinPitch = Clamp(sinPitch, -1, 1)
	pitch = math.Asin(sinPitch)
	return roll, pitch
}
