// Package core holds the vector, box, ray, spectrum and capability
// interfaces shared by every other package in the tracer.
package core

import (
	"fmt"
	"math"
)

// Vec3 is a 3-component vector. Components are float32, matching the
// precision of the original tracer this design descends from.
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 constructs a Vec3 from components.
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Vec3FromSpherical builds a unit direction vector from a spherical angle
// pair, phi measured around the up axis and theta from the up axis.
func Vec3FromSpherical(phi, theta float32) Vec3 {
	sinTheta := float32(math.Sin(float64(theta)))
	return Vec3{
		X: sinTheta * float32(math.Cos(float64(phi))),
		Y: float32(math.Cos(float64(theta))),
		Z: sinTheta * float32(math.Sin(float64(phi))),
	}
}

func (v Vec3) String() string {
	return fmt.Sprintf("{%.4g, %.4g, %.4g}", v.X, v.Y, v.Z)
}

// Add returns the sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Subtract returns the difference of two vectors.
func (v Vec3) Subtract(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Multiply scales the vector by a scalar.
func (v Vec3) Multiply(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// MultiplyVec returns the component-wise product of two vectors.
func (v Vec3) MultiplyVec(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Negate returns the additive inverse of the vector.
func (v Vec3) Negate() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns the squared Euclidean norm.
func (v Vec3) LengthSquared() float32 { return v.Dot(v) }

// Length returns the Euclidean norm.
func (v Vec3) Length() float32 { return float32(math.Sqrt(float64(v.LengthSquared()))) }

// Normalize returns a unit-length vector in the same direction. The zero
// vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Multiply(1 / l)
}

// Component returns the value along the given axis (0=x, 1=y, 2=z).
func (v Vec3) Component(axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns a copy of v with the given axis replaced.
func (v Vec3) WithComponent(axis int, value float32) Vec3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// RotateAboutAxis rotates v by theta radians around the given unit axis,
// using Rodrigues' rotation formula.
func (v Vec3) RotateAboutAxis(axis Vec3, theta float32) Vec3 {
	cosT := float32(math.Cos(float64(theta)))
	sinT := float32(math.Sin(float64(theta)))
	term1 := v.Multiply(cosT)
	term2 := axis.Cross(v).Multiply(sinT)
	term3 := axis.Multiply(axis.Dot(v) * (1 - cosT))
	return term1.Add(term2).Add(term3)
}

// RotateFromTo returns v rotated the same way that `from` must be rotated
// to land on `to` (both assumed unit vectors), using the axis perpendicular
// to both. If from and to are parallel, v is returned unrotated; if they
// are anti-parallel, v is given a half turn about an axis perpendicular
// to from.
func (v Vec3) RotateFromTo(from, to Vec3) Vec3 {
	axis := from.Cross(to)
	sinTheta := axis.Length()
	if sinTheta < 1e-8 {
		if from.Dot(to) >= 0 {
			return v
		}
		axis = from.Cross(Vec3{X: 1})
		if axis.LengthSquared() < 1e-8 {
			axis = from.Cross(Vec3{Y: 1})
		}
		return v.RotateAboutAxis(axis.Normalize(), math.Pi)
	}
	axis = axis.Multiply(1 / sinTheta)
	cosTheta := from.Dot(to)
	theta := float32(math.Atan2(float64(sinTheta), float64(cosTheta)))
	return v.RotateAboutAxis(axis, theta)
}

// RotateFromToAxis is RotateFromTo constrained to rotate about the given
// axis rather than the axis derived from `from` and `to`; it is used to
// compose camera basis rotations that must each pivot about a known axis.
func (v Vec3) RotateFromToAxis(from, to, axis Vec3) Vec3 {
	axis = axis.Normalize()
	// Project from/to onto the plane perpendicular to axis to find the
	// signed angle between them around axis.
	fromProj := from.Subtract(axis.Multiply(axis.Dot(from))).Normalize()
	toProj := to.Subtract(axis.Multiply(axis.Dot(to))).Normalize()
	cosTheta := fromProj.Dot(toProj)
	cosTheta = clamp32(cosTheta, -1, 1)
	sinTheta := axis.Dot(fromProj.Cross(toProj))
	theta := float32(math.Atan2(float64(sinTheta), float64(cosTheta)))
	return v.RotateAboutAxis(axis, theta)
}

func clamp32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
