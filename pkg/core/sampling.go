package core

import (
	"math"
	"math/rand"
)

// RandomCosineDirection draws a direction in the hemisphere around normal,
// weighted by cos(theta) so that it matches the Lambertian BRDF's PDF. The
// sample is generated in the canonical +Z hemisphere and rotated onto
// normal with RotateFromTo.
func RandomCosineDirection(normal Vec3, rng *rand.Rand) Vec3 {
	r1 := rng.Float32()
	r2 := rng.Float32()

	phi := 2 * math.Pi * float64(r1)
	sinTheta := float32(math.Sqrt(float64(r2)))
	cosTheta := float32(math.Sqrt(float64(1 - r2)))

	local := Vec3{
		X: sinTheta * float32(math.Cos(phi)),
		Y: sinTheta * float32(math.Sin(phi)),
		Z: cosTheta,
	}
	return local.RotateFromTo(Vec3{X: 0, Y: 0, Z: 1}, normal).Normalize()
}

// Reflect returns the reflection of v off a surface with normal n, where n
// is unit length.
func Reflect(v, n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
