package core

import "math/rand"

// Primitive is an intersectable surface. Implementations are immutable
// after construction; the kd-tree and the scene's primitive list both hold
// non-owning references to the same concrete values.
type Primitive interface {
	// Intersect returns the nearest hit along ray within [tMin, tMax], or
	// ok=false if the primitive is not hit in that range.
	Intersect(ray Ray, tMin, tMax float32) (hit Intersection, ok bool)

	// Box returns the primitive's axis-aligned bounding box.
	Box() Box

	// Clip returns the tight bounding box of the portion of the
	// primitive that lies inside b. It must satisfy Clip(b) subset-of b;
	// if the primitive does not touch b, an empty box is returned.
	Clip(b Box) Box

	// Material returns the primitive's material.
	Material() Material
}

// Material exposes the per-wavelength scattering and emission behavior of
// a surface. The material library that implements this interface is an
// external collaborator (spec.md section 1); the core only consumes the
// capability set below.
type Material interface {
	// IsEmissive reports whether the material ever emits radiance.
	IsEmissive() bool

	// IsReflective reports whether the material ever scatters rays.
	IsReflective() bool

	// DiffuseReflectionProbability returns the probability that a ray
	// hitting this material at the given wavelength bin (or FullSpectrum)
	// scatters diffusely.
	DiffuseReflectionProbability(waveIndex int) float32

	// SpecularReflectionProbability returns the probability that a ray
	// scatters specularly. DiffuseReflectionProbability +
	// SpecularReflectionProbability must not exceed 1; any residual is
	// absorption.
	SpecularReflectionProbability(waveIndex int) float32

	// GetRadiance returns the emitted spectrum seen by rayIn at the
	// given intersection, indexed by spectrum bin.
	GetRadiance(rayIn Ray, hit Intersection) []float32

	// SampleDiffuse draws a diffuse bounce and its per-bin reflectance.
	SampleDiffuse(rayIn Ray, hit Intersection, rng *rand.Rand) (rayOut Ray, reflectance []float32)

	// SampleSpecular draws a specular bounce. ok is false when the
	// sampled direction would point into the surface, in which case the
	// path must terminate.
	SampleSpecular(rayIn Ray, hit Intersection, rng *rand.Rand) (rayOut Ray, reflectance []float32, ok bool)
}

// Normaled is an optional capability a Primitive implementation may
// expose: its geometric surface normal at a hit. The spec's Primitive
// capability set (Intersect/Box/Clip/Material) says nothing about
// normals, since a primitive need not be a smooth surface in general; but
// diffuse and specular sampling need one, so materials type-assert for
// this capability rather than it being part of the required interface.
type Normaled interface {
	Normal() Vec3
}

// XYZConverter maps a wavelength in nanometers to a CIE 1931 XYZ
// tristimulus value. The XYZ to display pipeline (tone-mapping, gamma,
// sRGB conversion) is the presenter's job; the core only produces XYZ.
type XYZConverter interface {
	GetXYZ(wavelengthNM float32) Vec3
}

// Logger is the narrow logging surface the CLI and the scene loader report
// progress and warnings through, kept independent of any concrete logging
// library so callers can back it with whatever they use.
type Logger interface {
	Printf(format string, args ...interface{})
}
