// Package material provides the concrete core.Material implementations
// consumed by the path tracer: diffuse (Lambertian), mirror (specular),
// emissive, and an additive mix of two materials (see Mix). Grounded in the
// teacher's pkg/material/lambertian.go, metal.go, emissive.go and mix.go,
// adapted from a single RGB albedo to a per-wavelength reflectance slice
// indexed by spectrum bin.
package material

import (
	"math/rand"

	"github.com/avandyke/spectrace/pkg/core"
)

// normalAt extracts the geometric normal at a hit by type-asserting the
// hit primitive for the core.Normaled capability. Primitives used with
// reflective or emissive materials must implement it.
func normalAt(hit core.Intersection) core.Vec3 {
	if n, ok := hit.Primitive.(core.Normaled); ok {
		return n.Normal()
	}
	return core.Vec3{}
}

// Diffuse is a perfectly Lambertian material: it scatters with
// cosine-weighted hemisphere sampling and a per-bin reflectance.
type Diffuse struct {
	Albedo []float32 // per-spectrum-bin reflectance, [0, 1]
	Prob   float32   // DiffuseReflectionProbability, constant across bins
}

// NewDiffuse constructs a Diffuse material.
func NewDiffuse(albedo []float32, prob float32) *Diffuse {
	return &Diffuse{Albedo: albedo, Prob: prob}
}

func (d *Diffuse) IsEmissive() bool   { return false }
func (d *Diffuse) IsReflective() bool { return d.Prob > 0 }

func (d *Diffuse) DiffuseReflectionProbability(waveIndex int) float32  { return d.Prob }
func (d *Diffuse) SpecularReflectionProbability(waveIndex int) float32 { return 0 }

func (d *Diffuse) GetRadiance(rayIn core.Ray, hit core.Intersection) []float32 { return nil }

// SampleDiffuse draws a cosine-weighted bounce around the surface normal.
func (d *Diffuse) SampleDiffuse(rayIn core.Ray, hit core.Intersection, rng *rand.Rand) (core.Ray, []float32) {
	normal := normalAt(hit)
	dir := core.RandomCosineDirection(normal, rng)
	out := core.Ray{Origin: hit.Point, Direction: dir, WaveIndex: rayIn.WaveIndex}.Offset()
	return out, d.Albedo
}

func (d *Diffuse) SampleSpecular(rayIn core.Ray, hit core.Intersection, rng *rand.Rand) (core.Ray, []float32, bool) {
	return core.Ray{}, nil, false
}

// Mirror is a perfectly specular material: reflection about the surface
// normal, with no fuzziness (spec.md carries no rough-specular lobe).
type Mirror struct {
	Albedo []float32
	Prob   float32
}

// NewMirror constructs a Mirror material.
func NewMirror(albedo []float32, prob float32) *Mirror {
	return &Mirror{Albedo: albedo, Prob: prob}
}

func (m *Mirror) IsEmissive() bool   { return false }
func (m *Mirror) IsReflective() bool { return m.Prob > 0 }

func (m *Mirror) DiffuseReflectionProbability(waveIndex int) float32  { return 0 }
func (m *Mirror) SpecularReflectionProbability(waveIndex int) float32 { return m.Prob }

func (m *Mirror) GetRadiance(rayIn core.Ray, hit core.Intersection) []float32 { return nil }

func (m *Mirror) SampleDiffuse(rayIn core.Ray, hit core.Intersection, rng *rand.Rand) (core.Ray, []float32) {
	return core.Ray{}, nil
}

// SampleSpecular reflects rayIn about the surface normal. ok is false when
// the incoming ray arrives from behind the surface or exactly grazes it,
// in which case the reflected direction would not leave the surface.
func (m *Mirror) SampleSpecular(rayIn core.Ray, hit core.Intersection, rng *rand.Rand) (core.Ray, []float32, bool) {
	normal := normalAt(hit)
	dir := core.Reflect(rayIn.Direction, normal)
	if dir.Dot(normal) <= 0 {
		return core.Ray{}, nil, false
	}
	out := core.Ray{Origin: hit.Point, Direction: dir, WaveIndex: rayIn.WaveIndex}.Offset()
	return out, m.Albedo, true
}

// Emissive is a light-emitting, non-reflective material.
type Emissive struct {
	Emission []float32 // per-spectrum-bin radiance
}

// NewEmissive constructs an Emissive material.
func NewEmissive(emission []float32) *Emissive {
	return &Emissive{Emission: emission}
}

func (e *Emissive) IsEmissive() bool   { return true }
func (e *Emissive) IsReflective() bool { return false }

func (e *Emissive) DiffuseReflectionProbability(waveIndex int) float32  { return 0 }
func (e *Emissive) SpecularReflectionProbability(waveIndex int) float32 { return 0 }

func (e *Emissive) GetRadiance(rayIn core.Ray, hit core.Intersection) []float32 { return e.Emission }

func (e *Emissive) SampleDiffuse(rayIn core.Ray, hit core.Intersection, rng *rand.Rand) (core.Ray, []float32) {
	return core.Ray{}, nil
}

func (e *Emissive) SampleSpecular(rayIn core.Ray, hit core.Intersection, rng *rand.Rand) (core.Ray, []float32, bool) {
	return core.Ray{}, nil, false
}
