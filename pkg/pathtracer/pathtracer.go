// Package pathtracer implements the spectral Russian-roulette path
// estimator: given a primary ray, it returns the XYZ contribution of one
// sample. Grounded line-for-line on original_source/.../TraceTask.cpp's
// Run() inner loop, but restructured into a stateless function that takes
// its scratch buffers as an explicit argument (spec.md section 9,
// "thread-local scratch" design note) instead of thread_local statics, so
// it is callable and testable without a running worker pool.
package pathtracer

import (
	"math/rand"

	"github.com/avandyke/spectrace/pkg/core"
)

// Scratch holds the per-wavelength buffers a single Trace call reuses,
// sized to the scene's spectrum bin count. Callers (the scheduler's
// per-worker task) own one Scratch per worker and pass it into every
// Trace call to avoid allocating on the hot path.
type Scratch struct {
	Reflectance []float32
	Radiance    []float32
	Weight      []float32
}

// NewScratch allocates a Scratch sized for a spectrum with the given bin
// count.
func NewScratch(bins int) *Scratch {
	return &Scratch{
		Reflectance: make([]float32, bins),
		Radiance:    make([]float32, bins),
		Weight:      make([]float32, bins),
	}
}

// Intersector is the subset of scene.Scene the tracer depends on, kept
// narrow so the path loop is testable against a hand-built scene double.
type Intersector interface {
	Intersect(ray core.Ray) (core.Intersection, bool)
}

// Tracer traces primary rays through a scene and accumulates their XYZ
// contribution, per spec.md section 4.2.
type Tracer struct {
	Scene     Intersector
	Spectrum  core.Spectrum
	Converter core.XYZConverter
	MaxDepth  int // 0 means unbounded, matching the original's no explicit cap
}

// New constructs a Tracer.
func New(scene Intersector, spectrum core.Spectrum, converter core.XYZConverter) *Tracer {
	return &Tracer{Scene: scene, Spectrum: spectrum, Converter: converter}
}

// Trace follows one path starting at ray and returns its XYZ contribution.
// scratch must be sized to t.Spectrum.Count (see NewScratch); rng is the
// calling worker's private PRNG stream.
func (t *Tracer) Trace(ray core.Ray, scratch *Scratch, rng *rand.Rand) core.Vec3 {
	weight := scratch.Weight
	for i := range weight {
		weight[i] = 1
	}

	color := core.Vec3{}
	depth := 0
	for {
		if t.MaxDepth > 0 && depth >= t.MaxDepth {
			return color
		}
		depth++

		hit, ok := t.Scene.Intersect(ray)
		if !ok {
			return color
		}
		mat := hit.Primitive.Material()

		reflectionProbability := float32(1.0)

		if mat.IsEmissive() {
			emissionProbability := float32(1.0)
			if mat.IsReflective() {
				emissionProbability = 0.9
			}

			if rng.Float32() < emissionProbability {
				radiance := mat.GetRadiance(ray, hit)
				color = color.Add(t.emittedXYZ(ray, radiance, weight, emissionProbability))
				return color
			}
			reflectionProbability = 1 - emissionProbability
		}

		diffuseProb := mat.DiffuseReflectionProbability(ray.WaveIndex)
		specProb := mat.SpecularReflectionProbability(ray.WaveIndex)

		next := rng.Float32()
		var newRay core.Ray
		var reflectance []float32

		switch {
		case next < diffuseProb:
			newRay, reflectance = mat.SampleDiffuse(ray, hit, rng)
			reflectionProbability *= diffuseProb
		case next < diffuseProb+specProb:
			var sampled bool
			newRay, reflectance, sampled = mat.SampleSpecular(ray, hit, rng)
			if !sampled {
				return color
			}
			reflectionProbability *= specProb
		default:
			return color
		}

		newRay.Refracted = ray.Refracted
		newRay.WaveIndex = ray.WaveIndex

		if ray.WaveIndex == core.FullSpectrum {
			for i := range weight {
				weight[i] *= reflectance[i] / reflectionProbability
			}
		} else {
			weight[ray.WaveIndex] *= reflectance[ray.WaveIndex] / reflectionProbability
		}

		ray = newRay
	}
}

// emittedXYZ converts an emission hit's radiance to XYZ, averaging over
// the spectrum for a full-spectrum ray or reporting a single bin for a
// monochromatic one, per spec.md section 4.2 step 3.
func (t *Tracer) emittedXYZ(ray core.Ray, radiance, weight []float32, emissionProbability float32) core.Vec3 {
	if ray.WaveIndex == core.FullSpectrum {
		sum := core.Vec3{}
		for i := 0; i < t.Spectrum.Count; i++ {
			r := radiance[i] * weight[i] / emissionProbability
			sum = sum.Add(t.Converter.GetXYZ(t.Spectrum.Wavelengths[i]).Multiply(r))
		}
		return sum.Multiply(1 / float32(t.Spectrum.Count))
	}
	r := radiance[ray.WaveIndex] * weight[ray.WaveIndex] / emissionProbability
	return t.Converter.GetXYZ(t.Spectrum.Wavelengths[ray.WaveIndex]).Multiply(r)
}
