package pathtracer

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/avandyke/spectrace/pkg/color"
	"github.com/avandyke/spectrace/pkg/core"
)

// fakeSurface is the minimal core.Normaled + core.Primitive double used to
// drive the tracer without a real kd-tree or geometry package.
type fakeSurface struct {
	normal   core.Vec3
	material core.Material
}

func (s *fakeSurface) Normal() core.Vec3                                       { return s.normal }
func (s *fakeSurface) Box() core.Box                                           { return core.Box{} }
func (s *fakeSurface) Clip(b core.Box) core.Box                                { return core.Box{} }
func (s *fakeSurface) Material() core.Material                                 { return s.material }
func (s *fakeSurface) Intersect(ray core.Ray, tMin, tMax float32) (core.Intersection, bool) {
	return core.Intersection{Point: core.Vec3{}, Distance: 1, Primitive: s}, true
}

// alwaysHits wraps a single primitive facing +Z: it is hit by any ray
// still travelling toward it (Direction.Z < 0), but a diffuse bounce
// sampled from its +Z-facing normal travels away (Direction.Z > 0) and
// correctly misses, since there is nothing else in this fake scene.
type alwaysHits struct{ surface *fakeSurface }

func (a alwaysHits) Intersect(ray core.Ray) (core.Intersection, bool) {
	if ray.Direction.Z >= 0 {
		return core.Intersection{}, false
	}
	return a.surface.Intersect(ray, 0, 1e9)
}

// neverHits is an empty scene.
type neverHits struct{}

func (neverHits) Intersect(ray core.Ray) (core.Intersection, bool) { return core.Intersection{}, false }

func uniformSpectrum() core.Spectrum { return core.NewUniformSpectrum(4, 400, 700) }

// emissiveOnlyMaterial is a fake core.Material that only emits, with a
// fixed per-bin radiance and no scattering - used for the "single emissive
// plane" scenario (spec.md section 8, scenario 1).
type emissiveOnlyMaterial struct{ radiance []float32 }

func (m emissiveOnlyMaterial) IsEmissive() bool   { return true }
func (m emissiveOnlyMaterial) IsReflective() bool { return false }
func (m emissiveOnlyMaterial) DiffuseReflectionProbability(int) float32  { return 0 }
func (m emissiveOnlyMaterial) SpecularReflectionProbability(int) float32 { return 0 }
func (m emissiveOnlyMaterial) GetRadiance(core.Ray, core.Intersection) []float32 { return m.radiance }
func (m emissiveOnlyMaterial) SampleDiffuse(core.Ray, core.Intersection, *rand.Rand) (core.Ray, []float32) {
	return core.Ray{}, nil
}
func (m emissiveOnlyMaterial) SampleSpecular(core.Ray, core.Intersection, *rand.Rand) (core.Ray, []float32, bool) {
	return core.Ray{}, nil, false
}

func TestTraceMissReturnsZero(t *testing.T) {
	tracer := New(neverHits{}, uniformSpectrum(), color.NewCIE1931())
	scratch := NewScratch(tracer.Spectrum.Count)
	out := tracer.Trace(core.NewRay(core.Vec3{}, core.Vec3{X: 0, Y: 0, Z: -1}), scratch, rand.New(rand.NewSource(1)))
	if out != (core.Vec3{}) {
		t.Errorf("Trace on an empty scene = %v, want zero", out)
	}
}

// TestTraceEmissivePlaneMatchesAnalyticRadiance is spec.md section 8
// scenario 1: a single fully-emissive surface facing the camera should
// return exactly its radiance converted to XYZ (no randomness enters
// since emissionProbability is 1 for a non-reflective emitter).
func TestTraceEmissivePlaneMatchesAnalyticRadiance(t *testing.T) {
	bins := 4
	radiance := make([]float32, bins)
	for i := range radiance {
		radiance[i] = 1
	}
	surface := &fakeSurface{normal: core.Vec3{X: 0, Y: 0, Z: 1}, material: emissiveOnlyMaterial{radiance: radiance}}
	spectrum := uniformSpectrum()
	converter := color.NewCIE1931()
	tracer := New(alwaysHits{surface}, spectrum, converter)

	var want core.Vec3
	for i := 0; i < spectrum.Count; i++ {
		want = want.Add(converter.GetXYZ(spectrum.Wavelengths[i]))
	}
	want = want.Multiply(1 / float32(spectrum.Count))

	scratch := NewScratch(spectrum.Count)
	got := tracer.Trace(core.NewRay(core.Vec3{X: 0, Y: 0, Z: 5}, core.Vec3{X: 0, Y: 0, Z: -1}), scratch, rand.New(rand.NewSource(7)))

	if diff := got.Subtract(want).Length(); diff > 1e-4 {
		t.Errorf("Trace = %v, want %v (diff %g)", got, want, diff)
	}
}

// TestTraceSpecularDeadEndTerminates is spec.md section 8 scenario 5: a
// material whose specular sampler always points into the surface must
// terminate the path rather than loop.
func TestTraceSpecularDeadEndTerminates(t *testing.T) {
	mat := deadEndSpecular{}
	surface := &fakeSurface{normal: core.Vec3{X: 0, Y: 0, Z: 1}, material: mat}
	tracer := New(alwaysHits{surface}, uniformSpectrum(), color.NewCIE1931())
	scratch := NewScratch(tracer.Spectrum.Count)

	done := make(chan core.Vec3, 1)
	go func() {
		done <- tracer.Trace(core.NewRay(core.Vec3{X: 0, Y: 0, Z: 5}, core.Vec3{X: 0, Y: 0, Z: -1}), scratch, rand.New(rand.NewSource(3)))
	}()
	select {
	case got := <-done:
		if got != (core.Vec3{}) {
			t.Errorf("Trace = %v, want zero (dead-end path contributes nothing)", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Trace did not terminate on a specular dead-end")
	}
}

type deadEndSpecular struct{}

func (deadEndSpecular) IsEmissive() bool   { return false }
func (deadEndSpecular) IsReflective() bool { return true }
func (deadEndSpecular) DiffuseReflectionProbability(int) float32  { return 0 }
func (deadEndSpecular) SpecularReflectionProbability(int) float32 { return 1 }
func (deadEndSpecular) GetRadiance(core.Ray, core.Intersection) []float32 { return nil }
func (deadEndSpecular) SampleDiffuse(core.Ray, core.Intersection, *rand.Rand) (core.Ray, []float32) {
	return core.Ray{}, nil
}
func (deadEndSpecular) SampleSpecular(core.Ray, core.Intersection, *rand.Rand) (core.Ray, []float32, bool) {
	return core.Ray{}, nil, false
}

// TestTraceConvergesToAnalyticRadiance is spec.md section 8's unbiasedness
// invariant: averaging many samples of a Lambertian-emitter-only scene
// (one surface that is both emissive and diffusely reflective, with no
// other light source) converges to the analytic radiance.
func TestTraceConvergesToAnalyticRadiance(t *testing.T) {
	bins := 3
	radiance := make([]float32, bins)
	albedo := make([]float32, bins)
	for i := range radiance {
		radiance[i] = 2
		albedo[i] = 0.6
	}
	mat := lambertianEmitter{radiance: radiance, albedo: albedo, diffuseProb: 0.9}
	surface := &fakeSurface{normal: core.Vec3{X: 0, Y: 0, Z: 1}, material: mat}
	spectrum := core.NewUniformSpectrum(bins, 500, 600)
	converter := color.NewCIE1931()
	tracer := New(alwaysHits{surface}, spectrum, converter)

	var want core.Vec3
	for i := 0; i < spectrum.Count; i++ {
		want = want.Add(converter.GetXYZ(spectrum.Wavelengths[i]).Multiply(radiance[i]))
	}
	want = want.Multiply(1 / float32(spectrum.Count))

	const n = 20000
	xs, ys, zs := make([]float64, n), make([]float64, n), make([]float64, n)
	rng := rand.New(rand.NewSource(99))
	scratch := NewScratch(spectrum.Count)
	for i := 0; i < n; i++ {
		got := tracer.Trace(core.NewRay(core.Vec3{X: 0, Y: 0, Z: 5}, core.Vec3{X: 0, Y: 0, Z: -1}), scratch, rng)
		xs[i], ys[i], zs[i] = float64(got.X), float64(got.Y), float64(got.Z)
	}

	meanX, meanY, meanZ := stat.Mean(xs, nil), stat.Mean(ys, nil), stat.Mean(zs, nil)
	stderr := stat.StdDev(ys, nil) / math.Sqrt(n)
	tolerance := 6*stderr + 1e-4

	if math.Abs(meanX-float64(want.X)) > tolerance*4 ||
		math.Abs(meanY-float64(want.Y)) > tolerance ||
		math.Abs(meanZ-float64(want.Z)) > tolerance*4 {
		t.Errorf("mean XYZ = (%g, %g, %g), want %v within %g", meanX, meanY, meanZ, want, tolerance)
	}
}

// lambertianEmitter is both emissive and diffusely reflective, with no
// other light source in the scene: the only nonzero contribution path is
// direct emission, so the analytic expectation equals the radiance.
type lambertianEmitter struct {
	radiance    []float32
	albedo      []float32
	diffuseProb float32
}

func (m lambertianEmitter) IsEmissive() bool   { return true }
func (m lambertianEmitter) IsReflective() bool { return true }
func (m lambertianEmitter) DiffuseReflectionProbability(int) float32  { return m.diffuseProb }
func (m lambertianEmitter) SpecularReflectionProbability(int) float32 { return 0 }
func (m lambertianEmitter) GetRadiance(core.Ray, core.Intersection) []float32 { return m.radiance }
func (m lambertianEmitter) SampleDiffuse(rayIn core.Ray, hit core.Intersection, rng *rand.Rand) (core.Ray, []float32) {
	dir := core.RandomCosineDirection(core.Vec3{X: 0, Y: 0, Z: 1}, rng)
	return core.Ray{Origin: hit.Point, Direction: dir, WaveIndex: rayIn.WaveIndex}, m.albedo
}
func (m lambertianEmitter) SampleSpecular(core.Ray, core.Intersection, *rand.Rand) (core.Ray, []float32, bool) {
	return core.Ray{}, nil, false
}

