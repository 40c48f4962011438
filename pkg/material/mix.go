package material

import (
	"math/rand"

	"github.com/avandyke/spectrace/pkg/core"
)

// Mix combines two materials on one surface, such as an area light panel
// that also reflects diffusely. Unlike the teacher's Mix (a probabilistic
// either/or choice between two opaque BRDFs), spectrace's materials expose
// independent emission and scattering capabilities, so Mix composes them
// additively rather than picking one material per sample:
// emission is summed, and the diffuse/specular probabilities of the two
// materials are summed (callers are responsible for keeping the total at
// or below 1).
type Mix struct {
	A, B core.Material
}

// NewMix constructs a Mix of two materials.
func NewMix(a, b core.Material) *Mix {
	return &Mix{A: a, B: b}
}

func (m *Mix) IsEmissive() bool   { return m.A.IsEmissive() || m.B.IsEmissive() }
func (m *Mix) IsReflective() bool { return m.A.IsReflective() || m.B.IsReflective() }

func (m *Mix) DiffuseReflectionProbability(waveIndex int) float32 {
	return m.A.DiffuseReflectionProbability(waveIndex) + m.B.DiffuseReflectionProbability(waveIndex)
}

func (m *Mix) SpecularReflectionProbability(waveIndex int) float32 {
	return m.A.SpecularReflectionProbability(waveIndex) + m.B.SpecularReflectionProbability(waveIndex)
}

// GetRadiance sums the emission of both component materials.
func (m *Mix) GetRadiance(rayIn core.Ray, hit core.Intersection) []float32 {
	ra := m.A.GetRadiance(rayIn, hit)
	rb := m.B.GetRadiance(rayIn, hit)
	if ra == nil {
		return rb
	}
	if rb == nil {
		return ra
	}
	out := make([]float32, len(ra))
	for i := range out {
		out[i] = ra[i] + rb[i]
	}
	return out
}

// SampleDiffuse picks a component weighted by its relative diffuse
// probability and draws from it.
func (m *Mix) SampleDiffuse(rayIn core.Ray, hit core.Intersection, rng *rand.Rand) (core.Ray, []float32) {
	pa := m.A.DiffuseReflectionProbability(rayIn.WaveIndex)
	pb := m.B.DiffuseReflectionProbability(rayIn.WaveIndex)
	total := pa + pb
	if total <= 0 {
		return core.Ray{}, nil
	}
	if rng.Float32()*total < pa {
		return m.A.SampleDiffuse(rayIn, hit, rng)
	}
	return m.B.SampleDiffuse(rayIn, hit, rng)
}

// SampleSpecular picks a component weighted by its relative specular
// probability and draws from it.
func (m *Mix) SampleSpecular(rayIn core.Ray, hit core.Intersection, rng *rand.Rand) (core.Ray, []float32, bool) {
	pa := m.A.SpecularReflectionProbability(rayIn.WaveIndex)
	pb := m.B.SpecularReflectionProbability(rayIn.WaveIndex)
	total := pa + pb
	if total <= 0 {
		return core.Ray{}, nil, false
	}
	if rng.Float32()*total < pa {
		return m.A.SampleSpecular(rayIn, hit, rng)
	}
	return m.B.SampleSpecular(rayIn, hit, rng)
}
