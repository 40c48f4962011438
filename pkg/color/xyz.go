// Package color implements the core.XYZConverter interface: mapping a
// wavelength in nanometers to CIE 1931 XYZ tristimulus values. This is the
// one piece of the "XYZ -> display pipeline" collaborator spec.md assigns
// to the presenter that the core package still needs a concrete instance
// of, since the path tracer must convert each spectral sample to XYZ
// before it can be accumulated into an Image (spec.md section 4.2, step 3).
package color

import (
	"math"

	"github.com/avandyke/spectrace/pkg/core"
)

// CIE1931 implements core.XYZConverter using the Wyman/Sloan/Shirley
// multi-lobe Gaussian fit to the CIE 1931 2-degree standard observer
// color-matching functions. It is the standard closed-form replacement
// for a tabulated CIE1931.h lookup (referenced but not bundled in
// original_source) when an analytic, allocation-free evaluator is wanted
// on the path-tracer hot path.
type CIE1931 struct{}

// NewCIE1931 returns the standard-observer converter.
func NewCIE1931() CIE1931 { return CIE1931{} }

func gaussian(x, alpha, mu, sigma1, sigma2 float64) float64 {
	sigma := sigma1
	if x >= mu {
		sigma = sigma2
	}
	t := (x - mu) / sigma
	return alpha * math.Exp(-0.5*t*t)
}

// GetXYZ returns the CIE 1931 XYZ tristimulus value for a single
// wavelength in nanometers, implementing core.XYZConverter.
func (CIE1931) GetXYZ(wavelengthNM float32) core.Vec3 {
	w := float64(wavelengthNM)

	x := gaussian(w, 1.056, 599.8, 37.9, 31.0) +
		gaussian(w, 0.362, 442.0, 16.0, 26.7) +
		gaussian(w, -0.065, 501.1, 20.4, 26.2)

	y := gaussian(w, 0.821, 568.8, 46.9, 40.5) +
		gaussian(w, 0.286, 530.9, 16.3, 31.1)

	z := gaussian(w, 1.217, 437.0, 11.8, 36.0) +
		gaussian(w, 0.681, 459.0, 26.0, 13.8)

	return core.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
}
