package core

// Spectrum is an immutable discretization of visible light into Count
// wavelength bins. It is built once at scene-load time and shared
// read-only across every worker goroutine; nothing in this package ever
// mutates a Spectrum after construction.
type Spectrum struct {
	Count       int
	Wavelengths []float32 // nanometers, length Count
}

// NewSpectrum builds a Spectrum from an explicit list of wavelengths.
func NewSpectrum(wavelengths []float32) Spectrum {
	cp := make([]float32, len(wavelengths))
	copy(cp, wavelengths)
	return Spectrum{Count: len(cp), Wavelengths: cp}
}

// NewUniformSpectrum builds a Spectrum of count bins evenly spaced over
// [minNM, maxNM] inclusive, the usual way to discretize the visible range
// (roughly 380-730nm) for a spectral renderer.
func NewUniformSpectrum(count int, minNM, maxNM float32) Spectrum {
	if count <= 1 {
		return NewSpectrum([]float32{(minNM + maxNM) / 2})
	}
	wavelengths := make([]float32, count)
	step := (maxNM - minNM) / float32(count-1)
	for i := range wavelengths {
		wavelengths[i] = minNM + float32(i)*step
	}
	return NewSpectrum(wavelengths)
}
