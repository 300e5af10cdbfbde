package world

import (
	"math"

	sim "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/sim"
)

// SineTerrain is an analytic wavy height field with a circular loaded
// region. Columns outside the region return the not-loaded sentinel, which
// makes it a convenient stand-in for chunk-streamed terrain in the
// headless driver and in tests.
type SineTerrain struct {
	Amplitude    float64
	Wavelength   float64
	LoadedRadius float64 // around the origin; <= 0 means everything loaded
}

func NewSineTerrain(amplitude, wavelength float64) *SineTerrain {
	return &SineTerrain{Amplitude: amplitude, Wavelength: wavelength}
}

func (t *SineTerrain) HeightAt(x, z float64) float64 {
	if !t.loaded(x, z) {
		return HeightNotLoaded
	}
	if t.Wavelength <= 0 {
		return 0
	}
	return t.Amplitude * (math.Sin(x/t.Wavelength) + 0.5*math.Sin((x+z)/(t.Wavelength*0.5)))
}

func (t *SineTerrain) IsChunkLoadedAt(p sim.Vec3) bool {
	return t.loaded(p.X, p.Z)
}

func (t *SineTerrain) loaded(x, z float64) bool {
	if t.LoadedRadius <= 0 {
		return true
	}
	return math.Hypot(x, z) <= t.LoadedRadius
}
