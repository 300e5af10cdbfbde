package world_test

import (
	sim "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/sim"
	world "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/world"
)

type fakeTerrain struct {
	height func(x, z float64) float64
	loaded bool
}

func flatTerrain(h float64) *fakeTerrain {
	return &fakeTerrain{height: func(x, z float64) float64 { return h }, loaded: true}
}

func (t *fakeTerrain) HeightAt(x, z float64) float64 {
	if !t.loaded {
		return world.HeightNotLoaded
	}
	return t.height(x, z)
}

func (t *fakeTerrain) IsChunkLoadedAt(p sim.Vec3) bool { return t.loaded }

type fakePlayer struct {
	pos sim.Vec3
}

func (p *fakePlayer) PlayerPosition() sim.Vec3 { return p.pos }

type fakeSink struct {
	positions []sim.Vec3
}

func (s *fakeSink) SetPlayerPosition(p sim.Vec3) { s.positions = append(s.positions, p) }

func (s *fakeSink) last() (sim.Vec3, bool) {
	if len(s.positions) == 0 {
		return sim.Vec3{}, false
	}
	return s.positions[len(s.positions)-1], true
}

type fakeInput struct {
	patch sim.ControlPatch
}

func (i *fakeInput) ControlSnapshot() sim.ControlPatch { return i.patch }

type fakePrompt struct {
	shows []string
	hides []string
}

func (p *fakePrompt) ShowEnterPrompt(id string) { p.shows = append(p.shows, id) }
func (p *fakePrompt) HideEnterPrompt(id string) { p.hides = append(p.hides, id) }

type fakeAudio struct {
	plays   int
	stops   int
	volumes []float64
	rates   []float64
}

func (a *fakeAudio) Play()               { a.plays++ }
func (a *fakeAudio) Stop()               { a.stops++ }
func (a *fakeAudio) SetVolume(v float64) { a.volumes = append(a.volumes, v) }
func (a *fakeAudio) SetRate(r float64)   { a.rates = append(a.rates, r) }

type clearCall struct {
	center sim.Vec3
	radius float64
}

type fakeVegetation struct {
	calls []clearCall
}

func (v *fakeVegetation) ClearVegetation(center sim.Vec3, radius float64) {
	v.calls = append(v.calls, clearCall{center, radius})
}

type fakeCollision struct {
	calls []clearCall
}

func (c *fakeCollision) RegisterFootprint(center sim.Vec3, radius float64) {
	c.calls = append(c.calls, clearCall{center, radius})
}
