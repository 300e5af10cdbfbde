package world

import (
	sim "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/sim"
)

// HeightNotLoaded is the sentinel a TerrainProvider returns for a column
// whose chunk has not streamed in yet.
const HeightNotLoaded = -10000.0

// HeightLoaded reports whether a terrain sample is a real height rather
// than the not-loaded sentinel.
func HeightLoaded(h float64) bool {
	return h > HeightNotLoaded+1
}

// TerrainProvider is the synchronous in-memory terrain query surface.
type TerrainProvider interface {
	// HeightAt returns the ground height at (x, z), or HeightNotLoaded if
	// the owning chunk has not loaded.
	HeightAt(x, z float64) float64
	// IsChunkLoadedAt reports whether the terrain region owning the
	// position has finished loading.
	IsChunkLoadedAt(p sim.Vec3) bool
}

// VegetationClearer removes vegetation instances inside a radius. Optional
// collaborator, resolved once at construction.
type VegetationClearer interface {
	ClearVegetation(center sim.Vec3, radius float64)
}

// CollisionRegistrar receives the footprint of placed structures so the
// host can register them with its collision world. Optional.
type CollisionRegistrar interface {
	RegisterFootprint(center sim.Vec3, radius float64)
}

// PlayerProvider supplies the current player position snapshot.
type PlayerProvider interface {
	PlayerPosition() sim.Vec3
}

// PlayerSink receives the player position while a vehicle is piloted; the
// physics drives the player, one-directional.
type PlayerSink interface {
	SetPlayerPosition(p sim.Vec3)
}

// InputProvider supplies the pilot's control snapshot each tick.
type InputProvider interface {
	ControlSnapshot() sim.ControlPatch
}

// PromptSink shows and hides the "enter vehicle" interaction prompt.
// Fired on occupancy transitions only, never per tick. Optional.
type PromptSink interface {
	ShowEnterPrompt(vehicleID string)
	HideEnterPrompt(vehicleID string)
}

// Presentation receives vehicle pose and rotor animation angles every
// tick. Optional; the simulation runs headless without one.
type Presentation interface {
	SetVehiclePose(vehicleID string, pos sim.Vec3, orientation sim.Quat)
	SetRotorAngles(vehicleID string, main, tail float64)
}

// AudioHandle is one playable rotor sound: lifecycle plus per-tick volume
// and playback-rate control.
type AudioHandle interface {
	Play()
	Stop()
	SetVolume(v float64)
	SetRate(r float64)
}

// AudioFactory builds an AudioHandle for a newly spawned vehicle.
// Optional; vehicles run silent without one.
type AudioFactory func(vehicleID string) AudioHandle
