package world

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sim "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/sim"
)

// Occupancy is the player-vehicle interaction state.
type Occupancy int

const (
	OccupancyFar Occupancy = iota
	OccupancyNear
	OccupancyPiloted
)

func (o Occupancy) String() string {
	switch o {
	case OccupancyFar:
		return "unoccupied-far"
	case OccupancyNear:
		return "unoccupied-near"
	case OccupancyPiloted:
		return "piloted"
	}
	return "unknown"
}

// Params are the interaction, rotor and audio tunables shared by all
// vehicles a Manager owns.
type Params struct {
	Physics sim.Params

	InteractionRadius float64 // m, horizontal enter range
	EgressDistance    float64 // m, lateral offset on exit
	PilotClearance    float64 // m above ground for the egress position

	MainRotorMaxSpeed float64 // rad/s at EngineRPM 1.0
	TailRotorRatio    float64 // tail speed = main speed * ratio
	RotorSmoothRate   float64 // 1/s

	AudioIdleVolume       float64 // baseline while piloted
	AudioThrustGain       float64 // volume per unit collective
	AudioRPMGain          float64 // volume per unit EngineRPM
	AudioBaseRate         float64 // playback rate at EngineRPM 0
	AudioRateGain         float64 // playback rate added at EngineRPM 1
	AudioVolumeSmoothRate float64 // 1/s
	AudioRateSmoothRate   float64 // 1/s
}

// DefaultParams returns the standard vehicle tuning.
func DefaultParams() Params {
	return Params{
		Physics: sim.DefaultParams(),

		InteractionRadius: 5.0,
		EgressDistance:    2.5,
		PilotClearance:    1.0,

		MainRotorMaxSpeed: 28.0,
		TailRotorRatio:    4.5,
		RotorSmoothRate:   2.5,

		AudioIdleVolume:       0.2,
		AudioThrustGain:       0.45,
		AudioRPMGain:          0.35,
		AudioBaseRate:         0.6,
		AudioRateGain:         0.9,
		AudioVolumeSmoothRate: 3.0,
		AudioRateSmoothRate:   2.0,
	}
}

// pendingSpawn is a vehicle waiting for its terrain to stream in.
type pendingSpawn struct {
	id     string
	at     sim.Vec3
	siteID string // optional landing-site dependency
}

// vehicle is one spawned vehicle record: its engine plus the rotor and
// audio state derived from it.
type vehicle struct {
	id        string
	engine    *sim.Engine
	occupancy Occupancy

	mainRotorSpeed float64
	tailRotorSpeed float64
	mainRotorAngle float64
	tailRotorAngle float64

	audio        AudioHandle // nil when no factory is configured
	audioPlaying bool
	volume       float64
	rate         float64
}

// Manager owns every vehicle in one world instance: the id-keyed engine
// map, spawn gating, the occupancy state machine, and the per-tick
// coupling between physics, presentation, audio and the player.
type Manager struct {
	log    *zap.Logger
	params Params

	terrain  TerrainProvider
	sites    *LandingRegistry
	player   PlayerProvider
	sink     PlayerSink
	input    InputProvider
	prompt   PromptSink
	present  Presentation
	newAudio AudioFactory

	vehicles map[string]*vehicle
	pending  []pendingSpawn
}

// ManagerConfig carries the Manager's collaborators. Terrain, player,
// input and the landing registry are required for full behavior; the rest
// are optional and resolved once here.
type ManagerConfig struct {
	Params   Params
	Terrain  TerrainProvider
	Sites    *LandingRegistry
	Player   PlayerProvider
	Sink     PlayerSink
	Input    InputProvider
	Prompt   PromptSink
	Present  Presentation
	NewAudio AudioFactory
	Log      *zap.Logger
}

func NewManager(cfg ManagerConfig) *Manager {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:      log,
		params:   cfg.Params,
		terrain:  cfg.Terrain,
		sites:    cfg.Sites,
		player:   cfg.Player,
		sink:     cfg.Sink,
		input:    cfg.Input,
		prompt:   cfg.Prompt,
		present:  cfg.Present,
		newAudio: cfg.NewAudio,
		vehicles: make(map[string]*vehicle),
	}
}

// SpawnWhenReady queues a vehicle spawn at the given position, gated on
// the terrain there reporting loaded. If siteID is non-empty the spawn
// additionally waits for that landing site to exist and rests on its
// surface. An empty id gets a generated one. Returns the vehicle id.
func (m *Manager) SpawnWhenReady(id string, at sim.Vec3, siteID string) string {
	if id == "" {
		id = uuid.NewString()
	}
	if _, ok := m.vehicles[id]; ok {
		return id
	}
	for _, p := range m.pending {
		if p.id == id {
			return id
		}
	}
	m.pending = append(m.pending, pendingSpawn{id: id, at: at, siteID: siteID})
	return id
}

// Update advances the whole aggregate by one tick in a fixed order:
// pending spawns, then per-vehicle occupancy, physics coupling, rotors
// and audio.
func (m *Manager) Update(dt float64) {
	m.processPending()
	for _, v := range m.vehicles {
		m.updateOccupancy(v)
		if v.occupancy == OccupancyPiloted {
			m.updatePiloted(v, dt)
		}
		m.updateRotors(v, dt)
		m.updateAudio(v, dt)
	}
}

// processPending is the non-blocking readiness poll: each queued spawn
// either proceeds or defers to a later tick.
func (m *Manager) processPending() {
	if len(m.pending) == 0 {
		return
	}
	if m.terrain == nil {
		m.log.Warn("vehicle manager has no terrain provider, deferring spawns")
		return
	}

	remaining := m.pending[:0]
	for _, p := range m.pending {
		at, ok := m.spawnPoint(p)
		if !ok {
			remaining = append(remaining, p)
			continue
		}
		v := &vehicle{
			id:     p.id,
			engine: sim.NewEngine(m.params.Physics, at),
		}
		if m.newAudio != nil {
			v.audio = m.newAudio(p.id)
		}
		m.vehicles[p.id] = v
		m.log.Info("vehicle spawned",
			zap.String("vehicle", p.id),
			zap.Float64("x", at.X), zap.Float64("y", at.Y), zap.Float64("z", at.Z))
	}
	m.pending = remaining
}

// spawnPoint resolves the rest position for a pending spawn, or reports
// that its dependencies are not ready yet.
func (m *Manager) spawnPoint(p pendingSpawn) (sim.Vec3, bool) {
	h := m.terrain.HeightAt(p.at.X, p.at.Z)
	if !HeightLoaded(h) || !m.terrain.IsChunkLoadedAt(p.at) {
		return sim.Vec3{}, false
	}

	ground := h
	if p.siteID != "" {
		if m.sites == nil {
			return sim.Vec3{}, false
		}
		site, ok := m.sites.Placement(p.siteID)
		if !ok {
			return sim.Vec3{}, false
		}
		if site.Position.Y > ground {
			ground = site.Position.Y
		}
	}
	return sim.Vec3{X: p.at.X, Y: ground + m.params.Physics.GroundClearance, Z: p.at.Z}, true
}

// updateOccupancy runs the Far/Near edge of the state machine. Prompt
// side effects fire on transitions only.
func (m *Manager) updateOccupancy(v *vehicle) {
	if v.occupancy == OccupancyPiloted || m.player == nil {
		return
	}
	dist := sim.DistanceXZ(m.player.PlayerPosition(), v.engine.State().Position)
	switch v.occupancy {
	case OccupancyFar:
		if dist <= m.params.InteractionRadius {
			v.occupancy = OccupancyNear
			if m.prompt != nil {
				m.prompt.ShowEnterPrompt(v.id)
			}
			m.log.Debug("player near vehicle", zap.String("vehicle", v.id))
		}
	case OccupancyNear:
		if dist > m.params.InteractionRadius {
			v.occupancy = OccupancyFar
			if m.prompt != nil {
				m.prompt.HideEnterPrompt(v.id)
			}
		}
	}
}

// updatePiloted is the per-tick physics coupling: control snapshot in,
// fresh terrain and pad heights in, pose and player position out.
func (m *Manager) updatePiloted(v *vehicle, dt float64) {
	if m.input != nil {
		v.engine.SetControls(m.input.ControlSnapshot())
	}

	pos := v.engine.State().Position
	terrainHeight := 0.0
	if m.terrain != nil {
		if h := m.terrain.HeightAt(pos.X, pos.Z); HeightLoaded(h) {
			terrainHeight = h
		}
	}
	padHeight := sim.NoPad
	if m.sites != nil {
		if h, ok := m.sites.SurfaceHeightAt(pos); ok {
			padHeight = h
		}
	}

	v.engine.Update(dt, terrainHeight, padHeight)

	st := v.engine.State()
	if m.present != nil {
		m.present.SetVehiclePose(v.id, st.Position, st.Orientation)
	}
	if m.sink != nil {
		m.sink.SetPlayerPosition(st.Position)
	}
}

// updateRotors smooths rotor speeds toward their RPM-derived targets and
// accumulates animation angles. Runs every tick regardless of occupancy
// so idle rotors settle toward zero.
func (m *Manager) updateRotors(v *vehicle, dt float64) {
	mainTarget := 0.0
	if v.occupancy == OccupancyPiloted {
		mainTarget = v.engine.State().EngineRPM * m.params.MainRotorMaxSpeed
	}
	tailTarget := mainTarget * m.params.TailRotorRatio

	v.mainRotorSpeed = sim.ExpApproach(v.mainRotorSpeed, mainTarget, m.params.RotorSmoothRate, dt)
	v.tailRotorSpeed = sim.ExpApproach(v.tailRotorSpeed, tailTarget, m.params.RotorSmoothRate, dt)
	v.mainRotorAngle = wrapAngle(v.mainRotorAngle + v.mainRotorSpeed*dt)
	v.tailRotorAngle = wrapAngle(v.tailRotorAngle + v.tailRotorSpeed*dt)

	if m.present != nil {
		m.present.SetRotorAngles(v.id, v.mainRotorAngle, v.tailRotorAngle)
	}
}

// updateAudio maps engine state to volume and playback rate while
// piloted, and decays both to silence otherwise.
func (m *Manager) updateAudio(v *vehicle, dt float64) {
	if v.audio == nil {
		return
	}

	volTarget, rateTarget := 0.0, 0.0
	if v.occupancy == OccupancyPiloted {
		st := v.engine.State()
		c := v.engine.Controls()
		volTarget = math.Min(1.0,
			m.params.AudioIdleVolume+
				m.params.AudioThrustGain*c.Collective+
				m.params.AudioRPMGain*st.EngineRPM)
		rateTarget = m.params.AudioBaseRate + m.params.AudioRateGain*st.EngineRPM
	}

	v.volume = sim.ExpApproach(v.volume, volTarget, m.params.AudioVolumeSmoothRate, dt)
	v.rate = sim.ExpApproach(v.rate, rateTarget, m.params.AudioRateSmoothRate, dt)

	const silence = 1e-3
	if v.volume > silence {
		if !v.audioPlaying {
			v.audio.Play()
			v.audioPlaying = true
		}
		v.audio.SetVolume(v.volume)
		v.audio.SetRate(math.Max(v.rate, 0.05))
	} else if v.audioPlaying {
		v.audio.Stop()
		v.audioPlaying = false
	}
}

// TryEnter attempts the Near -> Piloted transition. Distance and
// occupancy are re-validated at call time; failure is logged and the
// state is left unchanged.
func (m *Manager) TryEnter(id string) bool {
	v, ok := m.vehicles[id]
	if !ok {
		m.log.Warn("tryEnter: unknown vehicle", zap.String("vehicle", id))
		return false
	}
	if v.occupancy == OccupancyPiloted {
		m.log.Warn("tryEnter: vehicle already occupied", zap.String("vehicle", id))
		return false
	}
	if m.player == nil {
		m.log.Warn("tryEnter: no player provider configured", zap.String("vehicle", id))
		return false
	}
	dist := sim.DistanceXZ(m.player.PlayerPosition(), v.engine.State().Position)
	if dist > m.params.InteractionRadius {
		m.log.Warn("tryEnter: player out of range",
			zap.String("vehicle", id), zap.Float64("distance", dist))
		return false
	}

	v.occupancy = OccupancyPiloted
	if m.prompt != nil {
		m.prompt.HideEnterPrompt(id)
	}
	m.log.Info("vehicle entered", zap.String("vehicle", id))
	return true
}

// Exit leaves the pilot seat, placing the player laterally beside the
// vehicle at or above local ground height plus pilot clearance.
func (m *Manager) Exit(id string) {
	v, ok := m.vehicles[id]
	if !ok {
		m.log.Warn("exit: unknown vehicle", zap.String("vehicle", id))
		return
	}
	if v.occupancy != OccupancyPiloted {
		m.log.Warn("exit: vehicle not piloted", zap.String("vehicle", id))
		return
	}

	st := v.engine.State()
	egress := st.Position.Add(m.egressOffset(st))
	ground := st.GroundHeight
	if m.terrain != nil {
		if h := m.terrain.HeightAt(egress.X, egress.Z); HeightLoaded(h) {
			ground = h
		}
	}
	if minY := ground + m.params.PilotClearance; egress.Y < minY {
		egress.Y = minY
	}

	v.occupancy = OccupancyFar
	if m.sink != nil {
		m.sink.SetPlayerPosition(egress)
	}
	m.log.Info("vehicle exited", zap.String("vehicle", id))
}

// egressOffset is the fixed-length lateral offset from the vehicle, taken
// along the craft's right side projected onto the ground plane.
func (m *Manager) egressOffset(st sim.State) sim.Vec3 {
	right := st.Orientation.RotateVec(sim.Vec3{X: 1})
	right.Y = 0
	right = right.NormalizeSafe(1e-6)
	if right.Length() == 0 {
		right = sim.Vec3{X: 1}
	}
	return right.Mul(m.params.EgressDistance)
}

// GetState returns the kinematic state snapshot for a vehicle.
func (m *Manager) GetState(id string) (sim.State, bool) {
	v, ok := m.vehicles[id]
	if !ok {
		m.log.Warn("getState: unknown vehicle", zap.String("vehicle", id))
		return sim.State{}, false
	}
	return v.engine.State(), true
}

// SetControls forwards a control patch to a vehicle's engine.
func (m *Manager) SetControls(id string, p sim.ControlPatch) {
	v, ok := m.vehicles[id]
	if !ok {
		m.log.Warn("setControls: unknown vehicle", zap.String("vehicle", id))
		return
	}
	v.engine.SetControls(p)
}

// ResetToStable respawns a vehicle at rest at the given position.
func (m *Manager) ResetToStable(id string, at sim.Vec3) {
	v, ok := m.vehicles[id]
	if !ok {
		m.log.Warn("resetToStable: unknown vehicle", zap.String("vehicle", id))
		return
	}
	v.engine.ResetToStable(at)
}

// Occupancy returns the interaction state of a vehicle.
func (m *Manager) Occupancy(id string) (Occupancy, bool) {
	v, ok := m.vehicles[id]
	if !ok {
		return OccupancyFar, false
	}
	return v.occupancy, true
}

// Vehicles returns the ids of every spawned vehicle.
func (m *Manager) Vehicles() []string {
	out := make([]string, 0, len(m.vehicles))
	for id := range m.vehicles {
		out = append(out, id)
	}
	return out
}

// Dispose removes a vehicle, unconditionally stopping its audio. Safe to
// call at any time, including while piloted.
func (m *Manager) Dispose(id string) {
	v, ok := m.vehicles[id]
	if !ok {
		return
	}
	if v.audio != nil {
		v.audio.Stop()
	}
	delete(m.vehicles, id)
	m.log.Info("vehicle disposed", zap.String("vehicle", id))
}

func wrapAngle(a float64) float64 {
	for a > 2*math.Pi {
		a -= 2 * math.Pi
	}
	for a < 0 {
		a += 2 * math.Pi
	}
	return a
}
