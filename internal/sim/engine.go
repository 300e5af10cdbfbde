package sim

import (
	"math"
)

// NoPad is passed as the landing-pad height when the vehicle is not over a
// landing pad. It never wins the max() against real terrain.
var NoPad = math.Inf(-1)

// Params are the physics tunables for one airframe.
type Params struct {
	Mass    float64 // kg
	Gravity float64 // m/s^2, positive down

	MaxLiftForce    float64 // N at full collective
	BoostMultiplier float64 // lift multiplier while EngineBoost is held
	CyclicForce     float64 // N of body-frame force per unit cyclic input

	GroundEffectHeight float64 // height above ground where the bonus fades out
	GroundEffectBonus  float64 // N of extra lift at zero height

	ControlSmoothRate float64 // 1/s, input convergence
	SpoolUpRate       float64 // 1/s, engine rev-up
	SpoolDownRate     float64 // 1/s, engine wind-down
	IdleRPM           float64 // spool floor while powered

	YawRate float64 // rad/s at full yaw input

	HoverLevelRate   float64 // 1/s, proportional leveling toward upright
	HoverVyThreshold float64 // m/s, |vy| below which vertical damping kicks in
	HoverVyDampRate  float64 // 1/s

	LinearDamping  float64 // 1/s
	AngularDamping float64 // 1/s

	GroundClearance float64 // m kept between position.y and ground
}

// DefaultParams returns tuning for the standard transport helicopter.
func DefaultParams() Params {
	return Params{
		Mass:    800,
		Gravity: 9.81,

		MaxLiftForce:    16000,
		BoostMultiplier: 1.4,
		CyclicForce:     6000,

		GroundEffectHeight: 8.0,
		GroundEffectBonus:  2400,

		ControlSmoothRate: 8.0,
		SpoolUpRate:       1.6,
		SpoolDownRate:     0.5,
		IdleRPM:           0.3,

		YawRate: 1.2,

		HoverLevelRate:   3.0,
		HoverVyThreshold: 0.5,
		HoverVyDampRate:  2.0,

		LinearDamping:  0.35,
		AngularDamping: 1.5,

		GroundClearance: 1.2,
	}
}

// State is the kinematic state of one vehicle. EngineRPM is a normalized
// [0,1] spool level, not a literal rotational speed.
type State struct {
	Position     Vec3
	Velocity     Vec3
	AngularVel   Vec3
	Orientation  Quat
	EngineRPM    float64
	IsGrounded   bool
	GroundHeight float64
}

// Engine advances one vehicle's state per tick from smoothed control inputs
// and environment height samples. Pure state and math, no I/O.
type Engine struct {
	params Params

	target   Controls // raw, set by the caller
	smoothed Controls // what the physics actually sees

	state State
}

// NewEngine creates an engine at rest at the given spawn position.
func NewEngine(params Params, position Vec3) *Engine {
	e := &Engine{params: params}
	e.ResetToStable(position)
	return e
}

// SetControls merges the patch into the target control vector. Values are
// clamped to their legal ranges at this boundary.
func (e *Engine) SetControls(p ControlPatch) {
	e.target.apply(p)
}

// Controls returns the current smoothed control set.
func (e *Engine) Controls() Controls {
	return e.smoothed
}

// State returns a snapshot of the current kinematic state.
func (e *Engine) State() State {
	return e.state
}

// ResetToStable reinitializes the vehicle to rest at position with zeroed
// controls and the engine at idle. Used on respawn.
func (e *Engine) ResetToStable(position Vec3) {
	e.target = Controls{}
	e.smoothed = Controls{}
	e.state = State{
		Position:    position,
		Orientation: QuatIdentity(),
		EngineRPM:   e.params.IdleRPM,
	}
}

// Update advances the simulation by dt seconds. terrainHeight is the ground
// sample under the vehicle; padHeight is the landing-pad surface height, or
// NoPad when the vehicle is not over one. dt == 0 is a no-op. Large dt from
// frame hitches is not clamped here.
func (e *Engine) Update(dt, terrainHeight, padHeight float64) {
	if dt == 0 {
		return
	}
	p := &e.params

	// The pad surface wins only when it is above the terrain under it.
	groundHeight := terrainHeight
	if padHeight > terrainHeight {
		groundHeight = padHeight
	}
	e.state.GroundHeight = groundHeight

	e.smoothed.approach(e.target, p.ControlSmoothRate, dt)

	// Engine spool: revs up faster than it winds down.
	rpmTarget := math.Max(p.IdleRPM, e.smoothed.Collective)
	spoolRate := p.SpoolUpRate
	if rpmTarget < e.state.EngineRPM {
		spoolRate = p.SpoolDownRate
	}
	e.state.EngineRPM = Clamp(ExpApproach(e.state.EngineRPM, rpmTarget, spoolRate, dt), 0, 1)

	// Forces in world space.
	gravity := Vec3{0, -p.Gravity * p.Mass, 0}

	lift := e.smoothed.Collective * p.MaxLiftForce
	if e.smoothed.EngineBoost {
		lift *= p.BoostMultiplier
	}
	heightAboveGround := e.state.Position.Y - groundHeight
	if heightAboveGround < p.GroundEffectHeight {
		frac := Clamp(1.0-heightAboveGround/p.GroundEffectHeight, 0, 1)
		lift += p.GroundEffectBonus * frac
	}

	// Cyclic: body-frame lateral/longitudinal push rotated into world space.
	bodyCyclic := Vec3{
		X: e.smoothed.CyclicRoll * p.CyclicForce,
		Z: -e.smoothed.CyclicPitch * p.CyclicForce,
	}
	cyclic := e.state.Orientation.RotateVec(bodyCyclic)

	total := gravity.Add(Vec3{0, lift, 0}).Add(cyclic)
	accel := total.Mul(1.0 / p.Mass)
	e.state.Velocity = e.state.Velocity.Add(accel.Mul(dt))

	// Yaw rate is commanded directly rather than force-integrated so the
	// turn rate stays predictable.
	e.state.AngularVel.Y = e.smoothed.Yaw * p.YawRate

	if e.smoothed.AutoHover {
		roll, pitch := e.state.Orientation.RollPitch()
		e.state.AngularVel.Z = -roll * p.HoverLevelRate
		e.state.AngularVel.X = -pitch * p.HoverLevelRate
		if math.Abs(e.state.Velocity.Y) < p.HoverVyThreshold {
			e.state.Velocity.Y = ExpApproach(e.state.Velocity.Y, 0, p.HoverVyDampRate, dt)
		}
	}

	e.state.Position = e.state.Position.Add(e.state.Velocity.Mul(dt))
	e.state.Orientation = e.state.Orientation.Integrate(e.state.AngularVel, dt)

	e.state.Velocity = e.state.Velocity.Damp(p.LinearDamping, dt)
	e.state.AngularVel = e.state.AngularVel.Damp(p.AngularDamping, dt)

	e.enforceGround(groundHeight)
	e.sanitize()
}

// enforceGround clamps the vehicle to the ground surface and zeroes any
// remaining downward velocity on contact.
func (e *Engine) enforceGround(groundHeight float64) {
	minY := groundHeight + e.params.GroundClearance
	if e.state.Position.Y <= minY {
		e.state.Position.Y = minY
		if e.state.Velocity.Y < 0 {
			e.state.Velocity.Y = 0
		}
		e.state.IsGrounded = true
		return
	}
	e.state.IsGrounded = false
}

// sanitize guards against NaN/Inf creeping into the integrated state.
func (e *Engine) sanitize() {
	e.state.Position.X = sanitizeFinite(e.state.Position.X)
	e.state.Position.Y = sanitizeFinite(e.state.Position.Y)
	e.state.Position.Z = sanitizeFinite(e.state.Position.Z)
	e.state.Velocity.X = sanitizeFinite(e.state.Velocity.X)
	e.state.Velocity.Y = sanitizeFinite(e.state.Velocity.Y)
	e.state.Velocity.Z = sanitizeFinite(e.state.Velocity.Z)
}
