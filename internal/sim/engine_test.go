package sim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/sim"
)

const testDt = 1.0 / 60.0

func newGroundedEngine() *sim.Engine {
	p := sim.DefaultParams()
	return sim.NewEngine(p, sim.Vec3{Y: p.GroundClearance})
}

func TestLiftOffFromRest(t *testing.T) {
	e := newGroundedEngine()
	e.SetControls(sim.ControlPatch{Collective: sim.Float(1.0)})

	for i := 0; i < int(5.0/testDt); i++ {
		e.Update(testDt, 0, sim.NoPad)
	}

	st := e.State()
	assert.Greater(t, st.Velocity.Y, 0.0, "full collective should climb")
	assert.False(t, st.IsGrounded)
	assert.Greater(t, st.Position.Y, sim.DefaultParams().GroundClearance)
}

func TestDescentLandsAndZeroesVerticalSpeed(t *testing.T) {
	p := sim.DefaultParams()
	e := sim.NewEngine(p, sim.Vec3{Y: 50})

	landed := false
	for i := 0; i < int(30.0/testDt); i++ {
		e.Update(testDt, 0, sim.NoPad)
		st := e.State()
		require.GreaterOrEqual(t, st.Position.Y, p.GroundClearance-1e-9)
		if st.IsGrounded {
			landed = true
			assert.InDelta(t, p.GroundClearance, st.Position.Y, 1e-9,
				"grounded exactly at ground height plus clearance")
			assert.GreaterOrEqual(t, st.Velocity.Y, 0.0, "downward velocity zeroed on contact")
			break
		}
	}
	require.True(t, landed, "vehicle with zero collective should reach the ground")
}

func TestGroundPenetrationInvariant(t *testing.T) {
	p := sim.DefaultParams()
	e := sim.NewEngine(p, sim.Vec3{Y: 20})

	// Mixed aggressive inputs over varying terrain.
	inputs := []sim.ControlPatch{
		{Collective: sim.Float(0)},
		{Collective: sim.Float(1), CyclicPitch: sim.Float(1)},
		{CyclicRoll: sim.Float(-1), Yaw: sim.Float(1)},
		{Collective: sim.Float(0.2), EngineBoost: sim.Bool(true)},
		{AutoHover: sim.Bool(true), Collective: sim.Float(0.5)},
	}
	for i := 0; i < 3000; i++ {
		if i%200 == 0 {
			e.SetControls(inputs[(i/200)%len(inputs)])
		}
		terrain := 4.0 * math.Sin(float64(i)*0.01)
		e.Update(testDt, terrain, sim.NoPad)
		st := e.State()
		require.GreaterOrEqual(t, st.Position.Y, st.GroundHeight+p.GroundClearance-1e-9,
			"tick %d: vehicle below ground", i)
	}
}

func TestEngineRPMStaysNormalized(t *testing.T) {
	e := newGroundedEngine()
	collectives := []float64{0, 1, 0.5, 1, 0, 0.25, 1}
	for _, c := range collectives {
		e.SetControls(sim.ControlPatch{Collective: sim.Float(c)})
		for i := 0; i < 120; i++ {
			e.Update(testDt, 0, sim.NoPad)
			rpm := e.State().EngineRPM
			require.GreaterOrEqual(t, rpm, 0.0)
			require.LessOrEqual(t, rpm, 1.0)
		}
	}
}

func TestEngineSpoolAsymmetry(t *testing.T) {
	e := newGroundedEngine()
	idle := sim.DefaultParams().IdleRPM

	e.SetControls(sim.ControlPatch{Collective: sim.Float(1)})
	upTicks := 0
	for e.State().EngineRPM < 0.9 {
		e.Update(testDt, 0, sim.NoPad)
		upTicks++
		require.Less(t, upTicks, 10000, "engine never spooled up")
	}

	e.SetControls(sim.ControlPatch{Collective: sim.Float(0)})
	downTicks := 0
	for e.State().EngineRPM > idle+0.1 {
		e.Update(testDt, 0, sim.NoPad)
		downTicks++
		require.Less(t, downTicks, 10000, "engine never wound down")
	}

	assert.Greater(t, downTicks, upTicks, "spool-down should be slower than spool-up")
}

func TestQuaternionNormStable(t *testing.T) {
	e := sim.NewEngine(sim.DefaultParams(), sim.Vec3{Y: 30})
	e.SetControls(sim.ControlPatch{
		Collective: sim.Float(0.8),
		Yaw:        sim.Float(1),
		CyclicRoll: sim.Float(0.5),
	})
	for i := 0; i < 6000; i++ {
		if i == 3000 {
			e.SetControls(sim.ControlPatch{Yaw: sim.Float(-1), AutoHover: sim.Bool(true)})
		}
		e.Update(testDt, 0, sim.NoPad)
		require.InDelta(t, 1.0, e.State().Orientation.Norm(), 1e-6)
	}
}

func TestResetToStableIdempotent(t *testing.T) {
	e := sim.NewEngine(sim.DefaultParams(), sim.Vec3{Y: 10})
	e.SetControls(sim.ControlPatch{Collective: sim.Float(1), Yaw: sim.Float(0.5)})
	for i := 0; i < 100; i++ {
		e.Update(testDt, 0, sim.NoPad)
	}

	target := sim.Vec3{X: 5, Y: 12, Z: -3}
	e.ResetToStable(target)
	first := e.State()
	e.ResetToStable(target)
	second := e.State()

	assert.Equal(t, first, second)
	assert.Equal(t, target, first.Position)
	assert.Equal(t, sim.Vec3{}, first.Velocity)
	assert.Equal(t, sim.DefaultParams().IdleRPM, first.EngineRPM)
	assert.Equal(t, sim.Controls{}, e.Controls())
}

func TestZeroDtIsNoOp(t *testing.T) {
	e := sim.NewEngine(sim.DefaultParams(), sim.Vec3{Y: 25})
	e.SetControls(sim.ControlPatch{Collective: sim.Float(1)})
	e.Update(testDt, 0, sim.NoPad)
	before := e.State()
	e.Update(0, 0, sim.NoPad)
	assert.Equal(t, before, e.State())
}

func TestControlClampingAtBoundary(t *testing.T) {
	e := newGroundedEngine()
	e.SetControls(sim.ControlPatch{
		Collective:  sim.Float(5),
		CyclicPitch: sim.Float(-7),
		Yaw:         sim.Float(3),
	})
	for i := 0; i < 600; i++ {
		e.Update(testDt, 0, sim.NoPad)
	}
	c := e.Controls()
	assert.LessOrEqual(t, c.Collective, 1.0)
	assert.GreaterOrEqual(t, c.CyclicPitch, -1.0)
	assert.LessOrEqual(t, c.Yaw, 1.0)
}

func TestLandingPadOverridesLowerTerrain(t *testing.T) {
	p := sim.DefaultParams()
	e := sim.NewEngine(p, sim.Vec3{Y: 50})

	for i := 0; i < int(30.0/testDt); i++ {
		e.Update(testDt, 0, 18.0)
		if e.State().IsGrounded {
			break
		}
	}
	st := e.State()
	require.True(t, st.IsGrounded)
	assert.InDelta(t, 18.0+p.GroundClearance, st.Position.Y, 1e-9)
	assert.Equal(t, 18.0, st.GroundHeight)
}

func TestBoostIncreasesClimbRate(t *testing.T) {
	climb := func(boost bool) float64 {
		e := newGroundedEngine()
		e.SetControls(sim.ControlPatch{
			Collective:  sim.Float(0.6),
			EngineBoost: sim.Bool(boost),
		})
		for i := 0; i < int(4.0/testDt); i++ {
			e.Update(testDt, 0, sim.NoPad)
		}
		return e.State().Position.Y
	}
	assert.Greater(t, climb(true), climb(false))
}
