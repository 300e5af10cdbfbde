package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/audio"
	"github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/config"
	sim "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/sim"
	"github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/world"
)

func main() {
	steps := flag.Int("steps", 3000, "Number of fixed updates to run")
	ups := flag.Int("ups", 60, "Fixed updates per second")
	cfgPath := flag.String("config", "", "Optional YAML tuning file")
	sound := flag.Bool("sound", false, "Drive the rotor audio through the speaker")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := config.Default()
	if *cfgPath != "" {
		cfg, err = config.LoadFile(*cfgPath)
		if err != nil {
			log.Fatal("load config", zap.Error(err))
		}
	}

	terrain := world.NewSineTerrain(6.0, 40.0)
	sites := world.NewLandingRegistry(terrain, nil, nil, log)
	sites.Request(world.SiteSpec{
		ID:              "main-pad",
		FootprintRadius: cfg.Landing.FootprintRadius,
		SurfaceOffset:   cfg.Landing.SurfaceOffset,
	})

	rig := &playerRig{}
	script := &flightScript{ups: float64(*ups)}

	var newVoice world.AudioFactory
	if *sound {
		engine := audio.NewEngine(log)
		defer engine.Close()
		newVoice = engine.NewRotorVoice
	}

	manager := world.NewManager(world.ManagerConfig{
		Params:   cfg.WorldParams(),
		Terrain:  terrain,
		Sites:    sites,
		Player:   rig,
		Sink:     rig,
		Input:    script,
		NewAudio: newVoice,
		Log:      log,
	})
	id := manager.SpawnWhenReady("heli-1", sim.Vec3{}, "main-pad")

	dt := 1.0 / float64(max(1, *ups))
	entered := false
	for i := 0; i < *steps; i++ {
		sites.Update()
		manager.Update(dt)
		script.tick++

		if !entered {
			if _, ok := manager.Occupancy(id); ok {
				st, _ := manager.GetState(id)
				rig.pos = st.Position.Add(sim.Vec3{X: 2})
				entered = manager.TryEnter(id)
			}
		}
	}

	st, ok := manager.GetState(id)
	if !ok {
		log.Fatal("vehicle never spawned; terrain stayed unready")
	}
	fmt.Printf("Completed %d steps. Heli pos=(%.2f, %.2f, %.2f) vy=%.2f rpm=%.2f grounded=%v\n",
		*steps, st.Position.X, st.Position.Y, st.Position.Z,
		st.Velocity.Y, st.EngineRPM, st.IsGrounded)
}

// playerRig is the stand-in player: the manager reads its position for
// proximity checks and writes it back while piloting.
type playerRig struct {
	pos sim.Vec3
}

func (p *playerRig) PlayerPosition() sim.Vec3     { return p.pos }
func (p *playerRig) SetPlayerPosition(v sim.Vec3) { p.pos = v }

// flightScript is a canned sortie: spool up, climb hard, then settle into
// an auto-hover.
type flightScript struct {
	ups  float64
	tick int
}

func (s *flightScript) ControlSnapshot() sim.ControlPatch {
	t := float64(s.tick) / s.ups
	switch {
	case t < 2:
		return sim.ControlPatch{Collective: sim.Float(0.2)}
	case t < 15:
		return sim.ControlPatch{Collective: sim.Float(0.95), Yaw: sim.Float(0.3)}
	default:
		return sim.ControlPatch{
			Collective: sim.Float(0.55),
			Yaw:        sim.Float(0),
			AutoHover:  sim.Bool(true),
		}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
