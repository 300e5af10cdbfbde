// Package config loads the simulation tuning from YAML, layered over
// built-in defaults so a partial file only overrides what it names.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/sim"
	world "github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/world"
)

type Physics struct {
	Mass    float64 `yaml:"mass"`
	Gravity float64 `yaml:"gravity"`

	MaxLiftForce    float64 `yaml:"max_lift_force"`
	BoostMultiplier float64 `yaml:"boost_multiplier"`
	CyclicForce     float64 `yaml:"cyclic_force"`

	GroundEffectHeight float64 `yaml:"ground_effect_height"`
	GroundEffectBonus  float64 `yaml:"ground_effect_bonus"`

	ControlSmoothRate float64 `yaml:"control_smooth_rate"`
	SpoolUpRate       float64 `yaml:"spool_up_rate"`
	SpoolDownRate     float64 `yaml:"spool_down_rate"`
	IdleRPM           float64 `yaml:"idle_rpm"`

	YawRate float64 `yaml:"yaw_rate"`

	HoverLevelRate   float64 `yaml:"hover_level_rate"`
	HoverVyThreshold float64 `yaml:"hover_vy_threshold"`
	HoverVyDampRate  float64 `yaml:"hover_vy_damp_rate"`

	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`

	GroundClearance float64 `yaml:"ground_clearance"`
}

type Vehicle struct {
	InteractionRadius float64 `yaml:"interaction_radius"`
	EgressDistance    float64 `yaml:"egress_distance"`
	PilotClearance    float64 `yaml:"pilot_clearance"`

	MainRotorMaxSpeed float64 `yaml:"main_rotor_max_speed"`
	TailRotorRatio    float64 `yaml:"tail_rotor_ratio"`
	RotorSmoothRate   float64 `yaml:"rotor_smooth_rate"`
}

type Audio struct {
	IdleVolume       float64 `yaml:"idle_volume"`
	ThrustGain       float64 `yaml:"thrust_gain"`
	RPMGain          float64 `yaml:"rpm_gain"`
	BaseRate         float64 `yaml:"base_rate"`
	RateGain         float64 `yaml:"rate_gain"`
	VolumeSmoothRate float64 `yaml:"volume_smooth_rate"`
	RateSmoothRate   float64 `yaml:"rate_smooth_rate"`
}

type Landing struct {
	FootprintRadius float64 `yaml:"footprint_radius"`
	SurfaceOffset   float64 `yaml:"surface_offset"`
}

type Config struct {
	Physics Physics `yaml:"physics"`
	Vehicle Vehicle `yaml:"vehicle"`
	Audio   Audio   `yaml:"audio"`
	Landing Landing `yaml:"landing"`
}

// Default returns the built-in tuning, mirroring the sim and world
// package defaults.
func Default() Config {
	p := sim.DefaultParams()
	w := world.DefaultParams()
	return Config{
		Physics: Physics{
			Mass:               p.Mass,
			Gravity:            p.Gravity,
			MaxLiftForce:       p.MaxLiftForce,
			BoostMultiplier:    p.BoostMultiplier,
			CyclicForce:        p.CyclicForce,
			GroundEffectHeight: p.GroundEffectHeight,
			GroundEffectBonus:  p.GroundEffectBonus,
			ControlSmoothRate:  p.ControlSmoothRate,
			SpoolUpRate:        p.SpoolUpRate,
			SpoolDownRate:      p.SpoolDownRate,
			IdleRPM:            p.IdleRPM,
			YawRate:            p.YawRate,
			HoverLevelRate:     p.HoverLevelRate,
			HoverVyThreshold:   p.HoverVyThreshold,
			HoverVyDampRate:    p.HoverVyDampRate,
			LinearDamping:      p.LinearDamping,
			AngularDamping:     p.AngularDamping,
			GroundClearance:    p.GroundClearance,
		},
		Vehicle: Vehicle{
			InteractionRadius: w.InteractionRadius,
			EgressDistance:    w.EgressDistance,
			PilotClearance:    w.PilotClearance,
			MainRotorMaxSpeed: w.MainRotorMaxSpeed,
			TailRotorRatio:    w.TailRotorRatio,
			RotorSmoothRate:   w.RotorSmoothRate,
		},
		Audio: Audio{
			IdleVolume:       w.AudioIdleVolume,
			ThrustGain:       w.AudioThrustGain,
			RPMGain:          w.AudioRPMGain,
			BaseRate:         w.AudioBaseRate,
			RateGain:         w.AudioRateGain,
			VolumeSmoothRate: w.AudioVolumeSmoothRate,
			RateSmoothRate:   w.AudioRateSmoothRate,
		},
		Landing: Landing{
			FootprintRadius: 10,
			SurfaceOffset:   0.5,
		},
	}
}

// Load reads YAML over the defaults; fields absent from the document keep
// their default values.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadFile reads the YAML file at path over the defaults.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// WorldParams assembles the world.Params the vehicle manager consumes.
func (c Config) WorldParams() world.Params {
	return world.Params{
		Physics:               c.SimParams(),
		InteractionRadius:     c.Vehicle.InteractionRadius,
		EgressDistance:        c.Vehicle.EgressDistance,
		PilotClearance:        c.Vehicle.PilotClearance,
		MainRotorMaxSpeed:     c.Vehicle.MainRotorMaxSpeed,
		TailRotorRatio:        c.Vehicle.TailRotorRatio,
		RotorSmoothRate:       c.Vehicle.RotorSmoothRate,
		AudioIdleVolume:       c.Audio.IdleVolume,
		AudioThrustGain:       c.Audio.ThrustGain,
		AudioRPMGain:          c.Audio.RPMGain,
		AudioBaseRate:         c.Audio.BaseRate,
		AudioRateGain:         c.Audio.RateGain,
		AudioVolumeSmoothRate: c.Audio.VolumeSmoothRate,
		AudioRateSmoothRate:   c.Audio.RateSmoothRate,
	}
}

// SimParams assembles the sim.Params the physics engine consumes.
func (c Config) SimParams() sim.Params {
	return sim.Params{
		Mass:               c.Physics.Mass,
		Gravity:            c.Physics.Gravity,
		MaxLiftForce:       c.Physics.MaxLiftForce,
		BoostMultiplier:    c.Physics.BoostMultiplier,
		CyclicForce:        c.Physics.CyclicForce,
		GroundEffectHeight: c.Physics.GroundEffectHeight,
		GroundEffectBonus:  c.Physics.GroundEffectBonus,
		ControlSmoothRate:  c.Physics.ControlSmoothRate,
		SpoolUpRate:        c.Physics.SpoolUpRate,
		SpoolDownRate:      c.Physics.SpoolDownRate,
		IdleRPM:            c.Physics.IdleRPM,
		YawRate:            c.Physics.YawRate,
		HoverLevelRate:     c.Physics.HoverLevelRate,
		HoverVyThreshold:   c.Physics.HoverVyThreshold,
		HoverVyDampRate:    c.Physics.HoverVyDampRate,
		LinearDamping:      c.Physics.LinearDamping,
		AngularDamping:     c.Physics.AngularDamping,
		GroundClearance:    c.Physics.GroundClearance,
	}
}
