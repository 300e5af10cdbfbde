// Package audio provides a beep-backed implementation of the vehicle
// rotor sound: a synthesized looping rotor tone with per-tick volume and
// playback-rate control.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/matthew-kissinger/terror-in-the-jungle-vr-experimental-sub001/internal/world"
)

const (
	defaultSampleRate = 48000
	rotorBlades       = 2
	rotorNominalRPM   = 400.0
	resampleQuality   = 4
)

// Engine owns the speaker and builds rotor voices. If the speaker cannot
// initialize (no audio device, headless CI) the engine runs in silent
// mode: voices are still handed out and accept calls, producing nothing.
type Engine struct {
	sampleRate beep.SampleRate
	silent     bool
	log        *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		sampleRate: beep.SampleRate(defaultSampleRate),
		log:        log,
	}
	if err := speaker.Init(e.sampleRate, e.sampleRate.N(time.Second/20)); err != nil {
		e.silent = true
		e.log.Warn("speaker init failed, audio disabled", zap.Error(err))
	}
	return e
}

// Silent reports whether the engine degraded to silent mode.
func (e *Engine) Silent() bool { return e.silent }

// Close tears down the speaker. Safe on a silent engine.
func (e *Engine) Close() {
	if !e.silent {
		speaker.Close()
	}
}

// NewRotorVoice builds one vehicle's rotor sound.
func (e *Engine) NewRotorVoice(vehicleID string) world.AudioHandle {
	if e.silent {
		return &RotorVoice{silent: true}
	}

	tone := newRotorTone(int(e.sampleRate), rotorBlades, rotorNominalRPM)
	ctrl := &beep.Ctrl{Streamer: tone, Paused: true}
	resampler := beep.ResampleRatio(resampleQuality, 1.0, ctrl)
	volume := &effects.Volume{Streamer: resampler, Base: 2, Silent: true}

	v := &RotorVoice{
		ctrl:      ctrl,
		resampler: resampler,
		volume:    volume,
	}
	speaker.Play(volume)
	e.log.Debug("rotor voice created", zap.String("vehicle", vehicleID))
	return v
}

var _ world.AudioHandle = (*RotorVoice)(nil)

// RotorVoice is one playable rotor sound.
type RotorVoice struct {
	silent    bool
	ctrl      *beep.Ctrl
	resampler *beep.Resampler
	volume    *effects.Volume
}

func (v *RotorVoice) Play() {
	if v.silent {
		return
	}
	speaker.Lock()
	v.ctrl.Paused = false
	speaker.Unlock()
}

func (v *RotorVoice) Stop() {
	if v.silent {
		return
	}
	speaker.Lock()
	v.ctrl.Paused = true
	speaker.Unlock()
}

// SetVolume takes a linear [0,1] gain and maps it onto the exponential
// volume effect. Zero gain mutes outright.
func (v *RotorVoice) SetVolume(gain float64) {
	if v.silent {
		return
	}
	speaker.Lock()
	if gain <= 0 {
		v.volume.Silent = true
	} else {
		v.volume.Silent = false
		v.volume.Volume = math.Log2(math.Min(gain, 1))
	}
	speaker.Unlock()
}

// SetRate adjusts playback speed, shifting the rotor pitch with it.
func (v *RotorVoice) SetRate(rate float64) {
	if v.silent {
		return
	}
	if rate < 0.05 {
		rate = 0.05
	}
	speaker.Lock()
	v.resampler.SetRatio(rate)
	speaker.Unlock()
}

// rotorTone is an endless harmonic rotor drone: a blade-pass fundamental
// with two overtones and a slow amplitude throb.
type rotorTone struct {
	phase     float64
	phaseStep float64
}

func newRotorTone(sampleRate, blades int, nominalRPM float64) *rotorTone {
	baseFreq := nominalRPM / 60.0 * float64(blades)
	return &rotorTone{
		phaseStep: 2 * math.Pi * baseFreq / float64(sampleRate),
	}
}

func (r *rotorTone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		p := r.phase
		tone := math.Sin(p) + 0.35*math.Sin(2*p+0.1) + 0.2*math.Sin(3*p+0.2)
		throb := 0.7 + 0.15*math.Sin(p*0.5)
		s := tone * throb * 0.45
		samples[i][0] = s
		samples[i][1] = s

		r.phase += r.phaseStep
		if r.phase > 4*math.Pi {
			r.phase -= 4 * math.Pi
		}
	}
	return len(samples), true
}

func (r *rotorTone) Err() error { return nil }
