// Package envelope implements the amplitude envelope that gates a voice.
package envelope

import (
	"fmt"
	"time"

	"github.com/wtsynth/synth"
)

// Stage is the segment an ADSR is currently in.
type Stage int

// ADSR stages, in the order a pressed and released envelope walks through them.
const (
	Idle Stage = iota
	Attack
	Decay
	Sustain
	Release
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Attack:
		return "attack"
	case Decay:
		return "decay"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Params shapes an ADSR. Durations are rounded down to whole samples.
type Params struct {
	Attack  time.Duration
	Decay   time.Duration
	Sustain float64 // level held while pressed, in [0, 1]
	Release time.Duration
}

// DefaultParams returns a short, percussive-but-sustaining envelope.
func DefaultParams() Params {
	return Params{
		Attack:  10 * time.Millisecond,
		Decay:   100 * time.Millisecond,
		Sustain: 0.7,
		Release: 300 * time.Millisecond,
	}
}

// ADSR is a linear attack/decay/sustain/release envelope clocked by calls to Gain.
type ADSR struct {
	attackStep  float64
	decayStep   float64
	sustain     float64
	releaseLen  int
	releaseStep float64

	stage Stage
	level float64
}

// New returns an idle envelope for output at sample rate sr.
func New(sr synth.SampleRate, p Params) *ADSR {
	sustain := p.Sustain
	if sustain < 0 {
		sustain = 0
	}
	if sustain > 1 {
		sustain = 1
	}
	return &ADSR{
		attackStep: step(1, sr.N(p.Attack)),
		decayStep:  step(1-sustain, sr.N(p.Decay)),
		sustain:    sustain,
		releaseLen: sr.N(p.Release),
	}
}

// step is the per-sample change covering distance in n samples; n <= 0 means "at once".
func step(distance float64, n int) float64 {
	if n <= 0 {
		return distance
	}
	return distance / float64(n)
}

// Press starts the attack from the current level, so retriggering a sounding envelope does not
// click.
func (e *ADSR) Press() {
	e.stage = Attack
}

// Release starts the release from the current level. It does nothing while idle.
func (e *ADSR) Release() {
	if e.stage == Idle {
		return
	}
	e.stage = Release
	e.releaseStep = step(e.level, e.releaseLen)
}

// Pressed reports whether the envelope is sounding, including the release segment.
func (e *ADSR) Pressed() bool {
	return e.stage != Idle
}

// Gain advances the envelope by one sample and returns the new level.
func (e *ADSR) Gain() float64 {
	switch e.stage {
	case Attack:
		e.level += e.attackStep
		if e.level >= 1 {
			e.level = 1
			e.stage = Decay
		}
	case Decay:
		e.level -= e.decayStep
		if e.level <= e.sustain {
			e.level = e.sustain
			e.stage = Sustain
		}
	case Sustain:
		e.level = e.sustain
	case Release:
		e.level -= e.releaseStep
		if e.level <= 0 || e.releaseStep == 0 {
			e.level = 0
			e.stage = Idle
		}
	case Idle:
		e.level = 0
	}
	return e.level
}

// Stage returns the current stage.
func (e *ADSR) Stage() Stage {
	return e.stage
}

// Level returns the level last returned by Gain without advancing.
func (e *ADSR) Level() float64 {
	return e.level
}
