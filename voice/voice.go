package voice

import (
	"github.com/wtsynth/synth"
	"github.com/wtsynth/synth/wavetable"
)

// Gate is the amplitude envelope a Voice is gated by. The envelope package provides an ADSR
// implementation; anything honouring this contract will do.
type Gate interface {
	// Press starts the attack. Pressing an already pressed gate is the gate's business.
	Press()

	// Release starts the release phase.
	Release()

	// Pressed reports whether the gate is sounding: true from Press until the release phase
	// has finished.
	Pressed() bool

	// Gain returns the current amplitude multiplier in [0, 1]. It is called exactly once per
	// output sample, so implementations advance their timing here.
	Gain() float64
}

// Voice is one playable note: an oscillator pitched by Press and an envelope gate scaling its
// output. A Voice exclusively owns its gate.
type Voice struct {
	osc  Oscillator
	gate Gate
}

// New returns an idle voice reading tables of size entries at sample rate sr and gated by
// gate, which must be idle and not shared with another voice.
func New(sr synth.SampleRate, size int, gate Gate) *Voice {
	return &Voice{
		osc:  NewOscillator(sr, size),
		gate: gate,
	}
}

// IsPressed reports whether the voice is sounding, as told by its gate.
func (v *Voice) IsPressed() bool {
	return v.gate.Pressed()
}

// Press starts playing note: the gate is pressed first, then the oscillator is retuned. The
// phase is not reset, so consecutive notes join without a discontinuity.
func (v *Voice) Press(note uint8) {
	v.gate.Press()
	v.osc.SetFrequency(NoteFrequency(note))
}

// Release lets the note fade out. The oscillator keeps running at its last frequency while the
// gate decays.
func (v *Voice) Release() {
	v.gate.Release()
}

// Sample returns the next output sample read from table.
func (v *Voice) Sample(table wavetable.Table) float64 {
	return v.osc.Sample(table) * v.gate.Gain()
}

// Render fills dst with consecutive output samples read from table.
func (v *Voice) Render(dst []float64, table wavetable.Table) {
	for i := range dst {
		dst[i] = v.Sample(table)
	}
}

// Oscillator returns the voice's oscillator for inspection.
func (v *Voice) Oscillator() *Oscillator {
	return &v.osc
}

// Streamer returns an infinite Streamer playing v through table, the same value in both
// channels. The streamer shares v: presses and releases made on v are heard on the next
// streamed sample.
func (v *Voice) Streamer(table wavetable.Table) synth.Streamer {
	return synth.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			s := v.Sample(table)
			samples[i][0] = s
			samples[i][1] = s
		}
		return len(samples), true
	})
}
