package voice

import (
	"fmt"
	"math"

	"github.com/wtsynth/synth"
	"github.com/wtsynth/synth/wavetable"
)

// Oscillator reads a wavetable cyclically at a fractional position, producing a periodic
// signal at an arbitrary frequency from one shared table.
//
// The zero value is not usable; create oscillators with NewOscillator.
type Oscillator struct {
	sampleRate float64
	size       int

	index     float64 // read position, always in [0, size)
	increment float64 // table entries advanced per output sample
}

// NewOscillator returns a silent oscillator for tables of size entries played at sample rate
// sr. It panics if either is not positive.
func NewOscillator(sr synth.SampleRate, size int) Oscillator {
	if sr <= 0 {
		panic(fmt.Errorf("voice: oscillator: invalid sample rate: %d", sr))
	}
	if size <= 0 {
		panic(fmt.Errorf("voice: oscillator: invalid table size: %d", size))
	}
	return Oscillator{
		sampleRate: float64(sr),
		size:       size,
	}
}

// SetFrequency sets the pitch in Hz. The phase is kept, so repeated calls with the same
// frequency change nothing. Frequencies above half the sample rate alias.
func (o *Oscillator) SetFrequency(freq float64) {
	o.increment = freq * float64(o.size) / o.sampleRate
}

// Sample returns the linearly interpolated table value at the current position and then
// advances the position by one sample, wrapping modulo the table length.
//
// table must have exactly the length the oscillator was created for.
func (o *Oscillator) Sample(table wavetable.Table) float64 {
	if debug && len(table) != o.size {
		panic(fmt.Errorf("voice: oscillator: table has %d entries, expected %d", len(table), o.size))
	}
	i := int(o.index)
	j := (i + 1) % o.size
	frac := o.index - float64(i)
	sample := (1-frac)*table[i] + frac*table[j]

	o.index = math.Mod(o.index+o.increment, float64(o.size))
	return sample
}

// Reset rewinds the oscillator to the start of the table. The frequency is kept.
func (o *Oscillator) Reset() {
	o.index = 0
}

// Index returns the current read position in [0, Size()).
func (o *Oscillator) Index() float64 { return o.index }

// Increment returns the number of table entries advanced per sample.
func (o *Oscillator) Increment() float64 { return o.increment }

// Size returns the table length the oscillator reads.
func (o *Oscillator) Size() int { return o.size }

// SampleRate returns the output sample rate.
func (o *Oscillator) SampleRate() synth.SampleRate { return synth.SampleRate(o.sampleRate) }
