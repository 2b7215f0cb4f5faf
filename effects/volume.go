// Package effects holds Streamer wrappers applied after the voices: master volume and stereo
// placement.
package effects

import (
	"math"

	"github.com/wtsynth/synth"
)

// Volume adjusts the loudness of the wrapped Streamer exponentially: the samples are multiplied
// by Base^Volume. With Base 2, each unit of Volume doubles or halves the amplitude, and a
// Volume of 0 leaves the stream unchanged. Silent mutes the stream regardless of Volume.
type Volume struct {
	Streamer synth.Streamer
	Base     float64
	Volume   float64
	Silent   bool
}

// Gain returns the factor samples are currently multiplied by.
func (v *Volume) Gain() float64 {
	if v.Silent {
		return 0
	}
	return math.Pow(v.Base, v.Volume)
}

// Stream streams the wrapped Streamer with its volume adjusted.
func (v *Volume) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = v.Streamer.Stream(samples)
	gain := v.Gain()
	for i := range samples[:n] {
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	return n, ok
}

// Err propagates the wrapped Streamer's errors.
func (v *Volume) Err() error {
	return v.Streamer.Err()
}
