package effects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wtsynth/synth"
	"github.com/wtsynth/synth/effects"
)

func constant(l, r float64) synth.Streamer {
	return synth.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			samples[i] = [2]float64{l, r}
		}
		return len(samples), true
	})
}

func first(s synth.Streamer) [2]float64 {
	buf := make([][2]float64, 4)
	s.Stream(buf)
	return buf[0]
}

func TestVolume(t *testing.T) {
	v := &effects.Volume{Streamer: constant(0.5, -0.25), Base: 2}
	assert.Equal(t, [2]float64{0.5, -0.25}, first(v))

	v.Volume = -1
	assert.Equal(t, [2]float64{0.25, -0.125}, first(v))

	v.Silent = true
	assert.Equal(t, 0.0, v.Gain())
	assert.Equal(t, [2]float64{0, 0}, first(v))
}

func TestPan(t *testing.T) {
	for _, tc := range []struct {
		pan  float64
		want [2]float64
	}{
		{0, [2]float64{0.5, 0.25}},
		{-1, [2]float64{0.75, 0}},
		{1, [2]float64{0, 0.75}},
		{0.5, [2]float64{0.25, 0.5}},
		{-7, [2]float64{0.75, 0}},
	} {
		p := &effects.Pan{Streamer: constant(0.5, 0.25), Pan: tc.pan}
		assert.Equal(t, tc.want, first(p), "pan %v", tc.pan)
	}
}
