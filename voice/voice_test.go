package voice_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wtsynth/synth/voice"
	"github.com/wtsynth/synth/wavetable"
)

// stubGate is a Gate whose release takes releaseSamples calls to Gain to complete.
type stubGate struct {
	gain           float64
	releaseSamples int

	pressed   bool
	releasing int
	gains     int
	onPress   func()
}

func (g *stubGate) Press() {
	g.pressed = true
	g.releasing = 0
	if g.onPress != nil {
		g.onPress()
	}
}

func (g *stubGate) Release() {
	if g.pressed {
		g.releasing = g.releaseSamples
	}
}

func (g *stubGate) Pressed() bool { return g.pressed }

func (g *stubGate) Gain() float64 {
	g.gains++
	if g.releasing > 0 {
		g.releasing--
		if g.releasing == 0 {
			g.pressed = false
		}
	}
	return g.gain
}

func TestNoteFrequency(t *testing.T) {
	got := voice.NoteFrequency(69)
	want := math.Pow(2, (69+36.376316)/12)
	assert.InDelta(t, want, got, 1e-9)
	assert.NotEqual(t, 440.0, got, "the tuning constant is not the A440 formula")
	assert.InDelta(t, 440.0, got, 1e-3)
}

func TestNoteFrequencyIsStrictlyIncreasing(t *testing.T) {
	prev := voice.NoteFrequency(0)
	for n := 1; n <= math.MaxUint8; n++ {
		f := voice.NoteFrequency(uint8(n))
		require.Greater(t, f, prev, "note %d", n)
		prev = f
	}
}

func TestNoteFrequencyOctaves(t *testing.T) {
	for n := uint8(0); n < 116; n++ {
		assert.InDelta(t, 2*voice.NoteFrequency(n), voice.NoteFrequency(n+12), 1e-9*voice.NoteFrequency(n+12), "note %d", n)
	}
}

func TestVoiceStartsIdle(t *testing.T) {
	gate := &stubGate{gain: 1}
	v := voice.New(44100, 64, gate)
	assert.False(t, v.IsPressed())
	assert.Equal(t, 0.0, v.Oscillator().Increment())
}

func TestVoicePressPressesGateBeforeTuning(t *testing.T) {
	gate := &stubGate{gain: 1}
	v := voice.New(44100, 64, gate)

	var incrementAtPress float64
	gate.onPress = func() { incrementAtPress = v.Oscillator().Increment() }

	v.Press(69)
	assert.True(t, v.IsPressed())
	assert.Equal(t, 0.0, incrementAtPress, "the oscillator must be tuned after the gate is pressed")

	want := voice.NoteFrequency(69) * 64 / 44100
	assert.Equal(t, want, v.Oscillator().Increment())
}

func TestVoiceReleaseFollowsGate(t *testing.T) {
	gate := &stubGate{gain: 1, releaseSamples: 3}
	v := voice.New(44100, 64, gate)
	table := wavetable.Sine(64)

	v.Press(60)
	increment := v.Oscillator().Increment()
	v.Sample(table)

	v.Release()
	assert.True(t, v.IsPressed(), "the voice sounds until the gate finishes releasing")
	assert.Equal(t, increment, v.Oscillator().Increment(), "release must not touch the oscillator")

	v.Sample(table)
	v.Sample(table)
	assert.True(t, v.IsPressed())
	v.Sample(table)
	assert.False(t, v.IsPressed())
}

func TestVoiceSampleScalesByGain(t *testing.T) {
	gate := &stubGate{gain: 0.5}
	v := voice.New(44100, 4, gate)
	table := wavetable.Table{0.5, 0.5, 0.5, 0.5}

	v.Press(60)
	for k := 0; k < 10; k++ {
		assert.InDelta(t, 0.25, v.Sample(table), 1e-12)
	}
	assert.Equal(t, 10, gate.gains, "Gain is read exactly once per sample")
}

func TestVoiceRenderMatchesSample(t *testing.T) {
	table := wavetable.Triangle(64)
	a := voice.New(48000, 64, &stubGate{gain: 0.75})
	b := voice.New(48000, 64, &stubGate{gain: 0.75})
	a.Press(45)
	b.Press(45)

	buf := make([]float64, 300)
	a.Render(buf, table)
	for i := range buf {
		require.Equal(t, b.Sample(table), buf[i], "sample %d", i)
	}
}

func TestVoiceStreamer(t *testing.T) {
	table := wavetable.Sawtooth(64)
	gate := &stubGate{gain: 1}
	v := voice.New(44100, 64, gate)
	ref := voice.New(44100, 64, &stubGate{gain: 1})
	v.Press(72)
	ref.Press(72)

	s := v.Streamer(table)
	samples := make([][2]float64, 1000)
	n, ok := s.Stream(samples)
	require.True(t, ok)
	require.Equal(t, len(samples), n)
	assert.NoError(t, s.Err())

	for i := range samples {
		want := ref.Sample(table)
		require.Equal(t, want, samples[i][0], "left %d", i)
		require.Equal(t, want, samples[i][1], "right %d", i)
	}
}

func TestVoiceRenderDoesNotAllocate(t *testing.T) {
	table := wavetable.Sine(64)
	v := voice.New(44100, 64, &stubGate{gain: 1})
	v.Press(57)
	buf := make([]float64, 256)

	allocs := testing.AllocsPerRun(100, func() {
		v.Render(buf, table)
	})
	assert.Equal(t, 0.0, allocs)
}
