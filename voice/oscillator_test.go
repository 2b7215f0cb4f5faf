package voice

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wtsynth/synth/wavetable"
)

func randomTable(size int) wavetable.Table {
	table := make(wavetable.Table, size)
	for i := range table {
		table[i] = rand.Float64()*2 - 1
	}
	return table
}

func TestOscillatorInterpolationStaysBetweenNeighbours(t *testing.T) {
	for _, size := range []int{2, 7, 64, 2048} {
		table := randomTable(size)
		osc := NewOscillator(44100, size)
		for k := 0; k < 1000; k++ {
			osc.index = rand.Float64() * float64(size)
			i := int(osc.index)
			j := (i + 1) % size
			lo, hi := table[i], table[j]
			if lo > hi {
				lo, hi = hi, lo
			}

			s := osc.Sample(table)
			assert.True(t, s >= lo-1e-12 && s <= hi+1e-12,
				"size %d: sample %v at index %v outside [%v, %v]", size, s, float64(i), lo, hi)
		}
	}
}

func TestOscillatorInterpolatesAcrossTheWrap(t *testing.T) {
	table := wavetable.Table{0, 1, 0, -1}
	osc := NewOscillator(4, len(table))
	osc.SetFrequency(0.5)
	require.Equal(t, 0.5, osc.Increment())

	want := []float64{0, 0.5, 1, 0.5, 0, -0.5, -1, -0.5, 0, 0.5}
	for i, w := range want {
		assert.Equal(t, w, osc.Sample(table), "sample %d", i)
	}
}

func TestOscillatorReadsBeforeAdvancing(t *testing.T) {
	table := wavetable.Table{10, 11, 12, 13}
	osc := NewOscillator(4, len(table))
	osc.SetFrequency(1)

	for i, w := range []float64{10, 11, 12, 13, 10, 11} {
		before := osc.Index()
		assert.Equal(t, w, osc.Sample(table), "sample %d", i)
		assert.Equal(t, float64((i+1)%4), osc.Index(), "index after sample %d (was %v)", i, before)
	}
}

func TestOscillatorIndexStaysInRange(t *testing.T) {
	const size = 64
	table := randomTable(size)
	osc := NewOscillator(44100, size)
	for _, freq := range []float64{0, 1, 261.6, 5000, 44100, 100000} {
		osc.SetFrequency(freq)
		for k := 0; k < 5000; k++ {
			osc.Sample(table)
			require.True(t, osc.Index() >= 0 && osc.Index() < size, "freq %v: index %v", freq, osc.Index())
		}
	}
}

func TestOscillatorSetFrequencyIsIdempotent(t *testing.T) {
	const size = 64
	table := randomTable(size)
	osc := NewOscillator(44100, size)
	osc.SetFrequency(440)
	for k := 0; k < 37; k++ {
		osc.Sample(table)
	}

	index, increment := osc.Index(), osc.Increment()
	osc.SetFrequency(440)
	osc.SetFrequency(440)
	assert.Equal(t, index, osc.Index(), "SetFrequency must not move the phase")
	assert.Equal(t, increment, osc.Increment())
}

func TestOscillatorIsPeriodic(t *testing.T) {
	const size = 64
	table := randomTable(size)

	for _, step := range []float64{0.25, 0.5, 1, 2, 4} {
		osc := NewOscillator(44100, size)
		osc.SetFrequency(step * 44100 / size)
		require.Equal(t, step, osc.Increment())

		for k := 0; k < 5; k++ {
			osc.Sample(table)
		}
		start := osc.Index()
		period := int(size / step)
		first := make([]float64, period)
		for k := range first {
			first[k] = osc.Sample(table)
		}
		assert.Equal(t, start, osc.Index(), "step %v: index did not return after %d samples", step, period)
		for k := range first {
			require.Equal(t, first[k], osc.Sample(table), "step %v: sample %d of the second period", step, k)
		}
	}
}

func TestOscillatorExactIncrement(t *testing.T) {
	osc := NewOscillator(44100, 64)
	osc.SetFrequency(44100.0 / 64)
	assert.Equal(t, 1.0, osc.Increment())
}

func TestOscillatorStartsSilent(t *testing.T) {
	osc := NewOscillator(48000, 16)
	assert.Equal(t, 0.0, osc.Index())
	assert.Equal(t, 0.0, osc.Increment())
	assert.Equal(t, 16, osc.Size())
	assert.EqualValues(t, 48000, osc.SampleRate())

	table := randomTable(16)
	for k := 0; k < 10; k++ {
		assert.Equal(t, table[0], osc.Sample(table))
	}
}

func TestOscillatorReset(t *testing.T) {
	osc := NewOscillator(8, 8)
	osc.SetFrequency(3)
	table := randomTable(8)
	osc.Sample(table)
	osc.Sample(table)
	require.NotEqual(t, 0.0, osc.Index())

	osc.Reset()
	assert.Equal(t, 0.0, osc.Index())
	assert.Equal(t, 3.0, osc.Increment())
}

func TestNewOscillatorPanics(t *testing.T) {
	assert.Panics(t, func() { NewOscillator(0, 64) })
	assert.Panics(t, func() { NewOscillator(44100, 0) })
}
