// Package wavetable supplies the single-cycle tables voices read from: closed-form shapes and
// tables cut from decoded audio files.
package wavetable

import (
	"fmt"

	"github.com/pkg/errors"
)

// DefaultSize is the table length shared by every oscillator unless configured otherwise.
const DefaultSize = 64

// Table holds one period of a waveform, normalized to roughly [-1, 1]. Oscillators read it
// cyclically and never modify it.
type Table []float64

// Len returns the number of entries in the table.
func (t Table) Len() int {
	return len(t)
}

// Peak returns the largest absolute value in the table.
func (t Table) Peak() float64 {
	peak := 0.0
	for _, v := range t {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Normalize scales the table in place so that its peak is exactly 1. A silent table is left
// untouched.
func (t Table) Normalize() Table {
	peak := t.Peak()
	if peak == 0 {
		return t
	}
	for i := range t {
		t[i] /= peak
	}
	return t
}

// Check reports whether t can be shared by oscillators configured for size entries.
func (t Table) Check(size int) error {
	if len(t) != size {
		return errors.Errorf("wavetable: table has %d entries, expected %d", len(t), size)
	}
	return nil
}

func checkSize(size int) {
	if size <= 0 {
		panic(fmt.Errorf("wavetable: invalid table size: %d", size))
	}
}
