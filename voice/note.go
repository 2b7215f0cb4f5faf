package voice

import "math"

// TuningOffset shifts note numbers onto the exponent of the frequency mapping. Note 69 lands
// within a hundred-thousandth of a hertz of 440 Hz, but not on it: this constant, not the
// A440 formula, is the tuning reference.
const TuningOffset = 36.376316

// NoteFrequency returns the frequency in Hz of a MIDI-style note number:
// 2^((note+TuningOffset)/12). It is strictly increasing in note. Numbers outside the musical
// range are not rejected; they just give inaudible frequencies.
func NoteFrequency(note uint8) float64 {
	return math.Pow(2, (float64(note)+TuningOffset)/12)
}
