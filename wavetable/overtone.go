package wavetable

// Overtone describes one partial of a waveform. Tables built from partials are produced outside
// this package; Overtone is only the description handed to that construction.
type Overtone struct {
	// Ratio is the frequency of the overtone relative to the fundamental.
	Ratio float64

	// Volume is how loud the overtone is relative to the total volume (1.0).
	Volume float64
}

// NormalizeOvertones returns a copy of overtones whose volumes sum to 1. If the volumes sum to
// zero, the copy is returned unscaled.
func NormalizeOvertones(overtones []Overtone) []Overtone {
	out := make([]Overtone, len(overtones))
	copy(out, overtones)

	total := 0.0
	for _, o := range out {
		total += o.Volume
	}
	if total == 0 {
		return out
	}
	for i := range out {
		out[i].Volume /= total
	}
	return out
}
