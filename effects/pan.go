package effects

import "github.com/wtsynth/synth"

// Pan balances the wrapped Streamer between the left and the right channel. A Pan of -1 moves
// everything into the left channel, +1 into the right one, 0 changes nothing.
type Pan struct {
	Streamer synth.Streamer
	Pan      float64
}

// Stream streams the wrapped Streamer balanced by Pan.
func (p *Pan) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = p.Streamer.Stream(samples)
	amount := p.Pan
	if amount < -1 {
		amount = -1
	}
	if amount > 1 {
		amount = 1
	}
	switch {
	case amount < 0:
		for i := range samples[:n] {
			moved := -amount * samples[i][1]
			samples[i][0] += moved
			samples[i][1] -= moved
		}
	case amount > 0:
		for i := range samples[:n] {
			moved := amount * samples[i][0]
			samples[i][0] -= moved
			samples[i][1] += moved
		}
	}
	return n, ok
}

// Err propagates the wrapped Streamer's errors.
func (p *Pan) Err() error {
	return p.Streamer.Err()
}
