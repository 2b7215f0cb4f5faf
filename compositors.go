package synth

// Take returns a Streamer which streams at most n samples from s.
//
// The returned Streamer propagates s's errors through Err.
func Take(n int, s Streamer) Streamer {
	return &take{
		s:         s,
		remaining: n,
	}
}

type take struct {
	s         Streamer
	remaining int
}

func (t *take) Stream(samples [][2]float64) (n int, ok bool) {
	if t.remaining <= 0 {
		return 0, false
	}
	if len(samples) > t.remaining {
		samples = samples[:t.remaining]
	}
	n, ok = t.s.Stream(samples)
	t.remaining -= n
	return n, ok
}

func (t *take) Err() error {
	return t.s.Err()
}

// Seq takes zero or more Streamers and returns a Streamer which streams them one by one without
// pauses.
//
// Seq does not propagate errors from the Streamers.
func Seq(s ...Streamer) Streamer {
	i := 0
	return StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i < len(s) && len(samples) > 0 {
			sn, sok := s[i].Stream(samples)
			samples = samples[sn:]
			n, ok = n+sn, ok || sok
			if !sok {
				i++
			}
		}
		return n, ok
	})
}

// Mixer allows for dynamic mixing of arbitrary number of Streamers. Mixer automatically removes
// drained Streamers. Mixer's stream never drains, when empty, Mixer streams silence.
//
// The zero value of Mixer is an empty Mixer ready to use.
type Mixer struct {
	streamers []Streamer
	tmp       [512][2]float64
}

// Len returns the number of Streamers currently playing in the Mixer.
func (m *Mixer) Len() int {
	return len(m.streamers)
}

// Add adds Streamers to the Mixer.
func (m *Mixer) Add(s ...Streamer) {
	m.streamers = append(m.streamers, s...)
}

// Clear removes all Streamers from the mixer.
func (m *Mixer) Clear() {
	m.streamers = m.streamers[:0]
}

// Stream streams all Streamers currently in the Mixer mixed together. This method always returns
// len(samples), true. If there are no Streamers available, this methods streams silence.
func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	for len(samples) > 0 {
		toStream := len(m.tmp)
		if toStream > len(samples) {
			toStream = len(samples)
		}

		for i := range samples[:toStream] {
			samples[i] = [2]float64{}
		}

		live := m.streamers[:0]
		for _, st := range m.streamers {
			sn, sok := st.Stream(m.tmp[:toStream])
			for i := range m.tmp[:sn] {
				samples[i][0] += m.tmp[i][0]
				samples[i][1] += m.tmp[i][1]
			}
			if sok {
				live = append(live, st)
			}
		}
		for i := len(live); i < len(m.streamers); i++ {
			m.streamers[i] = nil
		}
		m.streamers = live

		samples = samples[toStream:]
		n += toStream
	}
	return n, true
}

// Err always returns nil for Mixer.
//
// There are two reasons. The first one is that erroring Streamers are immediately drained and
// removed from the Mixer. The second one is that one Streamer shouldn't break the whole Mixer and
// you should handle the errors right where they can happen.
func (m *Mixer) Err() error {
	return nil
}
