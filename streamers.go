package synth

// Silence returns a Streamer which streams n samples of silence. If n is negative, silence is
// streamed forever.
func Silence(n int) Streamer {
	return StreamerFunc(func(samples [][2]float64) (m int, ok bool) {
		if n == 0 {
			return 0, false
		}
		for i := range samples {
			if n == 0 {
				break
			}
			samples[i] = [2]float64{}
			m++
			if n > 0 {
				n--
			}
		}
		return m, true
	})
}

// Callback returns a Streamer, which does not stream any samples, but instead calls f the first
// time its Stream method is called. Inside Seq it runs f exactly between its neighbours, which
// is how note presses and releases are scheduled on the sample clock.
func Callback(f func()) Streamer {
	return StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if f != nil {
			f()
			f = nil
		}
		return 0, false
	})
}
