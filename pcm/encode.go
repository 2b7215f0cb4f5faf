package pcm

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"github.com/wtsynth/synth"
)

// Encode writes all audio streamed from s to w as raw signed little-endian PCM in the given
// format. s must be finite.
func Encode(w io.Writer, s synth.Streamer, format synth.Format) error {
	var (
		bw      = bufio.NewWriter(w)
		samples = make([][2]float64, 512)
		buffer  = make([]byte, len(samples)*format.Width())
	)
	for {
		n, ok := s.Stream(samples)
		if !ok {
			break
		}
		var offset int
		for _, sample := range samples[:n] {
			offset += format.EncodeSigned(buffer[offset:], sample)
		}
		if _, err := bw.Write(buffer[:offset]); err != nil {
			return errors.Wrap(err, "pcm")
		}
	}
	if err := s.Err(); err != nil {
		return errors.Wrap(err, "pcm: streamer failed")
	}
	return errors.Wrap(bw.Flush(), "pcm")
}
