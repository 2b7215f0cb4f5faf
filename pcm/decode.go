// Package pcm reads and writes headerless signed PCM audio.
package pcm

import (
	"io"

	"github.com/pkg/errors"
	"github.com/wtsynth/synth"
)

// Decode takes a Reader containing raw signed little-endian PCM in the given format and returns
// a Streamer which streams that audio until r is exhausted. A trailing partial sample is
// dropped.
func Decode(r io.Reader, format synth.Format) synth.Streamer {
	return &decoder{
		r:   r,
		f:   format,
		buf: make([]byte, 512*format.Width()),
	}
}

type decoder struct {
	r    io.Reader
	f    synth.Format
	buf  []byte
	head int // start of undecoded bytes in buf
	tail int // end of valid bytes in buf
	eof  bool
	err  error
}

func (d *decoder) Err() error { return d.err }

func (d *decoder) Stream(samples [][2]float64) (n int, ok bool) {
	width := d.f.Width()
	if d.err != nil {
		return 0, false
	}
	for d.tail-d.head < width {
		if d.eof {
			return 0, false
		}
		d.fill()
		if d.err != nil {
			return 0, false
		}
	}
	for n < len(samples) && d.tail-d.head >= width {
		samples[n], _ = d.f.DecodeSigned(d.buf[d.head:])
		d.head += width
		n++
	}
	return n, true
}

// fill moves the partial sample to the front of buf and reads more bytes behind it.
func (d *decoder) fill() {
	d.tail = copy(d.buf, d.buf[d.head:d.tail])
	d.head = 0
	nbytes, err := d.r.Read(d.buf[d.tail:])
	d.tail += nbytes
	if err == io.EOF {
		d.eof = true
		return
	}
	if err != nil {
		d.err = errors.Wrap(err, "pcm")
	}
}
