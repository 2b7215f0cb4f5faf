// Package render writes finite streams to audio files.
package render

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
	"github.com/wtsynth/synth"
)

// wavPCM is the WAVE format tag for integer PCM.
const wavPCM = 1

// WAV writes all audio streamed from s to w as an integer PCM WAVE file. s must be finite.
//
// Format precision must be 1, 2 or 3 bytes. One channel downmixes the stream; two or more
// channels carry left and right, extra channels are silent.
func WAV(w io.WriteSeeker, s synth.Streamer, format synth.Format) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "render: wav")
		}
	}()

	if format.NumChannels <= 0 {
		return errors.New("invalid number of channels (less than 1)")
	}
	if format.Precision < 1 || format.Precision > 3 {
		return errors.New("unsupported precision, 1, 2 or 3 is supported")
	}
	if format.SampleRate <= 0 {
		return errors.New("invalid sample rate")
	}

	var (
		bitDepth = format.Precision * 8
		enc      = wav.NewEncoder(w, int(format.SampleRate), bitDepth, format.NumChannels, wavPCM)
		samples  = make([][2]float64, 512)
		buf      = &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: format.NumChannels, SampleRate: int(format.SampleRate)},
			Data:           make([]int, 0, len(samples)*format.NumChannels),
			SourceBitDepth: bitDepth,
		}
	)
	for {
		n, ok := s.Stream(samples)
		if !ok {
			break
		}
		buf.Data = buf.Data[:0]
		for _, sample := range samples[:n] {
			buf.Data = appendFrame(buf.Data, sample, format)
		}
		if err := enc.Write(buf); err != nil {
			return err
		}
	}
	if err := s.Err(); err != nil {
		return err
	}
	return enc.Close()
}

// appendFrame appends one interleaved frame of integer samples. 8-bit WAVE data is unsigned.
func appendFrame(data []int, sample [2]float64, format synth.Format) []int {
	scale := float64(int(1)<<uint(format.Precision*8-1) - 1)
	put := func(x float64) int {
		if x < -1 {
			x = -1
		}
		if x > 1 {
			x = 1
		}
		v := int(x * scale)
		if format.Precision == 1 {
			v += 128
		}
		return v
	}
	if format.NumChannels == 1 {
		return append(data, put((sample[0]+sample[1])/2))
	}
	data = append(data, put(sample[0]), put(sample[1]))
	for c := 2; c < format.NumChannels; c++ {
		data = append(data, put(0))
	}
	return data
}
