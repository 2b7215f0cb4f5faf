package wavetable

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
	"github.com/pkg/errors"
	"github.com/wtsynth/synth"
	"github.com/wtsynth/synth/pcm"
)

// Kind is an audio container a table can be cut from.
type Kind int

// Supported table file kinds.
const (
	WAV Kind = iota
	FLAC
	Vorbis
	MP3
	PCM
)

// RawFormat is the layout expected from PCM (headerless) table files: mono, 16-bit signed,
// little-endian. The sample rate is irrelevant for a single period.
var RawFormat = synth.Format{SampleRate: synth.DefaultSampleRate, NumChannels: 1, Precision: 2}

func (k Kind) String() string {
	switch k {
	case WAV:
		return "wav"
	case FLAC:
		return "flac"
	case Vorbis:
		return "ogg/vorbis"
	case MP3:
		return "mp3"
	case PCM:
		return "pcm"
	}
	return "unknown"
}

// KindOf guesses the kind of a table file from its extension.
func KindOf(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return WAV, nil
	case ".flac":
		return FLAC, nil
	case ".ogg", ".oga":
		return Vorbis, nil
	case ".mp3":
		return MP3, nil
	case ".pcm", ".raw":
		return PCM, nil
	}
	return 0, errors.Errorf("wavetable: cannot tell the format of %s from its extension", path)
}

// Load opens the audio file at path and cuts a table of size entries from its beginning. See
// Decode.
func Load(path string, size int) (Table, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "wavetable")
	}
	defer f.Close()
	return Decode(f, kind, size)
}

// Decode reads the first size frames of audio of the given kind from r and returns them as a
// table, downmixing all channels to mono. The input is expected to hold exactly one period in
// those frames; it is not resampled. Inputs with fewer than size frames are rejected.
func Decode(r io.Reader, kind Kind, size int) (Table, error) {
	checkSize(size)
	c := &collector{table: make(Table, size)}

	var err error
	switch kind {
	case WAV:
		err = c.wav(r)
	case FLAC:
		err = c.flac(r)
	case Vorbis:
		err = c.vorbis(r)
	case MP3:
		err = c.mp3(r)
	case PCM:
		err = c.stream(pcm.Decode(r, RawFormat))
	default:
		err = errors.Errorf("unsupported kind %d", int(kind))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "wavetable: %s", kind)
	}
	if !c.full() {
		return nil, errors.Errorf("wavetable: %s: input holds %d frames, table needs %d", kind, c.n, size)
	}
	return c.table, nil
}

// collector accumulates mono frames until the table is full.
type collector struct {
	table Table
	n     int
}

func (c *collector) full() bool {
	return c.n >= len(c.table)
}

func (c *collector) add(v float64) {
	if c.full() {
		return
	}
	c.table[c.n] = v
	c.n++
}

func (c *collector) stream(s synth.Streamer) error {
	var buf [512][2]float64
	for !c.full() {
		n, ok := s.Stream(buf[:])
		for _, sample := range buf[:n] {
			c.add((sample[0] + sample[1]) / 2)
		}
		if !ok {
			break
		}
	}
	return s.Err()
}

func (c *collector) wav(r io.Reader) error {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		rs = bytes.NewReader(data)
	}
	d := wav.NewDecoder(rs)
	if !d.IsValidFile() {
		return errors.New("not a valid PCM wave file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return err
	}
	channels := buf.Format.NumChannels
	if channels <= 0 {
		return errors.New("invalid number of channels (less than 1)")
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(d.BitDepth)
	}
	if depth != 8 && depth != 16 && depth != 24 && depth != 32 {
		return errors.Errorf("unsupported bit depth %d", depth)
	}
	scale := float64(int64(1) << uint(depth-1))
	for i := 0; i+channels <= len(buf.Data) && !c.full(); i += channels {
		sum := 0.0
		for _, v := range buf.Data[i : i+channels] {
			if depth == 8 {
				// 8-bit wave data is unsigned
				v -= 128
			}
			sum += float64(v) / scale
		}
		c.add(sum / float64(channels))
	}
	return nil
}

func (c *collector) flac(r io.Reader) error {
	stream, err := flac.New(r)
	if err != nil {
		return err
	}
	channels := int(stream.Info.NChannels)
	if channels <= 0 {
		return errors.New("invalid number of channels (less than 1)")
	}
	depth := int(stream.Info.BitsPerSample)
	if depth < 4 || depth > 32 {
		return errors.Errorf("unsupported bit depth %d", depth)
	}
	scale := float64(int64(1) << uint(depth-1))
	for !c.full() {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		for i := 0; i < int(frame.BlockSize) && !c.full(); i++ {
			sum := 0.0
			for ch := 0; ch < channels; ch++ {
				sum += float64(frame.Subframes[ch].Samples[i]) / scale
			}
			c.add(sum / float64(channels))
		}
	}
	return nil
}

func (c *collector) vorbis(r io.Reader) error {
	d, err := oggvorbis.NewReader(r)
	if err != nil {
		return err
	}
	channels := d.Channels()
	if channels <= 0 {
		return errors.New("invalid number of channels (less than 1)")
	}
	buf := make([]float32, 512*channels)
	for !c.full() {
		n, err := d.Read(buf)
		for i := 0; i+channels <= n; i += channels {
			sum := 0.0
			for _, v := range buf[i : i+channels] {
				sum += float64(v)
			}
			c.add(sum / float64(channels))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// go-mp3 always produces 16-bit signed stereo.
var mp3Format = synth.Format{NumChannels: 2, Precision: 2}

func (c *collector) mp3(r io.Reader) error {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return err
	}
	format := mp3Format
	format.SampleRate = synth.SampleRate(d.SampleRate())
	return c.stream(pcm.Decode(d, format))
}
