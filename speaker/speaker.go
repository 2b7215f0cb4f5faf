// Package speaker plays synth.Streamer values through the default audio device.
package speaker

import (
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"
	"github.com/wtsynth/synth"
)

const (
	channelCount    = 2
	bitDepthInBytes = 2
	bytesPerSample  = bitDepthInBytes * channelCount
)

var (
	mu      sync.Mutex
	mixer   synth.Mixer
	context *oto.Context
	player  *oto.Player
)

// Init initializes audio playback through speaker. Must be called before using this package.
//
// The bufferSize argument specifies the number of samples of the speaker's buffer. Bigger
// bufferSize means lower CPU usage and more reliable playback. Lower bufferSize means better
// responsiveness and less delay between a key press and the note sounding.
func Init(sampleRate synth.SampleRate, bufferSize int) error {
	if context != nil {
		return errors.New("speaker: cannot be initialized more than once")
	}

	mu.Lock()
	mixer = synth.Mixer{}
	mu.Unlock()

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(sampleRate),
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   sampleRate.D(bufferSize),
	})
	if err != nil {
		return errors.Wrap(err, "speaker: failed to initialize")
	}
	<-ready
	context = ctx

	player = context.NewPlayer(newReader(&mixer))
	player.SetBufferSize(bufferSize * bytesPerSample)
	player.Play()

	return nil
}

// Close stops playback and drops every playing Streamer. The device context stays allocated;
// oto allows only one per process.
func Close() error {
	if player == nil {
		return nil
	}
	err := player.Close()
	player = nil
	Clear()
	return errors.Wrap(err, "speaker: close")
}

// Lock locks the speaker. While locked, speaker won't pull new data from the playing Streamers.
// Lock if you want to modify any currently playing Streamers, such as pressing or releasing a
// voice, to avoid race conditions.
//
// Always lock speaker for as little time as possible, to avoid playback glitches.
func Lock() {
	mu.Lock()
}

// Unlock unlocks the speaker. Call after modifying any currently playing Streamer.
func Unlock() {
	mu.Unlock()
}

// Play starts playing all provided Streamers through the speaker.
func Play(s ...synth.Streamer) {
	mu.Lock()
	mixer.Add(s...)
	mu.Unlock()
}

// Clear removes all currently playing Streamers from the speaker.
func Clear() {
	mu.Lock()
	mixer.Clear()
	mu.Unlock()
}

// reader pulls samples from a Streamer under the speaker lock and encodes them for the device.
type reader struct {
	s      synth.Streamer
	format synth.Format
	buf    [][2]float64
}

func newReader(s synth.Streamer) *reader {
	return &reader{
		s:      s,
		format: synth.Format{NumChannels: channelCount, Precision: bitDepthInBytes},
	}
}

// Read fills p with encoded samples. len(p) is expected to be divisible by the size of one
// sample (channel count * bit depth in bytes).
func (r *reader) Read(p []byte) (n int, err error) {
	if len(p)%bytesPerSample != 0 {
		return 0, errors.New("speaker: requested number of bytes do not align with the samples")
	}
	ns := len(p) / bytesPerSample
	if len(r.buf) < ns {
		r.buf = make([][2]float64, ns)
	}

	mu.Lock()
	ns, ok := r.s.Stream(r.buf[:ns])
	mu.Unlock()
	if !ok {
		if err := r.s.Err(); err != nil {
			return 0, errors.Wrap(err, "speaker: streamer returned error when requesting samples")
		}
		if ns == 0 {
			return 0, io.EOF
		}
	}

	for i := range r.buf[:ns] {
		r.format.EncodeSigned(p[i*bytesPerSample:], r.buf[i])
	}
	return ns * bytesPerSample, nil
}
