package main

import (
	"flag"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/wtsynth/synth"
	"github.com/wtsynth/synth/envelope"
	"github.com/wtsynth/synth/wavetable"
)

type config struct {
	rate      int
	size      int
	table     string
	notes     []uint8
	scorePath string
	hold      time.Duration
	release   time.Duration
	env       envelope.Params
	volume    float64
	pan       float64
	precision int

	out   string
	pcm   bool
	play  bool
	keys  bool
	base  int
	quiet bool
}

func parseConfig(args []string, output io.Writer) (*config, error) {
	var (
		cfg   config
		notes string
		env   = envelope.DefaultParams()
	)

	fs := flag.NewFlagSet("wtsynth", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		io.WriteString(output, "Usage: wtsynth [flags] (-out file.wav | -pcm | -play | -keys)\n\n")
		fs.PrintDefaults()
	}

	fs.IntVar(&cfg.rate, "rate", int(synth.DefaultSampleRate), "output sample rate in Hz")
	fs.IntVar(&cfg.size, "size", wavetable.DefaultSize, "wavetable length in entries")
	fs.StringVar(&cfg.table, "table", "sine", "wavetable: one of "+strings.Join(wavetable.Shapes(), ", ")+", or a wav/flac/ogg/mp3/pcm file holding one period")
	fs.StringVar(&notes, "notes", "60,64,67,72", "comma separated note numbers to play in turn")
	fs.StringVar(&cfg.scorePath, "score", "", "Lua score to play instead of -notes")
	fs.DurationVar(&cfg.hold, "hold", 400*time.Millisecond, "how long each note is held")
	fs.DurationVar(&cfg.release, "release", 300*time.Millisecond, "how long each note rings after release")
	fs.DurationVar(&env.Attack, "attack", env.Attack, "envelope attack time")
	fs.DurationVar(&env.Decay, "decay", env.Decay, "envelope decay time")
	fs.Float64Var(&env.Sustain, "sustain", env.Sustain, "envelope sustain level (0-1)")
	fs.DurationVar(&env.Release, "env-release", env.Release, "envelope release time")
	fs.Float64Var(&cfg.volume, "volume", 0, "master volume, each unit doubles or halves the amplitude")
	fs.Float64Var(&cfg.pan, "pan", 0, "stereo balance from -1 (left) to 1 (right)")
	fs.IntVar(&cfg.precision, "precision", 2, "bytes per sample for -out and -pcm (1-3)")
	fs.StringVar(&cfg.out, "out", "", "render to this WAV file")
	fs.BoolVar(&cfg.pcm, "pcm", false, "render raw signed little-endian stereo PCM (see -precision) to stdout")
	fs.BoolVar(&cfg.play, "play", false, "play through the default audio device")
	fs.BoolVar(&cfg.keys, "keys", false, "play interactively from the computer keyboard")
	fs.IntVar(&cfg.base, "base", 60, "note of the Q key in -keys mode")
	fs.BoolVar(&cfg.quiet, "quiet", false, "do not log progress")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %v", fs.Args())
	}

	var err error
	if cfg.notes, err = parseNotes(notes); err != nil {
		return nil, err
	}
	cfg.env = env
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *config) validate() error {
	outputs := 0
	for _, set := range []bool{cfg.out != "", cfg.pcm, cfg.play, cfg.keys} {
		if set {
			outputs++
		}
	}
	switch {
	case outputs == 0:
		return errors.New("choose an output: -out, -pcm, -play or -keys")
	case outputs > 1:
		return errors.New("-out, -pcm, -play and -keys are mutually exclusive")
	case cfg.rate <= 0:
		return errors.Errorf("invalid sample rate %d", cfg.rate)
	case cfg.size <= 1:
		return errors.Errorf("invalid table size %d", cfg.size)
	case cfg.precision < 1 || cfg.precision > 3:
		return errors.Errorf("invalid precision %d, 1, 2 or 3 is supported", cfg.precision)
	case cfg.env.Sustain < 0 || cfg.env.Sustain > 1:
		return errors.Errorf("sustain level %v outside [0, 1]", cfg.env.Sustain)
	case cfg.pan < -1 || cfg.pan > 1:
		return errors.Errorf("pan %v outside [-1, 1]", cfg.pan)
	case cfg.hold < 0 || cfg.release < 0:
		return errors.New("note durations must not be negative")
	case cfg.base < 12 || cfg.base > 255-16:
		return errors.Errorf("base note %d leaves the keyboard out of range", cfg.base)
	}
	return nil
}

func (cfg *config) sampleRate() synth.SampleRate {
	return synth.SampleRate(cfg.rate)
}

func parseNotes(s string) ([]uint8, error) {
	var notes []uint8
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid note %q", field)
		}
		notes = append(notes, uint8(n))
	}
	return notes, nil
}
