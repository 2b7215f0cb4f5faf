// Command wtsynth renders notes through a single wavetable voice, to a WAV file, to stdout as
// raw PCM, to the speaker, or interactively from the keyboard.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/wtsynth/synth"
	"github.com/wtsynth/synth/effects"
	"github.com/wtsynth/synth/envelope"
	"github.com/wtsynth/synth/pcm"
	"github.com/wtsynth/synth/render"
	"github.com/wtsynth/synth/score"
	"github.com/wtsynth/synth/speaker"
	"github.com/wtsynth/synth/voice"
	"github.com/wtsynth/synth/wavetable"
	"golang.org/x/term"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		log.Fatalf("wtsynth: %s", err)
	}
	if cfg.quiet {
		log.SetOutput(io.Discard)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("wtsynth: %s", err)
	}
}

func run(cfg *config) error {
	table, err := loadTable(cfg.table, cfg.size)
	if err != nil {
		return err
	}

	sr := cfg.sampleRate()
	v := voice.New(sr, cfg.size, envelope.New(sr, cfg.env))

	if cfg.keys {
		return playKeys(cfg, v, table)
	}

	events, err := loadEvents(cfg)
	if err != nil {
		return err
	}
	log.Printf("%d events, %v", len(events), score.Length(events).Round(time.Millisecond))

	out := master(cfg, score.Streamer(v, table, sr, events))
	format := synth.Format{SampleRate: sr, NumChannels: 2, Precision: cfg.precision}

	switch {
	case cfg.out != "":
		return writeWAV(cfg.out, out, format)
	case cfg.pcm:
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write raw PCM to a terminal, redirect stdout")
		}
		return pcm.Encode(os.Stdout, out, format)
	default:
		return playOnce(sr, out)
	}
}

// loadTable resolves name as a closed-form shape first and as a file path otherwise.
func loadTable(name string, size int) (wavetable.Table, error) {
	if table, err := wavetable.Shape(name, size); err == nil {
		return table, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, errors.Errorf("table %q is neither a known shape nor a readable file", name)
	}
	table, err := wavetable.Load(name, size)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d-entry table from %s (peak %.3f)", len(table), name, table.Peak())
	return table, nil
}

func loadEvents(cfg *config) ([]score.Event, error) {
	if cfg.scorePath != "" {
		return score.RunFile(cfg.scorePath)
	}
	if len(cfg.notes) == 0 {
		return nil, errors.New("no notes to play")
	}
	return score.Notes(cfg.notes, cfg.hold, cfg.release), nil
}

// master applies the output volume and balance.
func master(cfg *config, s synth.Streamer) synth.Streamer {
	return &effects.Pan{
		Streamer: &effects.Volume{Streamer: s, Base: 2, Volume: cfg.volume},
		Pan:      cfg.pan,
	}
}

func writeWAV(path string, s synth.Streamer, format synth.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create")
	}
	if err := render.WAV(f, s, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close")
	}
	log.Printf("wrote %s", path)
	return nil
}

func playOnce(sr synth.SampleRate, s synth.Streamer) error {
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return err
	}
	defer speaker.Close()

	done := make(chan struct{})
	log.Printf("playing")
	speaker.Play(synth.Seq(s, synth.Callback(func() {
		close(done)
	})))
	<-done
	log.Printf("done")
	return nil
}
