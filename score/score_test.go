package score_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wtsynth/synth/score"
	"github.com/wtsynth/synth/voice"
	"github.com/wtsynth/synth/wavetable"
)

func TestRun(t *testing.T) {
	events, err := score.Run(`
		for i = 0, 2 do
			note(60 + i * 4, 250, 50)
		end
		rest(100)
		note(72)
	`)
	require.NoError(t, err)
	assert.Equal(t, []score.Event{
		{Note: 60, Hold: 250 * time.Millisecond, Release: 50 * time.Millisecond},
		{Note: 64, Hold: 250 * time.Millisecond, Release: 50 * time.Millisecond},
		{Note: 68, Hold: 250 * time.Millisecond, Release: 50 * time.Millisecond},
		{Rest: true, Hold: 100 * time.Millisecond},
		{Note: 72, Hold: 500 * time.Millisecond},
	}, events)
	assert.Equal(t, 1500*time.Millisecond, score.Length(events))
}

func TestRunErrors(t *testing.T) {
	for name, src := range map[string]string{
		"syntax":         `note(60`,
		"not a number":   `note("c")`,
		"out of range":   `note(300)`,
		"negative rest":  `rest(-1)`,
		"runtime error":  `error("boom")`,
		"negative hold":  `note(60, -5)`,
		"unknown global": `chord(60, 64)`,
	} {
		_, err := score.Run(src)
		assert.Error(t, err, name)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tune.lua")
	require.NoError(t, os.WriteFile(path, []byte("note(57, 10)\nrest(5)\n"), 0o644))

	events, err := score.RunFile(path)
	require.NoError(t, err)
	assert.Equal(t, []score.Event{
		{Note: 57, Hold: 10 * time.Millisecond},
		{Rest: true, Hold: 5 * time.Millisecond},
	}, events)

	_, err = score.RunFile(filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}

func TestNotes(t *testing.T) {
	events := score.Notes([]uint8{60, 62}, time.Second, time.Millisecond)
	assert.Equal(t, []score.Event{
		{Note: 60, Hold: time.Second, Release: time.Millisecond},
		{Note: 62, Hold: time.Second, Release: time.Millisecond},
	}, events)
}

// clockGate records the sample index of every press and release.
type clockGate struct {
	clock    int
	pressed  bool
	presses  []int
	releases []int
}

func (g *clockGate) Press()        { g.pressed = true; g.presses = append(g.presses, g.clock) }
func (g *clockGate) Release()      { g.pressed = false; g.releases = append(g.releases, g.clock) }
func (g *clockGate) Pressed() bool { return g.pressed }
func (g *clockGate) Gain() float64 {
	g.clock++
	if g.pressed {
		return 1
	}
	return 0
}

func TestStreamerSchedulesOnTheSampleClock(t *testing.T) {
	const sr = 1000
	gate := &clockGate{}
	v := voice.New(sr, 64, gate)
	events := []score.Event{
		{Note: 60, Hold: 10 * time.Millisecond, Release: 5 * time.Millisecond},
		{Rest: true, Hold: 3 * time.Millisecond},
		{Note: 67, Hold: 7 * time.Millisecond},
	}

	s := score.Streamer(v, wavetable.Sine(64), sr, events)
	total := 0
	buf := make([][2]float64, 4)
	for {
		n, ok := s.Stream(buf)
		if !ok {
			break
		}
		total += n
	}

	assert.Equal(t, 25, total)
	assert.Equal(t, []int{0, 18}, gate.presses)
	assert.Equal(t, []int{10, 25}, gate.releases)
	assert.Equal(t, voice.NoteFrequency(67)*64/sr, v.Oscillator().Increment())
}
