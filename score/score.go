// Package score turns note lists and Lua scripts into timed press/release events and plays them
// through a voice on the sample clock.
package score

import (
	"time"

	"github.com/pkg/errors"
	"github.com/wtsynth/synth"
	"github.com/wtsynth/synth/voice"
	"github.com/wtsynth/synth/wavetable"
	lua "github.com/yuin/gopher-lua"
)

// Event is one step of a score. A note event presses Note, holds it for Hold and lets it ring
// out for Release before the next event. A rest keeps the voice running for Hold without
// touching it.
type Event struct {
	Note    uint8
	Rest    bool
	Hold    time.Duration
	Release time.Duration
}

// Notes returns one note event per entry of notes, all with the same timing.
func Notes(notes []uint8, hold, release time.Duration) []Event {
	events := make([]Event, len(notes))
	for i, n := range notes {
		events[i] = Event{Note: n, Hold: hold, Release: release}
	}
	return events
}

// Length returns how long events take to play.
func Length(events []Event) time.Duration {
	var d time.Duration
	for _, e := range events {
		d += e.Hold
		if !e.Rest {
			d += e.Release
		}
	}
	return d
}

// Run executes a Lua score and returns the events it produced, in call order. The script sees
// two functions, durations in milliseconds:
//
//	note(n [, hold = 500 [, release = 0]])
//	rest(duration)
func Run(src string) ([]Event, error) {
	return run(func(L *lua.LState) error { return L.DoString(src) })
}

// RunFile executes the Lua score stored at path. See Run.
func RunFile(path string) ([]Event, error) {
	return run(func(L *lua.LState) error { return L.DoFile(path) })
}

func run(exec func(L *lua.LState) error) ([]Event, error) {
	L := lua.NewState()
	defer L.Close()

	var events []Event
	L.SetGlobal("note", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if n < 0 || n > 255 {
			L.ArgError(1, "note number out of range 0-255")
			return 0
		}
		events = append(events, Event{
			Note:    uint8(n),
			Hold:    millis(L, 2, 500),
			Release: millis(L, 3, 0),
		})
		return 0
	}))
	L.SetGlobal("rest", L.NewFunction(func(L *lua.LState) int {
		events = append(events, Event{Rest: true, Hold: millis(L, 1, 0)})
		return 0
	}))

	if err := exec(L); err != nil {
		return nil, errors.Wrap(err, "score")
	}
	return events, nil
}

// millis reads an optional non-negative millisecond argument.
func millis(L *lua.LState, n int, def float64) time.Duration {
	ms := float64(L.OptNumber(n, lua.LNumber(def)))
	if ms < 0 {
		L.ArgError(n, "duration must not be negative")
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// Streamer returns a finite Streamer playing events on v through table at sample rate sr.
// Presses and releases happen exactly on the sample boundaries the event durations fall on.
func Streamer(v *voice.Voice, table wavetable.Table, sr synth.SampleRate, events []Event) synth.Streamer {
	src := v.Streamer(table)
	parts := make([]synth.Streamer, 0, 4*len(events))
	for _, e := range events {
		if e.Rest {
			parts = append(parts, synth.Take(sr.N(e.Hold), src))
			continue
		}
		note := e.Note
		parts = append(parts,
			synth.Callback(func() { v.Press(note) }),
			synth.Take(sr.N(e.Hold), src),
			synth.Callback(v.Release),
			synth.Take(sr.N(e.Release), src),
		)
	}
	return synth.Seq(parts...)
}
