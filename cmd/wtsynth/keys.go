package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell"
	"github.com/pkg/errors"
	"github.com/wtsynth/synth/speaker"
	"github.com/wtsynth/synth/voice"
	"github.com/wtsynth/synth/wavetable"
)

// Two piano-like rows: the bottom row starts an octave below the top one.
const (
	upperRow = "q2w3er5t6y7ui9o0p"
	lowerRow = "zsxdcvgbhnjm,l.;/"
)

// keyNote maps a typed rune to a note relative to base.
func keyNote(r rune, base int) (uint8, bool) {
	for i, k := range upperRow {
		if k == r {
			return uint8(base + i), true
		}
	}
	for i, k := range lowerRow {
		if k == r {
			return uint8(base - 12 + i), true
		}
	}
	return 0, false
}

func drawTextLine(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// keyboard plays one voice from key events. Terminals report no key releases, so every press
// is released after the configured hold time unless another key came first.
type keyboard struct {
	cfg   *config
	voice *voice.Voice

	note     uint8
	played   bool
	releaser *time.Timer
	presses  int
}

func (kb *keyboard) press(note uint8) {
	speaker.Lock()
	kb.voice.Press(note)
	kb.note, kb.played = note, true
	kb.presses++
	generation := kb.presses
	speaker.Unlock()

	if kb.releaser != nil {
		kb.releaser.Stop()
	}
	kb.releaser = time.AfterFunc(kb.cfg.hold, func() {
		speaker.Lock()
		defer speaker.Unlock()
		if kb.presses == generation {
			kb.voice.Release()
		}
	})
}

func (kb *keyboard) draw(screen tcell.Screen) {
	mainStyle := tcell.StyleDefault.
		Background(tcell.NewHexColor(0x1d2433)).
		Foreground(tcell.NewHexColor(0xc9d1d9))
	statusStyle := mainStyle.
		Foreground(tcell.NewHexColor(0xf0b429)).
		Bold(true)

	screen.Fill(' ', mainStyle)

	drawTextLine(screen, 0, 0, "wtsynth keyboard", mainStyle)
	drawTextLine(screen, 0, 1, "Press [ESC] to quit.", mainStyle)
	drawTextLine(screen, 0, 2, "Upper octave: "+upperRow, mainStyle)
	drawTextLine(screen, 0, 3, "Lower octave: "+lowerRow, mainStyle)

	speaker.Lock()
	note, played := kb.note, kb.played
	pressed := kb.voice.IsPressed()
	speaker.Unlock()

	noteStatus := "-"
	if played {
		noteStatus = fmt.Sprintf("%d (%.2f Hz)", note, voice.NoteFrequency(note))
	}
	gateStatus := "idle"
	if pressed {
		gateStatus = "sounding"
	}

	drawTextLine(screen, 0, 5, "Note:", mainStyle)
	drawTextLine(screen, 8, 5, noteStatus, statusStyle)
	drawTextLine(screen, 0, 6, "Gate:", mainStyle)
	drawTextLine(screen, 8, 6, gateStatus, statusStyle)
}

func (kb *keyboard) handle(event tcell.Event) (changed, quit bool) {
	ev, ok := event.(*tcell.EventKey)
	if !ok {
		return false, false
	}
	switch ev.Key() {
	case tcell.KeyESC, tcell.KeyCtrlC:
		return false, true
	case tcell.KeyRune:
		note, ok := keyNote(ev.Rune(), kb.cfg.base)
		if !ok {
			return false, false
		}
		kb.press(note)
		return true, false
	}
	return false, false
}

func playKeys(cfg *config, v *voice.Voice, table wavetable.Table) error {
	sr := cfg.sampleRate()
	if err := speaker.Init(sr, sr.N(time.Second/50)); err != nil {
		return err
	}
	defer speaker.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "keyboard")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "keyboard")
	}
	defer screen.Fini()

	kb := &keyboard{cfg: cfg, voice: v}
	speaker.Play(master(cfg, v.Streamer(table)))

	screen.Clear()
	kb.draw(screen)
	screen.Show()

	ticks := time.NewTicker(time.Second / 10)
	defer ticks.Stop()
	events := make(chan tcell.Event)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	for {
		select {
		case event := <-events:
			changed, quit := kb.handle(event)
			if quit {
				return nil
			}
			if changed {
				kb.draw(screen)
				screen.Show()
			}
		case <-ticks.C:
			kb.draw(screen)
			screen.Show()
		}
	}
}
