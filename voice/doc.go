// Package voice is the per-sample synthesis kernel: a wavetable phase oscillator, the mapping
// from note numbers to frequencies, and Voice, which pitches an oscillator from note events and
// shapes its loudness with an envelope gate.
//
// Everything here runs on the audio thread. No method allocates, blocks or fails; delivering
// Press and Release calls from another goroutine is the caller's business (see the speaker
// package's Lock and Unlock).
//
// Table length preconditions are only checked when built with the synthdebug tag:
//
//	go test -tags synthdebug ./voice
package voice
