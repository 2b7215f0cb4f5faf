//go:build synthdebug

package voice

const debug = true
