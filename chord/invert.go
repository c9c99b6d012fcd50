package chord

import (
	"github.com/jsphweid/eartrain/theory"
	"github.com/jsphweid/eartrain/util"
)

// Invert raises (n > 0) or lowers (n < 0) chord tones of the default voicing
// by an octave, one tone per step. Lowering walks the voicing from the top.
// Steps past the chord arity wrap around and stack further octaves, so
// n = arity moves the whole chord up an octave. n = 0 is the default voicing.
func Invert(c theory.Chord, n int) theory.Chord {
	voicing := c.DefaultVoicing()
	if n == 0 || len(voicing) == 0 {
		return c.WithVoicing(voicing)
	}

	shift := theory.Octave
	steps := n
	if n < 0 {
		voicing = util.Reverse(voicing)
		shift = theory.OctaveDown
		steps = -n
	}

	for i := 0; i < steps; i++ {
		idx := i % len(voicing)
		voicing[idx] = voicing[idx].Add(shift)
	}
	return c.WithVoicing(voicing)
}
