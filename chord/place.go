package chord

import (
	"github.com/jsphweid/eartrain/theory"
)

type Direction int

const (
	Up   Direction = 1
	Down Direction = -1
)

// Place moves candidate by at most one octave toward reference, comparing
// root frequencies. It assumes the roots start less than two octaves apart.
func Place(reference, candidate theory.Chord) theory.Chord {
	refFq := reference.Root().Fq()
	candFq := candidate.Root().Fq()
	switch {
	case candFq < refFq:
		return candidate.Transpose(theory.Octave)
	case candFq > refFq:
		return candidate.Transpose(theory.OctaveDown)
	default:
		return candidate
	}
}

// PlaceToward only ever shifts in one direction: Up raises a candidate
// rooted below the reference, Down lowers one rooted at or above it. The
// reference chord itself is never moved.
func PlaceToward(reference, candidate theory.Chord, dir Direction) theory.Chord {
	if candidate.Symbol() == reference.Symbol() {
		return candidate
	}

	below := candidate.Root().Fq() < reference.Root().Fq()
	switch {
	case dir == Up && below:
		return candidate.Transpose(theory.Octave)
	case dir == Down && !below:
		return candidate.Transpose(theory.OctaveDown)
	default:
		return candidate
	}
}
