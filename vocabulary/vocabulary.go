// Package vocabulary holds the fixed table of roman-numeral tokens and the
// exercise sets built from them.
package vocabulary

import (
	"errors"
	"fmt"

	"github.com/jsphweid/eartrain/util"
)

var ErrUnknownHarmonicSymbol = errors.New("unknown harmonic symbol")

// Entry is the interval from the tonic to the chord root plus the chord
// quality marker understood by the theory package.
type Entry struct {
	Interval string
	Quality  string
}

// Case encodes major/minor, "°" diminished, "ø7" half-diminished and a
// leading "b" a lowered root.
var table = map[string]Entry{
	"I":        {Interval: "P1", Quality: "M"},
	"Imaj7":    {Interval: "P1", Quality: "maj7"},
	"i":        {Interval: "P1", Quality: "m"},
	"im7":      {Interval: "P1", Quality: "m7"},
	"ii":       {Interval: "M2", Quality: "m"},
	"iim7":     {Interval: "M2", Quality: "m7"},
	"ii°":      {Interval: "M2", Quality: "dim"},
	"iiø7":     {Interval: "M2", Quality: "m7b5"},
	"iii":      {Interval: "M3", Quality: "m"},
	"iiim7":    {Interval: "M3", Quality: "m7"},
	"III":      {Interval: "M3", Quality: "M"},
	"bIII":     {Interval: "m3", Quality: "M"},
	"bIIImaj7": {Interval: "m3", Quality: "maj7"},
	"biii":     {Interval: "m3", Quality: "m"},
	"IV":       {Interval: "P4", Quality: "M"},
	"IVmaj7":   {Interval: "P4", Quality: "maj7"},
	"iv":       {Interval: "P4", Quality: "m"},
	"ivm7":     {Interval: "P4", Quality: "m7"},
	"V":        {Interval: "P5", Quality: "M"},
	"V7":       {Interval: "P5", Quality: "dom7"},
	"v":        {Interval: "P5", Quality: "m"},
	"vm7":      {Interval: "P5", Quality: "m7"},
	"vi":       {Interval: "M6", Quality: "m"},
	"vim7":     {Interval: "M6", Quality: "m7"},
	"VI":       {Interval: "M6", Quality: "M"},
	"bVI":      {Interval: "m6", Quality: "M"},
	"bVImaj7":  {Interval: "m6", Quality: "maj7"},
	"bvi":      {Interval: "m6", Quality: "m"},
	"vii°":     {Interval: "M7", Quality: "dim"},
	"viiø7":    {Interval: "M7", Quality: "m7b5"},
	"bVII":     {Interval: "m7", Quality: "M"},
	"bVII7":    {Interval: "m7", Quality: "dom7"},
}

// Lookup is an exact match; there is no case folding or fuzzy resolution.
func Lookup(token string) (Entry, error) {
	entry, ok := table[token]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownHarmonicSymbol, token)
	}
	return entry, nil
}

func Has(token string) bool {
	_, ok := table[token]
	return ok
}

func Tokens() []string {
	return util.GetKeys(table)
}
