package theory

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnresolvedChordSymbol = errors.New("unresolved chord symbol")

// qualities maps a canonical quality marker to its ascending chord tones.
var qualities = map[string][]Interval{
	"M":    intervals("P1", "M3", "P5"),
	"m":    intervals("P1", "m3", "P5"),
	"dim":  intervals("P1", "m3", "d5"),
	"aug":  intervals("P1", "M3", "A5"),
	"maj7": intervals("P1", "M3", "P5", "M7"),
	"m7":   intervals("P1", "m3", "P5", "m7"),
	"dom7": intervals("P1", "M3", "P5", "m7"),
	"m7b5": intervals("P1", "m3", "d5", "m7"),
	"dim7": intervals("P1", "m3", "d5", "d7"),
}

var qualityAliases = map[string]string{
	"":    "M",
	"maj": "M",
	"min": "m",
	"°":   "dim",
	"+":   "aug",
	"M7":  "maj7",
	"7":   "dom7",
	"ø":   "m7b5",
	"ø7":  "m7b5",
	"°7":  "dim7",
}

func intervals(specs ...string) []Interval {
	res := make([]Interval, len(specs))
	for i, spec := range specs {
		res[i] = MustParseInterval(spec)
	}
	return res
}

func canonicalQuality(marker string) (string, bool) {
	if alias, ok := qualityAliases[marker]; ok {
		marker = alias
	}
	_, ok := qualities[marker]
	return marker, ok
}

// Chord is an immutable root, quality and voicing. The voicing is a list of
// intervals from the root; the default is the ascending chord tones.
type Chord struct {
	root    Note
	quality string
	voicing []Interval
}

// ChordFromRoot builds a chord with the default voicing of quality.
func ChordFromRoot(root Note, quality string) (Chord, error) {
	canonical, ok := canonicalQuality(quality)
	if !ok {
		return Chord{}, fmt.Errorf("%w: unknown quality %q", ErrUnresolvedChordSymbol, quality)
	}
	return Chord{root: root, quality: canonical, voicing: qualities[canonical]}, nil
}

// ResolveChord parses a root spelling followed by a quality marker, such
// as "Dm", "Gdom7", "F#m7b5" or "Bb". The root sits in octave 4.
func ResolveChord(symbol string) (Chord, error) {
	if symbol == "" || strings.IndexByte(letterNames, strings.ToUpper(symbol[:1])[0]) < 0 {
		return Chord{}, fmt.Errorf("%w: %q", ErrUnresolvedChordSymbol, symbol)
	}

	i := 1
	for i < len(symbol) && (symbol[i] == '#' || symbol[i] == 'b' || symbol[i] == 'x') {
		i++
	}
	root, err := ResolveNote(symbol[:i])
	if err != nil {
		return Chord{}, fmt.Errorf("%w: %q: %v", ErrUnresolvedChordSymbol, symbol, err)
	}

	c, err := ChordFromRoot(root, symbol[i:])
	if err != nil {
		return Chord{}, fmt.Errorf("%w: %q", ErrUnresolvedChordSymbol, symbol)
	}
	return c, nil
}

func MustResolveChord(symbol string) Chord {
	c, err := ResolveChord(symbol)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Chord) Root() Note {
	return c.root
}

func (c Chord) Quality() string {
	return c.quality
}

func (c Chord) Symbol() string {
	return c.root.Name() + c.quality
}

// Arity is the number of chord tones, 3 for a triad and 4 for a seventh.
func (c Chord) Arity() int {
	return len(qualities[c.quality])
}

func (c Chord) DefaultVoicing() []Interval {
	return append([]Interval(nil), qualities[c.quality]...)
}

func (c Chord) Voicing() []Interval {
	return append([]Interval(nil), c.voicing...)
}

// WithVoicing returns a copy of c sounding the given voicing. Root and
// quality are kept.
func (c Chord) WithVoicing(voicing []Interval) Chord {
	return Chord{root: c.root, quality: c.quality, voicing: append([]Interval(nil), voicing...)}
}

// Transpose moves the whole chord, voicing included, by iv.
func (c Chord) Transpose(iv Interval) Chord {
	return Chord{root: c.root.Transpose(iv), quality: c.quality, voicing: c.voicing}
}

// Notes applies the voicing to the root, in voicing order.
func (c Chord) Notes() []Note {
	notes := make([]Note, len(c.voicing))
	for i, iv := range c.voicing {
		notes[i] = c.root.Transpose(iv)
	}
	return notes
}

func (c Chord) String() string {
	return fmt.Sprintf("%s%v", c.Symbol(), NoteNames(c.Notes()))
}

func Qualities() []string {
	res := make([]string, 0, len(qualities))
	for q := range qualities {
		res = append(res, q)
	}
	return res
}
