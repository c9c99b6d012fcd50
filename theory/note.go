package theory

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrUnresolvedNote = errors.New("unresolved note")

const (
	defaultOctave = 4
	concertA      = 440.0
	concertAKey   = 69
)

const letterNames = "CDEFGAB"

// Note is a spelled pitch: a letter, a signed accidental count and an octave
// in scientific pitch notation (C4 is middle C).
type Note struct {
	letter     int
	accidental int
	octave     int
}

// ResolveNote parses "C", "C#", "Db", "F#3", "bb2" and similar. The octave
// defaults to 4.
func ResolveNote(name string) (Note, error) {
	if name == "" {
		return Note{}, fmt.Errorf("%w: empty name", ErrUnresolvedNote)
	}

	letter := strings.IndexByte(letterNames, strings.ToUpper(name[:1])[0])
	if letter < 0 {
		return Note{}, fmt.Errorf("%w: %q", ErrUnresolvedNote, name)
	}

	n := Note{letter: letter, octave: defaultOctave}
	rest := name[1:]
AccidentalLoop:
	for len(rest) > 0 {
		switch rest[0] {
		case '#':
			n.accidental++
		case 'x':
			n.accidental += 2
		case 'b':
			n.accidental--
		default:
			break AccidentalLoop
		}
		rest = rest[1:]
	}

	if rest != "" {
		octave, err := strconv.Atoi(rest)
		if err != nil {
			return Note{}, fmt.Errorf("%w: %q", ErrUnresolvedNote, name)
		}
		n.octave = octave
	}
	return n, nil
}

func MustResolveNote(name string) Note {
	n, err := ResolveNote(name)
	if err != nil {
		panic(err)
	}
	return n
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (n Note) diatonic() int {
	return n.octave*7 + n.letter
}

func (n Note) semitones() int {
	return n.octave*12 + majorSemitones[n.letter] + n.accidental
}

// Transpose applies an interval and spells the result by letter distance,
// so C transposed by "m3" is Eb and not D#.
func (n Note) Transpose(iv Interval) Note {
	diatonic := n.diatonic() + iv.Steps
	octave := floorDiv(diatonic, 7)
	letter := diatonic - octave*7
	target := n.semitones() + iv.Semitones
	return Note{
		letter:     letter,
		accidental: target - (octave*12 + majorSemitones[letter]),
		octave:     octave,
	}
}

// IntervalTo returns the interval that takes n to other.
func (n Note) IntervalTo(other Note) Interval {
	return Interval{
		Steps:     other.diatonic() - n.diatonic(),
		Semitones: other.semitones() - n.semitones(),
	}
}

// Key is the MIDI key number, C4 = 60.
func (n Note) Key() int {
	return n.semitones() + 12
}

// Fq is the fundamental frequency in Hz, equal temperament with A4 = 440.
func (n Note) Fq() float64 {
	return concertA * math.Pow(2, float64(n.Key()-concertAKey)/12)
}

func (n Note) Octave() int {
	return n.octave
}

// Name is the pitch class spelling without octave.
func (n Note) Name() string {
	acc := ""
	if n.accidental > 0 {
		acc = strings.Repeat("#", n.accidental)
	} else if n.accidental < 0 {
		acc = strings.Repeat("b", -n.accidental)
	}
	return letterNames[n.letter:n.letter+1] + acc
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Name(), n.octave)
}

func NoteNames(notes []Note) []string {
	res := make([]string, len(notes))
	for i, n := range notes {
		res[i] = n.String()
	}
	return res
}

func PitchClassNames(notes []Note) []string {
	res := make([]string, len(notes))
	for i, n := range notes {
		res[i] = n.Name()
	}
	return res
}

// sharp spellings of the twelve pitch classes, as letter and accidental
var sharpSpellings = [12][2]int{
	{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {3, 0},
	{3, 1}, {4, 0}, {4, 1}, {5, 0}, {5, 1}, {6, 0},
}

// NoteFromKey spells a MIDI key number with sharps, 61 -> C#4.
func NoteFromKey(key int) Note {
	octave := floorDiv(key, 12) - 1
	pc := key - (octave+1)*12
	return Note{letter: sharpSpellings[pc][0], accidental: sharpSpellings[pc][1], octave: octave}
}
