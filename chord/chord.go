package chord

import (
	"fmt"

	"github.com/jsphweid/eartrain/theory"
	"github.com/jsphweid/eartrain/vocabulary"
)

// Resolve turns a roman-numeral token in the key of tonic into a chord
// symbol, e.g. ("C", "V7") -> "Gdom7".
func Resolve(tonic string, token string) (string, error) {
	entry, err := vocabulary.Lookup(token)
	if err != nil {
		return "", err
	}

	tonicNote, err := theory.ResolveNote(tonic)
	if err != nil {
		return "", fmt.Errorf("bad tonic: %w", err)
	}

	interval, err := theory.ParseInterval(entry.Interval)
	if err != nil {
		return "", fmt.Errorf("vocabulary entry %q: %w", token, err)
	}

	root := tonicNote.Transpose(interval)
	return root.Name() + entry.Quality, nil
}

// ResolveChord is Resolve followed by parsing the symbol.
func ResolveChord(tonic string, token string) (theory.Chord, error) {
	symbol, err := Resolve(tonic, token)
	if err != nil {
		return theory.Chord{}, err
	}
	return theory.ResolveChord(symbol)
}
