package vocabulary

import (
	"errors"
	"fmt"

	"github.com/jsphweid/eartrain/util"
)

var ErrUnknownSet = errors.New("unknown exercise set")

// Set is a named group of tokens an exercise draws from. Reference is the
// token of the chord every progression starts on.
type Set struct {
	Name      string
	Reference string
	Tokens    []string
}

var sets = map[string]Set{
	"major": {
		Reference: "I",
		Tokens:    []string{"I", "ii", "iii", "IV", "V", "vi", "vii°"},
	},
	"majorSevenths": {
		Reference: "I",
		Tokens:    []string{"Imaj7", "iim7", "iiim7", "IVmaj7", "V7", "vim7", "viiø7"},
	},
	"minor": {
		Reference: "i",
		Tokens:    []string{"i", "ii°", "bIII", "iv", "v", "bVI", "bVII"},
	},
	"minorSevenths": {
		Reference: "i",
		Tokens:    []string{"im7", "iiø7", "bIIImaj7", "ivm7", "vm7", "bVImaj7", "bVII7"},
	},
	"chromediants_major": {
		Reference: "I",
		Tokens:    []string{"I", "bIII", "III", "bVI", "VI"},
	},
	"chromediants_minor": {
		Reference: "i",
		Tokens:    []string{"i", "biii", "iii", "bvi", "vi"},
	},
}

const DefaultSet = "major"

func GetSet(name string) (Set, error) {
	s, ok := sets[name]
	if !ok {
		return Set{}, fmt.Errorf("%w: %q", ErrUnknownSet, name)
	}
	s.Name = name
	s.Tokens = append([]string(nil), s.Tokens...)
	return s, nil
}

func SetNames() []string {
	return util.GetKeys(sets)
}
