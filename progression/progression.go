package progression

import (
	"fmt"
	"math/rand"

	"github.com/jsphweid/eartrain/chord"
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/vocabulary"
)

// Build resolves the reference and second chords in the key of tonic,
// places the second within an octave of the reference, inverts it and
// lays both out as events.
func Build(tonic, reference, token string, inversion int) (model.Progression, error) {
	ref, err := chord.ResolveChord(tonic, reference)
	if err != nil {
		return model.Progression{}, fmt.Errorf("reference chord: %w", err)
	}

	second, err := chord.ResolveChord(tonic, token)
	if err != nil {
		return model.Progression{}, fmt.Errorf("second chord: %w", err)
	}
	second = chord.Invert(chord.Place(ref, second), inversion)

	return model.Progression{
		Tonic:     tonic,
		Reference: reference,
		Token:     token,
		Inversion: inversion,
		Chords:    []string{ref.Symbol(), second.Symbol()},
		Events:    ToEvents(ref, second),
	}, nil
}

// Generator draws random progressions from an exercise set.
type Generator struct {
	rand         *rand.Rand
	set          vocabulary.Set
	maxInversion int
}

// NewGenerator picks inversions in [0, maxInversion].
func NewGenerator(r *rand.Rand, set vocabulary.Set, maxInversion int) *Generator {
	if maxInversion < 0 {
		maxInversion = 0
	}
	return &Generator{rand: r, set: set, maxInversion: maxInversion}
}

func (g *Generator) Next() (model.Progression, error) {
	if len(g.set.Tokens) == 0 {
		return model.Progression{}, fmt.Errorf("exercise set %q has no tokens", g.set.Name)
	}
	tonic := NewTonic(g.rand)
	token := g.set.Tokens[g.rand.Intn(len(g.set.Tokens))]
	inversion := g.rand.Intn(g.maxInversion + 1)
	return Build(tonic, g.set.Reference, token, inversion)
}
