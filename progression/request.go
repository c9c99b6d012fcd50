package progression

import (
	"math/rand"

	"github.com/jsphweid/eartrain/chord"
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/vocabulary"
)

// FromRequest builds the progression a request asks for. Anything left
// out is drawn at random: the tonic from the twelve pitch classes, the
// token from the request's set and the inversion from the chord's arity.
func FromRequest(r *rand.Rand, req model.ProgressionRequestBody) (model.Progression, error) {
	setName := req.Set
	if setName == "" {
		setName = vocabulary.DefaultSet
	}
	set, err := vocabulary.GetSet(setName)
	if err != nil {
		return model.Progression{}, err
	}

	tonic := req.Tonic
	if tonic == "" {
		tonic = NewTonic(r)
	}

	token := req.Token
	if token == "" {
		token = set.Tokens[r.Intn(len(set.Tokens))]
	}

	var inversion int
	if req.Inversion != nil {
		inversion = *req.Inversion
	} else {
		c, err := chord.ResolveChord(tonic, token)
		if err != nil {
			return model.Progression{}, err
		}
		inversion = r.Intn(c.Arity())
	}

	return Build(tonic, set.Reference, token, inversion)
}
