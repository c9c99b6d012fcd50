package progression

import (
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/theory"
)

// Matches reports whether keys sound exactly the pitch classes of the
// progression's second chord, in any octave and voicing.
func Matches(p model.Progression, keys []uint8) (bool, error) {
	if len(p.Events) < 2 || len(keys) == 0 {
		return false, nil
	}

	want := make(map[int]bool)
	for _, name := range p.Events[1].Pitches {
		n, err := theory.ResolveNote(name)
		if err != nil {
			return false, err
		}
		want[n.Key()%12] = true
	}

	got := make(map[int]bool)
	for _, key := range keys {
		got[int(key)%12] = true
	}

	if len(got) != len(want) {
		return false, nil
	}
	for pc := range want {
		if !got[pc] {
			return false, nil
		}
	}
	return true, nil
}
