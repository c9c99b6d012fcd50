package progression

import (
	"math/rand"
)

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchClasses returns the twelve tonic spellings.
func PitchClasses() []string {
	return append([]string(nil), pitchClasses[:]...)
}

func IsPitchClass(name string) bool {
	for _, pc := range pitchClasses {
		if pc == name {
			return true
		}
	}
	return false
}

// NewTonic draws a pitch class uniformly.
func NewTonic(r *rand.Rand) string {
	return pitchClasses[r.Intn(len(pitchClasses))]
}
