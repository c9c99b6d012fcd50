package progression

import (
	"fmt"

	"github.com/jsphweid/eartrain/constants"
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/theory"
)

// ToEvents places the reference chord on beat 0 and the second chord two
// beats later. The caller has already placed and inverted second.
func ToEvents(reference, second theory.Chord) []model.TimedNoteEvent {
	return []model.TimedNoteEvent{
		{Time: constants.ReferenceOnset, Pitches: theory.NoteNames(reference.Notes())},
		{Time: constants.SecondOnset, Pitches: theory.NoteNames(second.Notes())},
	}
}

// Arpeggiate splits every event into one event per pitch. Sub-event k of an
// event at t sounds at t + k*step, keeping the listed pitch order.
func Arpeggiate(events []model.TimedNoteEvent, step string) []model.TimedNoteEvent {
	var res []model.TimedNoteEvent
	for _, evt := range events {
		for k, pitch := range evt.Pitches {
			res = append(res, model.TimedNoteEvent{
				Time:    offsetTime(evt.Time, k, step),
				Pitches: []string{pitch},
			})
		}
	}
	return res
}

func offsetTime(t string, k int, step string) string {
	switch k {
	case 0:
		return t
	case 1:
		return fmt.Sprintf("%v + %v", t, step)
	default:
		return fmt.Sprintf("%v + %d*%v", t, k, step)
	}
}
