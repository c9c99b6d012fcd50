package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/eartrain/theory"
	"github.com/jsphweid/eartrain/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// FileNote is a note found in a MIDI file.
type FileNote struct {
	Track    int
	Offset   int64 // microseconds from the start of the file
	Key      uint8
	Velocity uint8
}

func (n FileNote) Name() string {
	return theory.NoteFromKey(int(n.Key)).String()
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return ReadMidi(bytes.NewReader(dat))
}

func ReadMidi(r io.Reader) (*smf.SMF, error) {
	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	return res, nil
}

// Notes lists every note-on in s ordered by offset, then track, then key.
func Notes(s *smf.SMF) []FileNote {
	var notes []FileNote
	for i, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			if event.Message.GetNoteOn(&channel, &key, &velocity) {
				notes = append(notes, FileNote{
					Track:    i,
					Offset:   s.TimeAt(absTicks),
					Key:      key,
					Velocity: velocity,
				})
			}
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Offset != notes[j].Offset {
			return notes[i].Offset < notes[j].Offset
		}
		if notes[i].Track != notes[j].Track {
			return notes[i].Track < notes[j].Track
		}
		return notes[i].Key < notes[j].Key
	})
	return notes
}

// Key converts a scientific pitch name to a MIDI key, clamped to 0..127.
func Key(pitch string) (uint8, error) {
	n, err := theory.ResolveNote(pitch)
	if err != nil {
		return 0, err
	}
	return uint8(util.Clamp(n.Key(), 0, 127)), nil
}

func volume(gain float64) uint8 {
	return uint8(util.Clamp(gain, 0, 1) * 127)
}

func gainMessage(channel uint8, gain float64) gomidi.Message {
	return gomidi.ControlChange(channel, 7, volume(gain))
}
