package instrument

import (
	"context"
	"sync"

	"github.com/jsphweid/eartrain/engine"
	"github.com/jsphweid/eartrain/midi"
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/sample"
)

// SynthProgram is the General MIDI program standing in for the synthesized
// voice (Lead 1, square).
const SynthProgram = 80

const percussionChannel = 9

type channels struct {
	mu   sync.Mutex
	next uint8
}

// take hands out channels in order, skipping percussion and wrapping after 16.
func (c *channels) take() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.next == percussionChannel {
		c.next++
	}
	ch := c.next
	c.next = (c.next + 1) % 16
	return ch
}

// MidiFactory builds instruments that play on a MIDI output, each on its own
// channel with the program from its sample manifest.
type MidiFactory struct {
	send     midi.Sender
	clock    engine.Clock
	library  *sample.Library
	channels channels
}

func NewMidiFactory(send midi.Sender, clock engine.Clock, library *sample.Library) *MidiFactory {
	return &MidiFactory{send: send, clock: clock, library: library}
}

func (f *MidiFactory) NewSynth() (Instrument, error) {
	inst, err := midi.NewOutInstrument(f.send, f.clock, f.channels.take(), SynthProgram)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (f *MidiFactory) LoadSampler(ctx context.Context, name string, onload func(Instrument, error)) {
	f.library.Load(ctx, name, func(m model.InstrumentManifest, err error) {
		if err != nil {
			onload(nil, err)
			return
		}
		inst, err := midi.NewOutInstrument(f.send, f.clock, f.channels.take(), m.Program)
		if err != nil {
			onload(nil, err)
			return
		}
		onload(inst, nil)
	})
}

// RecorderFactory builds instruments that record into a MIDI file instead
// of sounding.
type RecorderFactory struct {
	library  *sample.Library
	channels channels
}

func NewRecorderFactory(library *sample.Library) *RecorderFactory {
	return &RecorderFactory{library: library}
}

func (f *RecorderFactory) NewSynth() (Instrument, error) {
	return midi.NewRecorder(f.channels.take(), SynthProgram), nil
}

func (f *RecorderFactory) LoadSampler(ctx context.Context, name string, onload func(Instrument, error)) {
	f.library.Load(ctx, name, func(m model.InstrumentManifest, err error) {
		if err != nil {
			onload(nil, err)
			return
		}
		onload(midi.NewRecorder(f.channels.take(), m.Program), nil)
	})
}
