package midi

import (
	"fmt"
	"sync"
	"time"

	"github.com/jsphweid/eartrain/engine"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

const defaultVelocity = 100

// Sender writes one message to an output port.
type Sender = func(msg gomidi.Message) error

// OutInstrument plays on one channel of a MIDI output. Onsets sound as soon
// as they are triggered; the transport already fired them on time.
type OutInstrument struct {
	mu       sync.Mutex
	send     Sender
	clock    engine.Clock
	channel  uint8
	velocity uint8
	held     map[uint8]int
	// bumped by ReleaseAll so releases armed before it do nothing
	epoch uint64
}

// NewOutInstrument selects program on channel and returns the instrument.
func NewOutInstrument(send Sender, clock engine.Clock, channel, program uint8) (*OutInstrument, error) {
	if err := send(gomidi.ProgramChange(channel, program)); err != nil {
		return nil, fmt.Errorf("program change: %w", err)
	}
	return &OutInstrument{
		send:     send,
		clock:    clock,
		channel:  channel,
		velocity: defaultVelocity,
		held:     make(map[uint8]int),
	}, nil
}

// OpenSender opens the named output port, or the first one when name is
// empty.
func OpenSender(name string) (Sender, drivers.Out, error) {
	var out drivers.Out
	var err error
	if name == "" {
		out, err = gomidi.OutPort(0)
	} else {
		out, err = gomidi.FindOutPort(name)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("can't find MIDI out port %q: %w", name, err)
	}

	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, nil, fmt.Errorf("can't open MIDI out port %v: %w", out, err)
	}
	return send, out, nil
}

func (o *OutInstrument) TriggerAttackRelease(pitches []string, duration float64, at float64) error {
	keys := make([]uint8, 0, len(pitches))
	for _, p := range pitches {
		key, err := Key(p)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for _, key := range keys {
		if err := o.send(gomidi.NoteOn(o.channel, key, o.velocity)); err != nil {
			return err
		}
		o.held[key]++
	}

	epoch := o.epoch
	o.clock.AfterFunc(time.Duration(duration*float64(time.Second)), func() {
		o.release(keys, epoch)
	})
	return nil
}

func (o *OutInstrument) release(keys []uint8, epoch uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if epoch != o.epoch {
		return
	}
	for _, key := range keys {
		if o.held[key] == 0 {
			continue
		}
		o.held[key]--
		if o.held[key] == 0 {
			delete(o.held, key)
			o.send(gomidi.NoteOff(o.channel, key))
		}
	}
}

// ReleaseAll silences every sounding note.
func (o *OutInstrument) ReleaseAll() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.epoch++
	var firstErr error
	for key := range o.held {
		if err := o.send(gomidi.NoteOff(o.channel, key)); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(o.held, key)
	}
	return firstErr
}

// ToDestination follows the destination gain with channel volume.
func (o *OutInstrument) ToDestination(d *engine.Destination) {
	d.Connect(func(gain float64) {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.send(gainMessage(o.channel, gain))
	})
}

func (o *OutInstrument) Sounding() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.held)
}
