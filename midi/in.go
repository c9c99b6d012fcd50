package midi

import (
	"fmt"
	"sync"

	"github.com/jsphweid/eartrain/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Keyboard tracks the keys held down on a MIDI input.
type Keyboard struct {
	mu   sync.Mutex
	held map[uint8]bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{held: make(map[uint8]bool)}
}

// Handle applies msg and reports whether the held keys changed.
func (k *Keyboard) Handle(msg gomidi.Message) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		k.held[key] = true
		return true
	case msg.GetNoteEnd(&ch, &key):
		if !k.held[key] {
			return false
		}
		delete(k.held, key)
		return true
	default:
		// ignore
		return false
	}
}

// Held lists the held keys in ascending order.
func (k *Keyboard) Held() []uint8 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return util.GetKeys(k.held)
}

// Listen feeds messages from in to the keyboard and calls onChange with the
// held keys after every change.
func (k *Keyboard) Listen(in drivers.In, onChange func(keys []uint8)) (stop func(), err error) {
	return gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		if k.Handle(msg) {
			onChange(k.Held())
		}
	})
}

// OpenInPort finds the named input port, or the first one when name is
// empty.
func OpenInPort(name string) (drivers.In, error) {
	var in drivers.In
	var err error
	if name == "" {
		in, err = gomidi.InPort(0)
	} else {
		in, err = gomidi.FindInPort(name)
	}
	if err != nil {
		return nil, fmt.Errorf("can't find MIDI in port %q: %w", name, err)
	}
	return in, nil
}
