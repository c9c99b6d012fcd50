package midi

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/eartrain/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

type sentLog struct {
	msgs []gomidi.Message
	err  error
}

func (l *sentLog) send(msg gomidi.Message) error {
	if l.err != nil {
		return l.err
	}
	l.msgs = append(l.msgs, msg)
	return nil
}

func (l *sentLog) count(check func(gomidi.Message) bool) int {
	n := 0
	for _, m := range l.msgs {
		if check(m) {
			n++
		}
	}
	return n
}

func isNoteOn(m gomidi.Message) bool {
	var ch, key, vel uint8
	return m.GetNoteStart(&ch, &key, &vel)
}

func isNoteOff(m gomidi.Message) bool {
	var ch, key uint8
	return m.GetNoteEnd(&ch, &key)
}

func TestKey(t *testing.T) {
	assert := assert.New(t)

	key, err := Key("C4")
	assert.NoError(err)
	assert.Equal(uint8(60), key)

	key, err = Key("A3")
	assert.NoError(err)
	assert.Equal(uint8(57), key)

	_, err = Key("Q4")
	assert.Error(err)
}

func TestOutInstrumentPlaysAndReleases(t *testing.T) {
	log := &sentLog{}
	clock := engine.NewOfflineClock()

	inst, err := NewOutInstrument(log.send, clock, 0, 0)
	require.NoError(t, err)
	require.NoError(t, inst.TriggerAttackRelease([]string{"C4", "E4", "G4"}, 0.5, 0))

	assert := assert.New(t)
	assert.Equal(3, log.count(isNoteOn))
	assert.Equal(3, inst.Sounding())

	clock.Run()
	assert.Equal(3, log.count(isNoteOff))
	assert.Equal(0, inst.Sounding())
}

func TestOutInstrumentReleaseAll(t *testing.T) {
	log := &sentLog{}
	clock := engine.NewOfflineClock()
	inst, err := NewOutInstrument(log.send, clock, 1, 40)
	require.NoError(t, err)

	require.NoError(t, inst.TriggerAttackRelease([]string{"D4", "F4"}, 10, 0))
	require.NoError(t, inst.ReleaseAll())

	assert := assert.New(t)
	assert.Equal(0, inst.Sounding())
	assert.Equal(2, log.count(isNoteOff))

	// the scheduled release finds nothing left to stop
	clock.Run()
	assert.Equal(2, log.count(isNoteOff))
}

func TestOutInstrumentRetriggerAfterReleaseAll(t *testing.T) {
	clock := engine.NewOfflineClock()
	var offs []time.Duration
	send := func(msg gomidi.Message) error {
		if isNoteOff(msg) {
			offs = append(offs, clock.Now())
		}
		return nil
	}
	inst, err := NewOutInstrument(send, clock, 0, 0)
	require.NoError(t, err)

	require.NoError(t, inst.TriggerAttackRelease([]string{"C4"}, 0.5, 0))
	require.NoError(t, inst.ReleaseAll())
	require.NoError(t, inst.TriggerAttackRelease([]string{"C4"}, 2, 0))

	clock.Run()
	assert.Equal(t, []time.Duration{0, 2 * time.Second}, offs)
	assert.Equal(t, 0, inst.Sounding())
}

func TestOutInstrumentErrors(t *testing.T) {
	log := &sentLog{err: errors.New("port closed")}
	_, err := NewOutInstrument(log.send, engine.NewOfflineClock(), 0, 0)
	assert.Error(t, err)

	ok := &sentLog{}
	inst, err := NewOutInstrument(ok.send, engine.NewOfflineClock(), 0, 0)
	require.NoError(t, err)
	assert.Error(t, inst.TriggerAttackRelease([]string{"nope"}, 1, 0))
}

func TestOutInstrumentFollowsGain(t *testing.T) {
	log := &sentLog{}
	inst, err := NewOutInstrument(log.send, engine.NewOfflineClock(), 2, 0)
	require.NoError(t, err)

	dest := engine.NewDestination()
	inst.ToDestination(dest)
	dest.SetGain(0.5)

	var ch, controller, value uint8
	last := log.msgs[len(log.msgs)-1]
	require.True(t, last.GetControlChange(&ch, &controller, &value))

	assert := assert.New(t)
	assert.Equal(uint8(2), ch)
	assert.Equal(uint8(7), controller)
	assert.Equal(uint8(63), value)
}

func TestRecorderRoundTrip(t *testing.T) {
	rec := NewRecorder(0, 0)
	require.NoError(t, rec.TriggerAttackRelease([]string{"C4", "E4", "G4"}, 0.5, 0))
	require.NoError(t, rec.TriggerAttackRelease([]string{"D4", "F3", "A3"}, 0.5, 1))
	assert.Equal(t, 6, rec.Len())

	var buf bytes.Buffer
	_, err := rec.WriteTo(&buf, 120)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "progression.mid")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0666))

	s, err := ReadMidiFile(path)
	require.NoError(t, err)

	notes := Notes(s)
	require.Len(t, notes, 6)

	var names []string
	for _, n := range notes {
		names = append(names, n.Name())
	}

	assert := assert.New(t)
	assert.Equal([]string{"C4", "E4", "G4", "F3", "A3", "D4"}, names)
	assert.Equal(int64(0), notes[0].Offset)
	assert.InDelta(int64(time.Second/time.Microsecond), notes[3].Offset, 1000)
}

func TestReadMidiFileMissing(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}

func TestKeyboard(t *testing.T) {
	k := NewKeyboard()

	assert := assert.New(t)
	assert.True(k.Handle(gomidi.NoteOn(0, 64, 90)))
	assert.True(k.Handle(gomidi.NoteOn(0, 60, 90)))
	assert.False(k.Handle(gomidi.ControlChange(0, 7, 100)))
	assert.Equal([]uint8{60, 64}, k.Held())

	assert.True(k.Handle(gomidi.NoteOff(0, 64)))
	// velocity 0 note-on releases too
	assert.True(k.Handle(gomidi.NoteOn(0, 60, 0)))
	assert.False(k.Handle(gomidi.NoteOff(0, 72)))
	assert.Empty(k.Held())
}
