package midi

import (
	"io"
	"math"
	"sort"
	"sync"

	"github.com/jsphweid/eartrain/engine"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerQuarter = 960

type recordedNote struct {
	key   uint8
	start float64
	end   float64
}

// Recorder captures triggered notes at their transport times so a rendered
// progression can be written as a Standard MIDI File.
type Recorder struct {
	mu       sync.Mutex
	channel  uint8
	program  uint8
	velocity uint8
	gain     float64
	notes    []recordedNote
}

func NewRecorder(channel, program uint8) *Recorder {
	return &Recorder{channel: channel, program: program, velocity: defaultVelocity, gain: 1}
}

func (r *Recorder) TriggerAttackRelease(pitches []string, duration float64, at float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pitches {
		key, err := Key(p)
		if err != nil {
			return err
		}
		r.notes = append(r.notes, recordedNote{key: key, start: at, end: at + duration})
	}
	return nil
}

// ReleaseAll is a no-op: recorded notes already carry their release.
func (r *Recorder) ReleaseAll() error {
	return nil
}

func (r *Recorder) ToDestination(d *engine.Destination) {
	d.Connect(func(gain float64) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.gain = gain
	})
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notes)
}

type timedMessage struct {
	tick  uint32
	off   bool
	key   uint8
	order int
	msg   gomidi.Message
}

// SMF renders the recording as a single track file at bpm.
func (r *Recorder) SMF(bpm float64) (*smf.SMF, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	toTicks := func(seconds float64) uint32 {
		return uint32(math.Round(seconds * bpm / 60 * ticksPerQuarter))
	}

	var msgs []timedMessage
	for i, n := range r.notes {
		msgs = append(msgs,
			timedMessage{tick: toTicks(n.start), key: n.key, order: i, msg: gomidi.NoteOn(r.channel, n.key, r.velocity)},
			timedMessage{tick: toTicks(n.end), off: true, key: n.key, order: i, msg: gomidi.NoteOff(r.channel, n.key)},
		)
	}
	// releases before onsets on the same tick
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		if msgs[i].off != msgs[j].off {
			return msgs[i].off
		}
		return msgs[i].order < msgs[j].order
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(bpm))
	tr.Add(0, gomidi.ProgramChange(r.channel, r.program))
	tr.Add(0, gainMessage(r.channel, r.gain))
	var last uint32
	for _, m := range msgs {
		tr.Add(m.tick-last, m.msg)
		last = m.tick
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	if err := s.Add(tr); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Recorder) WriteTo(w io.Writer, bpm float64) (int64, error) {
	s, err := r.SMF(bpm)
	if err != nil {
		return 0, err
	}
	return s.WriteTo(w)
}
