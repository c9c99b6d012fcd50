package engine

import (
	"sync"
	"time"
)

type scheduled struct {
	at       float64
	callback func(at float64)
}

// Transport is the master clock for scheduled onsets. Events are placed on
// its timeline with ScheduleOnce and fire relative to the last Start.
type Transport struct {
	mu          sync.Mutex
	clock       Clock
	bpm         float64
	beatsPerBar int
	timeline    []scheduled
	armed       []func() bool
	running     bool
	started     time.Duration
}

func NewTransport(clock Clock, bpm float64, beatsPerBar int) *Transport {
	return &Transport{clock: clock, bpm: bpm, beatsPerBar: beatsPerBar}
}

func (t *Transport) ToSeconds(desc string) (float64, error) {
	return ParseTime(desc, t.bpm, t.beatsPerBar)
}

func (t *Transport) BPM() float64 {
	return t.bpm
}

// ScheduleOnce puts callback on the timeline at desc. A running transport
// arms it straight away, relative to its start; an onset already passed
// fires at once.
func (t *Transport) ScheduleOnce(callback func(at float64), desc string) error {
	at, err := t.ToSeconds(desc)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	evt := scheduled{at: at, callback: callback}
	t.timeline = append(t.timeline, evt)
	if t.running {
		t.arm(evt)
	}
	return nil
}

// Start arms every event on the timeline from position 0.
func (t *Transport) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.disarm()
	}
	t.running = true
	t.started = t.clock.Now()
	for _, evt := range t.timeline {
		t.arm(evt)
	}
}

// Stop disarms pending onsets but keeps them on the timeline.
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.disarm()
}

// Cancel clears the timeline.
func (t *Transport) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disarm()
	t.timeline = nil
}

func (t *Transport) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Transport) Scheduled() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timeline)
}

func (t *Transport) arm(evt scheduled) {
	delay := time.Duration(evt.at*float64(time.Second)) - (t.clock.Now() - t.started)
	if delay < 0 {
		delay = 0
	}
	t.armed = append(t.armed, t.clock.AfterFunc(delay, func() {
		evt.callback(evt.at)
	}))
}

func (t *Transport) disarm() {
	for _, stop := range t.armed {
		stop()
	}
	t.armed = nil
}
