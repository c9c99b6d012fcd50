package engine

import (
	"fmt"

	"github.com/jsphweid/eartrain/model"
)

// Part is an ordered list of events with one callback fired per event.
type Part struct {
	events   []model.TimedNoteEvent
	callback func(at float64, evt model.TimedNoteEvent)
}

func NewPart(callback func(at float64, evt model.TimedNoteEvent), events []model.TimedNoteEvent) *Part {
	return &Part{events: append([]model.TimedNoteEvent(nil), events...), callback: callback}
}

// Start schedules every event on the transport. Nothing is scheduled if
// any event time is invalid.
func (p *Part) Start(t *Transport) error {
	for _, evt := range p.events {
		if _, err := t.ToSeconds(evt.Time); err != nil {
			return fmt.Errorf("part event at %q: %w", evt.Time, err)
		}
	}
	for _, evt := range p.events {
		evt := evt
		if err := t.ScheduleOnce(func(at float64) { p.callback(at, evt) }, evt.Time); err != nil {
			return err
		}
	}
	return nil
}

func (p *Part) Len() int {
	return len(p.events)
}
