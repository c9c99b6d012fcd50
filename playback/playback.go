package playback

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jsphweid/eartrain/constants"
	"github.com/jsphweid/eartrain/engine"
	"github.com/jsphweid/eartrain/instrument"
	"github.com/jsphweid/eartrain/logger"
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/progression"
)

// InstrumentSource resolves instruments by name, as instrument.Cache does.
type InstrumentSource interface {
	Get(ctx context.Context, name string) (instrument.Instrument, error)
}

// Controller plays one progression at a time. Each Play supersedes the
// previous one: its pending onsets are cancelled and, should any still
// fire, they see a stale generation and stay silent.
type Controller struct {
	mu         sync.Mutex
	audio      *engine.Context
	transport  *engine.Transport
	source     InstrumentSource
	generation atomic.Uint64
	current    instrument.Instrument
}

func NewController(audio *engine.Context, transport *engine.Transport, source InstrumentSource) *Controller {
	return &Controller{audio: audio, transport: transport, source: source}
}

// Play schedules events on instrumentName from transport time 0. With
// arpeggiate every chord is spread into single notes one ArpeggioStep
// apart.
func (c *Controller) Play(ctx context.Context, events []model.TimedNoteEvent, instrumentName string, arpeggiate bool) error {
	gen := c.generation.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.audio.Resume(ctx); err != nil {
		return fmt.Errorf("starting audio output: %w", err)
	}
	c.audio.SetGain(constants.GetGain())

	c.transport.Stop()
	c.transport.Cancel()

	inst, err := c.source.Get(ctx, instrumentName)
	if err != nil {
		return fmt.Errorf("getting instrument %q: %w", instrumentName, err)
	}
	if c.generation.Load() != gen {
		logger.Info("playback superseded", logger.Fields{"instrument": instrumentName})
		return nil
	}
	c.current = inst

	if err := inst.ReleaseAll(); err != nil {
		logger.Warn("could not release notes", logger.Fields{"instrument": instrumentName, "error": err.Error()})
	}

	durationDesc := constants.ChordDuration
	if arpeggiate {
		events = progression.Arpeggiate(events, constants.ArpeggioStep)
		durationDesc = constants.ArpeggioNoteDuration
	}
	duration, err := c.transport.ToSeconds(durationDesc)
	if err != nil {
		return err
	}

	part := engine.NewPart(func(at float64, evt model.TimedNoteEvent) {
		if c.generation.Load() != gen {
			return
		}
		if err := inst.TriggerAttackRelease(evt.Pitches, duration, at); err != nil {
			logger.Error("could not play event", err, logger.Fields{
				"instrument": instrumentName,
				"time":       evt.Time,
			})
		}
	}, events)
	if err := part.Start(c.transport); err != nil {
		return err
	}

	c.transport.Start()
	return nil
}

// Stop cancels anything scheduled and silences the last instrument played.
func (c *Controller) Stop() error {
	c.generation.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.transport.Stop()
	c.transport.Cancel()
	if c.current != nil {
		return c.current.ReleaseAll()
	}
	return nil
}

// Generation is the number of Play and Stop calls so far.
func (c *Controller) Generation() uint64 {
	return c.generation.Load()
}
