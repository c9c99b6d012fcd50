package instrument

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jsphweid/eartrain/constants"
	"github.com/jsphweid/eartrain/engine"
	"github.com/jsphweid/eartrain/logger"
	"github.com/jsphweid/eartrain/util"
	"golang.org/x/sync/singleflight"
)

var ErrLoadTimeout = errors.New("instrument load timed out")

// Instrument plays pitches given as scientific note names. Durations and
// times are in seconds on the transport.
type Instrument interface {
	TriggerAttackRelease(pitches []string, duration float64, at float64) error
	ReleaseAll() error
	ToDestination(d *engine.Destination)
}

// Factory builds instruments. LoadSampler returns at once and calls onload
// exactly once when the sampler is ready or has failed.
type Factory interface {
	NewSynth() (Instrument, error)
	LoadSampler(ctx context.Context, name string, onload func(Instrument, error))
}

// Cache holds one instrument per name for the life of the process.
// Concurrent first requests for a name share a single construction.
type Cache struct {
	factory     Factory
	destination *engine.Destination
	timeout     time.Duration

	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]Instrument
}

func NewCache(factory Factory, destination *engine.Destination, timeout time.Duration) *Cache {
	return &Cache{
		factory:     factory,
		destination: destination,
		timeout:     timeout,
		entries:     make(map[string]Instrument),
	}
}

// Get returns the instrument for name, building it on first use. A sampler
// that fails or times out is replaced by the synth for this call only, so
// a later call loads it again.
func (c *Cache) Get(ctx context.Context, name string) (Instrument, error) {
	inst, err := c.get(ctx, name)
	if err == nil || name == constants.SynthName || ctx.Err() != nil {
		return inst, err
	}

	logger.Warn("sampler unavailable, using synth", logger.Fields{
		"instrument": name,
		"error":      err.Error(),
	})
	return c.get(ctx, constants.SynthName)
}

func (c *Cache) get(ctx context.Context, name string) (Instrument, error) {
	if inst, ok := c.lookup(name); ok {
		return inst, nil
	}

	// the load outlives any one caller; each caller still stops waiting
	// when its own ctx is done
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(name, func() (interface{}, error) {
		if inst, ok := c.lookup(name); ok {
			return inst, nil
		}
		inst, err := c.build(detached, name)
		if err != nil {
			return nil, err
		}
		inst.ToDestination(c.destination)

		c.mu.Lock()
		c.entries[name] = inst
		c.mu.Unlock()
		logger.Info("instrument ready", logger.Fields{"instrument": name})
		return inst, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Instrument), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type loadResult struct {
	inst Instrument
	err  error
}

func (c *Cache) build(ctx context.Context, name string) (Instrument, error) {
	if name == constants.SynthName {
		return c.factory.NewSynth()
	}

	done := make(chan loadResult, 1)
	c.factory.LoadSampler(ctx, name, func(inst Instrument, err error) {
		done <- loadResult{inst, err}
	})

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("loading %q: %w", name, res.err)
		}
		return res.inst, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w: %q after %v", ErrLoadTimeout, name, c.timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) lookup(name string) (Instrument, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	inst, ok := c.entries[name]
	return inst, ok
}

// Names lists the cached instruments.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return util.GetKeys(c.entries)
}
