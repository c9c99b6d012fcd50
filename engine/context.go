package engine

import (
	"context"
	"sync"
)

// Destination is the shared output level instruments attach to.
type Destination struct {
	mu        sync.Mutex
	gain      float64
	listeners []func(gain float64)
}

func NewDestination() *Destination {
	return &Destination{gain: 1}
}

// Connect registers fn and calls it with the current gain.
func (d *Destination) Connect(fn func(gain float64)) {
	d.mu.Lock()
	d.listeners = append(d.listeners, fn)
	gain := d.gain
	d.mu.Unlock()
	fn(gain)
}

func (d *Destination) SetGain(gain float64) {
	d.mu.Lock()
	d.gain = gain
	listeners := make([]func(float64), len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.Unlock()
	for _, fn := range listeners {
		fn(gain)
	}
}

func (d *Destination) Gain() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gain
}

// Context is the audio output. It starts suspended; Resume runs open once
// and marks it running.
type Context struct {
	mu          sync.Mutex
	running     bool
	open        func(ctx context.Context) error
	destination *Destination
}

func NewContext(open func(ctx context.Context) error) *Context {
	return &Context{open: open, destination: NewDestination()}
}

func (c *Context) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Context) Resume(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return nil
	}
	if c.open != nil {
		if err := c.open(ctx); err != nil {
			return err
		}
	}
	c.running = true
	return nil
}

func (c *Context) Suspend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

func (c *Context) Destination() *Destination {
	return c.destination
}

func (c *Context) SetGain(gain float64) {
	c.destination.SetGain(gain)
}
