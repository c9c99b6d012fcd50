package engine

import (
	"sort"
	"sync"
	"time"
)

// Clock arms callbacks after a delay. The returned function disarms the
// callback and reports whether it had not fired yet. Now is monotonic and
// only meaningful as a difference.
type Clock interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
	Now() time.Duration
}

var epoch = time.Now()

type RealtimeClock struct{}

func (RealtimeClock) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

func (RealtimeClock) Now() time.Duration {
	return time.Since(epoch)
}

// OfflineClock runs callbacks in virtual time, only when Run is called.
// Callbacks at the same instant run in the order they were armed.
type OfflineClock struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	queue []*offlineTimer
}

type offlineTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
}

func NewOfflineClock() *OfflineClock {
	return &OfflineClock{}
}

func (c *OfflineClock) AfterFunc(d time.Duration, f func()) func() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &offlineTimer{at: c.now + d, seq: c.seq, f: f}
	c.queue = append(c.queue, t)
	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

// Now is the virtual time of the last fired callback.
func (c *OfflineClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Run fires every armed callback in time order, including ones armed by
// callbacks while running, and returns how many fired.
func (c *OfflineClock) Run() int {
	fired := 0
	for {
		t := c.next()
		if t == nil {
			return fired
		}
		t.f()
		fired++
	}
}

func (c *OfflineClock) next() *offlineTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.queue[:0]
	for _, t := range c.queue {
		if !t.stopped {
			live = append(live, t)
		}
	}
	c.queue = live
	if len(c.queue) == 0 {
		return nil
	}

	sort.SliceStable(c.queue, func(i, j int) bool {
		if c.queue[i].at != c.queue[j].at {
			return c.queue[i].at < c.queue[j].at
		}
		return c.queue[i].seq < c.queue[j].seq
	})
	t := c.queue[0]
	c.queue = c.queue[1:]
	t.stopped = true
	if t.at > c.now {
		c.now = t.at
	}
	return t
}
