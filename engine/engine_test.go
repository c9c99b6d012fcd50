package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jsphweid/eartrain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	// 120 bpm: a beat is half a second
	cases := map[string]float64{
		"0:0":           0,
		"0:2":           1,
		"1:0":           2,
		"1:1:2":         2.75,
		"4n":            0.5,
		"32n":           0.0625,
		"8n.":           0.375,
		"8t":            1.0 / 6,
		"1m":            2,
		"0.3":           0.3,
		"0:2 + 32n":     1.0625,
		"0:2 + 2*32n":   1.125,
		"0:0 + 3 * 32n": 0.1875,
	}

	for desc, expected := range cases {
		t.Run(fmt.Sprintf("parse %q", desc), func(t *testing.T) {
			seconds, err := ParseTime(desc, 120, 4)
			require.NoError(t, err)
			assert.InDelta(t, expected, seconds, 1e-9)
		})
	}
}

func TestParseTimeErrors(t *testing.T) {
	for _, desc := range []string{"", "abc", "0:x", "0n", "1:2:3:4", "0:2 +", "x*4n", "-1:0"} {
		_, err := ParseTime(desc, 120, 4)
		assert.ErrorIs(t, err, ErrInvalidTime, desc)
	}
	_, err := ParseTime("0:0", 0, 4)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestOfflineClockRunsInOrder(t *testing.T) {
	clock := NewOfflineClock()
	var order []string

	clock.AfterFunc(2*time.Second, func() { order = append(order, "late") })
	stop := clock.AfterFunc(time.Second, func() { order = append(order, "stopped") })
	clock.AfterFunc(time.Second, func() {
		order = append(order, "first")
		clock.AfterFunc(500*time.Millisecond, func() { order = append(order, "nested") })
	})
	clock.AfterFunc(time.Second, func() { order = append(order, "second") })

	assert := assert.New(t)
	assert.True(stop())
	assert.False(stop())
	assert.Equal(4, clock.Run())
	assert.Equal([]string{"first", "second", "nested", "late"}, order)
	assert.Equal(2*time.Second, clock.Now())
}

func TestTransportStartStopCancel(t *testing.T) {
	clock := NewOfflineClock()
	tr := NewTransport(clock, 120, 4)
	var fired []float64
	record := func(at float64) { fired = append(fired, at) }

	assert := assert.New(t)
	assert.NoError(tr.ScheduleOnce(record, "0:2"))
	assert.NoError(tr.ScheduleOnce(record, "0:0"))
	assert.Error(tr.ScheduleOnce(record, "nope"))
	assert.Equal(2, tr.Scheduled())

	// nothing fires before Start
	assert.Equal(0, clock.Run())

	tr.Start()
	assert.True(tr.Running())
	clock.Run()
	assert.Equal([]float64{0, 1}, fired)

	fired = nil
	tr.Start()
	tr.Stop()
	assert.Equal(0, clock.Run())
	assert.Equal(2, tr.Scheduled())

	tr.Cancel()
	tr.Start()
	assert.Equal(0, clock.Run())
	assert.Equal(0, tr.Scheduled())
	assert.Empty(fired)
}

func TestTransportArmsWhileRunning(t *testing.T) {
	clock := NewOfflineClock()
	tr := NewTransport(clock, 60, 4)
	tr.Start()

	var fired []float64
	require.NoError(t, tr.ScheduleOnce(func(at float64) { fired = append(fired, at) }, "4n"))
	clock.Run()
	assert.Equal(t, []float64{1}, fired)
}

func TestTransportArmsFromStart(t *testing.T) {
	clock := NewOfflineClock()
	tr := NewTransport(clock, 60, 4)
	tr.Start()

	var fired []time.Duration
	record := func(float64) { fired = append(fired, clock.Now()) }
	require.NoError(t, tr.ScheduleOnce(func(at float64) {
		record(at)
		// scheduled one second in, so 2n lands one second later and 4n is due now
		assert.NoError(t, tr.ScheduleOnce(record, "2n"))
		assert.NoError(t, tr.ScheduleOnce(record, "4n"))
	}, "4n"))

	clock.Run()
	assert.Equal(t, []time.Duration{time.Second, time.Second, 2 * time.Second}, fired)
}

func TestPart(t *testing.T) {
	clock := NewOfflineClock()
	tr := NewTransport(clock, 120, 4)
	var got []string

	events := []model.TimedNoteEvent{
		{Time: "0:2", Pitches: []string{"G4"}},
		{Time: "0:0", Pitches: []string{"C4", "E4"}},
	}
	part := NewPart(func(at float64, evt model.TimedNoteEvent) {
		got = append(got, fmt.Sprintf("%v@%v", evt.Pitches, at))
	}, events)
	events[0].Time = "9:9"

	require.NoError(t, part.Start(tr))
	tr.Start()
	clock.Run()

	assert.Equal(t, []string{"[C4 E4]@0", "[G4]@1"}, got)
	assert.Equal(t, 2, part.Len())
}

func TestPartRejectsBadTimesAtomically(t *testing.T) {
	tr := NewTransport(NewOfflineClock(), 120, 4)
	part := NewPart(func(float64, model.TimedNoteEvent) {}, []model.TimedNoteEvent{
		{Time: "0:0"}, {Time: "later"},
	})

	assert.ErrorIs(t, part.Start(tr), ErrInvalidTime)
	assert.Equal(t, 0, tr.Scheduled())
}

func TestContextResume(t *testing.T) {
	opened := 0
	c := NewContext(func(ctx context.Context) error {
		opened++
		return nil
	})

	assert := assert.New(t)
	assert.False(c.Running())
	assert.NoError(c.Resume(context.Background()))
	assert.NoError(c.Resume(context.Background()))
	assert.True(c.Running())
	assert.Equal(1, opened)

	c.Suspend()
	assert.False(c.Running())
}

func TestContextResumeFailure(t *testing.T) {
	c := NewContext(func(ctx context.Context) error { return errors.New("no port") })
	assert.Error(t, c.Resume(context.Background()))
	assert.False(t, c.Running())
}

func TestDestinationGain(t *testing.T) {
	c := NewContext(nil)
	var seen, other []float64
	c.Destination().Connect(func(g float64) { seen = append(seen, g) })
	c.Destination().Connect(func(g float64) { other = append(other, g) })
	c.SetGain(0.8)

	assert.Equal(t, []float64{1, 0.8}, seen)
	assert.Equal(t, []float64{1, 0.8}, other)
	assert.Equal(t, 0.8, c.Destination().Gain())
}
