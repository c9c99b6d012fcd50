package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jsphweid/eartrain/constants"
	"github.com/jsphweid/eartrain/engine"
	"github.com/jsphweid/eartrain/instrument"
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type played struct {
	at       float64
	duration float64
	pitches  []string
}

type fakeInstrument struct {
	mu       sync.Mutex
	played   []played
	releases int
	gain     float64
}

func (f *fakeInstrument) TriggerAttackRelease(pitches []string, duration float64, at float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, played{at, duration, pitches})
	return nil
}

func (f *fakeInstrument) ReleaseAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	return nil
}

func (f *fakeInstrument) ToDestination(d *engine.Destination) {
	d.Connect(func(gain float64) { f.gain = gain })
}

type fakeSource map[string]*fakeInstrument

func (s fakeSource) Get(_ context.Context, name string) (instrument.Instrument, error) {
	inst, ok := s[name]
	if !ok {
		return nil, errors.New("no such instrument")
	}
	return inst, nil
}

// leakyClock never cancels timers, like an engine whose cancel lost a race.
type leakyClock struct {
	*engine.OfflineClock
}

func (c leakyClock) AfterFunc(d time.Duration, f func()) func() bool {
	c.OfflineClock.AfterFunc(d, f)
	return func() bool { return false }
}

type rig struct {
	clock      *engine.OfflineClock
	audio      *engine.Context
	opens      int
	controller *Controller
	piano      *fakeInstrument
}

func newRig(t *testing.T, clock engine.Clock, offline *engine.OfflineClock) *rig {
	t.Helper()
	r := &rig{clock: offline, piano: &fakeInstrument{}}
	r.audio = engine.NewContext(func(context.Context) error {
		r.opens++
		return nil
	})
	r.piano.ToDestination(r.audio.Destination())
	transport := engine.NewTransport(clock, constants.GetBPM(), constants.BeatsPerBar)
	r.controller = NewController(r.audio, transport, fakeSource{"piano": r.piano})
	return r
}

func newOfflineRig(t *testing.T) *rig {
	clock := engine.NewOfflineClock()
	return newRig(t, clock, clock)
}

func cMajorToDMinor() []model.TimedNoteEvent {
	return []model.TimedNoteEvent{
		{Time: "0:0", Pitches: []string{"C4", "E4", "G4"}},
		{Time: "0:2", Pitches: []string{"D4", "F3", "A3"}},
	}
}

func TestPlayChords(t *testing.T) {
	r := newOfflineRig(t)
	require.NoError(t, r.controller.Play(context.Background(), cMajorToDMinor(), "piano", false))
	r.clock.Run()

	assert := assert.New(t)
	assert.True(r.audio.Running())
	assert.Equal(1, r.piano.releases)
	assert.Equal([]played{
		{0, 0.5, []string{"C4", "E4", "G4"}},
		{1, 0.5, []string{"D4", "F3", "A3"}},
	}, r.piano.played)
}

func TestPlayArpeggiated(t *testing.T) {
	r := newOfflineRig(t)
	require.NoError(t, r.controller.Play(context.Background(), cMajorToDMinor(), "piano", true))
	r.clock.Run()

	require.Len(t, r.piano.played, 6)

	assert := assert.New(t)
	expected := []struct {
		at    float64
		pitch string
	}{
		{0, "C4"}, {0.0625, "E4"}, {0.125, "G4"},
		{1, "D4"}, {1.0625, "F3"}, {1.125, "A3"},
	}
	for i, e := range expected {
		assert.InDelta(e.at, r.piano.played[i].at, 1e-9)
		assert.Equal([]string{e.pitch}, r.piano.played[i].pitches)
		assert.Equal(0.5, r.piano.played[i].duration)
	}
}

func TestPlaySetsDefaultGain(t *testing.T) {
	t.Setenv("EARTRAIN_GAIN", "0.25")
	r := newOfflineRig(t)
	require.NoError(t, r.controller.Play(context.Background(), cMajorToDMinor(), "piano", false))
	assert.Equal(t, 0.25, r.piano.gain)
}

func TestPlayResumesOnce(t *testing.T) {
	r := newOfflineRig(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, r.controller.Play(context.Background(), cMajorToDMinor(), "piano", false))
	}
	assert.Equal(t, 1, r.opens)
	assert.Equal(t, uint64(3), r.controller.Generation())
}

func TestLastPlayWins(t *testing.T) {
	r := newOfflineRig(t)
	ctx := context.Background()
	require.NoError(t, r.controller.Play(ctx, cMajorToDMinor(), "piano", false))
	require.NoError(t, r.controller.Play(ctx, []model.TimedNoteEvent{
		{Time: "0:0", Pitches: []string{"A3", "C4", "E4"}},
	}, "piano", false))
	r.clock.Run()

	assert.Equal(t, []played{{0, 0.5, []string{"A3", "C4", "E4"}}}, r.piano.played)
}

func TestSupersededOnsetsStaySilent(t *testing.T) {
	offline := engine.NewOfflineClock()
	r := newRig(t, leakyClock{offline}, offline)
	ctx := context.Background()

	require.NoError(t, r.controller.Play(ctx, cMajorToDMinor(), "piano", false))
	require.NoError(t, r.controller.Play(ctx, []model.TimedNoteEvent{
		{Time: "0:1", Pitches: []string{"B3"}},
	}, "piano", false))

	// the first schedule's timers still fire but find a newer generation
	assert.Equal(t, 3, r.clock.Run())
	assert.Equal(t, []played{{0.5, 0.5, []string{"B3"}}}, r.piano.played)
}

func TestPlayErrors(t *testing.T) {
	r := newOfflineRig(t)
	ctx := context.Background()

	err := r.controller.Play(ctx, cMajorToDMinor(), "theremin", false)
	assert.ErrorContains(t, err, "theremin")

	err = r.controller.Play(ctx, []model.TimedNoteEvent{{Time: "soon", Pitches: []string{"C4"}}}, "piano", false)
	assert.ErrorIs(t, err, engine.ErrInvalidTime)

	failing := NewController(engine.NewContext(func(context.Context) error {
		return errors.New("no device")
	}), engine.NewTransport(r.clock, 120, 4), fakeSource{})
	assert.ErrorContains(t, failing.Play(ctx, cMajorToDMinor(), "piano", false), "no device")
}

func TestStop(t *testing.T) {
	r := newOfflineRig(t)
	require.NoError(t, r.controller.Play(context.Background(), cMajorToDMinor(), "piano", false))
	require.NoError(t, r.controller.Stop())
	r.clock.Run()

	assert.Empty(t, r.piano.played)
	assert.Equal(t, 2, r.piano.releases)
}

func TestPlayBuiltProgression(t *testing.T) {
	p, err := progression.Build("C", "I", "ii", 1)
	require.NoError(t, err)

	r := newOfflineRig(t)
	require.NoError(t, r.controller.Play(context.Background(), p.Events, "piano", false))
	r.clock.Run()

	require.Len(t, r.piano.played, 2)
	assert.Equal(t, 0.0, r.piano.played[0].at)
	assert.ElementsMatch(t, []string{"C4", "E4", "G4"}, r.piano.played[0].pitches)
}
