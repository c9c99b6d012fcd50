package sample

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jsphweid/eartrain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	manifests map[string]model.InstrumentManifest
	err       error
	calls     int
}

func (f *fakeSource) GetInstrumentManifests(names []string) (map[string]model.InstrumentManifest, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	res := make(map[string]model.InstrumentManifest)
	for _, n := range names {
		if m, ok := f.manifests[n]; ok {
			res[n] = m
		}
	}
	return res, nil
}

type loaded struct {
	manifest model.InstrumentManifest
	err      error
}

func loadSync(t *testing.T, l *Library, name string) loaded {
	t.Helper()
	done := make(chan loaded, 2)
	l.Load(context.Background(), name, func(m model.InstrumentManifest, err error) {
		done <- loaded{m, err}
	})

	select {
	case res := <-done:
		select {
		case <-done:
			t.Fatal("onload called twice")
		case <-time.After(10 * time.Millisecond):
		}
		return res
	case <-time.After(time.Second):
		t.Fatal("onload never called")
	}
	return loaded{}
}

func pianoAssets() fstest.MapFS {
	assets := fstest.MapFS{}
	for _, file := range builtin["piano"].Notes {
		assets["piano/"+file] = &fstest.MapFile{Data: []byte("mp3")}
	}
	return assets
}

func TestBuiltinManifest(t *testing.T) {
	l := NewLibrary(nil, nil)
	m, err := l.Manifest("violin")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("violin", m.Name)
	assert.Equal(uint8(40), m.Program)
	assert.Equal("A4.mp3", m.Notes["A4"])

	// callers can't modify the built-in table
	m.Notes["A4"] = "changed"
	again, _ := l.Manifest("violin")
	assert.Equal("A4.mp3", again.Notes["A4"])
}

func TestManifestFromSource(t *testing.T) {
	source := &fakeSource{manifests: map[string]model.InstrumentManifest{
		"kalimba": {Program: 108, Notes: map[string]string{"C4": "c4.wav"}},
	}}
	l := NewLibrary(nil, source)

	m, err := l.Manifest("kalimba")
	require.NoError(t, err)
	assert.Equal(t, "kalimba", m.Name)
	assert.Equal(t, uint8(108), m.Program)

	_, err = l.Manifest("theremin")
	assert.ErrorIs(t, err, ErrUnknownInstrument)

	// built-ins never reach the source
	_, err = l.Manifest("piano")
	assert.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

func TestManifestSourceError(t *testing.T) {
	l := NewLibrary(nil, &fakeSource{err: errors.New("throttled")})
	_, err := l.Manifest("kalimba")
	assert.ErrorContains(t, err, "throttled")
}

func TestLoadChecksAssets(t *testing.T) {
	res := loadSync(t, NewLibrary(pianoAssets(), nil), "piano")
	require.NoError(t, res.err)
	assert.Equal(t, "piano", res.manifest.Name)
}

func TestLoadMissingAsset(t *testing.T) {
	assets := pianoAssets()
	delete(assets, "piano/C4.mp3")

	res := loadSync(t, NewLibrary(assets, nil), "piano")
	assert.ErrorIs(t, res.err, ErrMissingSample)
	assert.ErrorContains(t, res.err, "piano/C4.mp3")
}

func TestLoadUnknownInstrument(t *testing.T) {
	res := loadSync(t, NewLibrary(fstest.MapFS{}, nil), "theremin")
	assert.ErrorIs(t, res.err, ErrUnknownInstrument)
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	NewLibrary(pianoAssets(), nil).Load(ctx, "piano", func(_ model.InstrumentManifest, err error) {
		done <- err
	})
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "piano")
	assert.Contains(t, names, "cello")
	assert.IsIncreasing(t, names)
}
