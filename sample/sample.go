package sample

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/util"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrMissingSample     = errors.New("missing sample")
)

const maxConcurrentChecks = 8

// ManifestSource looks up manifests that are not built in. Missing names
// are left out of the result.
type ManifestSource interface {
	GetInstrumentManifests(names []string) (map[string]model.InstrumentManifest, error)
}

// Library resolves instrument names to manifests and checks that their
// sample files exist under assets, laid out as <name>/<file>.
type Library struct {
	assets fs.FS
	source ManifestSource
}

// NewLibrary returns a library over assets. A nil assets skips the file
// check and a nil source serves only the built-in manifests.
func NewLibrary(assets fs.FS, source ManifestSource) *Library {
	return &Library{assets: assets, source: source}
}

// Names lists the built-in instruments.
func Names() []string {
	return util.GetKeys(builtin)
}

func (l *Library) Manifest(name string) (model.InstrumentManifest, error) {
	if m, ok := builtin[name]; ok {
		return copyManifest(name, m), nil
	}

	if l.source != nil {
		found, err := l.source.GetInstrumentManifests([]string{name})
		if err != nil {
			return model.InstrumentManifest{}, fmt.Errorf("looking up instrument %q: %w", name, err)
		}
		if m, ok := found[name]; ok {
			return copyManifest(name, m), nil
		}
	}

	return model.InstrumentManifest{}, fmt.Errorf("%w: %q", ErrUnknownInstrument, name)
}

// Load resolves name and checks its samples in the background, then calls
// onload exactly once with the manifest or the reason it failed.
func (l *Library) Load(ctx context.Context, name string, onload func(model.InstrumentManifest, error)) {
	go func() {
		onload(l.load(ctx, name))
	}()
}

func (l *Library) load(ctx context.Context, name string) (model.InstrumentManifest, error) {
	m, err := l.Manifest(name)
	if err != nil {
		return model.InstrumentManifest{}, err
	}
	if l.assets == nil {
		return m, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)
	for _, note := range util.GetKeys(m.Notes) {
		file := path.Join(name, m.Notes[note])
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := fs.Stat(l.assets, file); err != nil {
				return fmt.Errorf("%w: %s", ErrMissingSample, file)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.InstrumentManifest{}, err
	}
	return m, nil
}

func copyManifest(name string, m model.InstrumentManifest) model.InstrumentManifest {
	notes := make(map[string]string, len(m.Notes))
	for k, v := range m.Notes {
		notes[k] = v
	}
	return model.InstrumentManifest{Name: name, Program: m.Program, Notes: notes}
}
