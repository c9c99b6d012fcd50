package cmd

import (
	"context"
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/jsphweid/eartrain/constants"
	"github.com/jsphweid/eartrain/db"
	"github.com/jsphweid/eartrain/engine"
	"github.com/jsphweid/eartrain/instrument"
	"github.com/jsphweid/eartrain/logger"
	"github.com/jsphweid/eartrain/midi"
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/playback"
	"github.com/jsphweid/eartrain/progression"
	"github.com/jsphweid/eartrain/sample"
	gomidi "gitlab.com/gomidi/midi/v2"
)

var errOutputClosed = errors.New("MIDI output is not open")

// output opens the MIDI port the first time the audio context resumes.
type output struct {
	mu   sync.Mutex
	port string
	send midi.Sender
}

func (o *output) open(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	send, out, err := midi.OpenSender(o.port)
	if err != nil {
		return err
	}
	o.send = send
	logger.Info("MIDI output open", logger.Fields{"port": out.String()})
	return nil
}

func (o *output) Send(msg gomidi.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.send == nil {
		return errOutputClosed
	}
	return o.send(msg)
}

func newLibrary() *sample.Library {
	var assets fs.FS
	dir := constants.GetSampleDir()
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		assets = os.DirFS(dir)
	} else {
		logger.Info("no sample directory, skipping sample checks", logger.Fields{"dir": dir})
	}

	var source sample.ManifestSource
	if table := constants.GetInstrumentsTable(); table != "" {
		store, err := db.NewManifestStore(constants.GetDynamoEndpoint(), constants.GetAWSRegion(), table)
		if err != nil {
			logger.Error("instrument manifests unavailable", err, logger.Fields{"table": table})
		} else {
			source = store
		}
	}
	return sample.NewLibrary(assets, source)
}

// newController wires a controller that plays on the MIDI output named
// port in real time.
func newController(port string) *playback.Controller {
	out := &output{port: port}
	clock := engine.RealtimeClock{}
	audio := engine.NewContext(out.open)
	transport := engine.NewTransport(clock, constants.GetBPM(), constants.BeatsPerBar)
	factory := instrument.NewMidiFactory(out.Send, clock, newLibrary())
	cache := instrument.NewCache(factory, audio.Destination(), constants.GetLoadTimeout())
	return playback.NewController(audio, transport, cache)
}

// length is how long events take to play out, last onset plus one note.
func length(events []model.TimedNoteEvent, arpeggiate bool) (time.Duration, error) {
	bpm := constants.GetBPM()
	duration := constants.ChordDuration
	if arpeggiate {
		duration = constants.ArpeggioNoteDuration
		events = progression.Arpeggiate(events, constants.ArpeggioStep)
	}
	tail, err := engine.ParseTime(duration, bpm, constants.BeatsPerBar)
	if err != nil {
		return 0, err
	}

	var last float64
	for _, evt := range events {
		at, err := engine.ParseTime(evt.Time, bpm, constants.BeatsPerBar)
		if err != nil {
			return 0, err
		}
		if at > last {
			last = at
		}
	}
	return time.Duration((last + tail) * float64(time.Second)), nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
