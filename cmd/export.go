package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/eartrain/constants"
	"github.com/jsphweid/eartrain/engine"
	"github.com/jsphweid/eartrain/instrument"
	"github.com/jsphweid/eartrain/midi"
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/playback"
	"github.com/jsphweid/eartrain/util"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	progressionOptions
	instrument string
	arpeggiate bool
	file       string
}

var exportFlags exportOptions

func init() {
	exportFlags.progressionOptions.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFlags.instrument, "instrument", constants.SynthName, "instrument name")
	exportCmd.Flags().BoolVar(&exportFlags.arpeggiate, "arpeggiate", false, "sound chord tones one after another")
	exportCmd.Flags().StringVar(&exportFlags.file, "file", "", "output file, <out dir>/<uuid>.mid when empty")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes a progression to a MIDI file",
	Long:  `Renders a progression through the offline transport into a Standard MIDI File.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := exportFlags.build()
		if err != nil {
			return err
		}

		path := exportFlags.file
		if path == "" {
			if err := util.EnsureOutputDir(constants.GetOutDir()); err != nil {
				return err
			}
			path = filepath.Join(constants.GetOutDir(), uuid.New().String()+".mid")
		}

		if err := Export(cmd.Context(), path, p, exportFlags.instrument, exportFlags.arpeggiate); err != nil {
			return err
		}
		printProgression(cmd.OutOrStdout(), p)
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %v\n", path)
		return nil
	},
}

// Export plays p through the offline transport and writes what the
// instrument recorded to path.
func Export(ctx context.Context, path string, p model.Progression, instrumentName string, arpeggiate bool) error {
	clock := engine.NewOfflineClock()
	audio := engine.NewContext(nil)
	transport := engine.NewTransport(clock, constants.GetBPM(), constants.BeatsPerBar)
	cache := instrument.NewCache(instrument.NewRecorderFactory(newLibrary()), audio.Destination(), constants.GetLoadTimeout())

	controller := playback.NewController(audio, transport, cache)
	if err := controller.Play(ctx, p.Events, instrumentName, arpeggiate); err != nil {
		return err
	}
	clock.Run()

	rec, err := recorded(ctx, cache)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %v: %w", path, err)
	}
	defer f.Close()
	if _, err := rec.WriteTo(f, transport.BPM()); err != nil {
		return fmt.Errorf("could not write %v: %w", path, err)
	}
	return nil
}

// recorded finds the recorder that was played, which is the synth when the
// requested sampler fell back.
func recorded(ctx context.Context, cache *instrument.Cache) (*midi.Recorder, error) {
	for _, name := range cache.Names() {
		inst, err := cache.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		if rec, ok := inst.(*midi.Recorder); ok && rec.Len() > 0 {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("nothing was recorded")
}
