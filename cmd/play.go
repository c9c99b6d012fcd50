package cmd

import (
	"time"

	"github.com/jsphweid/eartrain/constants"
	"github.com/jsphweid/eartrain/logger"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
)

type playOptions struct {
	progressionOptions
	instrument string
	arpeggiate bool
	port       string
}

func (o *playOptions) register(cmd *cobra.Command) {
	o.progressionOptions.register(cmd)
	cmd.Flags().StringVar(&o.instrument, "instrument", constants.SynthName, "instrument name")
	cmd.Flags().BoolVar(&o.arpeggiate, "arpeggiate", false, "sound chord tones one after another")
	cmd.Flags().StringVar(&o.port, "port", constants.GetMidiOut(), "MIDI output port, first port when empty")
}

var playFlags playOptions

func init() {
	playFlags.register(playCmd)
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Plays a progression",
	Long:  `Builds a progression and plays it on a MIDI output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := playFlags.build()
		if err != nil {
			return err
		}
		printProgression(cmd.OutOrStdout(), p)

		wait, err := length(p.Events, playFlags.arpeggiate)
		if err != nil {
			return err
		}

		defer gomidi.CloseDriver()
		controller := newController(playFlags.port)
		if err := controller.Play(cmd.Context(), p.Events, playFlags.instrument, playFlags.arpeggiate); err != nil {
			return err
		}
		time.Sleep(wait)
		if err := controller.Stop(); err != nil {
			logger.Warn("could not release notes", logger.Fields{"error": err.Error()})
		}
		return nil
	},
}
