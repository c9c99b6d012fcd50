package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/eartrain/constants"
	"github.com/jsphweid/eartrain/midi"
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/progression"
	"github.com/jsphweid/eartrain/vocabulary"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
)

const answerDebounce = 300 * time.Millisecond

type quizOptions struct {
	playOptions
	in           string
	rounds       int
	maxInversion int
}

var quizFlags quizOptions

func init() {
	quizFlags.playOptions.register(quizCmd)
	quizCmd.Flags().StringVar(&quizFlags.in, "in", "", "MIDI input port, first port when empty")
	quizCmd.Flags().IntVar(&quizFlags.rounds, "rounds", 10, "number of progressions")
	quizCmd.Flags().IntVar(&quizFlags.maxInversion, "max-inversion", 2, "highest inversion asked")
	rootCmd.AddCommand(quizCmd)
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Plays progressions and listens for the answer",
	Long: `Plays random progressions from --set. Answer each one by holding the
second chord on a MIDI keyboard, in any octave or voicing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer gomidi.CloseDriver()
		set, err := vocabulary.GetSet(quizFlags.set)
		if err != nil {
			return err
		}
		in, err := midi.OpenInPort(quizFlags.in)
		if err != nil {
			return err
		}

		gen := progression.NewGenerator(newRand(quizFlags.seed), set, quizFlags.maxInversion)
		controller := newController(quizFlags.port)
		keyboard := midi.NewKeyboard()
		held := make(chan []uint8, 1)
		debounced := debounce.New(answerDebounce)

		stop, err := keyboard.Listen(in, func(keys []uint8) {
			debounced(func() {
				select {
				case <-held:
				default:
				}
				held <- keys
			})
		})
		if err != nil {
			return err
		}
		defer stop()

		out := cmd.OutOrStdout()
		score := 0
		for round := 1; round <= quizFlags.rounds; round++ {
			p, err := gen.Next()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "round %v: %v in %v\n", round, set.Name, p.Tonic)
			if err := controller.Play(cmd.Context(), p.Events, quizFlags.instrument, quizFlags.arpeggiate); err != nil {
				return err
			}
			drain(held)
			if awaitAnswer(cmd, out, p, held) {
				score++
			}
		}
		fmt.Fprintf(out, "score: %v/%v\n", score, quizFlags.rounds)
		return nil
	},
}

// drain drops chords held before the round started.
func drain(held <-chan []uint8) {
	for {
		select {
		case <-held:
		default:
			return
		}
	}
}

// awaitAnswer waits for the held keys to match the second chord, up to
// the answer timeout.
func awaitAnswer(cmd *cobra.Command, out io.Writer, p model.Progression, held <-chan []uint8) bool {
	timeout := time.NewTimer(constants.GetAnswerTimeout())
	defer timeout.Stop()
	for {
		select {
		case keys := <-held:
			ok, err := progression.Matches(p, keys)
			if err != nil {
				fmt.Fprintf(out, "could not check answer: %v\n", err)
				return false
			}
			if ok {
				fmt.Fprintf(out, "correct: %v (%v, inversion %v)\n", p.Token, p.Chords[1], p.Inversion)
				return true
			}
		case <-timeout.C:
			fmt.Fprintf(out, "it was %v (%v, inversion %v)\n", p.Token, p.Chords[1], p.Inversion)
			return false
		case <-cmd.Context().Done():
			return false
		}
	}
}
