package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/progression"
	"github.com/jsphweid/eartrain/vocabulary"
	"github.com/spf13/cobra"
)

func init() {
	progressionFlags.register(progressionCmd)
	rootCmd.AddCommand(progressionCmd)
}

// progressionOptions are the flags shared by every command that builds a
// progression. Empty values and a negative inversion are drawn at random.
type progressionOptions struct {
	tonic     string
	token     string
	set       string
	inversion int
	seed      int64
}

func (o *progressionOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.tonic, "tonic", "", "tonic pitch class, random when empty")
	cmd.Flags().StringVar(&o.token, "token", "", "roman-numeral token of the second chord, random from --set when empty")
	cmd.Flags().StringVar(&o.set, "set", vocabulary.DefaultSet, "exercise set")
	cmd.Flags().IntVar(&o.inversion, "inversion", -1, "inversion of the second chord, random when negative")
	cmd.Flags().Int64Var(&o.seed, "seed", 0, "random seed, time based when 0")
}

func (o *progressionOptions) build() (model.Progression, error) {
	req := model.ProgressionRequestBody{Tonic: o.tonic, Token: o.token, Set: o.set}
	if o.inversion >= 0 {
		inversion := o.inversion
		req.Inversion = &inversion
	}
	return progression.FromRequest(newRand(o.seed), req)
}

var progressionFlags progressionOptions

var progressionCmd = &cobra.Command{
	Use:   "progression",
	Short: "Prints a progression",
	Long:  `Builds a reference chord and a second chord and prints their events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := progressionFlags.build()
		if err != nil {
			return err
		}
		printProgression(cmd.OutOrStdout(), p)
		return nil
	},
}

func printProgression(w io.Writer, p model.Progression) {
	fmt.Fprintf(w, "tonic: %v\n", p.Tonic)
	fmt.Fprintf(w, "progression: %v -> %v (inversion %v)\n", p.Reference, p.Token, p.Inversion)
	fmt.Fprintf(w, "chords: %v\n", strings.Join(p.Chords, " "))
	for _, evt := range p.Events {
		fmt.Fprintf(w, "%v\t%v\n", evt.Time, strings.Join(evt.Pitches, " "))
	}
}
