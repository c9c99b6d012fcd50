package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/eartrain/chord"
	"github.com/jsphweid/eartrain/sample"
	"github.com/jsphweid/eartrain/vocabulary"
	"github.com/spf13/cobra"
)

var vocabSet string
var vocabTonic string

func init() {
	vocabCmd.Flags().StringVar(&vocabSet, "set", "", "only list the tokens of this exercise set")
	vocabCmd.Flags().StringVar(&vocabTonic, "tonic", "C", "key the chords are spelled in")
	rootCmd.AddCommand(vocabCmd)
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Lists tokens, exercise sets and instruments",
	Long:  `Lists the roman-numeral tokens with their intervals, qualities and chords in --tonic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return vocab(cmd.OutOrStdout(), vocabSet, vocabTonic)
	},
}

func vocab(w io.Writer, setName, tonic string) error {
	tokens := vocabulary.Tokens()
	if setName != "" {
		set, err := vocabulary.GetSet(setName)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "set: %v (reference %v)\n", set.Name, set.Reference)
		tokens = set.Tokens
	}

	for _, token := range tokens {
		entry, err := vocabulary.Lookup(token)
		if err != nil {
			return err
		}
		symbol, err := chord.Resolve(tonic, token)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", token, entry.Interval, entry.Quality, symbol)
	}

	if setName == "" {
		fmt.Fprintf(w, "sets: %v\n", strings.Join(vocabulary.SetNames(), ", "))
		fmt.Fprintf(w, "instruments: synth, %v\n", strings.Join(sample.Names(), ", "))
	}
	return nil
}
