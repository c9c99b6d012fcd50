package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/jsphweid/eartrain/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Prints every note of a MIDI file, for example one written by export.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func inspect(w io.Writer, path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "format: %v tracks: %v time format: %v\n", s.Format(), len(s.Tracks), s.TimeFormat)
	for _, n := range midi.Notes(s) {
		offset := time.Duration(n.Offset) * time.Microsecond
		fmt.Fprintf(w, "%v\ttrack %v\t%v\t(key %v, velocity %v)\n", offset, n.Track, n.Name(), n.Key, n.Velocity)
	}
	return nil
}
