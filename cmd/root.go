package cmd

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jsphweid/eartrain/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const sentryFlushTimeout = 2 * time.Second

var rootCmd = &cobra.Command{
	Use:   "eartrain",
	Short: "Harmonic progression ear training",
	Long: `Generates two-chord progressions from roman-numeral tokens, plays them
on a MIDI output and exports them as MIDI files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		sentry.Flush(sentryFlushTimeout)
	},
}

func setup() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := constants.GetSentryDSN()
	if dsn == "" {
		return
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: constants.GetEnvironment(),
		Release:     "eartrain",
	}); err != nil {
		log.Printf("Failed to initialize Sentry: %v", err)
	}
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
