package constants

import (
	"os"
	"strconv"
	"time"
)

// Transport-relative onsets of the two chords of a progression.
const (
	ReferenceOnset = "0:0"
	SecondOnset    = "0:2"
)

const (
	ChordDuration        = "4n"
	ArpeggioStep         = "32n"
	ArpeggioNoteDuration = "4n"
	BeatsPerBar          = 4
)

// SynthName is reserved for the synthesized voice, every other instrument
// name is sample backed.
const SynthName = "synth"

const (
	defaultBPM         = 120.0
	defaultGain        = 0.8
	defaultLoadTimeout = 10 * time.Second

	defaultAnswerTimeout = 30 * time.Second
)

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func GetBPM() float64 {
	bpm, err := strconv.ParseFloat(getEnv("EARTRAIN_BPM", ""), 64)
	if err != nil || bpm <= 0 {
		return defaultBPM
	}
	return bpm
}

// GetGain is the output level set before every playback, 0..1.
func GetGain() float64 {
	gain, err := strconv.ParseFloat(getEnv("EARTRAIN_GAIN", ""), 64)
	if err != nil || gain < 0 || gain > 1 {
		return defaultGain
	}
	return gain
}

func GetLoadTimeout() time.Duration {
	d, err := time.ParseDuration(getEnv("EARTRAIN_LOAD_TIMEOUT", ""))
	if err != nil || d <= 0 {
		return defaultLoadTimeout
	}
	return d
}

// GetAnswerTimeout is how long a quiz round waits for the right chord.
func GetAnswerTimeout() time.Duration {
	d, err := time.ParseDuration(getEnv("EARTRAIN_ANSWER_TIMEOUT", ""))
	if err != nil || d <= 0 {
		return defaultAnswerTimeout
	}
	return d
}

func GetMidiOut() string {
	return getEnv("EARTRAIN_MIDI_OUT", "")
}

func GetSampleDir() string {
	return getEnv("SAMPLE_PATH", "./samples")
}

func GetOutDir() string {
	return getEnv("EARTRAIN_OUT_DIR", "./out")
}

func GetAddr() string {
	return getEnv("EARTRAIN_ADDR", ":8080")
}

// GetInstrumentsTable names the DynamoDB table holding sample manifests.
// Empty means only the built-in manifests are used.
func GetInstrumentsTable() string {
	return getEnv("INSTRUMENTS_TABLE", "")
}

func GetDynamoEndpoint() string {
	return getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

func GetAWSRegion() string {
	return getEnv("AWS_REGION", "localhost")
}

func GetSentryDSN() string {
	return getEnv("SENTRY_DSN", "")
}

func GetEnvironment() string {
	return getEnv("ENVIRONMENT", "development")
}
