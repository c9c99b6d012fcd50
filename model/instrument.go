package model

// InstrumentManifest describes a sample-backed instrument: the General MIDI
// program it maps to on a MIDI output and its sample files keyed by note.
type InstrumentManifest struct {
	Name    string            `json:"name"`
	Program uint8             `json:"program"`
	Notes   map[string]string `json:"notes"`
}
