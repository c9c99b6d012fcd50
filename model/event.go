package model

// TimedNoteEvent is one onset on the transport. Time is a transport time
// descriptor such as "0:2" or "0:2 + 2*32n"; Pitches are scientific note
// names in the order they should sound.
type TimedNoteEvent struct {
	Time    string   `json:"time"`
	Pitches []string `json:"pitches"`
}

// Progression is a reference chord followed by a second chord, with the
// events that play them.
type Progression struct {
	Tonic     string           `json:"tonic"`
	Reference string           `json:"reference"`
	Token     string           `json:"token"`
	Inversion int              `json:"inversion"`
	Chords    []string         `json:"chords"`
	Events    []TimedNoteEvent `json:"events"`
}
