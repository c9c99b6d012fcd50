package model

type ProgressionRequestBody struct {
	Tonic     string `json:"tonic"`
	Token     string `json:"token"`
	Inversion *int   `json:"inversion"`
	Set       string `json:"set"`
}

type ProgressionResponse struct {
	Id          string `json:"id"`
	Progression `json:"progression"`
}

type PlayRequestBody struct {
	Events     []TimedNoteEvent `json:"events"`
	Instrument string           `json:"instrument"`
	Arpeggiate bool             `json:"arpeggiate"`
}

type VocabularyEntry struct {
	Token    string `json:"token"`
	Interval string `json:"interval"`
	Quality  string `json:"quality"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

type ExerciseSet struct {
	Name      string   `json:"name"`
	Reference string   `json:"reference"`
	Tokens    []string `json:"tokens"`
}
