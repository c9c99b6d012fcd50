package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/eartrain/constants"
	"github.com/jsphweid/eartrain/logger"
	"github.com/jsphweid/eartrain/model"
	"github.com/jsphweid/eartrain/playback"
	"github.com/jsphweid/eartrain/progression"
	"github.com/jsphweid/eartrain/theory"
	"github.com/jsphweid/eartrain/vocabulary"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
)

const playDebounce = 150 * time.Millisecond

var servePort string

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", constants.GetMidiOut(), "MIDI output port, first port when empty")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves progressions over HTTP",
	Long:  `Serves the vocabulary, builds progressions and plays them on the server's MIDI output.`,
	Run: func(cmd *cobra.Command, args []string) {
		defer gomidi.CloseDriver()
		server := NewServer(newController(servePort), newRand(0))
		logger.Info("listening", logger.Fields{"addr": constants.GetAddr()})
		log.Fatal(http.ListenAndServe(constants.GetAddr(), server.Handler()))
	},
}

// Server answers the HTTP API. Play requests are debounced so a burst of
// clicks plays only the last progression.
type Server struct {
	controller *playback.Controller
	debounced  func(f func())

	mu   sync.Mutex
	rand *rand.Rand
}

// NewServer returns a server playing on controller. A nil controller
// disables /play.
func NewServer(controller *playback.Controller, r *rand.Rand) *Server {
	return &Server{
		controller: controller,
		debounced:  debounce.New(playDebounce),
		rand:       r,
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/vocabulary", s.HandleVocabulary).Methods("GET")
	router.HandleFunc("/sets", s.HandleSets).Methods("GET")
	router.HandleFunc("/progression", s.HandleProgression).Methods("POST")
	router.HandleFunc("/play", s.HandlePlay).Methods("POST")

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("could not encode response", err, nil)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) HandleVocabulary(w http.ResponseWriter, r *http.Request) {
	res := make([]model.VocabularyEntry, 0)
	for _, token := range vocabulary.Tokens() {
		entry, err := vocabulary.Lookup(token)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		res = append(res, model.VocabularyEntry{Token: token, Interval: entry.Interval, Quality: entry.Quality})
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleSets(w http.ResponseWriter, r *http.Request) {
	res := make([]model.ExerciseSet, 0)
	for _, name := range vocabulary.SetNames() {
		set, err := vocabulary.GetSet(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		res = append(res, model.ExerciseSet{Name: set.Name, Reference: set.Reference, Tokens: set.Tokens})
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleProgression(w http.ResponseWriter, r *http.Request) {
	var input model.ProgressionRequestBody
	if err := decode(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	p, err := progression.FromRequest(s.rand, input)
	s.mu.Unlock()

	switch {
	case errors.Is(err, vocabulary.ErrUnknownHarmonicSymbol),
		errors.Is(err, vocabulary.ErrUnknownSet),
		errors.Is(err, theory.ErrUnresolvedNote):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		logger.Error("could not build progression", err, logger.Fields{"token": input.Token, "tonic": input.Tonic})
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ProgressionResponse{Id: uuid.New().String(), Progression: p})
}

func (s *Server) HandlePlay(w http.ResponseWriter, r *http.Request) {
	if s.controller == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("playback is not available"))
		return
	}

	var input model.PlayRequestBody
	if err := decode(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(input.Events) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("events are required"))
		return
	}
	if input.Instrument == "" {
		input.Instrument = constants.SynthName
	}

	s.debounced(func() {
		if err := s.controller.Play(context.Background(), input.Events, input.Instrument, input.Arpeggiate); err != nil {
			logger.Error("could not play progression", err, logger.Fields{"instrument": input.Instrument})
		}
	})
	w.WriteHeader(http.StatusAccepted)
}
