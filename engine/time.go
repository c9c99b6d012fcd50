package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidTime = errors.New("invalid time descriptor")

// ParseTime converts a transport time descriptor to seconds. It accepts
// "bar:beat[:sixteenth]", note values ("4n", "32n", "8n." dotted, "8t"
// triplet), measures ("1m"), plain seconds ("0.5"), multiples ("3*32n")
// and sums of those ("0:2 + 2*32n").
func ParseTime(desc string, bpm float64, beatsPerBar int) (float64, error) {
	if strings.TrimSpace(desc) == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidTime)
	}
	if bpm <= 0 || beatsPerBar <= 0 {
		return 0, fmt.Errorf("%w: bad meter %v bpm %v/4", ErrInvalidTime, bpm, beatsPerBar)
	}

	secondsPerBeat := 60 / bpm
	var total float64
	for _, term := range strings.Split(desc, "+") {
		beats, seconds, err := parseTerm(strings.TrimSpace(term), beatsPerBar)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", err, desc)
		}
		total += beats*secondsPerBeat + seconds
	}
	return total, nil
}

// parseTerm returns the term's length either in beats or, for a plain
// number, in seconds.
func parseTerm(term string, beatsPerBar int) (beats float64, seconds float64, err error) {
	multiplier := 1.0
	if i := strings.IndexByte(term, '*'); i >= 0 {
		multiplier, err = strconv.ParseFloat(strings.TrimSpace(term[:i]), 64)
		if err != nil {
			return 0, 0, ErrInvalidTime
		}
		term = strings.TrimSpace(term[i+1:])
	}
	if term == "" {
		return 0, 0, ErrInvalidTime
	}

	switch {
	case strings.Contains(term, ":"):
		beats, err = parseBarsBeats(term, beatsPerBar)
	case strings.HasSuffix(term, "m"):
		var n float64
		n, err = strconv.ParseFloat(strings.TrimSuffix(term, "m"), 64)
		beats = n * float64(beatsPerBar)
	case strings.HasSuffix(term, "n."):
		beats, err = noteValue(strings.TrimSuffix(term, "n."))
		beats *= 1.5
	case strings.HasSuffix(term, "n"):
		beats, err = noteValue(strings.TrimSuffix(term, "n"))
	case strings.HasSuffix(term, "t"):
		beats, err = noteValue(strings.TrimSuffix(term, "t"))
		beats *= 2.0 / 3.0
	default:
		seconds, err = strconv.ParseFloat(term, 64)
	}
	if err != nil {
		return 0, 0, ErrInvalidTime
	}
	return beats * multiplier, seconds * multiplier, nil
}

func parseBarsBeats(term string, beatsPerBar int) (float64, error) {
	parts := strings.Split(term, ":")
	if len(parts) > 3 {
		return 0, ErrInvalidTime
	}
	units := []float64{float64(beatsPerBar), 1, 0.25}
	var beats float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || v < 0 {
			return 0, ErrInvalidTime
		}
		beats += v * units[i]
	}
	return beats, nil
}

// noteValue is the length in quarter-note beats of a 1/n note.
func noteValue(n string) (float64, error) {
	div, err := strconv.Atoi(n)
	if err != nil || div <= 0 {
		return 0, ErrInvalidTime
	}
	return 4 / float64(div), nil
}
