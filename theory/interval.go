package theory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidInterval = errors.New("invalid interval")

// Interval is a signed distance between two spelled notes. Steps counts
// letter names (0 is a unison, 7 an octave) and Semitones the pitch distance.
type Interval struct {
	Steps     int
	Semitones int
}

var (
	Unison     = Interval{Steps: 0, Semitones: 0}
	Octave     = Interval{Steps: 7, Semitones: 12}
	OctaveDown = Interval{Steps: -7, Semitones: -12}
)

// semitones of the major scale degrees above the tonic
var majorSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

func isPerfectClass(simpleSteps int) bool {
	return simpleSteps == 0 || simpleSteps == 3 || simpleSteps == 4
}

// ParseInterval reads specifiers like "P5", "m3", "M7", "d5", "A4" and
// descending forms like "P-8".
func ParseInterval(spec string) (Interval, error) {
	if len(spec) < 2 {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, spec)
	}

	quality := spec[:1]
	rest := spec[1:]
	descending := strings.HasPrefix(rest, "-")
	rest = strings.TrimPrefix(rest, "-")

	number, err := strconv.Atoi(rest)
	if err != nil || number < 1 {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, spec)
	}

	steps := number - 1
	simple := steps % 7
	semitones := (steps/7)*12 + majorSemitones[simple]

	if isPerfectClass(simple) {
		switch quality {
		case "P":
		case "d":
			semitones--
		case "A":
			semitones++
		default:
			return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, spec)
		}
	} else {
		switch quality {
		case "M":
		case "m":
			semitones--
		case "d":
			semitones -= 2
		case "A":
			semitones++
		default:
			return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, spec)
		}
	}

	iv := Interval{Steps: steps, Semitones: semitones}
	if descending {
		iv = iv.Negate()
	}
	return iv, nil
}

func MustParseInterval(spec string) Interval {
	iv, err := ParseInterval(spec)
	if err != nil {
		panic(err)
	}
	return iv
}

func (iv Interval) Add(other Interval) Interval {
	return Interval{Steps: iv.Steps + other.Steps, Semitones: iv.Semitones + other.Semitones}
}

func (iv Interval) Negate() Interval {
	return Interval{Steps: -iv.Steps, Semitones: -iv.Semitones}
}

// String renders the interval back in specifier form, e.g. "m3" or "P-8".
func (iv Interval) String() string {
	steps, semitones, sign := iv.Steps, iv.Semitones, ""
	if steps < 0 || (steps == 0 && semitones < 0) {
		steps, semitones, sign = -steps, -semitones, "-"
	}

	simple := steps % 7
	diff := semitones - ((steps/7)*12 + majorSemitones[simple])

	var quality string
	if isPerfectClass(simple) {
		switch {
		case diff == 0:
			quality = "P"
		case diff < 0:
			quality = strings.Repeat("d", -diff)
		default:
			quality = strings.Repeat("A", diff)
		}
	} else {
		switch {
		case diff == 0:
			quality = "M"
		case diff == -1:
			quality = "m"
		case diff < -1:
			quality = strings.Repeat("d", -diff-1)
		default:
			quality = strings.Repeat("A", diff)
		}
	}
	return fmt.Sprintf("%s%s%d", quality, sign, steps+1)
}
