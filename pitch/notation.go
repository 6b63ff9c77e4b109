package pitch

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/freqnote/constants"
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/model"
	"github.com/pkg/errors"
)

// letter, accidental markers, optional signed octave, optional signed cents
// deviation with an optional unit. When an octave is present, a following
// signed number is the cents deviation: "Ab-1+3" is Ab in octave -1, 3 cents
// sharp, and "A4-12c" is A4, 12 cents flat.
var noteRe = regexp.MustCompile(`^([A-Ga-g])([#♯b♭x♮]*)([+-]?\d+)?(?:([+-]\d+(?:\.\d*)?|[+-]\.\d+)(?:cents?|c)?)?$`)

var freqRe = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

// IsNoteLiteral reports whether s matches the note-name grammar, whether or
// not the note it names is in range.
func IsNoteLiteral(s string) bool {
	return noteRe.MatchString(s)
}

// ParseNote reads a note name such as "F#3", "eb", "Bb-1", "C♯5+12.5cents".
// A missing octave means octave 4. The second result is the cents deviation.
func ParseNote(s string) (model.Note, float64, error) {
	m := noteRe.FindStringSubmatch(s)
	if m == nil {
		return model.Note{}, 0, errors.Wrapf(errs.ErrInvalidNote, "%q", s)
	}
	letter, _ := model.LetterFromRune([]rune(m[1])[0])
	acc, err := parseAccidentals(m[2])
	if err != nil {
		return model.Note{}, 0, errors.Wrapf(err, "%q", s)
	}
	n := model.Note{
		PitchClass: model.PitchClass{Letter: letter, Accidental: acc},
		Octave:     constants.DefaultOctave,
	}
	if m[3] != "" {
		octave, err := strconv.Atoi(m[3])
		if err != nil {
			return model.Note{}, 0, errors.Wrapf(errs.ErrInvalidNote, "octave in %q", s)
		}
		n.Octave = octave
	}
	var cents float64
	if m[4] != "" {
		cents, err = strconv.ParseFloat(m[4], 64)
		if err != nil {
			return model.Note{}, 0, errors.Wrapf(errs.ErrInvalidNote, "cents in %q", s)
		}
	}
	if err := Validate(n); err != nil {
		return model.Note{}, 0, errors.Wrapf(err, "%q", s)
	}
	return n, cents, nil
}

// ParsePitchClass reads a letter with optional accidentals and nothing else.
func ParsePitchClass(s string) (model.PitchClass, error) {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) == 0 {
		return model.PitchClass{}, errors.Wrap(errs.ErrInvalidNote, "empty pitch class")
	}
	letter, ok := model.LetterFromRune(r[0])
	if !ok {
		return model.PitchClass{}, errors.Wrapf(errs.ErrInvalidNote, "%q", s)
	}
	acc, err := parseAccidentals(string(r[1:]))
	if err != nil {
		return model.PitchClass{}, errors.Wrapf(err, "%q", s)
	}
	return model.PitchClass{Letter: letter, Accidental: acc}, nil
}

func parseAccidentals(s string) (model.Accidental, error) {
	var acc int
	var sharps, flats bool
	for _, r := range s {
		switch r {
		case '#', '♯':
			acc++
			sharps = true
		case 'x':
			acc += 2
			sharps = true
		case 'b', '♭':
			acc--
			flats = true
		case '♮':
		default:
			return 0, errors.Wrapf(errs.ErrInvalidNote, "accidental %q", r)
		}
	}
	if sharps && flats {
		return 0, errors.Wrap(errs.ErrInvalidNote, "mixed sharps and flats")
	}
	a := model.Accidental(acc)
	if !a.Valid() {
		return 0, errors.Wrapf(errs.ErrInvalidNote, "%d accidentals", acc)
	}
	return a, nil
}

// FormatCents renders a deviation the way ParseNote reads it back.
func FormatCents(cents float64) string {
	sign := "+"
	if cents < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%.1fcents", sign, math.Abs(cents))
}

func FormatNote(n model.Note, cents float64, showCents, unicode bool) string {
	s := n.Format(unicode)
	if showCents {
		s += FormatCents(cents)
	}
	return s
}

// IsFrequencyLiteral reports whether s is a decimal number, optionally
// followed by "Hz".
func IsFrequencyLiteral(s string) bool {
	return freqRe.MatchString(trimUnits(s))
}

// ParseFrequency reads a frequency literal; zero and negative values fail
// with ErrInvalidFrequency.
func ParseFrequency(s string) (float64, error) {
	num := trimUnits(s)
	if !freqRe.MatchString(num) {
		return 0, errors.Wrapf(errs.ErrInvalidFrequency, "%q", s)
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || !(f > 0) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(errs.ErrInvalidFrequency, "%q", s)
	}
	return f, nil
}

// FormatFrequency uses precision significant digits, like %g.
func FormatFrequency(f float64, precision int, units bool) string {
	if precision <= 0 {
		precision = constants.DefaultPrecision
	}
	s := strconv.FormatFloat(f, 'g', precision, 64)
	if units {
		s += "Hz"
	}
	return s
}

func trimUnits(s string) string {
	for _, suffix := range []string{"Hz", "hz", "HZ"} {
		if strings.HasSuffix(s, suffix) {
			return s[:len(s)-len(suffix)]
		}
	}
	return s
}
