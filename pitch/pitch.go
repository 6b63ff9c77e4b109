// Package pitch converts between frequencies and notes in twelve-tone equal
// temperament under an arbitrary reference tuning for A4.
//
//	freq = reference * 2^(k/12 + c/1200)
//
// where k is the number of semitones from A4 and c the deviation in cents.
package pitch

import (
	"math"

	"github.com/jsphweid/freqnote/constants"
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/model"
	"github.com/jsphweid/freqnote/util"
	"github.com/pkg/errors"
)

// semitones from C0 up to A4
const a4FromC0 = 57

// Validate checks letter, accidental and octave against the supported range.
func Validate(n model.Note) error {
	if !n.Letter.Valid() {
		return errors.Wrapf(errs.ErrInvalidNote, "letter %d", int(n.Letter))
	}
	if !n.Accidental.Valid() {
		return errors.Wrapf(errs.ErrInvalidNote, "accidental %d", int(n.Accidental))
	}
	if n.Octave < constants.MinOctave || n.Octave > constants.MaxOctave {
		return errors.Wrapf(errs.ErrInvalidNote, "octave %d outside %d..%d", n.Octave, constants.MinOctave, constants.MaxOctave)
	}
	return nil
}

func validateReference(reference float64) error {
	if !(reference > 0) || math.IsInf(reference, 0) {
		return errors.Wrapf(errs.ErrInvalidFrequency, "reference %v", reference)
	}
	return nil
}

// NoteToFrequency returns the exact frequency of n.
func NoteToFrequency(n model.Note, reference float64) (float64, error) {
	if err := Validate(n); err != nil {
		return 0, err
	}
	if err := validateReference(reference); err != nil {
		return 0, err
	}
	return reference * math.Exp2(float64(n.SemitonesFromA4())/12), nil
}

// Nearest returns the whole number of semitones between the reference note
// and the note nearest to freq, plus the residual in cents. A frequency
// exactly halfway between two notes rounds up.
func Nearest(freq, reference float64) (int, float64, error) {
	if !(freq > 0) || math.IsInf(freq, 0) {
		return 0, 0, errors.Wrapf(errs.ErrInvalidFrequency, "%v Hz", freq)
	}
	if err := validateReference(reference); err != nil {
		return 0, 0, err
	}
	x := 12 * math.Log2(freq/reference)
	k := roundHalfUp(x)
	return int(k), 100 * (x - k), nil
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Cents is the deviation of freq from its nearest note.
func Cents(freq, reference float64) (float64, error) {
	_, c, err := Nearest(freq, reference)
	return c, err
}

// FromSemitones spells the note k semitones from A4. The octave follows the
// chosen letter, so a B# spelling lands in the octave below the C it sounds.
func FromSemitones(k int, sp Speller) (model.Note, error) {
	abs := k + a4FromC0
	pc := sp.Spell(util.Mod(abs, 12))
	n := model.Note{
		PitchClass: pc,
		Octave:     util.FloorDiv(abs-pc.Letter.Semitones()-int(pc.Accidental), 12),
	}
	return n, Validate(n)
}

// FrequencyToNote returns the note nearest to freq and its deviation in cents.
func FrequencyToNote(freq, reference float64, sp Speller) (model.Note, float64, error) {
	k, cents, err := Nearest(freq, reference)
	if err != nil {
		return model.Note{}, 0, err
	}
	n, err := FromSemitones(k, sp)
	if err != nil {
		return model.Note{}, 0, errors.Wrapf(errs.ErrInvalidFrequency, "%v Hz is outside the supported range", freq)
	}
	return n, cents, nil
}
