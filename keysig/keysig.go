// Package keysig guesses the key signature of a passage from the pitch
// classes that appear in it.
package keysig

import (
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/model"
	"github.com/jsphweid/freqnote/pitch"
	"github.com/jsphweid/freqnote/util"
	"github.com/pkg/errors"
)

// preference is the tie-break order: fewer accidentals first, and flats
// before sharps at equal counts.
var preference = func() []model.KeySignature {
	res := []model.KeySignature{0}
	for n := 1; n <= model.MaxKeyAccidentals; n++ {
		res = append(res, model.KeySignature(-n), model.KeySignature(n))
	}
	return res
}()

type Result struct {
	Key model.KeySignature
	// Matches holds every signature that contains all of the input, in
	// preference order. It is empty when no signature does.
	Matches []model.KeySignature
	// Score is how many distinct input pitch classes Key contains, out of Total.
	Score int
	Total int
}

// Consistent reports whether Key contains every input pitch class.
func (r Result) Consistent() bool {
	return r.Score == r.Total
}

// Infer picks the signature with the fewest accidentals that contains every
// pitch class in pcs, comparing by sounding pitch so that an E# fits a key
// with F. When no signature contains them all, the one containing the most
// wins under the same tie-break.
func Infer(pcs []model.PitchClass) (Result, error) {
	distinct := util.Dedupe(pcs)
	if len(distinct) == 0 {
		return Result{}, errs.ErrEmptyPitchClassSet
	}
	for _, pc := range distinct {
		if !pc.Letter.Valid() || !pc.Accidental.Valid() {
			return Result{}, errors.Wrapf(errs.ErrInvalidNote, "pitch class %v", pc)
		}
	}

	res := Result{Total: len(distinct), Score: -1}
	for _, k := range preference {
		score := Score(k, distinct)
		if score == len(distinct) {
			res.Matches = append(res.Matches, k)
		}
		if score > res.Score {
			res.Key, res.Score = k, score
		}
	}
	return res, nil
}

// Score counts the pitch classes that k contains.
func Score(k model.KeySignature, pcs []model.PitchClass) int {
	var n int
	for _, pc := range pcs {
		if k.Contains(pc) {
			n++
		}
	}
	return n
}

func FromNotes(notes []model.Note) (Result, error) {
	pcs := make([]model.PitchClass, len(notes))
	for i, n := range notes {
		pcs[i] = n.PitchClass
	}
	return Infer(pcs)
}

// FromNames parses note names ("F#", "Bb3", "c+5cents") and infers a key
// from them.
func FromNames(names []string) (Result, error) {
	pcs := make([]model.PitchClass, 0, len(names))
	for _, name := range names {
		n, _, err := pitch.ParseNote(name)
		if err != nil {
			return Result{}, err
		}
		pcs = append(pcs, n.PitchClass)
	}
	return Infer(pcs)
}
