package pitch

import (
	"fmt"
	"math"
	"testing"

	"github.com/jsphweid/freqnote/constants"
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(l model.Letter, a model.Accidental, octave int) model.Note {
	return model.Note{PitchClass: model.PitchClass{Letter: l, Accidental: a}, Octave: octave}
}

func TestNoteToFrequencyKnownValues(t *testing.T) {
	cases := []struct {
		n    model.Note
		ref  float64
		want float64
	}{
		{note(model.A, model.Natural, 4), 440, 440},
		{note(model.A, model.Natural, 5), 440, 880},
		{note(model.A, model.Natural, 3), 442, 221},
		{note(model.C, model.Natural, 4), 440, 261.6255653},
		{note(model.B, model.Sharp, 3), 440, 261.6255653},
		{note(model.C, model.Flat, 5), 440, 493.8833013},
		{note(model.C, model.Natural, -1), 440, 8.1757989},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%v@%v", c.n, c.ref), func(t *testing.T) {
			got, err := NoteToFrequency(c.n, c.ref)
			require.NoError(t, err)
			assert.InDelta(t, c.want, got, 1e-6)
		})
	}
}

func TestNoteToFrequencyRejectsOutOfRange(t *testing.T) {
	assert := assert.New(t)

	_, err := NoteToFrequency(note(model.C, model.Natural, constants.MaxOctave+1), 440)
	assert.ErrorIs(err, errs.ErrInvalidNote)

	_, err = NoteToFrequency(note(model.C, model.Accidental(3), 4), 440)
	assert.ErrorIs(err, errs.ErrInvalidNote)

	_, err = NoteToFrequency(note(model.Letter(9), model.Natural, 4), 440)
	assert.ErrorIs(err, errs.ErrInvalidNote)

	_, err = NoteToFrequency(note(model.A, model.Natural, 4), 0)
	assert.ErrorIs(err, errs.ErrInvalidFrequency)
}

func TestFrequencyToNoteRejectsNonPositive(t *testing.T) {
	for _, f := range []float64{0, -440, math.NaN(), math.Inf(1)} {
		_, _, err := FrequencyToNote(f, 440, FewestAccidentals{})
		assert.ErrorIs(t, err, errs.ErrInvalidFrequency, "freq %v", f)
	}
	_, _, err := FrequencyToNote(1e-3, 440, FewestAccidentals{})
	assert.ErrorIs(t, err, errs.ErrInvalidFrequency)
}

func TestFrequencyToNoteCents(t *testing.T) {
	assert := assert.New(t)

	n, cents, err := FrequencyToNote(442.1, 440, FewestAccidentals{})
	assert.NoError(err)
	assert.Equal("A4", n.String())
	assert.InDelta(8.24, cents, 0.01)

	n, cents, err = FrequencyToNote(430, 440, FewestAccidentals{})
	assert.NoError(err)
	assert.Equal("A4", n.String())
	assert.Less(cents, 0.0)
	assert.LessOrEqual(math.Abs(cents), 50.0)
}

func TestRoundingAtFiftyCentsGoesUp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1.0, roundHalfUp(0.5))
	assert.Equal(0.0, roundHalfUp(-0.5))
	assert.Equal(3.0, roundHalfUp(2.5))
	assert.Equal(-2.0, roundHalfUp(-2.5))

	// a hair above halfway still reports a deviation within 50 cents
	f := 440 * math.Exp2(0.5001/12)
	k, cents, err := Nearest(f, 440)
	assert.NoError(err)
	assert.Equal(1, k)
	assert.InDelta(-49.99, cents, 1e-6)
}

func TestRoundTripAllNotes(t *testing.T) {
	spellers := []Speller{
		FewestAccidentals{},
		FewestAccidentals{PreferSharps: true},
		KeySpeller{Key: 7},
		KeySpeller{Key: -7},
	}
	for _, ref := range []float64{415, 440, 442, 466.16} {
		for octave := constants.MinOctave + 1; octave < constants.MaxOctave; octave++ {
			for l := model.C; l <= model.B; l++ {
				for a := model.DoubleFlat; a <= model.DoubleSharp; a++ {
					n := note(l, a, octave)
					f, err := NoteToFrequency(n, ref)
					require.NoError(t, err)
					for _, sp := range spellers {
						got, cents, err := FrequencyToNote(f, ref, sp)
						require.NoError(t, err)
						assert.True(t, got.Enharmonic(n), "%v -> %v Hz -> %v", n, f, got)
						assert.InDelta(t, 0, cents, 1e-6)
					}
				}
			}
		}
	}
}

func TestFrequencyIsMonotonic(t *testing.T) {
	prev := 0.0
	for k := -57; k <= 62; k++ {
		n, err := FromSemitones(k, FewestAccidentals{})
		require.NoError(t, err)
		f, err := NoteToFrequency(n, 440)
		require.NoError(t, err)
		assert.Greater(t, f, prev)
		prev = f
	}
}

func TestFromSemitonesCarriesOctaveForEdgeSpellings(t *testing.T) {
	assert := assert.New(t)

	// C4 spelled in C# major is B#3
	n, err := FromSemitones(-9, KeySpeller{Key: 7})
	assert.NoError(err)
	assert.Equal("B#3", n.String())

	// B3 spelled in Cb major is Cb4
	n, err = FromSemitones(-10, KeySpeller{Key: -7})
	assert.NoError(err)
	assert.Equal("Cb4", n.String())
}

func TestSpellers(t *testing.T) {
	names := func(sp Speller) []string {
		var res []string
		for s := 0; s < 12; s++ {
			res = append(res, sp.Spell(s).String())
		}
		return res
	}

	assert := assert.New(t)
	assert.Equal([]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}, names(FewestAccidentals{}))
	assert.Equal([]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}, names(FewestAccidentals{PreferSharps: true}))
	// A major: in-key sharps, out-of-key notes sharp
	assert.Equal([]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}, names(KeySpeller{Key: 3}))
	// Gb major uses Cb
	assert.Equal("Cb", KeySpeller{Key: -6}.Spell(11).String())
	// F# major uses E#
	assert.Equal("E#", KeySpeller{Key: 6}.Spell(5).String())
}

func TestSpellerFor(t *testing.T) {
	s := model.DefaultSettings()
	assert.Equal(t, FewestAccidentals{}, SpellerFor(s))

	s.Spelling = model.SpellingKey
	s.Key = -2
	assert.Equal(t, KeySpeller{Key: -2}, SpellerFor(s))
}
