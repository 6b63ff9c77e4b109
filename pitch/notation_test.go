package pitch

import (
	"testing"

	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/model"
	"github.com/stretchr/testify/assert"
)

func TestParseNote(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		cents float64
	}{
		{"A4", "A4", 0},
		{"a4", "A4", 0},
		{"F#3", "F#3", 0},
		{"F♯3", "F#3", 0},
		{"bb2", "Bb2", 0},
		{"B♭2", "Bb2", 0},
		{"Cx5", "C##5", 0},
		{"Ebb4", "Ebb4", 0},
		{"E♮4", "E4", 0},
		{"G", "G4", 0},
		{"eb", "Eb4", 0},
		{"Ab-1", "Ab-1", 0},
		{"E#-1+3", "E#-1", 3},
		{"F6+21cents", "F6", 21},
		{"A4-12.5c", "A4", -12.5},
		{"C4+0.0cents", "C4", 0},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			n, cents, err := ParseNote(c.in)
			assert.NoError(t, err)
			assert.Equal(t, c.want, n.String())
			assert.InDelta(t, c.cents, cents, 1e-9)
		})
	}
}

func TestParseNoteFailures(t *testing.T) {
	for _, in := range []string{"", "H4", "A#b4", "C###4", "A10", "A-2", "440", "Ab4zz"} {
		t.Run(in, func(t *testing.T) {
			_, _, err := ParseNote(in)
			assert.ErrorIs(t, err, errs.ErrInvalidNote)
		})
	}
}

func TestIsNoteLiteralIgnoresRange(t *testing.T) {
	assert := assert.New(t)
	assert.True(IsNoteLiteral("A10"))
	assert.True(IsNoteLiteral("c#"))
	assert.False(IsNoteLiteral("hello"))
	assert.False(IsNoteLiteral("442.1"))
}

func TestParsePitchClass(t *testing.T) {
	assert := assert.New(t)

	pc, err := ParsePitchClass(" Bb ")
	assert.NoError(err)
	assert.Equal(model.PitchClass{Letter: model.B, Accidental: model.Flat}, pc)

	_, err = ParsePitchClass("Bb4")
	assert.ErrorIs(err, errs.ErrInvalidNote)

	_, err = ParsePitchClass("")
	assert.ErrorIs(err, errs.ErrInvalidNote)
}

func TestFormatNote(t *testing.T) {
	assert := assert.New(t)
	n := note(model.F, model.Sharp, 5)
	assert.Equal("F#5", FormatNote(n, 3.14, false, false))
	assert.Equal("F♯5+3.1cents", FormatNote(n, 3.14, true, true))
	assert.Equal("F#5-0.4cents", FormatNote(n, -0.44, true, false))

	// formatted names parse back to the same note and deviation
	back, cents, err := ParseNote(FormatNote(n, -12.3, true, true))
	assert.NoError(err)
	assert.Equal(n, back)
	assert.InDelta(-12.3, cents, 1e-9)
}

func TestFrequencyLiterals(t *testing.T) {
	assert := assert.New(t)
	for _, s := range []string{"440", "442.1", "+220.", ".5", "1e3", "440Hz", "-5", "0"} {
		assert.True(IsFrequencyLiteral(s), s)
	}
	for _, s := range []string{"A4", "Hz", "4.4.0", "inf", "NaN", ""} {
		assert.False(IsFrequencyLiteral(s), s)
	}

	f, err := ParseFrequency("884Hz")
	assert.NoError(err)
	assert.Equal(884.0, f)

	_, err = ParseFrequency("-5")
	assert.ErrorIs(err, errs.ErrInvalidFrequency)
	_, err = ParseFrequency("0")
	assert.ErrorIs(err, errs.ErrInvalidFrequency)
}

func TestFormatFrequency(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("440", FormatFrequency(440, 4, false))
	assert.Equal("261.6", FormatFrequency(261.6255653, 4, false))
	assert.Equal("261.626Hz", FormatFrequency(261.6255653, 6, true))
	assert.Equal("27.5", FormatFrequency(27.5, 0, false))
}
