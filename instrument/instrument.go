// Package instrument maps notes between concert pitch and the written pitch
// of transposing instruments.
package instrument

import (
	"strings"

	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/model"
	"github.com/jsphweid/freqnote/pitch"
	"github.com/jsphweid/freqnote/util"
	"github.com/pkg/errors"
)

const ConcertPitch = "Concert Pitch"

// Instrument is described the way players name them: Key is the concert
// pitch that sounds when a written C is played, Down tells whether it sounds
// below the written note, and Octaves adds whole octaves in that direction.
type Instrument struct {
	Name    string
	Key     model.PitchClass
	Down    bool
	Octaves int
}

// sounding returns the letter steps and semitones from written to concert pitch.
func (i Instrument) sounding() (steps, semitones int) {
	key := i.Key
	raw := key.Letter.Semitones() + int(key.Accidental)
	if raw < 0 || raw > 11 {
		// Cb and B# are treated as B and C
		key = pitch.FewestAccidentals{}.Spell(util.Mod(raw, 12))
		raw = key.Semitone()
	}
	steps, semitones = int(key.Letter), raw
	if i.Down {
		if semitones > 0 {
			steps -= 7
			semitones -= 12
		}
		return steps - 7*i.Octaves, semitones - 12*i.Octaves
	}
	return steps + 7*i.Octaves, semitones + 12*i.Octaves
}

// Offset is the signed number of semitones added to concert pitch to get
// written pitch.
func (i Instrument) Offset() int {
	_, s := i.sounding()
	return -s
}

// Semitones is the part of Offset within one octave.
func (i Instrument) Semitones() int {
	return i.Offset() - 12*i.OctaveOffset()
}

// OctaveOffset is the whole-octave part of Offset, truncated toward zero.
func (i Instrument) OctaveOffset() int {
	return i.Offset() / 12
}

func (i Instrument) IsConcert() bool {
	return i.Offset() == 0
}

// ToWritten transposes a concert-pitch note to the instrument's written
// pitch, moving the letter by the interval so that ToConcert undoes it.
func (i Instrument) ToWritten(n model.Note) (model.Note, error) {
	steps, semis := i.sounding()
	return transpose(n, -steps, -semis)
}

// ToConcert transposes a written note to the pitch that actually sounds.
func (i Instrument) ToConcert(n model.Note) (model.Note, error) {
	steps, semis := i.sounding()
	return transpose(n, steps, semis)
}

func transpose(n model.Note, steps, semis int) (model.Note, error) {
	if err := pitch.Validate(n); err != nil {
		return model.Note{}, err
	}
	letter := int(n.Letter) + steps
	res := model.Note{
		PitchClass: model.PitchClass{Letter: model.Letter(util.Mod(letter, 7))},
		Octave:     n.Octave + util.FloorDiv(letter, 7),
	}
	target := n.SemitonesFromA4() + semis
	acc := model.Accidental(target - (res.SemitonesFromA4()))
	if !acc.Valid() {
		return model.Note{}, errors.Wrapf(errs.ErrInvalidNote, "transposing %v needs a triple accidental", n)
	}
	res.Accidental = acc
	if err := pitch.Validate(res); err != nil {
		return model.Note{}, errors.Wrapf(err, "transposing %v", n)
	}
	return res, nil
}

// Custom builds an instrument outside the preset table, e.g. ("Bb", true, 1)
// for a tenor saxophone.
func Custom(key string, down bool, octaves int) (Instrument, error) {
	pc, err := pitch.ParsePitchClass(key)
	if err != nil {
		return Instrument{}, errors.Wrap(err, "custom instrument key")
	}
	if octaves < 0 {
		return Instrument{}, errors.Wrapf(errs.ErrInvalidSettings, "negative octave shift %d", octaves)
	}
	return Instrument{Name: "Custom", Key: pc, Down: down, Octaves: octaves}, nil
}

// Resolve picks the instrument a settings context asks for: a custom
// description wins over a name, and an empty name is concert pitch.
func Resolve(s model.Settings) (Instrument, error) {
	if s.Custom != nil {
		return Custom(s.Custom.Key, s.Custom.Down, s.Custom.Octaves)
	}
	return Lookup(s.Instrument)
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
