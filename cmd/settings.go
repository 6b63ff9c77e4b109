package cmd

import (
	"github.com/jsphweid/freqnote/constants"
	"github.com/jsphweid/freqnote/model"
	"github.com/spf13/cobra"
)

// settingsFlags are the conversion flags shared by convert, key, report and
// paste.
type settingsFlags struct {
	reference     float64
	auto          bool
	direction     string
	instrument    string
	customKey     string
	customUp      bool
	customOctaves int
	cents         bool
	inferKey      bool
	spelling      string
	key           int
	sharps        bool
	interleave    bool
	unicode       bool
	precision     int
	units         bool
	mark          bool
	delimiter     string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64VarP(&f.reference, "reference", "r", constants.DefaultReferenceHz, "frequency of A4 in Hz")
	fs.BoolVar(&f.auto, "auto", false, "estimate the reference from the block's frequencies")
	fs.StringVarP(&f.direction, "direction", "d", string(model.FreqToNote), "f2n (frequencies to notes) or n2f")
	fs.StringVarP(&f.instrument, "instrument", "i", "", "transposing instrument, see 'freqnote instruments'")
	fs.StringVar(&f.customKey, "custom-key", "", "custom instrument: concert pitch sounded by a written C")
	fs.BoolVar(&f.customUp, "custom-up", false, "custom instrument sounds above the written note")
	fs.IntVar(&f.customOctaves, "custom-octaves", 0, "custom instrument: extra octaves of transposition")
	fs.BoolVar(&f.cents, "cents", false, "append the cents deviation to note names")
	fs.BoolVar(&f.inferKey, "key-infer", false, "guess the key signature of the notes")
	fs.StringVar(&f.spelling, "spelling", string(model.SpellingFewest), "fewest, key or inferred")
	fs.IntVar(&f.key, "key", 0, "key signature for --spelling key: sharps positive, flats negative")
	fs.BoolVar(&f.sharps, "sharps", false, "spell black keys with sharps")
	fs.BoolVar(&f.interleave, "interleave", false, "keep each line and add its conversion below it")
	fs.BoolVar(&f.unicode, "unicode", false, "write ♯ and ♭")
	fs.IntVar(&f.precision, "precision", constants.DefaultPrecision, "significant digits of frequencies")
	fs.BoolVar(&f.units, "units", false, "append Hz to frequencies")
	fs.BoolVar(&f.mark, "mark", false, "prefix unconverted tokens with ?")
	fs.StringVar(&f.delimiter, "delimiter", "", "join tokens with this instead of keeping the original separators")
}

func (f *settingsFlags) settings() model.Settings {
	s := model.Settings{
		Reference:    f.reference,
		Direction:    model.Direction(f.direction),
		Instrument:   f.instrument,
		ShowCents:    f.cents,
		InferKey:     f.inferKey,
		Spelling:     model.SpellingPolicy(f.spelling),
		Key:          model.KeySignature(f.key),
		PreferSharps: f.sharps,
		Interleave:   f.interleave,
		Unicode:      f.unicode,
		Precision:    f.precision,
		Units:        f.units,
		MarkInvalid:  f.mark,
		Delimiter:    f.delimiter,
	}
	if f.auto {
		s.Reference = 0
	}
	if f.customKey != "" {
		s.Custom = &model.InstrumentSpec{Key: f.customKey, Down: !f.customUp, Octaves: f.customOctaves}
	}
	return s
}
