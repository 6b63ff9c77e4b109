package model

import "github.com/jsphweid/freqnote/constants"

type Direction string

const (
	FreqToNote Direction = "f2n"
	NoteToFreq Direction = "n2f"
)

type SpellingPolicy string

const (
	// natural when possible, otherwise one sharp or flat
	SpellingFewest SpellingPolicy = "fewest"
	// spelled as members of Settings.Key
	SpellingKey SpellingPolicy = "key"
	// key inferred from the converted notes, then spelled in it
	SpellingInferred SpellingPolicy = "inferred"
)

// InstrumentSpec describes a transposing instrument not in the preset table.
type InstrumentSpec struct {
	// concert pitch that sounds when a written C is played, e.g. "Bb"
	Key     string `json:"key"`
	Down    bool   `json:"down"`
	Octaves int    `json:"octaves"`
}

// Settings is the context for one conversion run.
type Settings struct {
	// zero means estimate from the block (frequency to note) or use the
	// default (note to frequency)
	Reference  float64         `json:"reference"`
	Direction  Direction       `json:"direction"`
	Instrument string          `json:"instrument"`
	Custom     *InstrumentSpec `json:"custom,omitempty"`

	ShowCents    bool           `json:"show_cents"`
	InferKey     bool           `json:"infer_key"`
	Spelling     SpellingPolicy `json:"spelling"`
	Key          KeySignature   `json:"key"`
	PreferSharps bool           `json:"prefer_sharps"`

	Interleave  bool   `json:"interleave"`
	Unicode     bool   `json:"unicode"`
	Precision   int    `json:"precision"`
	Units       bool   `json:"units"`
	MarkInvalid bool   `json:"mark_invalid"`
	Delimiter   string `json:"delimiter"`
}

func DefaultSettings() Settings {
	return Settings{
		Reference: constants.DefaultReferenceHz,
		Direction: FreqToNote,
		Spelling:  SpellingFewest,
		Precision: constants.DefaultPrecision,
	}
}
