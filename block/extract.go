package block

import (
	"github.com/jsphweid/freqnote/model"
	"github.com/jsphweid/freqnote/pitch"
)

// ExtractFrequencies returns the valid frequency tokens of text in order.
func ExtractFrequencies(text string) []float64 {
	var res []float64
	for _, l := range Parse(text).Lines {
		for _, tok := range l.Tokens {
			if !pitch.IsFrequencyLiteral(tok) {
				continue
			}
			if f, err := pitch.ParseFrequency(tok); err == nil {
				res = append(res, f)
			}
		}
	}
	return res
}

// ExtractNotes returns the valid note tokens of text in order.
func ExtractNotes(text string) []model.Note {
	var res []model.Note
	for _, l := range Parse(text).Lines {
		for _, tok := range l.Tokens {
			if !pitch.IsNoteLiteral(tok) {
				continue
			}
			if n, _, err := pitch.ParseNote(tok); err == nil {
				res = append(res, n)
			}
		}
	}
	return res
}

// ExtractPitchClasses is ExtractNotes without octaves, for key inference.
func ExtractPitchClasses(text string) []model.PitchClass {
	notes := ExtractNotes(text)
	res := make([]model.PitchClass, len(notes))
	for i, n := range notes {
		res[i] = n.PitchClass
	}
	return res
}
