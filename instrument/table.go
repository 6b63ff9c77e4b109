package instrument

import (
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/model"
	"github.com/jsphweid/freqnote/util"
	"github.com/pkg/errors"
)

func pc(l model.Letter, a model.Accidental) model.PitchClass {
	return model.PitchClass{Letter: l, Accidental: a}
}

var (
	keyC  = pc(model.C, model.Natural)
	keyDb = pc(model.D, model.Flat)
	keyEb = pc(model.E, model.Flat)
	keyF  = pc(model.F, model.Natural)
	keyG  = pc(model.G, model.Natural)
	keyA  = pc(model.A, model.Natural)
	keyBb = pc(model.B, model.Flat)
)

var presets = []Instrument{
	{Name: ConcertPitch, Key: keyC, Down: true},
	{Name: "Alto Clarinet in Eb", Key: keyEb, Down: true},
	{Name: "Alto Flute", Key: keyG, Down: true},
	{Name: "Alto Saxophone", Key: keyEb, Down: true},
	{Name: "Baritone Saxophone", Key: keyEb, Down: true, Octaves: 1},
	{Name: "Bass Clarinet in Bb", Key: keyBb, Down: true, Octaves: 1},
	{Name: "Bass Flute", Key: keyC, Down: true, Octaves: 1},
	{Name: "Bassoon", Key: keyC, Down: true},
	{Name: "Clarinet in A", Key: keyA, Down: true},
	{Name: "Clarinet in Bb", Key: keyBb, Down: true},
	{Name: "Clarinet in Eb", Key: keyEb},
	{Name: "Contrabass (String)", Key: keyC, Down: true, Octaves: 1},
	{Name: "Contrabass Flute", Key: keyC, Down: true, Octaves: 2},
	{Name: "Contrabassoon", Key: keyC, Down: true, Octaves: 1},
	{Name: "English Horn", Key: keyF, Down: true},
	{Name: "Euphonium (Treble Clef)", Key: keyBb, Down: true, Octaves: 2},
	{Name: "Flute", Key: keyC, Down: true},
	{Name: "French Horn", Key: keyF, Down: true},
	{Name: "Glockenspiel", Key: keyC, Octaves: 2},
	{Name: "Marimba", Key: keyC, Down: true},
	{Name: "Oboe", Key: keyC, Down: true},
	{Name: "Piano", Key: keyC, Down: true},
	{Name: "Piccolo in C", Key: keyC, Octaves: 1},
	{Name: "Piccolo in Db", Key: keyDb, Octaves: 1},
	{Name: "Soprano Saxophone", Key: keyBb, Down: true},
	{Name: "Tenor Saxophone", Key: keyBb, Down: true, Octaves: 1},
	{Name: "Trombone", Key: keyC, Down: true},
	{Name: "Trumpet in Bb", Key: keyBb, Down: true},
	{Name: "Tuba", Key: keyC, Down: true},
	{Name: "Violin", Key: keyC, Down: true},
	{Name: "Viola", Key: keyC, Down: true},
	{Name: "Violoncello", Key: keyC, Down: true},
	{Name: "Xylophone", Key: keyC, Octaves: 1},
}

var byName = func() map[string]Instrument {
	m := make(map[string]Instrument, len(presets))
	for _, i := range presets {
		m[normalize(i.Name)] = i
	}
	// aliases
	m["concert"] = presets[0]
	m["none"] = presets[0]
	return m
}()

// Lookup finds a preset by name, ignoring case and extra whitespace. An
// empty name is concert pitch.
func Lookup(name string) (Instrument, error) {
	n := normalize(name)
	if n == "" {
		return presets[0], nil
	}
	i, ok := byName[n]
	if !ok {
		return Instrument{}, errors.Wrapf(errs.ErrUnknownInstrument, "%q", name)
	}
	return i, nil
}

// Names lists the preset names in alphabetical order.
func Names() []string {
	m := make(map[string]bool, len(presets))
	for _, i := range presets {
		m[i.Name] = true
	}
	return util.GetKeysSorted(m)
}

// All returns the presets ordered by name.
func All() []Instrument {
	res := make([]Instrument, 0, len(presets))
	for _, name := range Names() {
		i, _ := Lookup(name)
		res = append(res, i)
	}
	return res
}
