package pitch

import "github.com/jsphweid/freqnote/model"

// Speller picks a name for a semitone class (0..11, C = 0). Which spelling
// is right depends on context, so conversions take it as a parameter.
type Speller interface {
	Spell(semitone int) model.PitchClass
}

// FewestAccidentals spells naturals as naturals and everything else with a
// single flat, or a single sharp when PreferSharps is set.
type FewestAccidentals struct {
	PreferSharps bool
}

func (f FewestAccidentals) Spell(semitone int) model.PitchClass {
	if pc, ok := natural(semitone); ok {
		return pc
	}
	if f.PreferSharps {
		pc, _ := natural(semitone - 1)
		pc.Accidental = model.Sharp
		return pc
	}
	pc, _ := natural(semitone + 1)
	pc.Accidental = model.Flat
	return pc
}

// KeySpeller spells scale members the way the key signature does (so E# and
// B# appear in 6 and 7 sharp keys, Cb and Fb in 6 and 7 flat keys) and other
// notes with the key's kind of accidental.
type KeySpeller struct {
	Key model.KeySignature
}

func (k KeySpeller) Spell(semitone int) model.PitchClass {
	for _, pc := range k.Key.Scale() {
		if pc.Semitone() == semitone {
			return pc
		}
	}
	return FewestAccidentals{PreferSharps: k.Key.Sharps()}.Spell(semitone)
}

// SpellerFor returns the speller for a settings policy. The inferred policy
// needs a key first, so it is treated like SpellingKey here.
func SpellerFor(s model.Settings) Speller {
	switch s.Spelling {
	case model.SpellingKey, model.SpellingInferred:
		return KeySpeller{Key: s.Key}
	}
	return FewestAccidentals{PreferSharps: s.PreferSharps}
}

func natural(semitone int) (model.PitchClass, bool) {
	semitone = ((semitone % 12) + 12) % 12
	for l := model.C; l <= model.B; l++ {
		if l.Semitones() == semitone {
			return model.PitchClass{Letter: l}, true
		}
	}
	return model.PitchClass{}, false
}
