package model

import "fmt"

// KeySignature counts sharps when positive and flats when negative, so a
// single value can never mix the two kinds. Zero is the key of C / A minor.
type KeySignature int

const MaxKeyAccidentals = 7

var (
	sharpOrder = [7]Letter{F, C, G, D, A, E, B}
	flatOrder  = [7]Letter{B, E, A, D, G, C, F}
)

// AllKeySignatures lists the 15 standard signatures from 7 flats to 7 sharps.
func AllKeySignatures() []KeySignature {
	res := make([]KeySignature, 0, 2*MaxKeyAccidentals+1)
	for k := -MaxKeyAccidentals; k <= MaxKeyAccidentals; k++ {
		res = append(res, KeySignature(k))
	}
	return res
}

func (k KeySignature) Valid() bool {
	return k >= -MaxKeyAccidentals && k <= MaxKeyAccidentals
}

// Count is the number of accidentals in the signature.
func (k KeySignature) Count() int {
	if k < 0 {
		return int(-k)
	}
	return int(k)
}

func (k KeySignature) Sharps() bool { return k > 0 }

func (k KeySignature) Flats() bool { return k < 0 }

// Accidentals lists the signature's accidentals in circle-of-fifths order.
func (k KeySignature) Accidentals() []PitchClass {
	res := make([]PitchClass, 0, k.Count())
	for i := 0; i < k.Count(); i++ {
		if k > 0 {
			res = append(res, PitchClass{Letter: sharpOrder[i], Accidental: Sharp})
		} else {
			res = append(res, PitchClass{Letter: flatOrder[i], Accidental: Flat})
		}
	}
	return res
}

// AccidentalFor returns the accidental the signature applies to a letter.
func (k KeySignature) AccidentalFor(l Letter) Accidental {
	order, acc := sharpOrder, Sharp
	if k < 0 {
		order, acc = flatOrder, Flat
	}
	for i := 0; i < k.Count(); i++ {
		if order[i] == l {
			return acc
		}
	}
	return Natural
}

// Scale returns the seven in-key spellings, starting from C.
func (k KeySignature) Scale() []PitchClass {
	res := make([]PitchClass, 0, 7)
	for l := C; l <= B; l++ {
		res = append(res, PitchClass{Letter: l, Accidental: k.AccidentalFor(l)})
	}
	return res
}

// Contains reports whether some in-key spelling has the same semitone class.
func (k KeySignature) Contains(pc PitchClass) bool {
	for _, s := range k.Scale() {
		if s.Enharmonic(pc) {
			return true
		}
	}
	return false
}

// MajorTonic walks the circle of fifths from C.
func (k KeySignature) MajorTonic() PitchClass {
	l := Letter(((4*int(k))%7 + 7) % 7)
	return PitchClass{Letter: l, Accidental: k.AccidentalFor(l)}
}

func (k KeySignature) MinorTonic() PitchClass {
	l := (k.MajorTonic().Letter + 5) % 7
	return PitchClass{Letter: l, Accidental: k.AccidentalFor(l)}
}

// Name is e.g. "A major / F# minor".
func (k KeySignature) Name(unicode bool) string {
	return fmt.Sprintf("%s major / %s minor", k.MajorTonic().Format(unicode), k.MinorTonic().Format(unicode))
}

func (k KeySignature) String() string {
	switch {
	case k == 0:
		return "no accidentals"
	case k == 1:
		return "1 sharp"
	case k == -1:
		return "1 flat"
	case k > 0:
		return fmt.Sprintf("%d sharps", k.Count())
	}
	return fmt.Sprintf("%d flats", k.Count())
}
