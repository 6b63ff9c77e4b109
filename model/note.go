package model

import (
	"fmt"
	"strings"
)

// Letter is a note letter, C through B.
type Letter int

const (
	C Letter = iota
	D
	E
	F
	G
	A
	B
)

const letterNames = "CDEFGAB"

// semitones above C for each natural letter
var letterSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

func (l Letter) Valid() bool {
	return l >= C && l <= B
}

func (l Letter) Semitones() int {
	return letterSemitones[l]
}

func (l Letter) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Letter(%d)", int(l))
	}
	return letterNames[l : l+1]
}

// LetterFromRune accepts upper- and lowercase letters.
func LetterFromRune(r rune) (Letter, bool) {
	i := strings.IndexRune(letterNames, r)
	if i < 0 {
		i = strings.IndexRune(strings.ToLower(letterNames), r)
	}
	if i < 0 {
		return 0, false
	}
	return Letter(i), true
}

// Accidental is the signed number of semitones a letter is raised by.
type Accidental int

const (
	DoubleFlat  Accidental = -2
	Flat        Accidental = -1
	Natural     Accidental = 0
	Sharp       Accidental = 1
	DoubleSharp Accidental = 2
)

func (a Accidental) Valid() bool {
	return a >= DoubleFlat && a <= DoubleSharp
}

func (a Accidental) Symbol(unicode bool) string {
	switch {
	case a > 0 && unicode:
		return strings.Repeat("♯", int(a))
	case a > 0:
		return strings.Repeat("#", int(a))
	case a < 0 && unicode:
		return strings.Repeat("♭", int(-a))
	case a < 0:
		return strings.Repeat("b", int(-a))
	}
	return ""
}

// PitchClass is an octave-independent spelled note, e.g. F# or Bb.
type PitchClass struct {
	Letter     Letter     `json:"letter"`
	Accidental Accidental `json:"accidental"`
}

// Semitone returns the equal-tempered class 0..11, C = 0.
func (pc PitchClass) Semitone() int {
	s := (pc.Letter.Semitones() + int(pc.Accidental)) % 12
	if s < 0 {
		s += 12
	}
	return s
}

// Enharmonic reports whether both spellings denote the same semitone class.
func (pc PitchClass) Enharmonic(other PitchClass) bool {
	return pc.Semitone() == other.Semitone()
}

func (pc PitchClass) Format(unicode bool) string {
	return pc.Letter.String() + pc.Accidental.Symbol(unicode)
}

func (pc PitchClass) String() string {
	return pc.Format(false)
}

// Note is a pitch class in scientific pitch notation; the octave number
// increments at C, so B#3 sounds the same as C4.
type Note struct {
	PitchClass
	Octave int `json:"octave"`
}

// SemitonesFromA4 is the signed semitone distance from A4.
func (n Note) SemitonesFromA4() int {
	return 12*(n.Octave-4) + n.Letter.Semitones() + int(n.Accidental) - 9
}

func (n Note) Enharmonic(other Note) bool {
	return n.SemitonesFromA4() == other.SemitonesFromA4()
}

func (n Note) Format(unicode bool) string {
	return fmt.Sprintf("%s%d", n.PitchClass.Format(unicode), n.Octave)
}

func (n Note) String() string {
	return n.Format(false)
}
