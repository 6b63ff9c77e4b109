package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeySignatureAccidentals(t *testing.T) {
	assert := assert.New(t)
	assert.Empty(KeySignature(0).Accidentals())
	assert.Equal([]PitchClass{{F, Sharp}, {C, Sharp}, {G, Sharp}}, KeySignature(3).Accidentals())
	assert.Equal([]PitchClass{{B, Flat}, {E, Flat}}, KeySignature(-2).Accidentals())
	assert.Equal(Sharp, KeySignature(6).AccidentalFor(E))
	assert.Equal(Natural, KeySignature(6).AccidentalFor(B))
	assert.Equal(Flat, KeySignature(-6).AccidentalFor(C))
}

func TestKeySignatureTonics(t *testing.T) {
	cases := []struct {
		k    KeySignature
		name string
	}{
		{0, "C major / A minor"},
		{1, "G major / E minor"},
		{-1, "F major / D minor"},
		{3, "A major / F# minor"},
		{-3, "Eb major / C minor"},
		{6, "F# major / D# minor"},
		{-7, "Cb major / Ab minor"},
		{7, "C# major / A# minor"},
	}
	for _, c := range cases {
		assert.Equal(t, c.name, c.k.Name(false))
	}
	assert.Equal(t, "B♭ major / G minor", KeySignature(-2).Name(true))
}

func TestKeySignatureContains(t *testing.T) {
	assert := assert.New(t)
	assert.True(KeySignature(0).Contains(PitchClass{E, Sharp}))
	assert.True(KeySignature(-5).Contains(PitchClass{F, Sharp}))
	assert.False(KeySignature(0).Contains(PitchClass{F, Sharp}))
	assert.Len(KeySignature(2).Scale(), 7)
}

func TestKeySignatureRange(t *testing.T) {
	assert := assert.New(t)
	all := AllKeySignatures()
	assert.Len(all, 15)
	assert.Equal(KeySignature(-7), all[0])
	assert.Equal(KeySignature(7), all[14])
	assert.False(KeySignature(8).Valid())
	assert.Equal("no accidentals", KeySignature(0).String())
	assert.Equal("1 flat", KeySignature(-1).String())
	assert.Equal("4 sharps", KeySignature(4).String())
}
