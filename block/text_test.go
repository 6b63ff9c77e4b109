package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoundTrip(t *testing.T) {
	for _, text := range []string{
		"",
		"440",
		"440, 884\n",
		"  442.1,  884 | 220.7 % some comment\r\n\n% header\n\t\n  A4/B4",
		`a\%b % c`,
		",,,\n",
		"\n\n\n",
		"A4 %% two markers\n",
		"220 % trailing\n% only\n",
	} {
		assert.Equal(t, text, Parse(text).String(), "%q", text)
	}
}

func TestParseDataLine(t *testing.T) {
	assert := assert.New(t)
	b := Parse("  442.1,  884 | 220.7 % note\r\n")
	assert.Len(b.Lines, 1)

	l := b.Lines[0]
	assert.Equal(Data, l.Kind)
	assert.Equal("  ", l.Leading)
	assert.Equal([]string{"442.1", "884", "220.7"}, l.Tokens)
	assert.Equal([]string{",  ", " | ", " "}, l.Seps)
	assert.True(l.HasComment)
	assert.Equal(" note", l.Comment)
	assert.Equal("\r\n", l.EOL)
}

func TestParseLineKinds(t *testing.T) {
	assert := assert.New(t)
	b := Parse("\n  \t\n  % header\n440\n,,\n")
	kinds := make([]LineKind, len(b.Lines))
	for i, l := range b.Lines {
		kinds[i] = l.Kind
	}
	assert.Equal([]LineKind{Blank, Blank, CommentOnly, Data, Data}, kinds)
	assert.Empty(b.Lines[4].Tokens)
	assert.Equal(1, b.Tokens())
}

func TestEscapedCommentMarker(t *testing.T) {
	assert := assert.New(t)
	l := Parse(`A4\%x % real`).Lines[0]
	assert.Equal([]string{`A4\%x`}, l.Tokens)
	assert.Equal(" real", l.Comment)
}

func TestContentWithDelimiter(t *testing.T) {
	assert := assert.New(t)
	l := Parse("440,,  880 | 220 % c").Lines[0]
	assert.Equal("A4, A5, A3 % c", l.Content([]string{"A4", "A5", "A3"}, ", "))
	assert.Equal("A4,,  A5 | A3 % c", l.Content([]string{"A4", "A5", "A3"}, ""))

	l = Parse(" % just a comment").Lines[0]
	assert.Equal(" % just a comment", l.Content(nil, ", "))

	l = Parse(",, % lonely").Lines[0]
	assert.Equal("% lonely", l.Content(nil, " "))
}
