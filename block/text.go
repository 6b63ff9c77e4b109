// Package block parses free-form text blocks of frequencies and note names,
// converts their tokens and writes them back with the block's layout intact.
package block

import (
	"strings"

	"github.com/jsphweid/freqnote/constants"
)

type LineKind int

const (
	Blank LineKind = iota
	CommentOnly
	Data
)

// Line keeps everything needed to write a line back byte for byte.
// For a data line the content is Leading, then each token followed by its
// separator run, then "%" and Comment when HasComment is set.
type Line struct {
	Kind LineKind
	// Raw is the line text without its line ending.
	Raw        string
	Leading    string
	Tokens     []string
	Seps       []string
	Comment    string
	HasComment bool
	EOL        string
}

type TextBlock struct {
	Lines []Line
}

// Parse splits text into lines and data lines into tokens. It never fails:
// anything that is not a delimiter is a token.
func Parse(text string) *TextBlock {
	b := &TextBlock{}
	for len(text) > 0 {
		raw, eol := text, ""
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			raw, eol, text = text[:i], "\n", text[i+1:]
		} else {
			text = ""
		}
		if strings.HasSuffix(raw, "\r") {
			raw, eol = raw[:len(raw)-1], "\r"+eol
		}
		b.Lines = append(b.Lines, parseLine(raw, eol))
	}
	return b
}

func parseLine(raw, eol string) Line {
	l := Line{Raw: raw, EOL: eol}
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		l.Kind = Blank
		return l
	case trimmed[0] == constants.CommentMarker:
		l.Kind = CommentOnly
		return l
	}

	l.Kind = Data
	content := raw
	if i := commentIndex(raw); i >= 0 {
		content, l.Comment, l.HasComment = raw[:i], raw[i+1:], true
	}
	l.Leading, l.Tokens, l.Seps = tokenize(content)
	return l
}

// commentIndex finds the first comment marker not escaped with a backslash.
func commentIndex(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != constants.CommentMarker {
			continue
		}
		if i > 0 && s[i-1] == '\\' {
			continue
		}
		return i
	}
	return -1
}

func isDelimiter(r rune) bool {
	return strings.ContainsRune(constants.Delimiters, r)
}

func tokenize(s string) (leading string, tokens, seps []string) {
	start := strings.IndexFunc(s, func(r rune) bool { return !isDelimiter(r) })
	if start < 0 {
		return s, nil, nil
	}
	leading, s = s[:start], s[start:]
	for len(s) > 0 {
		end := strings.IndexFunc(s, isDelimiter)
		if end < 0 {
			end = len(s)
		}
		tokens = append(tokens, s[:end])
		s = s[end:]
		next := strings.IndexFunc(s, func(r rune) bool { return !isDelimiter(r) })
		if next < 0 {
			next = len(s)
		}
		seps = append(seps, s[:next])
		s = s[next:]
	}
	return leading, tokens, seps
}

// Content rebuilds the line with tokens in place of the originals, which
// must have the same length. An empty delim keeps the original separators;
// otherwise tokens are joined with delim and a comment follows after a space.
func (l Line) Content(tokens []string, delim string) string {
	if l.Kind != Data {
		return l.Raw
	}
	var sb strings.Builder
	if delim == "" {
		sb.WriteString(l.Leading)
		for i, t := range tokens {
			sb.WriteString(t)
			sb.WriteString(l.Seps[i])
		}
		if l.HasComment {
			sb.WriteByte(constants.CommentMarker)
			sb.WriteString(l.Comment)
		}
		return sb.String()
	}
	sb.WriteString(strings.Join(tokens, delim))
	if l.HasComment {
		if len(tokens) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(constants.CommentMarker)
		sb.WriteString(l.Comment)
	}
	return sb.String()
}

func (l Line) String() string {
	return l.Content(l.Tokens, "") + l.EOL
}

// String writes the block back exactly as it was parsed.
func (b *TextBlock) String() string {
	var sb strings.Builder
	for _, l := range b.Lines {
		sb.WriteString(l.String())
	}
	return sb.String()
}

// Tokens counts the tokens on data lines.
func (b *TextBlock) Tokens() int {
	var n int
	for _, l := range b.Lines {
		n += len(l.Tokens)
	}
	return n
}
