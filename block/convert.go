package block

import (
	"context"
	"fmt"
	"math"

	"github.com/jsphweid/freqnote/constants"
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/instrument"
	"github.com/jsphweid/freqnote/keysig"
	"github.com/jsphweid/freqnote/logging"
	"github.com/jsphweid/freqnote/model"
	"github.com/jsphweid/freqnote/pitch"
	"github.com/jsphweid/freqnote/tuning"
	"github.com/pkg/errors"
)

type TokenKind int

const (
	Unrecognized TokenKind = iota
	FrequencyToken
	NoteToken
)

func (k TokenKind) String() string {
	switch k {
	case FrequencyToken:
		return "frequency"
	case NoteToken:
		return "note"
	}
	return "unrecognized"
}

// Token is one data-line token and what became of it.
type Token struct {
	Line  int // 1-based
	Index int // 0-based within the line
	Raw   string
	Kind  TokenKind
	// Frequency is the parsed or computed frequency, Note the parsed or
	// computed written note and Cents its deviation. Which are set depends
	// on Kind and the conversion direction.
	Frequency float64
	Note      model.Note
	Cents     float64
	HasNote   bool
	Converted bool
	Output    string
	Err       error
}

// Issue is a token left unconverted.
type Issue struct {
	Line  int
	Token int
	Raw   string
	Err   error
}

func (i Issue) Error() string {
	return fmt.Sprintf("line %d token %d %q: %v", i.Line, i.Token+1, i.Raw, i.Err)
}

type Result struct {
	Text  string
	Block *TextBlock
	// Reference is the A4 frequency used; Estimated is set when it came from
	// the block itself, with Tuning holding the estimate.
	Reference float64
	Estimated bool
	Tuning    *tuning.Result
	Key       *keysig.Result
	Tokens    []Token
	Issues    []Issue
	// Frequencies and Notes list every valid frequency and written note in
	// the block, in order, whether given or computed.
	Frequencies []float64
	Notes       []model.Note
}

type converter struct {
	s      model.Settings
	inst   instrument.Instrument
	block  *TextBlock
	tokens [][]*Token
	res    *Result
	log    logging.Logger
}

// Convert converts every token of text in the direction s asks for and
// writes the block back. Tokens that cannot be converted are left in place
// and listed in Result.Issues; only run-level problems return an error.
func Convert(ctx context.Context, text string, s model.Settings) (*Result, error) {
	if err := checkSettings(&s); err != nil {
		return nil, err
	}
	inst, err := instrument.Resolve(s)
	if err != nil {
		name := s.Instrument
		if s.Custom != nil {
			name = s.Custom.Key
		}
		return nil, errs.Op("resolve_instrument", name, err)
	}

	c := &converter{
		s:     s,
		inst:  inst,
		block: Parse(text),
		log:   logging.WithContext(ctx).WithFields(logging.Fields{"direction": string(s.Direction)}),
	}
	c.res = &Result{Block: c.block}
	if err := c.classify(ctx); err != nil {
		return nil, err
	}

	switch s.Direction {
	case model.FreqToNote:
		err = c.freqsToNotes()
	case model.NoteToFreq:
		err = c.notesToFreqs()
	}
	if err != nil {
		return nil, err
	}
	c.collect()

	if s.InferKey && c.res.Key == nil {
		key, err := keysig.FromNotes(c.res.Notes)
		if err != nil {
			return nil, errs.Op("infer_key", fmt.Sprintf("%d notes", len(c.res.Notes)), err)
		}
		c.res.Key = &key
		c.log.Debug("inferred key", logging.Fields{"key": key.Key.Name(false), "score": key.Score, "total": key.Total})
	}

	if err := c.render(ctx); err != nil {
		return nil, err
	}
	c.log.Debug("converted block", logging.Fields{
		"lines":  len(c.block.Lines),
		"tokens": len(c.res.Tokens),
		"issues": len(c.res.Issues),
	})
	return c.res, nil
}

func checkSettings(s *model.Settings) error {
	if s.Direction == "" {
		s.Direction = model.FreqToNote
	}
	if s.Direction != model.FreqToNote && s.Direction != model.NoteToFreq {
		return errs.Op("convert", s.Direction, errors.Wrap(errs.ErrInvalidSettings, "direction"))
	}
	switch s.Spelling {
	case "":
		s.Spelling = model.SpellingFewest
	case model.SpellingFewest, model.SpellingKey, model.SpellingInferred:
	default:
		return errs.Op("convert", s.Spelling, errors.Wrap(errs.ErrInvalidSettings, "spelling"))
	}
	if !s.Key.Valid() {
		return errs.Op("convert", int(s.Key), errors.Wrap(errs.ErrInvalidSettings, "key signature"))
	}
	if s.Reference < 0 || math.IsNaN(s.Reference) || math.IsInf(s.Reference, 0) {
		return errs.Op("convert", s.Reference, errors.Wrap(errs.ErrInvalidFrequency, "reference"))
	}
	return nil
}

func (c *converter) classify(ctx context.Context) error {
	c.tokens = make([][]*Token, len(c.block.Lines))
	for li, l := range c.block.Lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		for ti, raw := range l.Tokens {
			t := &Token{Line: li + 1, Index: ti, Raw: raw, Output: raw}
			switch {
			case pitch.IsFrequencyLiteral(raw):
				t.Kind = FrequencyToken
				t.Frequency, t.Err = pitch.ParseFrequency(raw)
			case pitch.IsNoteLiteral(raw):
				t.Kind = NoteToken
				t.Note, t.Cents, t.Err = pitch.ParseNote(raw)
				t.HasNote = t.Err == nil
			default:
				t.Err = errs.ErrUnrecognizedToken
			}
			c.tokens[li] = append(c.tokens[li], t)
		}
	}
	return nil
}

func (c *converter) each(kind TokenKind, fn func(t *Token)) {
	for _, line := range c.tokens {
		for _, t := range line {
			if t.Kind == kind && t.Err == nil {
				fn(t)
			}
		}
	}
}

func (c *converter) reference() (float64, error) {
	if c.s.Reference > 0 {
		return c.s.Reference, nil
	}
	if c.s.Direction == model.NoteToFreq {
		return constants.DefaultReferenceHz, nil
	}

	var freqs []float64
	c.each(FrequencyToken, func(t *Token) { freqs = append(freqs, t.Frequency) })
	est, err := tuning.Estimate(freqs)
	if err != nil {
		return 0, errs.Op("estimate_tuning", "", err)
	}
	c.res.Estimated = true
	c.res.Tuning = &est
	if est.Degenerate {
		c.log.Warn("reference estimate fell back to the default", logging.Fields{"reason": est.Warning.Error()})
	} else {
		c.log.Debug("estimated reference", logging.Fields{
			"reference":      est.Reference,
			"mean_abs_cents": est.MeanAbsCents,
		})
	}
	return est.Reference, nil
}

func (c *converter) freqsToNotes() error {
	ref, err := c.reference()
	if err != nil {
		return err
	}
	c.res.Reference = ref

	var sp pitch.Speller = pitch.FewestAccidentals{PreferSharps: c.s.PreferSharps}
	if c.s.Spelling != model.SpellingInferred {
		sp = pitch.SpellerFor(c.s)
	}
	c.each(FrequencyToken, func(t *Token) {
		concert, cents, err := pitch.FrequencyToNote(t.Frequency, ref, sp)
		if err == nil {
			t.Note, err = c.inst.ToWritten(concert)
		}
		if err == nil && c.respell(t.Note) {
			// spell in written pitch, where the key signature applies
			t.Note, err = pitch.FromSemitones(t.Note.SemitonesFromA4(), sp)
		}
		if err != nil {
			t.Err = err
			return
		}
		t.Cents, t.HasNote, t.Converted = cents, true, true
	})

	if c.s.Spelling == model.SpellingInferred {
		var notes []model.Note
		c.each(FrequencyToken, func(t *Token) { notes = append(notes, t.Note) })
		key, err := keysig.FromNotes(notes)
		if err == nil {
			c.res.Key = &key
			c.log.Debug("spelling in inferred key", logging.Fields{"key": key.Key.Name(false)})
			sp = pitch.KeySpeller{Key: key.Key}
			c.each(FrequencyToken, func(t *Token) {
				if n, err := pitch.FromSemitones(t.Note.SemitonesFromA4(), sp); err == nil {
					t.Note = n
				}
			})
		}
	}

	c.each(FrequencyToken, func(t *Token) {
		t.Output = pitch.FormatNote(t.Note, t.Cents, c.s.ShowCents, c.s.Unicode)
	})
	return nil
}

// respell reports whether a transposed note should be spelled again by the
// speller. Transposing keeps the interval, so concert A on an alto saxophone
// reads F#; that spelling stands unless a key asks otherwise or it needs a
// double accidental.
func (c *converter) respell(n model.Note) bool {
	return c.s.Spelling == model.SpellingKey || n.Accidental < model.Flat || n.Accidental > model.Sharp
}

func (c *converter) notesToFreqs() error {
	ref, err := c.reference()
	if err != nil {
		return err
	}
	c.res.Reference = ref

	c.each(NoteToken, func(t *Token) {
		concert, err := c.inst.ToConcert(t.Note)
		if err != nil {
			t.Err = err
			return
		}
		f, err := pitch.NoteToFrequency(concert, ref)
		if err != nil {
			t.Err = err
			return
		}
		t.Frequency = f * math.Exp2(t.Cents/1200)
		t.Converted = true
		t.Output = pitch.FormatFrequency(t.Frequency, c.s.Precision, c.s.Units)
	})
	return nil
}

// collect fills the flat token, issue, frequency and note lists.
func (c *converter) collect() {
	for _, line := range c.tokens {
		for _, t := range line {
			if t.Err != nil {
				t.HasNote = false
				t.Converted = false
				if c.s.MarkInvalid {
					t.Output = "?" + t.Raw
				}
				c.res.Issues = append(c.res.Issues, Issue{Line: t.Line, Token: t.Index, Raw: t.Raw, Err: t.Err})
			} else {
				if t.Frequency > 0 {
					c.res.Frequencies = append(c.res.Frequencies, t.Frequency)
				}
				if t.HasNote {
					c.res.Notes = append(c.res.Notes, t.Note)
				}
			}
			c.res.Tokens = append(c.res.Tokens, *t)
		}
	}
}

func (c *converter) render(ctx context.Context) error {
	var out []byte
	for li, l := range c.block.Lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		outputs := make([]string, len(c.tokens[li]))
		for i, t := range c.tokens[li] {
			outputs[i] = t.Output
		}

		if !c.s.Interleave || l.Kind != Data || len(outputs) == 0 {
			if l.Kind == Data {
				out = append(out, l.Content(outputs, c.s.Delimiter)...)
			} else {
				out = append(out, l.Raw...)
			}
			out = append(out, l.EOL...)
			continue
		}

		// the converted line goes below the original, without the comment
		out = append(out, l.Raw...)
		if l.EOL == "" {
			out = append(out, '\n')
		} else {
			out = append(out, l.EOL...)
		}
		bare := l
		bare.HasComment = false
		out = append(out, bare.Content(outputs, c.s.Delimiter)...)
		out = append(out, l.EOL...)
	}
	c.res.Text = string(out)
	return nil
}
