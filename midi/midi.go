// Package midi moves notes in and out of standard MIDI files, so a converted
// block can be auditioned and a recorded melody can be named.
package midi

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/model"
	"github.com/jsphweid/freqnote/pitch"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// A4 is key 69, so C-1 is key 0
	a4Key = 69
	// ticks per quarter note
	resolution = 960
	velocity   = 100
)

// KeyNumber returns the MIDI key that sounds n.
func KeyNumber(n model.Note) (uint8, error) {
	if err := pitch.Validate(n); err != nil {
		return 0, err
	}
	k := n.SemitonesFromA4() + a4Key
	if k < 0 || k > 127 {
		return 0, errors.Wrapf(errs.ErrInvalidNote, "%v is outside the MIDI key range", n)
	}
	return uint8(k), nil
}

func NoteFromKey(key uint8, sp pitch.Speller) (model.Note, error) {
	return pitch.FromSemitones(int(key)-a4Key, sp)
}

// WriteNotes writes a single-track file with each note held for a quarter
// note, one after the other.
func WriteNotes(w io.Writer, notes []model.Note) error {
	var track smf.Track
	for _, n := range notes {
		key, err := KeyNumber(n)
		if err != nil {
			return err
		}
		track.Add(0, midi.NoteOn(0, key, velocity))
		track.Add(resolution, midi.NoteOff(0, key))
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(resolution)
	if err := s.Add(track); err != nil {
		return errors.Wrap(err, "adding track")
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing midi")
	}
	return nil
}

func WriteFile(path string, notes []model.Note) error {
	var buf bytes.Buffer
	if err := WriteNotes(&buf, notes); err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0o644), "writing %s", path)
}

type noteOn struct {
	ticks int64
	track int
	key   uint8
}

// ReadNotes returns the note-on events of every track ordered by time, named
// with sp. Simultaneous notes keep their track order.
func ReadNotes(r io.Reader, sp pitch.Speller) (notes []model.Note, e error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			notes, e = nil, errors.Errorf("parsing midi: %v", rec)
		}
	}()

	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing midi")
	}

	var ons []noteOn
	for i, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, vel uint8
			if event.Message.GetNoteOn(&channel, &key, &vel) && vel > 0 {
				ons = append(ons, noteOn{ticks: absTicks, track: i, key: key})
			}
		}
	}
	sort.SliceStable(ons, func(i, j int) bool {
		return ons[i].ticks < ons[j].ticks
	})

	notes = make([]model.Note, 0, len(ons))
	for _, on := range ons {
		n, err := NoteFromKey(on.key, sp)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func ReadFile(path string, sp pitch.Speller) ([]model.Note, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading midi file %s", path)
	}
	return ReadNotes(bytes.NewReader(dat), sp)
}
