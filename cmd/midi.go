package cmd

import (
	"context"
	"io"
	"strings"

	"github.com/jsphweid/freqnote/constants"
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/file"
	"github.com/jsphweid/freqnote/instrument"
	"github.com/jsphweid/freqnote/midi"
	"github.com/jsphweid/freqnote/model"
	"github.com/jsphweid/freqnote/pitch"
	"github.com/spf13/cobra"
)

var (
	midiFlags settingsFlags
	midiOut   string
)

func init() {
	rootCmd.AddCommand(midiCmd)
	midiFlags.register(midiCmd)
	midiCmd.Flags().StringVarP(&midiOut, "out", "o", "-", "output file, - for stdout")
}

var midiCmd = &cobra.Command{
	Use:   "midi FILE",
	Short: "Names the notes of a MIDI file",
	Long: `Reads the note-on events of a standard MIDI file and writes them as a
block of note names, written for --instrument. With --direction n2f the
names are converted to frequencies.`,
	Example: "  freqnote midi melody.mid -i \"Clarinet in Bb\" --key-infer",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := MidiBlock(cmd.Context(), args[0], midiFlags.settings(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return file.Write(midiOut, text, cmd.OutOrStdout())
	},
}

// MidiBlock reads path and renders its notes, in time order, as one line of
// written note names, or of frequencies for n2f.
func MidiBlock(ctx context.Context, path string, s model.Settings, diag io.Writer) (string, error) {
	notes, err := midi.ReadFile(path, pitch.SpellerFor(s))
	if err != nil {
		return "", err
	}
	inst, err := instrument.Resolve(s)
	if err != nil {
		return "", userError(errs.Op("resolve_instrument", s.Instrument, err))
	}

	names := make([]string, 0, len(notes))
	for _, n := range notes {
		w, err := inst.ToWritten(n)
		if err != nil {
			return "", userError(errs.Op("transpose", n, err))
		}
		names = append(names, w.Format(s.Unicode))
	}

	// note names pass through f2n unchanged, so only n2f needs a reference
	if s.Direction != model.NoteToFreq && s.Reference == 0 {
		s.Reference = constants.DefaultReferenceHz
	}
	res, err := Convert(ctx, strings.Join(names, " ")+"\n", s, diag)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
