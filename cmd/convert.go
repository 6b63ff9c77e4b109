package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jsphweid/freqnote/block"
	"github.com/jsphweid/freqnote/file"
	"github.com/jsphweid/freqnote/instrument"
	"github.com/jsphweid/freqnote/midi"
	"github.com/jsphweid/freqnote/model"
	"github.com/spf13/cobra"
)

var (
	convertFlags settingsFlags
	convertIn    string
	convertOut   string
	convertMidi  string
)

func init() {
	rootCmd.AddCommand(convertCmd)
	convertFlags.register(convertCmd)
	convertCmd.Flags().StringVarP(&convertIn, "file", "f", "-", "input block, - for stdin")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "-", "output file, - for stdout")
	convertCmd.Flags().StringVar(&convertMidi, "midi", "", "also write the notes, at concert pitch, to this MIDI file")
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts a block of frequencies or note names",
	Long: `Converts every frequency in a block to a note name, or every note name to a
frequency with --direction n2f. Blank lines, comments after % and anything
that is not a frequency or note are kept as they are.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := file.Read(convertIn, cmd.InOrStdin())
		if err != nil {
			return err
		}
		res, err := Convert(cmd.Context(), text, convertFlags.settings(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if convertMidi != "" {
			notes, err := ConcertNotes(res.Notes, convertFlags.settings())
			if err != nil {
				return userError(err)
			}
			if err := midi.WriteFile(convertMidi, notes); err != nil {
				return err
			}
		}
		return file.Write(convertOut, res.Text, cmd.OutOrStdout())
	},
}

// Convert runs a conversion and reports token issues and the inferred key
// to diag.
func Convert(ctx context.Context, text string, s model.Settings, diag io.Writer) (*block.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := block.Convert(ctx, text, s)
	if err != nil {
		return nil, userError(err)
	}
	for _, issue := range res.Issues {
		fmt.Fprintf(diag, "skipped %v\n", issue)
	}
	if res.Estimated {
		fmt.Fprintf(diag, "reference: %.2f Hz (estimated)\n", res.Reference)
	}
	if res.Key != nil && s.InferKey {
		fmt.Fprintf(diag, "key: %s (%v)\n", res.Key.Key.Name(s.Unicode), res.Key.Key)
	}
	return res, nil
}

// ConcertNotes transposes written notes back to concert pitch.
func ConcertNotes(written []model.Note, s model.Settings) ([]model.Note, error) {
	inst, err := instrument.Resolve(s)
	if err != nil {
		return nil, err
	}
	if inst.IsConcert() {
		return append([]model.Note(nil), written...), nil
	}
	res := make([]model.Note, 0, len(written))
	for _, n := range written {
		c, err := inst.ToConcert(n)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}
