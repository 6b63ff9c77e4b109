package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jsphweid/freqnote/block"
	"github.com/jsphweid/freqnote/file"
	"github.com/jsphweid/freqnote/midi"
	"github.com/jsphweid/freqnote/model"
	"github.com/jsphweid/freqnote/pitch"
	"github.com/spf13/cobra"
)

var (
	inspectFlags settingsFlags
	inspectIn    string
)

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectFlags.register(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectIn, "file", "f", "-", "input block, - for stdin")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [TOKEN...]",
	Short: "Shows how each token of a block is read",
	Long: `Converts a block and prints one row per token: its kind, the note and
frequency it stands for, the MIDI key and both enharmonic spellings.
Tokens given as arguments are inspected instead of the input block.`,
	Example: "  freqnote inspect A#3+12c 261.6",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			var err error
			if text, err = file.Read(inspectIn, cmd.InOrStdin()); err != nil {
				return err
			}
		}
		return Inspect(cmd.Context(), text, inspectFlags.settings(), cmd.OutOrStdout())
	},
}

func Inspect(ctx context.Context, text string, s model.Settings, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := block.Convert(ctx, text, s)
	if err != nil {
		return userError(err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tTOKEN\tKIND\tNOTE\tCENTS\tHZ\tKEY\tSHARP\tFLAT")
	for _, t := range res.Tokens {
		pos := fmt.Sprintf("%d\t%q\t%v", t.Line, t.Raw, t.Kind)
		if t.Err != nil {
			fmt.Fprintf(tw, "%s\t%v\t\t\t\t\t\n", pos, t.Err)
			continue
		}
		hz := "-"
		if t.Frequency > 0 {
			hz = pitch.FormatFrequency(t.Frequency, s.Precision, false)
		}
		if !t.HasNote {
			fmt.Fprintf(tw, "%s\t-\t-\t%s\t-\t-\t-\n", pos, hz)
			continue
		}
		key := "-"
		if k, err := midi.KeyNumber(t.Note); err == nil {
			key = fmt.Sprint(k)
		}
		semis := t.Note.SemitonesFromA4()
		sharp, _ := pitch.FromSemitones(semis, pitch.FewestAccidentals{PreferSharps: true})
		flat, _ := pitch.FromSemitones(semis, pitch.FewestAccidentals{})
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			pos,
			t.Note.Format(s.Unicode),
			pitch.FormatCents(t.Cents),
			hz,
			key,
			sharp.Format(s.Unicode),
			flat.Format(s.Unicode),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "reference: %.2f Hz\n", res.Reference)
	return nil
}
