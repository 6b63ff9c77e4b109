package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/freqnote/block"
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/file"
	"github.com/jsphweid/freqnote/keysig"
	"github.com/jsphweid/freqnote/model"
	"github.com/spf13/cobra"
)

var (
	keyFlags settingsFlags
	keyIn    string
)

func init() {
	rootCmd.AddCommand(keyCmd)
	keyFlags.register(keyCmd)
	keyCmd.Flags().StringVarP(&keyIn, "file", "f", "-", "input block, - for stdin")
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Guesses the key signature of a block",
	Long: `Converts a block and guesses the key signature of the resulting notes.
With --direction n2f the note names in the block are used as they are.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := file.Read(keyIn, cmd.InOrStdin())
		if err != nil {
			return err
		}
		s := keyFlags.settings()
		res, err := InferKey(cmd.Context(), text, s)
		if err != nil {
			return userError(err)
		}
		printKey(cmd.OutOrStdout(), res, s.Unicode)
		return nil
	},
}

// InferKey guesses the key of a block. A block of note names (n2f) is read
// as written; anything else is converted to notes first.
func InferKey(ctx context.Context, text string, s model.Settings) (keysig.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.Direction == model.NoteToFreq {
		pcs := block.ExtractPitchClasses(text)
		res, err := keysig.Infer(pcs)
		return res, errs.Op("infer_key", fmt.Sprintf("%d notes", len(pcs)), err)
	}
	s.InferKey = true
	res, err := block.Convert(ctx, text, s)
	if err != nil {
		return keysig.Result{}, err
	}
	return *res.Key, nil
}

func printKey(w io.Writer, r keysig.Result, unicode bool) {
	kr := KeyResponse(r, unicode)
	fmt.Fprintf(w, "key: %s (%v)\n", kr.Name, kr.Key)
	if len(kr.Accidentals) > 0 {
		fmt.Fprintf(w, "accidentals: %s\n", strings.Join(kr.Accidentals, " "))
	}
	if !r.Consistent() {
		fmt.Fprintf(w, "no key contains every note, best fit has %d of %d\n", r.Score, r.Total)
	} else if len(kr.Matches) > 1 {
		fmt.Fprintf(w, "also fits: %v\n", kr.Matches[1:])
	}
}

// KeyResponse renders an inference result for display and the HTTP api.
func KeyResponse(r keysig.Result, unicode bool) model.KeyResponse {
	res := model.KeyResponse{
		Key:         r.Key,
		Name:        r.Key.Name(unicode),
		Accidentals: make([]string, 0, r.Key.Count()),
		Matches:     r.Matches,
	}
	if res.Matches == nil {
		res.Matches = []model.KeySignature{}
	}
	for _, pc := range r.Key.Accidentals() {
		res.Accidentals = append(res.Accidentals, pc.Format(unicode))
	}
	return res
}
