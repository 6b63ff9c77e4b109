package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jsphweid/freqnote/instrument"
	"github.com/jsphweid/freqnote/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(instrumentsCmd)
}

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "Lists the preset transposing instruments",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSEMITONES\tOCTAVES")
		for _, i := range Instruments() {
			fmt.Fprintf(w, "%s\t%d\t%d\n", i.Name, i.Semitones, i.Octaves)
		}
		w.Flush()
	},
}

func Instruments() []model.InstrumentResponse {
	all := instrument.All()
	res := make([]model.InstrumentResponse, 0, len(all))
	for _, i := range all {
		res = append(res, model.InstrumentResponse{
			Name:      i.Name,
			Semitones: i.Semitones(),
			Octaves:   i.OctaveOffset(),
		})
	}
	return res
}
