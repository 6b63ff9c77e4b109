package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/freqnote/block"
	"github.com/jsphweid/freqnote/constants"
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/file"
	"github.com/jsphweid/freqnote/tuning"
	"github.com/spf13/cobra"
)

var (
	tuneIn     string
	tuneCenter float64
	tuneRange  float64
)

func init() {
	rootCmd.AddCommand(tuneCmd)
	tuneCmd.Flags().StringVarP(&tuneIn, "file", "f", "-", "input block, - for stdin")
	tuneCmd.Flags().Float64Var(&tuneCenter, "center", constants.DefaultReferenceHz, "expected reference in Hz")
	tuneCmd.Flags().Float64Var(&tuneRange, "range", constants.SearchHalfRangeCents, "cents searched on either side of --center")
}

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Estimates the tuning reference of a block",
	Long: `Finds the frequency of A4 that the frequencies in a block fit best.
Note names and comments in the block are ignored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := file.Read(tuneIn, cmd.InOrStdin())
		if err != nil {
			return err
		}
		res, err := Tune(block.ExtractFrequencies(text), tuning.Params{Center: tuneCenter, HalfRangeCents: tuneRange})
		if err != nil {
			return userError(err)
		}
		printTuning(cmd.OutOrStdout(), res)
		return nil
	},
}

func Tune(freqs []float64, p tuning.Params) (tuning.Result, error) {
	res, err := tuning.NewEstimatorWithParams(p).Estimate(freqs)
	return res, errs.Op("estimate_tuning", "", err)
}

func printTuning(w io.Writer, res tuning.Result) {
	fmt.Fprintf(w, "reference: %.2f Hz\n", res.Reference)
	fmt.Fprintf(w, "mean deviation: %.1f cents\n", res.MeanAbsCents)
	fmt.Fprintf(w, "std deviation: %.1f cents\n", res.StdDevCents)
	if res.Degenerate {
		fmt.Fprintf(w, "warning: %v, using the search center\n", res.Warning)
	}
}
