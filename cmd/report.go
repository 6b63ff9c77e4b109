package cmd

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/jsphweid/freqnote/block"
	"github.com/jsphweid/freqnote/file"
	"github.com/jsphweid/freqnote/model"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

var (
	reportFlags settingsFlags
	reportIn    string
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportFlags.register(reportCmd)
	reportCmd.Flags().StringVarP(&reportIn, "file", "f", "-", "input block, - for stdin")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarizes how in tune a block is",
	Long: `Converts a block of frequencies and reports, per line and overall, how
far the frequencies are from the nearest note.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := file.Read(reportIn, cmd.InOrStdin())
		if err != nil {
			return err
		}
		r, err := Report(cmd.Context(), text, reportFlags.settings())
		if err != nil {
			return err
		}
		r.Print(cmd.OutOrStdout())
		return nil
	},
}

type LineReport struct {
	Line         int
	Converted    int
	MeanAbsCents float64
	MaxAbsCents  float64
}

type BlockReport struct {
	Reference float64
	Estimated bool
	Tokens    int
	Converted int
	Issues    int
	Lines     []LineReport

	// over every converted token
	MeanAbsCents float64
	Key          *model.KeyResponse
}

// Report converts text frequency to note and measures the cents deviation
// of each converted token.
func Report(ctx context.Context, text string, s model.Settings) (*BlockReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.Direction = model.FreqToNote
	res, err := block.Convert(ctx, text, s)
	if err != nil {
		return nil, userError(err)
	}

	r := &BlockReport{
		Reference: res.Reference,
		Estimated: res.Estimated,
		Tokens:    len(res.Tokens),
		Issues:    len(res.Issues),
	}
	if res.Key != nil {
		kr := KeyResponse(*res.Key, s.Unicode)
		r.Key = &kr
	}

	var all []float64
	byLine := map[int][]float64{}
	var order []int
	for _, t := range res.Tokens {
		if !t.Converted {
			continue
		}
		if _, ok := byLine[t.Line]; !ok {
			order = append(order, t.Line)
		}
		byLine[t.Line] = append(byLine[t.Line], math.Abs(t.Cents))
		all = append(all, math.Abs(t.Cents))
	}
	r.Converted = len(all)
	if len(all) > 0 {
		r.MeanAbsCents = stat.Mean(all, nil)
	}
	for _, line := range order {
		cents := byLine[line]
		lr := LineReport{Line: line, Converted: len(cents), MeanAbsCents: stat.Mean(cents, nil)}
		for _, c := range cents {
			lr.MaxAbsCents = math.Max(lr.MaxAbsCents, c)
		}
		r.Lines = append(r.Lines, lr)
	}
	return r, nil
}

func (r *BlockReport) Print(w io.Writer) {
	source := "given"
	if r.Estimated {
		source = "estimated"
	}
	fmt.Fprintf(w, "reference: %.2f Hz (%s)\n", r.Reference, source)
	fmt.Fprintf(w, "tokens: %d, converted: %d, skipped: %d\n", r.Tokens, r.Converted, r.Issues)
	for _, l := range r.Lines {
		fmt.Fprintf(w, "line %d: %d notes, mean %.1f cents, max %.1f cents\n", l.Line, l.Converted, l.MeanAbsCents, l.MaxAbsCents)
	}
	if r.Converted > 0 {
		fmt.Fprintf(w, "mean deviation: %.1f cents\n", r.MeanAbsCents)
	}
	if r.Key != nil {
		fmt.Fprintf(w, "key: %s (%v)\n", r.Key.Name, r.Key.Key)
	}
}
