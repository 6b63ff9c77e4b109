package cmd

import (
	"github.com/jsphweid/freqnote/constants"
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "freqnote",
	Short: "Converts between frequencies and note names",
	Long: `freqnote turns blocks of measured frequencies into note names and back.
It can estimate the tuning reference of a recording, transpose for an
instrument and guess the key signature of the result.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logging.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// userError logs err in full and returns just its description, which is
// what the CLI prints.
func userError(err error) error {
	if err == nil {
		return nil
	}
	logging.Debug("run failed", logging.Fields{"error": err.Error(), "kind": string(errs.Kind(err))})
	return errors.New(errs.Describe(err))
}
