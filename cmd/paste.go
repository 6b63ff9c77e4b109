package cmd

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/freqnote/block"
	"github.com/jsphweid/freqnote/logging"
	"github.com/jsphweid/freqnote/model"
	"github.com/spf13/cobra"
)

var (
	pasteFlags settingsFlags
	pasteWait  time.Duration
)

func init() {
	rootCmd.AddCommand(pasteCmd)
	pasteFlags.register(pasteCmd)
	pasteCmd.Flags().DurationVar(&pasteWait, "wait", 300*time.Millisecond, "quiet time before a pasted block is converted")
}

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Converts blocks as they are pasted into the terminal",
	Long: `Reads standard input and converts whatever arrived once input has been
quiet for --wait, so every paste is converted as one block. End with Ctrl-D.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Paste(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), pasteFlags.settings(), pasteWait)
	},
}

type paster struct {
	ctx context.Context
	s   model.Settings
	out io.Writer

	mu  sync.Mutex
	buf strings.Builder
	err error
}

func (p *paster) add(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf.WriteString(line)
	p.buf.WriteByte('\n')
}

func (p *paster) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf.Len() == 0 {
		return
	}
	text := p.buf.String()
	p.buf.Reset()

	res, err := block.Convert(p.ctx, text, p.s)
	if err != nil {
		logging.Warn("could not convert pasted block", logging.Fields{"error": err.Error()})
		p.err = userError(err)
		return
	}
	for _, issue := range res.Issues {
		logging.Info("skipped token", logging.Fields{"line": issue.Line, "raw": issue.Raw, "reason": issue.Err.Error()})
	}
	if _, err := io.WriteString(p.out, res.Text); err != nil {
		p.err = err
	}
}

// Paste converts in one block at a time, treating a pause of wait as the end
// of a block. Whatever is pending at EOF is converted before it returns. The
// error is that of the last block that failed.
func Paste(ctx context.Context, in io.Reader, out io.Writer, s model.Settings, wait time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p := &paster{ctx: ctx, s: s, out: out}
	debounced := debounce.New(wait)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.add(sc.Text())
		debounced(p.flush)
	}
	p.flush()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := sc.Err(); err != nil {
		return err
	}
	return p.err
}
