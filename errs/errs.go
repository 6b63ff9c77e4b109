// Package errs defines the error taxonomy shared by every conversion
// component and the structured error reported when a whole run fails.
package errs

import (
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/pkg/errors"
)

// Sentinel errors, matched with errors.Is
var (
	ErrInvalidNote        = errors.New("invalid note")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrUnknownInstrument  = errors.New("unknown instrument")
	ErrEmptyFrequencyList = errors.New("empty frequency list")
	ErrEmptyPitchClassSet = errors.New("empty pitch class set")
	ErrDegenerateInput    = errors.New("degenerate input")
	ErrUnrecognizedToken  = errors.New("unrecognized token")
	ErrInvalidSettings    = errors.New("invalid settings")
)

// OpError identifies the operation that failed and the input it rejected.
type OpError struct {
	Op    string // "convert", "estimate_tuning", "infer_key", ...
	Input string
	Err   error
}

func (e *OpError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Input, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Op wraps err as a run-level failure of op. The result carries a kind tag
// and a description fit to show to an end user.
func Op(op string, input any, err error) error {
	if err == nil {
		return nil
	}
	in := ""
	if input != nil {
		in = fmt.Sprint(input)
	}
	oe := &OpError{Op: op, Input: in, Err: err}
	return fault.Wrap(oe,
		ftag.With(kindOf(err)),
		fmsg.WithDesc(op+" failed", describe(op, in, err)),
	)
}

// Kind returns the tag attached by Op.
func Kind(err error) ftag.Kind {
	return ftag.Get(err)
}

// Describe returns the user-facing message for err.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if issue := fmsg.GetIssue(err); issue != "" {
		return issue
	}
	return err.Error()
}

func kindOf(err error) ftag.Kind {
	switch {
	case errors.Is(err, ErrUnknownInstrument):
		return ftag.NotFound
	case errors.Is(err, ErrInvalidNote),
		errors.Is(err, ErrInvalidFrequency),
		errors.Is(err, ErrEmptyFrequencyList),
		errors.Is(err, ErrEmptyPitchClassSet),
		errors.Is(err, ErrUnrecognizedToken),
		errors.Is(err, ErrInvalidSettings):
		return ftag.InvalidArgument
	}
	return ftag.Internal
}

func describe(op, input string, err error) string {
	switch {
	case errors.Is(err, ErrUnknownInstrument):
		return fmt.Sprintf("No instrument named %q.", input)
	case errors.Is(err, ErrEmptyFrequencyList):
		return "No frequencies found for estimating the reference tuning."
	case errors.Is(err, ErrEmptyPitchClassSet):
		return "No notes found for guessing the key signature."
	case errors.Is(err, ErrInvalidFrequency):
		return fmt.Sprintf("Invalid frequency %q.", input)
	case errors.Is(err, ErrInvalidNote):
		return fmt.Sprintf("Invalid note %q.", input)
	case errors.Is(err, ErrInvalidSettings):
		return fmt.Sprintf("Invalid setting %q.", input)
	}
	return fmt.Sprintf("Error during %s.", op)
}
