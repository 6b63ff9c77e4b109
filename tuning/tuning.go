// Package tuning estimates the reference frequency (the pitch of A4) that a
// list of measured frequencies was most likely played against.
//
// The error surface repeats every semitone and has a narrow well around each
// in-tune reference, so a search over one semitone centered on the expected
// reference sees every candidate exactly once. The estimator samples that
// window on a 1 cent grid and then refines around the best sample.
package tuning

import (
	"math"

	"github.com/jsphweid/freqnote/constants"
	"github.com/jsphweid/freqnote/errs"
	"github.com/jsphweid/freqnote/pitch"
	"github.com/jsphweid/freqnote/util"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	coarseStepCents = 1.0
	fineHalfCents   = 1.0
	fineSteps       = 201
)

type Params struct {
	// Center is the expected reference; the search covers HalfRangeCents on
	// either side of it.
	Center         float64
	HalfRangeCents float64
}

func DefaultParams() Params {
	return Params{
		Center:         constants.DefaultReferenceHz,
		HalfRangeCents: constants.SearchHalfRangeCents,
	}
}

type Estimator struct {
	params Params
}

func NewEstimator() *Estimator {
	return NewEstimatorWithParams(DefaultParams())
}

// NewEstimatorWithParams fills zero fields from DefaultParams.
func NewEstimatorWithParams(p Params) *Estimator {
	d := DefaultParams()
	if p.Center <= 0 {
		p.Center = d.Center
	}
	if p.HalfRangeCents <= 0 {
		p.HalfRangeCents = d.HalfRangeCents
	}
	return &Estimator{params: p}
}

// Result describes the chosen reference and how well the input fits it.
type Result struct {
	Reference    float64
	TotalError   float64
	MeanAbsCents float64
	StdDevCents  float64
	// Degenerate is set when the input could not discriminate between
	// references; Reference is then the search center and Warning holds
	// ErrDegenerateInput.
	Degenerate bool
	Warning    error
}

// Estimate searches for the reference that minimizes TotalError. The input
// order does not affect the result.
func (e *Estimator) Estimate(freqs []float64) (Result, error) {
	sorted, err := prepare(freqs)
	if err != nil {
		return Result{}, err
	}

	if sorted[0] == sorted[len(sorted)-1] {
		res, err := summarize(sorted, e.params.Center)
		if err != nil {
			return Result{}, err
		}
		res.Degenerate = true
		res.Warning = errors.Wrapf(errs.ErrDegenerateInput, "%d identical frequencies of %v Hz", len(sorted), sorted[0])
		return res, nil
	}

	h := e.params.HalfRangeCents
	n := util.Max(int(math.Round(2*h/coarseStepCents))+1, 2)
	coarse := floats.Span(make([]float64, n), -h, h)
	best, err := e.argmin(sorted, coarse)
	if err != nil {
		return Result{}, err
	}

	lo := math.Max(-h, best-fineHalfCents)
	hi := math.Min(h, best+fineHalfCents)
	fine := floats.Span(make([]float64, fineSteps), lo, hi)
	best, err = e.argmin(sorted, fine)
	if err != nil {
		return Result{}, err
	}

	return summarize(sorted, e.reference(best))
}

func (e *Estimator) reference(offsetCents float64) float64 {
	return e.params.Center * math.Exp2(offsetCents/1200)
}

// argmin returns the candidate offset (in cents from the center) with the
// lowest error. The first of equal minima wins.
func (e *Estimator) argmin(sorted, offsets []float64) (float64, error) {
	totals := make([]float64, len(offsets))
	for i, off := range offsets {
		total, err := totalError(sorted, e.reference(off))
		if err != nil {
			return 0, err
		}
		totals[i] = total
	}
	return offsets[floats.MinIdx(totals)], nil
}

// Estimate runs the default estimator.
func Estimate(freqs []float64) (Result, error) {
	return NewEstimator().Estimate(freqs)
}

// TotalError is the sum of squared cents deviations of freqs from their
// nearest notes under reference.
func TotalError(freqs []float64, reference float64) (float64, error) {
	sorted, err := prepare(freqs)
	if err != nil {
		return 0, err
	}
	return totalError(sorted, reference)
}

func totalError(sorted []float64, reference float64) (float64, error) {
	res, err := residuals(sorted, reference)
	if err != nil {
		return 0, err
	}
	return floats.Dot(res, res), nil
}

func residuals(freqs []float64, reference float64) ([]float64, error) {
	res := make([]float64, len(freqs))
	for i, f := range freqs {
		_, cents, err := pitch.Nearest(f, reference)
		if err != nil {
			return nil, err
		}
		res[i] = cents
	}
	return res, nil
}

// Residuals returns the signed cents deviation of each frequency, in input
// order.
func Residuals(freqs []float64, reference float64) ([]float64, error) {
	return residuals(freqs, reference)
}

func summarize(sorted []float64, reference float64) (Result, error) {
	res, err := residuals(sorted, reference)
	if err != nil {
		return Result{}, err
	}
	abs := make([]float64, len(res))
	for i, c := range res {
		abs[i] = math.Abs(c)
	}
	out := Result{
		Reference:    reference,
		TotalError:   floats.Dot(res, res),
		MeanAbsCents: stat.Mean(abs, nil),
	}
	if len(res) > 1 {
		out.StdDevCents = stat.StdDev(res, nil)
	}
	return out, nil
}

func prepare(freqs []float64) ([]float64, error) {
	if len(freqs) == 0 {
		return nil, errs.ErrEmptyFrequencyList
	}
	sorted := make([]float64, len(freqs))
	copy(sorted, freqs)
	slices.Sort(sorted)
	for _, f := range sorted {
		if !(f > 0) || math.IsInf(f, 0) {
			return nil, errors.Wrapf(errs.ErrInvalidFrequency, "%v", f)
		}
	}
	return sorted, nil
}
