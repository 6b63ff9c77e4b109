package tuning

import (
	"math"
	"testing"

	"github.com/jsphweid/freqnote/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tuned(reference float64, semitones ...int) []float64 {
	res := make([]float64, len(semitones))
	for i, k := range semitones {
		res[i] = reference * math.Exp2(float64(k)/12)
	}
	return res
}

func TestEstimateRecoversReference(t *testing.T) {
	for _, ref := range []float64{432, 440, 442, 450, 446.3} {
		freqs := tuned(ref, -12, -5, 0, 3, 7, 14, 19)
		res, err := Estimate(freqs)
		require.NoError(t, err)
		assert.InDelta(t, ref, res.Reference, 0.05, "reference %v", ref)
		assert.InDelta(t, 0, res.TotalError, 0.01)
		assert.False(t, res.Degenerate)
	}
}

func TestEstimateWithNoise(t *testing.T) {
	freqs := tuned(450, -9, -2, 0, 2, 5, 12)
	noise := []float64{3, -4, 2, -1, 5, -3}
	for i := range freqs {
		freqs[i] *= math.Exp2(noise[i] / 1200)
	}
	res, err := Estimate(freqs)
	require.NoError(t, err)
	assert.InDelta(t, 450, res.Reference, 2)
	assert.Less(t, res.MeanAbsCents, 5.0)
}

func TestEstimateNearA(t *testing.T) {
	assert := assert.New(t)
	res, err := Estimate([]float64{442.1, 884, 220.7})
	assert.NoError(err)
	assert.InDelta(441.8, res.Reference, 0.2)
	assert.Less(res.MeanAbsCents, 2.0)
	assert.Greater(res.StdDevCents, 0.0)
}

func TestEstimateIgnoresOrder(t *testing.T) {
	a := []float64{261.1, 329.9, 392.4, 523.0, 659.9, 293.2}
	b := []float64{659.9, 293.2, 523.0, 261.1, 392.4, 329.9}
	ra, err := Estimate(a)
	require.NoError(t, err)
	rb, err := Estimate(b)
	require.NoError(t, err)
	assert.Equal(t, ra, rb)

	// the caller's slice is left alone
	assert.Equal(t, 659.9, b[0])
}

func TestEstimateEmpty(t *testing.T) {
	_, err := Estimate(nil)
	assert.ErrorIs(t, err, errs.ErrEmptyFrequencyList)
}

func TestEstimateInvalid(t *testing.T) {
	_, err := Estimate([]float64{440, -3})
	assert.ErrorIs(t, err, errs.ErrInvalidFrequency)
	_, err = Estimate([]float64{440, math.NaN()})
	assert.ErrorIs(t, err, errs.ErrInvalidFrequency)
}

func TestEstimateDegenerate(t *testing.T) {
	assert := assert.New(t)
	for _, freqs := range [][]float64{{445, 445, 445}, {300}} {
		res, err := Estimate(freqs)
		assert.NoError(err)
		assert.True(res.Degenerate)
		assert.Equal(440.0, res.Reference)
		assert.ErrorIs(res.Warning, errs.ErrDegenerateInput)
	}
}

func TestEstimatorCenter(t *testing.T) {
	freqs := tuned(415, 0, 2, 3, 7, 10)

	res, err := NewEstimatorWithParams(Params{Center: 415}).Estimate(freqs)
	require.NoError(t, err)
	assert.InDelta(t, 415, res.Reference, 0.05)

	// a semitone away is the same fit, so a 440 center lands a cent below 440
	res, err = NewEstimator().Estimate(freqs)
	require.NoError(t, err)
	assert.InDelta(t, 415*math.Exp2(1.0/12), res.Reference, 0.05)
	assert.InDelta(t, 0, res.TotalError, 0.01)
}

func TestTotalError(t *testing.T) {
	assert := assert.New(t)

	total, err := TotalError(tuned(440, 0, 4, 7), 440)
	assert.NoError(err)
	assert.InDelta(0, total, 1e-9)

	// 10 cents sharp on each of two notes
	total, err = TotalError(tuned(440*math.Exp2(10.0/1200), 0, 12), 440)
	assert.NoError(err)
	assert.InDelta(200, total, 1e-6)

	_, err = TotalError(nil, 440)
	assert.ErrorIs(err, errs.ErrEmptyFrequencyList)
}

func TestResidualsKeepInputOrder(t *testing.T) {
	res, err := Residuals([]float64{440 * math.Exp2(5.0/1200), 440 * math.Exp2(-7.0/1200)}, 440)
	require.NoError(t, err)
	assert.InDelta(t, 5, res[0], 1e-9)
	assert.InDelta(t, -7, res[1], 1e-9)
}
