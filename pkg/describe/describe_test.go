package describe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-describe/pkg/describe"
)

func TestClean(t *testing.T) {
	t.Parallel()

	xs := []float64{1, math.NaN(), 3}
	assert.Equal(t, []float64{1, 3}, describe.Clean(xs))
	assert.True(t, math.IsNaN(xs[1]), "input must not be modified")
	assert.Empty(t, describe.Clean(nil))
}

func TestEmptySample(t *testing.T) {
	t.Parallel()

	empty := []float64{math.NaN()}

	_, err := describe.Mean(empty)
	assert.ErrorIs(t, err, describe.ErrEmptySample)
	_, err = describe.Median(empty)
	assert.ErrorIs(t, err, describe.ErrEmptySample)
	_, err = describe.Variance(empty)
	assert.ErrorIs(t, err, describe.ErrEmptySample)
	_, _, err = describe.Bounds(empty)
	assert.ErrorIs(t, err, describe.ErrEmptySample)
	_, err = describe.Modes(empty)
	assert.ErrorIs(t, err, describe.ErrEmptySample)
	_, err = describe.Summarize(empty)
	assert.ErrorIs(t, err, describe.ErrEmptySample)
}

func TestMoments(t *testing.T) {
	t.Parallel()

	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	mean, err := describe.Mean(xs)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mean, 1e-12)

	variance, err := describe.Variance(xs)
	require.NoError(t, err)
	assert.InDelta(t, 32.0/7.0, variance, 1e-12)

	sd, err := describe.StdDev(xs)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(32.0/7.0), sd, 1e-12)

	cv, err := describe.CV(xs)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(32.0/7.0)/5, cv, 1e-12)

	_, err = describe.Variance([]float64{1})
	assert.ErrorIs(t, err, describe.ErrNotEnoughData)
	_, err = describe.Skew([]float64{1, 2})
	assert.ErrorIs(t, err, describe.ErrNotEnoughData)
	_, err = describe.Kurtosis([]float64{1, 2, 3})
	assert.ErrorIs(t, err, describe.ErrNotEnoughData)
}

func TestSkewSymmetric(t *testing.T) {
	t.Parallel()

	skew, err := describe.Skew([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, skew, 1e-12)
}

func TestConstantSample(t *testing.T) {
	t.Parallel()

	xs := []float64{7, 7, 7, 7, 7}
	skew, err := describe.Skew(xs)
	require.NoError(t, err)
	assert.Zero(t, skew)
	kurt, err := describe.Kurtosis(xs)
	require.NoError(t, err)
	assert.Zero(t, kurt)

	sum, err := describe.Summarize(xs)
	require.NoError(t, err)
	assert.Zero(t, sum.Std)
	assert.Zero(t, sum.Skew)
	assert.Zero(t, sum.Kurtosis)
}

func TestQuantileInfinity(t *testing.T) {
	t.Parallel()

	median, err := describe.Quantile([]float64{1, math.Inf(1), 2}, 0.5, describe.Linear)
	require.NoError(t, err)
	assert.Equal(t, 2.0, median)

	q, err := describe.Quantile([]float64{1, 2, 3, math.Inf(1), 5}, 0.25, describe.Linear)
	require.NoError(t, err)
	assert.Equal(t, 2.0, q)

	r8, err := describe.Quantile([]float64{1, 2, 3, 4}, 0.5, describe.R8)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, r8, 1e-12)
}

func TestQuantile(t *testing.T) {
	t.Parallel()

	xs := []float64{7, 1, 3, math.NaN(), 5, 9}

	tcs := map[string]struct {
		q      float64
		method describe.Interpolation
		want   float64
	}{
		"linear min":       {q: 0, method: describe.Linear, want: 1},
		"linear q1":        {q: 0.25, method: describe.Linear, want: 3},
		"linear median":    {q: 0.5, method: describe.Linear, want: 5},
		"linear between":   {q: 0.1, method: describe.Linear, want: 1.8},
		"linear max":       {q: 1, method: describe.Linear, want: 9},
		"empirical q1":     {q: 0.25, method: describe.Empirical, want: 3},
		"empirical median": {q: 0.5, method: describe.Empirical, want: 5},
		"r8 median":        {q: 0.5, method: describe.R8, want: 5},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := describe.Quantile(xs, tc.q, tc.method)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}

	_, err := describe.Quantile(xs, 1.1, describe.Linear)
	assert.ErrorIs(t, err, describe.ErrInvalidQuantile)
}

func TestIQR(t *testing.T) {
	t.Parallel()

	iqr, err := describe.IQR([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	// Q1 = 2.75, Q3 = 6.25
	assert.InDelta(t, 3.5, iqr, 1e-12)
}

func TestModes(t *testing.T) {
	t.Parallel()

	modes, err := describe.Modes([]float64{3, 1, 3, 2, 1, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, modes)

	modes, err = describe.Modes([]float64{4})
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, modes)
}

func TestGeoMean(t *testing.T) {
	t.Parallel()

	g, err := describe.GeoMean([]float64{1, 10, 100})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, g, 1e-9)

	g, err = describe.GeoMean([]float64{1, 0, 100})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(g))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	sum, err := describe.Summarize([]float64{4, 1, 3, 2, math.NaN(), 5})
	require.NoError(t, err)

	assert.Equal(t, 5, sum.Count)
	assert.InDelta(t, 3.0, sum.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), sum.Std, 1e-12)
	assert.Equal(t, 1.0, sum.Min)
	assert.Equal(t, 2.0, sum.Q1)
	assert.Equal(t, 3.0, sum.Median)
	assert.Equal(t, 4.0, sum.Q3)
	assert.Equal(t, 5.0, sum.Max)
	assert.Equal(t, 2.0, sum.IQR)
	assert.InDelta(t, 0.0, sum.Skew, 1e-12)
	assert.False(t, math.IsNaN(sum.Kurtosis))
}

func TestSummarizeSingleValue(t *testing.T) {
	t.Parallel()

	sum, err := describe.Summarize([]float64{42})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, 42.0, sum.Median)
	assert.True(t, math.IsNaN(sum.Std))
	assert.True(t, math.IsNaN(sum.Skew))
}
