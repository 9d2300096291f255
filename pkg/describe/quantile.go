package describe

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Interpolation selects how a quantile that falls between two observations is estimated.
type Interpolation int

const (
	// Linear interpolates between the two closest order statistics (Hyndman and Fan R7).
	// This is what pandas and numpy return by default.
	Linear Interpolation = iota
	// Empirical returns the smallest observation whose empirical CDF reaches q.
	Empirical
	// R8 is the approximately median-unbiased estimator (Hyndman and Fan R8).
	R8
)

func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case Empirical:
		return "empirical"
	case R8:
		return "r8"
	}

	return "unknown"
}

// Quantile returns the q-th quantile of xs, q in [0, 1].
func Quantile(xs []float64, q float64, method Interpolation) (float64, error) {
	if math.IsNaN(q) || q < 0 || q > 1 {
		return 0, errors.Wrapf(ErrInvalidQuantile, "got %v", q)
	}
	sorted := cleanSorted(xs)
	if len(sorted) == 0 {
		return 0, ErrEmptySample
	}

	switch method {
	case Linear:
		return linearQuantile(sorted, q), nil
	case Empirical:
		return stat.Quantile(q, stat.Empirical, sorted, nil), nil
	case R8:
		return stats.Sample{Xs: sorted, Sorted: true}.Quantile(q), nil
	}

	return 0, errors.Errorf("unknown interpolation %d", method)
}

// linearQuantile expects sorted, NaN free, non empty input.
func linearQuantile(sorted []float64, q float64) float64 {
	h := float64(len(sorted)-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if h == lo || i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Quantiles returns the linear quantiles of xs for every q in qs.
func Quantiles(xs []float64, qs ...float64) ([]float64, error) {
	res := make([]float64, len(qs))
	for i, q := range qs {
		v, err := Quantile(xs, q, Linear)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}

	return res, nil
}

// IQR returns the interquartile range, Q(0.75) - Q(0.25).
func IQR(xs []float64) (float64, error) {
	qs, err := Quantiles(xs, 0.25, 0.75)
	if err != nil {
		return 0, err
	}

	return qs[1] - qs[0], nil
}
