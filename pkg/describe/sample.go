package describe

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptySample     = errors.New("sample is empty")
	ErrNotEnoughData   = errors.New("not enough observations")
	ErrInvalidQuantile = errors.New("quantile must be within [0, 1]")
	ErrLengthMismatch  = errors.New("columns must have the same length")
	ErrConstantSample  = errors.New("every observation has the same value")
)

// Clean returns the values of xs that are not NaN. xs is never modified.
func Clean(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}

	return out
}

func cleanSorted(xs []float64) []float64 {
	out := Clean(xs)
	sort.Float64s(out)

	return out
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	xs = Clean(xs)
	if len(xs) == 0 {
		return 0, ErrEmptySample
	}

	return stat.Mean(xs, nil), nil
}

// Median returns the 50th percentile of xs.
func Median(xs []float64) (float64, error) {
	return Quantile(xs, 0.5, Linear)
}

// Variance returns the unbiased sample variance of xs.
func Variance(xs []float64) (float64, error) {
	xs = Clean(xs)
	switch len(xs) {
	case 0:
		return 0, ErrEmptySample
	case 1:
		return 0, errors.Wrap(ErrNotEnoughData, "variance needs at least 2 observations")
	}

	return stat.Variance(xs, nil), nil
}

// StdDev returns the sample standard deviation of xs.
func StdDev(xs []float64) (float64, error) {
	v, err := Variance(xs)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(v), nil
}

// CV returns the coefficient of variation, the standard deviation divided by the mean.
func CV(xs []float64) (float64, error) {
	sd, err := StdDev(xs)
	if err != nil {
		return 0, err
	}
	mean, err := Mean(xs)
	if err != nil {
		return 0, err
	}

	return sd / mean, nil
}

// constant expects NaN free input.
func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}

	return true
}

// Skew returns the adjusted sample skewness of xs. A constant sample has no skew.
func Skew(xs []float64) (float64, error) {
	xs = Clean(xs)
	if len(xs) < 3 {
		return 0, errors.Wrap(ErrNotEnoughData, "skewness needs at least 3 observations")
	}
	if constant(xs) {
		return 0, nil
	}

	return stat.Skew(xs, nil), nil
}

// Kurtosis returns the adjusted sample excess kurtosis of xs, 0 for a constant sample.
func Kurtosis(xs []float64) (float64, error) {
	xs = Clean(xs)
	if len(xs) < 4 {
		return 0, errors.Wrap(ErrNotEnoughData, "kurtosis needs at least 4 observations")
	}
	if constant(xs) {
		return 0, nil
	}

	return stat.ExKurtosis(xs, nil), nil
}

// Bounds returns the minimum and maximum of xs.
func Bounds(xs []float64) (float64, float64, error) {
	xs = Clean(xs)
	if len(xs) == 0 {
		return 0, 0, ErrEmptySample
	}
	lo, hi := stats.Sample{Xs: xs}.Bounds()

	return lo, hi, nil
}

// GeoMean returns the geometric mean of xs. It is NaN when a value is not positive.
func GeoMean(xs []float64) (float64, error) {
	xs = Clean(xs)
	if len(xs) == 0 {
		return 0, ErrEmptySample
	}
	for _, x := range xs {
		if x <= 0 {
			return math.NaN(), nil
		}
	}

	return stats.Sample{Xs: xs}.GeoMean(), nil
}

// Modes returns every value of xs that occurs the most, in ascending order.
func Modes(xs []float64) ([]float64, error) {
	xs = cleanSorted(xs)
	if len(xs) == 0 {
		return nil, ErrEmptySample
	}

	var modes []float64
	best, run := 0, 0
	prev := math.NaN()
	for _, x := range xs {
		if x == prev {
			run++
		} else {
			run = 1
			prev = x
		}
		switch {
		case run > best:
			best = run
			modes = append(modes[:0], x)
		case run == best:
			modes = append(modes, x)
		}
	}

	return modes, nil
}
