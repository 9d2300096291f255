package dist

import (
	"math"

	"github.com/pkg/errors"

	"github.com/askiada/go-describe/pkg/describe"
)

// ZScore returns (x - mu) / sigma.
func ZScore(x, mu, sigma float64) (float64, error) {
	if !(sigma > 0) {
		return 0, errors.Wrapf(ErrInvalidScale, "standard deviation %v", sigma)
	}

	return (x - mu) / sigma, nil
}

// Standardize returns the z-score of every value of xs.
func Standardize(xs []float64, mu, sigma float64) ([]float64, error) {
	if !(sigma > 0) {
		return nil, errors.Wrapf(ErrInvalidScale, "standard deviation %v", sigma)
	}

	zs := make([]float64, len(xs))
	for i, x := range xs {
		zs[i] = (x - mu) / sigma
	}

	return zs, nil
}

// Fit estimates a distribution of the given family from a sample. NaN values are ignored.
//
// The normal distribution uses the sample mean and standard deviation (one degree of freedom),
// the uniform distribution uses the sample bounds and the binomial distribution keeps the
// number of trials n and estimates p as mean / n. n is ignored for the other families.
func Fit(family Family, xs []float64, n int) (Distribution, error) {
	xs = describe.Clean(xs)
	if len(xs) == 0 {
		return nil, describe.ErrEmptySample
	}

	switch family {
	case NormalFamily:
		mu, err := describe.Mean(xs)
		if err != nil {
			return nil, err
		}
		sigma, err := describe.StdDev(xs)
		if err != nil {
			return nil, errors.Wrap(err, "unable to estimate standard deviation")
		}

		return NewNormal(mu, sigma)
	case UniformFamily:
		lower, upper, err := describe.Bounds(xs)
		if err != nil {
			return nil, err
		}

		return NewUniform(lower, upper)
	case BinomialFamily:
		if n <= 0 {
			return nil, errors.Wrapf(ErrInvalidTrials, "fitting a binomial needs n > 0, got %d", n)
		}
		for _, x := range xs {
			if x < 0 || x > float64(n) || x != math.Floor(x) {
				return nil, errors.Wrapf(ErrInvalidParams, "observation %v is not a count in 0..%d", x, n)
			}
		}
		mean, err := describe.Mean(xs)
		if err != nil {
			return nil, err
		}

		return NewBinomial(n, mean/float64(n))
	}

	return nil, errors.Wrapf(ErrUnknownFamily, "%q", family)
}
