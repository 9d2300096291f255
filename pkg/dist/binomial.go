package dist

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Binomial is the distribution of the number of successes in N independent trials
// that each succeed with probability P.
type Binomial struct {
	N int
	P float64

	d distuv.Binomial
}

// NewBinomial validates n and p and returns the matching distribution.
func NewBinomial(n int, p float64) (*Binomial, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidTrials, "got %d", n)
	}
	if err := checkProbability(p); err != nil {
		return nil, errors.Wrap(err, "success probability")
	}

	return &Binomial{
		N: n,
		P: p,
		d: distuv.Binomial{N: float64(n), P: p},
	}, nil
}

func (b *Binomial) Family() Family { return BinomialFamily }

func (b *Binomial) Discrete() bool { return true }

func (b *Binomial) String() string {
	return fmt.Sprintf("binomial(n=%d, p=%g)", b.N, b.P)
}

// Prob returns P(X = x). It is 0 for non-integer x and for x outside 0..N.
func (b *Binomial) Prob(x float64) float64 {
	if x < 0 || x > float64(b.N) || x != math.Floor(x) {
		return 0
	}
	// distuv divides by zero on the degenerate edges.
	switch b.P {
	case 0:
		if x == 0 {
			return 1
		}
		return 0
	case 1:
		if x == float64(b.N) {
			return 1
		}
		return 0
	}

	return b.d.Prob(x)
}

// CDF returns P(X <= x).
func (b *Binomial) CDF(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x < 0:
		return 0
	case x >= float64(b.N):
		return 1
	}
	switch b.P {
	case 0:
		return 1
	case 1:
		return 0
	}

	return b.d.CDF(math.Floor(x))
}

func (b *Binomial) SF(x float64) float64 {
	return 1 - b.CDF(x)
}

// PPF returns the smallest k in 0..N such that CDF(k) >= q.
func (b *Binomial) PPF(q float64) (float64, error) {
	if err := checkProbability(q); err != nil {
		return 0, err
	}

	// The CDF is monotonic, so a binary search over the support is enough.
	lo, hi := 0, b.N
	for lo < hi {
		mid := lo + (hi-lo)/2
		if b.CDF(float64(mid)) >= q {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return float64(lo), nil
}

func (b *Binomial) Mean() float64 { return float64(b.N) * b.P }

func (b *Binomial) StdDev() float64 { return math.Sqrt(float64(b.N) * b.P * (1 - b.P)) }

// Table returns P(X = k) for every k in 0..N.
func (b *Binomial) Table() []float64 {
	probs := make([]float64, b.N+1)
	for k := range probs {
		probs[k] = b.Prob(float64(k))
	}

	return probs
}
