package dist

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidProbability = errors.New("probability must be within [0, 1]")
	ErrInvalidTrials      = errors.New("number of trials must be positive or zero")
	ErrInvalidScale       = errors.New("scale must be greater than 0")
	ErrInvalidParams      = errors.New("invalid distribution parameters")
	ErrUnknownFamily      = errors.New("unknown distribution family")
	ErrUnknownOp          = errors.New("unknown operation")
)

// Family names a distribution family.
type Family string

const (
	BinomialFamily Family = "binomial"
	UniformFamily  Family = "uniform"
	NormalFamily   Family = "normal"
)

// ParseFamily returns the family matching name. It accepts the scipy short names as aliases.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "binomial", "binom":
		return BinomialFamily, nil
	case "uniform", "unif":
		return UniformFamily, nil
	case "normal", "norm", "gaussian":
		return NormalFamily, nil
	}

	return "", errors.Wrapf(ErrUnknownFamily, "%q", name)
}

// Distribution is a fully parameterised probability distribution.
type Distribution interface {
	fmt.Stringer
	// Family returns the family the distribution belongs to.
	Family() Family
	// Discrete reports whether Prob is a mass function rather than a density.
	Discrete() bool
	// Prob returns the probability mass at x for discrete distributions and the density at x otherwise.
	Prob(x float64) float64
	// CDF returns P(X <= x).
	CDF(x float64) float64
	// SF returns P(X > x).
	SF(x float64) float64
	// PPF returns the value at which the cumulative probability q is reached.
	PPF(q float64) (float64, error)
	Mean() float64
	StdDev() float64
}

// New builds a distribution of the given family from positional parameters:
// (n, p) for binomial, (lower, upper) for uniform and (mu, sigma) for normal.
func New(family Family, params ...float64) (Distribution, error) {
	if len(params) != 2 {
		return nil, errors.Wrapf(ErrInvalidParams, "%s expects 2 parameters, got %d", family, len(params))
	}

	switch family {
	case BinomialFamily:
		n := params[0]
		if n != math.Trunc(n) {
			return nil, errors.Wrapf(ErrInvalidTrials, "n=%v is not an integer", n)
		}

		return NewBinomial(int(n), params[1])
	case UniformFamily:
		return NewUniform(params[0], params[1])
	case NormalFamily:
		return NewNormal(params[0], params[1])
	}

	return nil, errors.Wrapf(ErrUnknownFamily, "%q", family)
}

func checkProbability(q float64) error {
	if math.IsNaN(q) || q < 0 || q > 1 {
		return errors.Wrapf(ErrInvalidProbability, "got %v", q)
	}

	return nil
}
