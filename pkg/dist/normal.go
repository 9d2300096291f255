package dist

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is the normal distribution with mean Mu and standard deviation Sigma.
type Normal struct {
	Mu, Sigma float64

	d distuv.Normal
}

// NewNormal returns the normal distribution N(mu, sigma).
func NewNormal(mu, sigma float64) (*Normal, error) {
	if math.IsNaN(mu) || math.IsInf(mu, 0) {
		return nil, errors.Wrapf(ErrInvalidParams, "mean must be finite, got %v", mu)
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, errors.Wrapf(ErrInvalidScale, "standard deviation %v", sigma)
	}

	return &Normal{
		Mu:    mu,
		Sigma: sigma,
		d:     distuv.Normal{Mu: mu, Sigma: sigma},
	}, nil
}

// StandardNormal returns N(0, 1).
func StandardNormal() *Normal {
	return &Normal{Mu: 0, Sigma: 1, d: distuv.UnitNormal}
}

func (n *Normal) Family() Family { return NormalFamily }

func (n *Normal) Discrete() bool { return false }

func (n *Normal) String() string {
	return fmt.Sprintf("normal(mu=%g, sigma=%g)", n.Mu, n.Sigma)
}

func (n *Normal) Prob(x float64) float64 { return n.d.Prob(x) }

func (n *Normal) CDF(x float64) float64 { return n.d.CDF(x) }

func (n *Normal) SF(x float64) float64 { return n.d.Survival(x) }

// PPF returns the quantile of q. PPF(0) and PPF(1) are -Inf and +Inf.
func (n *Normal) PPF(q float64) (float64, error) {
	if err := checkProbability(q); err != nil {
		return 0, err
	}

	switch q {
	case 0:
		return math.Inf(-1), nil
	case 1:
		return math.Inf(1), nil
	}

	return n.d.Quantile(q), nil
}

func (n *Normal) Mean() float64 { return n.Mu }

func (n *Normal) StdDev() float64 { return n.Sigma }

// ZScore returns how many standard deviations x lies from the mean of n.
func (n *Normal) ZScore(x float64) float64 {
	return (x - n.Mu) / n.Sigma
}
