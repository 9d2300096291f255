package dist

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform is the continuous uniform distribution on [Lower, Upper].
type Uniform struct {
	Lower, Upper float64

	d distuv.Uniform
}

// NewUniform returns the uniform distribution on [lower, upper].
func NewUniform(lower, upper float64) (*Uniform, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return nil, errors.Wrap(ErrInvalidParams, "uniform bounds must be finite")
	}
	if upper <= lower {
		return nil, errors.Wrapf(ErrInvalidScale, "upper bound %v must be greater than lower bound %v", upper, lower)
	}

	return &Uniform{
		Lower: lower,
		Upper: upper,
		d:     distuv.Uniform{Min: lower, Max: upper},
	}, nil
}

// NewUniformLocScale returns the uniform distribution on [loc, loc+scale].
func NewUniformLocScale(loc, scale float64) (*Uniform, error) {
	if !(scale > 0) {
		return nil, errors.Wrapf(ErrInvalidScale, "got %v", scale)
	}

	return NewUniform(loc, loc+scale)
}

func (u *Uniform) Family() Family { return UniformFamily }

func (u *Uniform) Discrete() bool { return false }

func (u *Uniform) String() string {
	return fmt.Sprintf("uniform(lower=%g, upper=%g)", u.Lower, u.Upper)
}

func (u *Uniform) Prob(x float64) float64 { return u.d.Prob(x) }

func (u *Uniform) CDF(x float64) float64 { return u.d.CDF(x) }

func (u *Uniform) SF(x float64) float64 { return u.d.Survival(x) }

func (u *Uniform) PPF(q float64) (float64, error) {
	if err := checkProbability(q); err != nil {
		return 0, err
	}

	return u.d.Quantile(q), nil
}

func (u *Uniform) Mean() float64 { return u.d.Mean() }

func (u *Uniform) StdDev() float64 { return u.d.StdDev() }
