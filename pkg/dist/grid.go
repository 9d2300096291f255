package dist

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Point is a single evaluation of a probability function.
type Point struct {
	X    float64 `json:"x" yaml:"x"`
	Prob float64 `json:"prob" yaml:"prob"`
}

// Linspace returns num evenly spaced values over [a, b], both ends included.
func Linspace(a, b float64, num int) ([]float64, error) {
	if num < 1 {
		return nil, errors.Wrapf(ErrInvalidParams, "linspace needs at least one point, got %d", num)
	}
	if num == 1 {
		return []float64{a}, nil
	}

	return floats.Span(make([]float64, num), a, b), nil
}

// Density evaluates d.Prob at every x.
func Density(d Distribution, xs []float64) []Point {
	points := make([]Point, len(xs))
	for i, x := range xs {
		points[i] = Point{X: x, Prob: d.Prob(x)}
	}

	return points
}

// Table returns the probability mass of every outcome of a binomial distribution.
// Continuous distributions have no finite support to enumerate.
func Table(d Distribution) ([]Point, error) {
	b, ok := d.(*Binomial)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownOp, "%s has no finite support", d.Family())
	}

	probs := b.Table()
	points := make([]Point, len(probs))
	for k, p := range probs {
		points[k] = Point{X: float64(k), Prob: p}
	}

	return points, nil
}
