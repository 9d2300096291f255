package describe

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix returns the Pearson correlation of every pair of columns.
// Each pair only uses the rows where both columns are present. Pairs with
// fewer than two complete rows or a constant column are NaN.
func CorrMatrix(columns [][]float64) (*mat.SymDense, error) {
	return pairwise(columns, func(x, y []float64) float64 {
		return stat.Correlation(x, y, nil)
	})
}

// CovMatrix returns the sample covariance of every pair of columns, using pairwise complete rows.
func CovMatrix(columns [][]float64) (*mat.SymDense, error) {
	return pairwise(columns, func(x, y []float64) float64 {
		return stat.Covariance(x, y, nil)
	})
}

func pairwise(columns [][]float64, fn func(x, y []float64) float64) (*mat.SymDense, error) {
	if len(columns) == 0 {
		return nil, ErrEmptySample
	}
	for i := range columns {
		if len(columns[i]) != len(columns[0]) {
			return nil, errors.Wrapf(ErrLengthMismatch, "column %d has %d rows, column 0 has %d", i, len(columns[i]), len(columns[0]))
		}
	}

	m := mat.NewSymDense(len(columns), nil)
	for i := range columns {
		for j := i; j < len(columns); j++ {
			x, y := complete(columns[i], columns[j])
			v := math.NaN()
			if len(x) >= 2 {
				v = fn(x, y)
			}
			m.SetSym(i, j, v)
		}
	}

	return m, nil
}

func complete(x, y []float64) ([]float64, []float64) {
	cx := make([]float64, 0, len(x))
	cy := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		cx = append(cx, x[i])
		cy = append(cy, y[i])
	}

	return cx, cy
}

// KDE estimates the density of xs at every point of grid with a Gaussian kernel and
// Scott's bandwidth. A constant sample has no bandwidth and returns ErrConstantSample.
func KDE(xs, grid []float64) ([]float64, error) {
	xs = Clean(xs)
	if len(xs) < 2 {
		return nil, errors.Wrap(ErrNotEnoughData, "density estimation needs at least 2 observations")
	}
	if constant(xs) {
		return nil, errors.Wrap(ErrConstantSample, "kernel bandwidth would be zero")
	}

	kde := &stats.KDE{Sample: stats.Sample{Xs: xs}}
	densities := make([]float64, len(grid))
	for i, x := range grid {
		densities[i] = kde.PDF(x)
	}

	return densities, nil
}
