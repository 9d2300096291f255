package dist_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-describe/pkg/describe"
	"github.com/askiada/go-describe/pkg/dist"
)

func TestParseOp(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"pmf", "PDF", " cdf", "sf", "ppf"} {
		_, err := dist.ParseOp(name)
		assert.NoError(t, err, name)
	}

	_, err := dist.ParseOp("mgf")
	assert.ErrorIs(t, err, dist.ErrUnknownOp)
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	b, err := dist.NewBinomial(10, 0.8)
	require.NoError(t, err)
	n, err := dist.NewNormal(1000, 200)
	require.NoError(t, err)

	tcs := map[string]struct {
		d       dist.Distribution
		op      dist.Op
		x       float64
		want    float64
		wantErr error
	}{
		"binomial pmf":    {d: b, op: dist.OpPMF, x: 3, want: 0.000786432},
		"binomial cdf":    {d: b, op: dist.OpCDF, x: 7, want: 0.3222004736},
		"binomial sf":     {d: b, op: dist.OpSF, x: 3, want: 0.9991356416},
		"binomial ppf":    {d: b, op: dist.OpPPF, x: 0.5, want: 8},
		"binomial pdf":    {d: b, op: dist.OpPDF, x: 3, wantErr: dist.ErrUnknownOp},
		"normal pdf":      {d: n, op: dist.OpPDF, x: 1000, want: 1 / (200 * math.Sqrt(2*math.Pi))},
		"normal pmf":      {d: n, op: dist.OpPMF, x: 1000, wantErr: dist.ErrUnknownOp},
		"normal ppf":      {d: n, op: dist.OpPPF, x: 0.9, want: 1256.3103131},
		"ppf above one":   {d: n, op: dist.OpPPF, x: 1.1, wantErr: dist.ErrInvalidProbability},
		"unknown op":      {d: n, op: dist.Op("mgf"), x: 1, wantErr: dist.ErrUnknownOp},
		"normal sf above": {d: n, op: dist.OpSF, x: 1300, want: 0.0668072012688581},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res, err := dist.Evaluate(tc.d, tc.op, tc.x)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.d.String(), res.Dist)
			assert.Equal(t, tc.op, res.Op)
			assert.Equal(t, tc.x, res.X)
			assert.InDelta(t, tc.want, res.Value, 1e-7)
		})
	}
}

func TestEvaluateAll(t *testing.T) {
	t.Parallel()

	u, err := dist.NewUniformLocScale(0, 4)
	require.NoError(t, err)

	results, err := dist.EvaluateAll(u, dist.OpCDF, 1, 2, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, want := range []float64{0.25, 0.5, 0.75} {
		assert.InDelta(t, want, results[i].Value, tolerance)
	}

	_, err = dist.EvaluateAll(u, dist.OpPPF, 0.5, 2)
	assert.ErrorIs(t, err, dist.ErrInvalidProbability)
}

func TestLinspace(t *testing.T) {
	t.Parallel()

	xs, err := dist.Linspace(0, 1, 5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, xs, tolerance)

	xs, err = dist.Linspace(3, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, xs)

	_, err = dist.Linspace(0, 1, 0)
	assert.ErrorIs(t, err, dist.ErrInvalidParams)
}

func TestDensityAndTable(t *testing.T) {
	t.Parallel()

	u, err := dist.NewUniform(0, 4)
	require.NoError(t, err)

	points := dist.Density(u, []float64{-1, 2, 5})
	require.Len(t, points, 3)
	assert.Zero(t, points[0].Prob)
	assert.InDelta(t, 0.25, points[1].Prob, tolerance)
	assert.Zero(t, points[2].Prob)

	_, err = dist.Table(u)
	assert.ErrorIs(t, err, dist.ErrUnknownOp)

	b, err := dist.NewBinomial(10, 0.8)
	require.NoError(t, err)
	table, err := dist.Table(b)
	require.NoError(t, err)
	require.Len(t, table, 11)
	assert.Equal(t, 3.0, table[3].X)
	assert.InDelta(t, 0.000786432, table[3].Prob, tolerance)
	assert.InDelta(t, 0.1073741824, table[10].Prob, tolerance)
}

func TestZScoreAndStandardize(t *testing.T) {
	t.Parallel()

	z, err := dist.ZScore(800, 1000, 200)
	require.NoError(t, err)
	assert.InDelta(t, -1, z, tolerance)

	zs, err := dist.Standardize([]float64{800, 1000, 1300}, 1000, 200)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, 0, 1.5}, zs, tolerance)

	_, err = dist.ZScore(1, 0, 0)
	assert.ErrorIs(t, err, dist.ErrInvalidScale)
	_, err = dist.Standardize([]float64{1}, 0, -1)
	assert.ErrorIs(t, err, dist.ErrInvalidScale)
}

func TestFit(t *testing.T) {
	t.Parallel()

	scores := []float64{800, 1300, math.NaN(), 1200, 900, 1000}

	normal, err := dist.Fit(dist.NormalFamily, scores, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1040, normal.Mean(), tolerance)
	assert.InDelta(t, math.Sqrt(43000), normal.StdDev(), 1e-6)

	uniform, err := dist.Fit(dist.UniformFamily, scores, 0)
	require.NoError(t, err)
	assert.InDelta(t, 800, must(uniform.PPF(0)), tolerance)
	assert.InDelta(t, 1300, must(uniform.PPF(1)), tolerance)

	binomial, err := dist.Fit(dist.BinomialFamily, []float64{7, 8, 9, 8}, 10)
	require.NoError(t, err)
	assert.Equal(t, "binomial(n=10, p=0.8)", binomial.String())

	tcs := map[string]struct {
		family  dist.Family
		xs      []float64
		n       int
		wantErr error
	}{
		"empty":               {family: dist.NormalFamily, xs: []float64{math.NaN()}, wantErr: describe.ErrEmptySample},
		"single normal":       {family: dist.NormalFamily, xs: []float64{3}, wantErr: describe.ErrNotEnoughData},
		"constant uniform":    {family: dist.UniformFamily, xs: []float64{3, 3}, wantErr: dist.ErrInvalidScale},
		"binomial without n":  {family: dist.BinomialFamily, xs: []float64{1}, wantErr: dist.ErrInvalidTrials},
		"binomial not counts": {family: dist.BinomialFamily, xs: []float64{1.5}, n: 3, wantErr: dist.ErrInvalidParams},
		"binomial above n":    {family: dist.BinomialFamily, xs: []float64{4}, n: 3, wantErr: dist.ErrInvalidParams},
		"unknown family":      {family: dist.Family("gamma"), xs: []float64{1}, wantErr: dist.ErrUnknownFamily},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := dist.Fit(tc.family, tc.xs, tc.n)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func must(v float64, err error) float64 {
	if err != nil {
		panic(err)
	}

	return v
}
