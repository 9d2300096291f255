package cli

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/pkg/describe"
	"github.com/askiada/go-describe/pkg/dist"
)

// fitResult is a distribution fitted to a column and the queries run against it.
type fitResult struct {
	Column  string        `json:"column" yaml:"column"`
	Dist    string        `json:"dist" yaml:"dist"`
	Mean    float64       `json:"mean" yaml:"mean"`
	Std     float64       `json:"std" yaml:"std"`
	Queries []dist.Result `json:"queries,omitempty" yaml:"queries,omitempty"`
	Grid    []dist.Point  `json:"grid,omitempty" yaml:"grid,omitempty"`
}

func (r *fitResult) TableHeader() []string { return []string{"dist", "op", "x", "value"} }

func (r *fitResult) TableRows() [][]string {
	rows := [][]string{
		{r.Dist, "mean", "", report.FormatFloat(r.Mean)},
		{r.Dist, "std", "", report.FormatFloat(r.Std)},
	}
	for _, q := range r.Queries {
		rows = append(rows, []string{r.Dist, string(q.Op), report.FormatFloat(q.X), report.FormatFloat(q.Value)})
	}
	for _, pt := range r.Grid {
		rows = append(rows, []string{r.Dist, "prob", report.FormatFloat(pt.X), report.FormatFloat(pt.Prob)})
	}

	return rows
}

type fitFlags struct {
	column string
	family string
	n      int
	cdf    []float64
	sf     []float64
	ppf    []float64
	prob   []float64
	grid   int
}

func (a *app) fitCommand() *cobra.Command {
	f := &fitFlags{}

	cmd := &cobra.Command{
		Use:   "fit <csv>",
		Short: "Fit a distribution to a numeric column and query it",
		Long: `Fit a normal (sample mean and standard deviation), uniform (sample bounds) or binomial
(p = mean / n) distribution to a column, then evaluate the requested probabilities.`,
		Example: `  describe fit sat.csv --column score --cdf 800 --sf 1300 --ppf 0.9
  describe fit sat.csv --column score --family uniform --grid 10
  describe fit heads.csv --column heads --family binomial --n 10 --prob 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			family, err := dist.ParseFamily(f.family)
			if err != nil {
				return err
			}
			ds, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}
			xs, err := ds.Floats(f.column)
			if err != nil {
				return err
			}
			d, err := dist.Fit(family, xs, f.n)
			if err != nil {
				return err
			}
			a.logger.Debug("distribution fitted", "column", f.column, "dist", d.String())

			res := &fitResult{Column: f.column, Dist: d.String(), Mean: d.Mean(), Std: d.StdDev()}
			probOp := dist.OpPDF
			if d.Discrete() {
				probOp = dist.OpPMF
			}
			for _, q := range []struct {
				op dist.Op
				xs []float64
			}{{probOp, f.prob}, {dist.OpCDF, f.cdf}, {dist.OpSF, f.sf}, {dist.OpPPF, f.ppf}} {
				results, err := dist.EvaluateAll(d, q.op, q.xs...)
				if err != nil {
					return err
				}
				res.Queries = append(res.Queries, results...)
			}

			if f.grid > 0 {
				res.Grid, err = grid(d, xs, f.grid)
				if err != nil {
					return err
				}
			}

			return a.render(res)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.column, "column", "", "numeric column to fit")
	flags.StringVar(&f.family, "family", string(dist.NormalFamily), "distribution family: binomial, uniform or normal")
	flags.IntVar(&f.n, "n", 0, "binomial: number of trials")
	flags.Float64SliceVar(&f.prob, "prob", nil, "evaluate the mass or density at these values")
	flags.Float64SliceVar(&f.cdf, "cdf", nil, "evaluate P(X <= x) at these values")
	flags.Float64SliceVar(&f.sf, "sf", nil, "evaluate P(X > x) at these values")
	flags.Float64SliceVar(&f.ppf, "ppf", nil, "find the values reaching these cumulative probabilities")
	flags.IntVar(&f.grid, "grid", 0, "evaluate the mass or density on this many points spanning the sample")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

// grid spans the observed range. Discrete distributions are evaluated on every outcome instead.
func grid(d dist.Distribution, xs []float64, num int) ([]dist.Point, error) {
	if d.Discrete() {
		return dist.Table(d)
	}

	lower, upper, err := describe.Bounds(xs)
	if err != nil {
		return nil, err
	}
	span, err := dist.Linspace(lower, upper, num)
	if err != nil {
		return nil, err
	}

	return dist.Density(d, span), nil
}
