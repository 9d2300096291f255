package cli

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/pkg/dist"
)

const (
	opTable = "table"
	opGrid  = "grid"
)

type distFlags struct {
	n            int
	p            float64
	lower, upper float64
	loc, scale   float64
	mu, sigma    float64
	from, to     float64
	num          int
}

func (a *app) distCommand() *cobra.Command {
	f := &distFlags{}

	cmd := &cobra.Command{
		Use:   "dist <family> <op> [x...]",
		Short: "Query a binomial, uniform or normal distribution",
		Long: `Evaluate pmf, pdf, cdf, sf or ppf at every x. For ppf, x is a cumulative probability.

"table" lists the mass of every outcome of a binomial distribution and "grid" evaluates the
mass or density on --num evenly spaced points between --from and --to.`,
		Example: `  describe dist binomial pmf 3 --n 10 --p 0.8
  describe dist binomial cdf 7 --n 10 --p 0.8
  describe dist binomial table --n 10 --p 0.8
  describe dist uniform cdf 1 2 3 --loc 0 --scale 4
  describe dist normal sf 1300 --mu 1000 --sigma 200
  describe dist normal ppf 0.9 --mu 1000 --sigma 200`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := dist.ParseFamily(args[0])
			if err != nil {
				return err
			}
			d, err := f.build(cmd, family)
			if err != nil {
				return err
			}
			a.logger.Debug("distribution built", "dist", d.String())

			switch args[1] {
			case opTable:
				points, err := dist.Table(d)
				if err != nil {
					return err
				}

				return a.render(report.Points(points))
			case opGrid:
				xs, err := dist.Linspace(f.from, f.to, f.num)
				if err != nil {
					return err
				}

				return a.render(report.Points(dist.Density(d, xs)))
			}

			op, err := dist.ParseOp(args[1])
			if err != nil {
				return err
			}
			xs, err := parseFloats(args[2:])
			if err != nil {
				return err
			}
			if len(xs) == 0 {
				return errors.Errorf("%s needs at least one value", op)
			}
			results, err := dist.EvaluateAll(d, op, xs...)
			if err != nil {
				return err
			}

			return a.render(report.Results(results))
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.n, "n", 1, "binomial: number of trials")
	flags.Float64Var(&f.p, "p", 0.5, "binomial: probability of success")
	flags.Float64Var(&f.lower, "lower", 0, "uniform: lower bound")
	flags.Float64Var(&f.upper, "upper", 1, "uniform: upper bound")
	flags.Float64Var(&f.loc, "loc", 0, "uniform: lower bound, scipy style")
	flags.Float64Var(&f.scale, "scale", 1, "uniform: width, scipy style")
	flags.Float64Var(&f.mu, "mu", 0, "normal: mean")
	flags.Float64Var(&f.sigma, "sigma", 1, "normal: standard deviation")
	flags.Float64Var(&f.from, "from", 0, "grid: first point")
	flags.Float64Var(&f.to, "to", 1, "grid: last point")
	flags.IntVar(&f.num, "num", 11, "grid: number of points")

	return cmd
}

func (f *distFlags) build(cmd *cobra.Command, family dist.Family) (dist.Distribution, error) {
	switch family {
	case dist.BinomialFamily:
		return dist.NewBinomial(f.n, f.p)
	case dist.UniformFamily:
		if cmd.Flags().Changed("loc") || cmd.Flags().Changed("scale") {
			return dist.NewUniformLocScale(f.loc, f.scale)
		}

		return dist.NewUniform(f.lower, f.upper)
	case dist.NormalFamily:
		return dist.NewNormal(f.mu, f.sigma)
	}

	return nil, errors.Wrapf(dist.ErrUnknownFamily, "%q", family)
}

func parseFloats(args []string) ([]float64, error) {
	xs := make([]float64, len(args))
	for i, arg := range args {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q", arg)
		}
		xs[i] = x
	}

	return xs, nil
}
