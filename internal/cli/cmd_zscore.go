package cli

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/pkg/dist"
)

type zscore struct {
	X   float64 `json:"x" yaml:"x"`
	Z   float64 `json:"z" yaml:"z"`
	CDF float64 `json:"cdf" yaml:"cdf"`
}

type zscores []zscore

func (z zscores) TableHeader() []string { return []string{"x", "z", "cdf"} }

func (z zscores) TableRows() [][]string {
	rows := make([][]string, len(z))
	for i, s := range z {
		rows[i] = []string{report.FormatFloat(s.X), report.FormatFloat(s.Z), report.FormatFloat(s.CDF)}
	}

	return rows
}

func (a *app) zscoreCommand() *cobra.Command {
	var mean, std float64

	cmd := &cobra.Command{
		Use:     "zscore <x...>",
		Short:   "Standardise values and give their standard normal cumulative probability",
		Example: `  describe zscore 800 1300 --mean 1000 --std 200`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			xs, err := parseFloats(args)
			if err != nil {
				return err
			}
			zs, err := dist.Standardize(xs, mean, std)
			if err != nil {
				return err
			}

			standard := dist.StandardNormal()
			out := make(zscores, len(xs))
			for i := range xs {
				out[i] = zscore{X: xs[i], Z: zs[i], CDF: standard.CDF(zs[i])}
			}

			return a.render(out)
		},
	}

	cmd.Flags().Float64Var(&mean, "mean", 0, "mean of the population")
	cmd.Flags().Float64Var(&std, "std", 1, "standard deviation of the population")

	return cmd
}
