package cli

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/pkg/dataset"
)

func (a *app) corrCommand() *cobra.Command {
	var cov bool

	cmd := &cobra.Command{
		Use:   "corr <csv>",
		Short: "Correlation or covariance of every pair of numeric columns",
		Long:  `Every pair only uses the rows where both columns have a value.`,
		Example: `  describe corr sat.csv
  describe corr sat.csv --cov -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ds, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}

			var m *dataset.Matrix
			if cov {
				m, err = ds.Cov()
			} else {
				m, err = ds.Corr()
			}
			if err != nil {
				return err
			}

			return a.render((*report.Matrix)(m))
		},
	}

	cmd.Flags().BoolVar(&cov, "cov", false, "compute the sample covariance instead of the correlation")

	return cmd
}
