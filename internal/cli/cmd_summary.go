package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/internal/stream/measure"
	"github.com/askiada/go-describe/pkg/profile"
)

func (a *app) summaryCommand() *cobra.Command {
	var (
		columns []string
		numeric bool
		top     int
	)

	cmd := &cobra.Command{
		Use:   "summary <csv>",
		Short: "Profile every column of a CSV file",
		Long: `Stream the file and profile every column: numeric columns get descriptive statistics,
the others get their most frequent values.

With --numeric the file is loaded as a dataframe and every numeric column gets the full summary
(quartiles, IQR, coefficient of variation, skewness, kurtosis, geometric mean).`,
		Example: `  describe summary sat.csv
  describe summary sat.csv --columns score,team --concurrency 4 --graph profile.dot
  describe summary sat.csv --numeric -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if numeric {
				ds, err := a.loadDataset(args[0])
				if err != nil {
					return err
				}
				summaries, err := ds.Describe()
				if err != nil {
					return err
				}

				return a.render(report.Summaries(summaries))
			}

			opts := []profile.Option{
				profile.WithConcurrency(a.cfg.Concurrency),
				profile.WithDelimiter(a.cfg.DelimiterRune()),
				profile.WithNaValues(a.cfg.NaValues),
				profile.WithColumns(columns...),
				profile.WithTop(top),
				profile.WithLogger(a.logger),
			}
			if a.cfg.Graph != "" {
				f, err := os.Create(a.cfg.Graph)
				if err != nil {
					return errors.Wrapf(err, "unable to create %s", a.cfg.Graph)
				}
				defer f.Close()
				opts = append(opts, profile.WithTiming(measure.NewTiming()), profile.WithGraph(f))
			}

			cols, err := profile.New(opts...).File(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return a.render(report.Profile(cols))
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "only profile these columns")
	cmd.Flags().BoolVar(&numeric, "numeric", false, "summarise the numeric columns of the loaded dataframe")
	cmd.Flags().IntVar(&top, "top", 10, "number of most frequent values kept per categorical column, negative for all")

	return cmd
}
