package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/pkg/dataset"
	"github.com/askiada/go-describe/pkg/describe"
)

// where restricts a dataset to the rows matching column=value1,value2.
func where(ds *dataset.Dataset, filter string) (*dataset.Dataset, error) {
	if filter == "" {
		return ds, nil
	}
	column, values, ok := strings.Cut(filter, "=")
	if !ok || column == "" {
		return nil, errors.Errorf("filter %q is not column=value[,value...]", filter)
	}

	return ds.Filter(column, strings.Split(values, ","))
}

func (a *app) countsCommand() *cobra.Command {
	var (
		column string
		top    int
		split  string
		filter string
	)

	cmd := &cobra.Command{
		Use:   "counts <csv>",
		Short: "Count the values of a column",
		Example: `  describe counts survey.csv --column country --top 5
  describe counts survey.csv --column languages --split ';'
  describe counts survey.csv --column languages --split ';' --where country=France,Germany`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ds, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}
			ds, err = where(ds, filter)
			if err != nil {
				return err
			}

			var counts []describe.Count
			if split != "" {
				tokens, err := ds.Explode(column, split)
				if err != nil {
					return err
				}
				counts = describe.ValueCounts(tokens)
			} else {
				counts, err = ds.ValueCounts(column)
				if err != nil {
					return err
				}
			}

			return a.render(report.Counts(describe.Top(counts, top)))
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "column to count")
	cmd.Flags().IntVar(&top, "top", -1, "only keep the most frequent values, negative for all")
	cmd.Flags().StringVar(&split, "split", "", "split every cell on this separator before counting")
	cmd.Flags().StringVar(&filter, "where", "", "only count rows matching column=value[,value...]")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}
