package cli

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/pkg/dataset"
)

func (a *app) pivotCommand() *cobra.Command {
	var (
		index          []string
		columns, value string
		agg            string
		filter         string
	)

	cmd := &cobra.Command{
		Use:   "pivot <csv>",
		Short: "Aggregate a numeric column for every combination of index and column labels",
		Example: `  describe pivot fitness.csv --index product,gender --columns marital --values miles
  describe pivot fitness.csv --index product --columns gender --values income --agg len`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			aggregation, err := dataset.ParseAgg(agg)
			if err != nil {
				return err
			}
			ds, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}
			ds, err = where(ds, filter)
			if err != nil {
				return err
			}
			pivot, err := ds.Pivot(index, columns, value, aggregation)
			if err != nil {
				return err
			}

			return a.render((*report.Pivot)(pivot))
		},
	}

	cmd.Flags().StringSliceVar(&index, "index", nil, "columns giving the rows")
	cmd.Flags().StringVar(&columns, "columns", "", "column giving the columns")
	cmd.Flags().StringVar(&value, "values", "", "numeric column to aggregate")
	cmd.Flags().StringVar(&agg, "agg", string(dataset.AggMean), "mean, median, sum, count or len")
	cmd.Flags().StringVar(&filter, "where", "", "only use rows matching column=value[,value...]")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("columns")
	_ = cmd.MarkFlagRequired("values")

	return cmd
}
