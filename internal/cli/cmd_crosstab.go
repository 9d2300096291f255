package cli

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/pkg/describe"
)

func (a *app) crosstabCommand() *cobra.Command {
	var (
		index, columns string
		normalize      string
		top            int
		filter         string
	)

	cmd := &cobra.Command{
		Use:   "crosstab <csv>",
		Short: "Build the contingency table of two columns",
		Example: `  describe crosstab survey.csv --index country --columns remote
  describe crosstab survey.csv --index country --columns remote --top 5 --normalize index`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			norm, err := describe.ParseNormalize(normalize)
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
			if top >= 0 {
				ds, err = ds.TopFilter(index, top)
				if err != nil {
					return err
				}
			}

			ct, err := ds.Crosstab(index, columns, norm)
			if err != nil {
				return err
			}

			return a.render((*report.Crosstab)(ct))
		},
	}

	cmd.Flags().StringVar(&index, "index", "", "column giving the rows")
	cmd.Flags().StringVar(&columns, "columns", "", "column giving the columns")
	cmd.Flags().StringVar(&normalize, "normalize", "none", "none, index (rows sum to 1), columns or all")
	cmd.Flags().IntVar(&top, "top", -1, "only keep the rows of the most frequent index values")
	cmd.Flags().StringVar(&filter, "where", "", "only use rows matching column=value[,value...]")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}
