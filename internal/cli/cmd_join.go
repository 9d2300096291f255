package cli

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/pkg/dataset"
)

func (a *app) joinCommand() *cobra.Command {
	var (
		on  []string
		how string
	)

	cmd := &cobra.Command{
		Use:   "join <left.csv> <right.csv>",
		Short: "Merge two CSV files on key columns",
		Long:  `Rows without a match on the other side are kept by left, right and outer joins, with missing cells.`,
		Example: `  describe join students.csv scores.csv --on id
  describe join students.csv scores.csv --on id --how outer -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			kind, err := dataset.ParseJoin(how)
			if err != nil {
				return err
			}
			left, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}
			right, err := a.loadDataset(args[1])
			if err != nil {
				return err
			}
			joined, err := left.Join(right, on, kind)
			if err != nil {
				return err
			}

			rows, _ := joined.Dims()
			a.logger.Debug("datasets joined", "how", kind, "rows", rows)

			return a.render((*report.Frame)(joined))
		},
	}

	cmd.Flags().StringSliceVar(&on, "on", nil, "key columns present in both files")
	cmd.Flags().StringVar(&how, "how", string(dataset.InnerJoin), "inner, left, right or outer")
	_ = cmd.MarkFlagRequired("on")

	return cmd
}
