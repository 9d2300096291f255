package cli

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-describe/internal/report"
)

func (a *app) groupbyCommand() *cobra.Command {
	var by, value, filter string

	cmd := &cobra.Command{
		Use:     "groupby <csv>",
		Short:   "Summarise a numeric column per group",
		Example: `  describe groupby sat.csv --by team --value score`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ds, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}
			ds, err = where(ds, filter)
			if err != nil {
				return err
			}
			groups, err := ds.GroupSummary(by, value)
			if err != nil {
				return err
			}

			return a.render(report.Groups(groups))
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "column defining the groups")
	cmd.Flags().StringVar(&value, "value", "", "numeric column to summarise")
	cmd.Flags().StringVar(&filter, "where", "", "only use rows matching column=value[,value...]")
	_ = cmd.MarkFlagRequired("by")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}
