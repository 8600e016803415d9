package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	var (
		where   []string
		orderBy string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cond, err := a.condition(where)
			if err != nil {
				return err
			}
			rows, err := a.svc.List(cmd.Context(), cond, orderBy)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWORD\tDAY\tLEVEL\tMEANING")
			for _, r := range rows {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", r.WordID, r.Word, r.Day, a.levels.Name(r.Level), r.Meaning)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringArrayVar(&where, "where", nil, "condition column=value (repeatable)")
	cmd.Flags().StringVar(&orderBy, "order-by", "", "column to sort by")
	return cmd
}
