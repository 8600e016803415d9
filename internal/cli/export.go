package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		grouped bool
		where   []string
	)
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export stored pairs; the extension picks the format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cond, err := a.condition(where)
			if err != nil {
				return err
			}
			n, err := a.svc.Export(cmd.Context(), args[0], grouped, cond)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", n, args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&grouped, "grouped", false, "write one entry per word with its meanings joined")
	cmd.Flags().StringArrayVar(&where, "where", nil, "condition column=value (repeatable)")
	return cmd
}
