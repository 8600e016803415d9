package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("delete not confirmed; pass --yes to skip the prompt")

func (a *App) deleteCmd() *cobra.Command {
	var (
		where []string
		yes   bool
	)
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete matching words together with all their meanings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cond, err := a.condition(where)
			if err != nil {
				return err
			}

			if !yes {
				if !interactive(cmd.InOrStdin()) {
					return errNotConfirmed
				}
				what := "ALL words"
				if len(where) > 0 {
					what = fmt.Sprintf("words matching %v", where)
				}
				ok, err := Confirm(a.reader, "Delete "+what+"?", cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if !ok {
					return errNotConfirmed
				}
			}

			deleted, err := a.svc.Delete(cmd.Context(), cond)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "no rows matched")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&where, "where", nil, "condition column=value (repeatable)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
