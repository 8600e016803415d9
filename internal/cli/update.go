package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) updateCmd() *cobra.Command {
	var where, set []string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Set columns on every row matching the condition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cond, err := a.condition(where)
			if err != nil {
				return err
			}
			data, err := a.assignments(set)
			if err != nil {
				return err
			}
			changed, err := a.svc.Update(cmd.Context(), cond, data)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "no rows matched")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "updated")
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&where, "where", nil, "condition column=value (repeatable)")
	cmd.Flags().StringArrayVar(&set, "set", nil, "assignment column=value (repeatable)")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

func (a *App) updateWordCmd() *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "update-word <word> <column> <value>",
		Short: "Change one column of a word; --index picks the meaning",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			word, column := args[0], args[1]
			v, err := a.value(column, args[2])
			if err != nil {
				return err
			}
			if err := a.svc.UpdateByWord(cmd.Context(), word, column, v, index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", word)
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "meaning position, starting at 0")
	return cmd
}
