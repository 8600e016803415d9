package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count stored words and meanings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "words: %d\nmeanings: %d\n", st.Words, st.Meanings)
			return nil
		},
	}
}
