package cli

import (
	"fmt"

	"github.com/ahrism10M501/voca/internal/filex"
	"github.com/spf13/cobra"
)

func (a *App) importCmd() *cobra.Command {
	var (
		level string
		day   int
	)
	cmd := &cobra.Command{
		Use:   "import <pattern...>",
		Short: "Import word files; patterns may use ** globs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("level") {
				level = a.cfg.DefaultLevel
			}
			if !cmd.Flags().Changed("day") {
				day = a.cfg.DefaultDay
			}
			lvl, err := a.levels.Parse(level)
			if err != nil {
				return err
			}

			paths, err := filex.Expand(args)
			if err != nil {
				return err
			}
			total := 0
			for _, p := range paths {
				n, err := a.svc.Import(cmd.Context(), p, lvl, day)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pairs\n", p, n)
				total += n
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d pairs from %d files\n", total, len(paths))
			return nil
		},
	}
	cmd.Flags().StringVar(&level, "level", "", "level name or number for the imported words")
	cmd.Flags().IntVar(&day, "day", 0, "study day for the imported words")
	return cmd
}
