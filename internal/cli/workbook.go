package cli

import (
	"fmt"
	"time"

	"github.com/ahrism10M501/voca/internal/workbook"
	"github.com/spf13/cobra"
)

func (a *App) workbookCmd() *cobra.Command {
	var (
		kind    string
		tmpl    workbook.Template
		answers string
		where   []string
	)
	cmd := &cobra.Command{
		Use:   "workbook <path>",
		Short: "Generate a fill-in-the-blank study sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := workbook.ParseKind(kind)
			if err != nil {
				return err
			}
			tmpl.Kind = k
			if !cmd.Flags().Changed("seed") {
				tmpl.Seed = uint64(time.Now().UnixNano())
			}
			cond, err := a.condition(where)
			if err != nil {
				return err
			}

			wb, err := a.svc.Workbook(cmd.Context(), args[0], answers, tmpl, cond)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d questions to %s\n", len(wb.Questions), args[0])
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&kind, "kind", string(workbook.KindEn), "ko (blank the word), en (blank the meanings) or both")
	f.Float64Var(&tmpl.Ratio, "ratio", 0.5, "chance of blanking the word when --kind=both")
	f.IntVar(&tmpl.Limit, "limit", 0, "maximum number of words (0 for all)")
	f.Uint64Var(&tmpl.Seed, "seed", 0, "random seed for a reproducible sheet")
	f.BoolVar(&tmpl.Shuffle, "shuffle", true, "shuffle the words")
	f.StringVar(&tmpl.Blank, "blank", workbook.DefaultBlank, "placeholder for the hidden side")
	f.StringVar(&answers, "answers", "", "also write the answer key to this path")
	f.StringArrayVar(&where, "where", nil, "condition column=value (repeatable)")
	return cmd
}
