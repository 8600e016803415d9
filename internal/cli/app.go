package cli

import (
	"bufio"

	"github.com/ahrism10M501/voca/internal/config"
	"github.com/ahrism10M501/voca/internal/logging"
	"github.com/ahrism10M501/voca/internal/models"
	"github.com/ahrism10M501/voca/internal/repositories/repomanager"
	"github.com/ahrism10M501/voca/internal/services"
	"github.com/spf13/cobra"
)

// App carries the state shared by all subcommands of one invocation.
type App struct {
	flags  *config.Flags
	cfg    *config.Config
	levels models.Levels
	log    logging.Logger
	svc    *services.VocabService
	reader *bufio.Reader
}

// NewRootCmd builds the voca command tree.
func NewRootCmd() *cobra.Command {
	a := &App{levels: models.DefaultLevels()}

	cmd := &cobra.Command{
		Use:           "voca",
		Short:         "Personal vocabulary manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	a.flags = config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		a.importCmd(),
		a.exportCmd(),
		a.listCmd(),
		a.updateCmd(),
		a.updateWordCmd(),
		a.deleteCmd(),
		a.workbookCmd(),
		a.statsCmd(),
	)
	return cmd
}

func (a *App) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags(), a.flags, a.levels)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.Setup(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	a.reader = bufio.NewReader(cmd.InOrStdin())

	m, err := repomanager.New(cfg.Driver, cfg.DSN,
		repomanager.WithLogger(a.log),
		repomanager.WithReconnect(cfg.ReconnectAttempts, cfg.ReconnectBackoff),
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := m.Ready(ctx); err != nil {
		return err
	}
	if err := m.Migrate(ctx); err != nil {
		return err
	}

	a.svc = services.NewVocabService(m, a.levels, a.log)
	return nil
}
