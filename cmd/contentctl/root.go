package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio-api/adapters/persistence"
	contentUC "github.com/khoahotran/portfolio-api/internal/application/usecase/content"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type rootOptions struct {
	configDir string
	backend   string
	verbose   bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "contentctl",
		Short:         "Maintain the portfolio content storage",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".", "directory holding config.yaml and .env")
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "override storage.backend (redis or postgres)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	cmd.AddCommand(
		newExportCommand(opts),
		newResetCommand(opts),
		newVersionCommand(opts),
		newMigrateCommand(opts),
	)
	return cmd
}

// session is what every subcommand needs: config, a logger and an open
// content storage.
type session struct {
	cfg     config.Config
	logger  logger.Logger
	storage content.Storage
	close   func()
}

func (o *rootOptions) open(ctx context.Context) (*session, error) {
	cfg, err := config.LoadConfig(o.configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}

	log := logger.NewNopLogger()
	if o.verbose {
		log = logger.NewZapLogger("development")
	}

	storage, closeFn, err := persistence.OpenContentStorage(ctx, cfg, log, nil)
	if err != nil {
		return nil, fmt.Errorf("open content storage: %w", err)
	}
	return &session{cfg: cfg, logger: log, storage: storage, close: closeFn}, nil
}

func (s *session) loadStore(ctx context.Context) *contentUC.Store {
	store := contentUC.NewStore(s.storage, s.logger)
	store.Init(ctx)
	return store
}
