package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio-api/adapters/persistence"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/snapshot"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current content as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := snapshot.ParseFormat(format)
			if err != nil {
				return err
			}

			sess, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()

			uc := snapshot.NewSnapshotUseCase(sess.loadStore(cmd.Context()), nil, "", sess.logger)
			export, err := uc.Export(cmd.Context(), f)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(append(export.Body, '\n'))
				return err
			}
			if err := os.WriteFile(out, export.Body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(snapshot.FormatJSON), "json or bundle")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all stored content with the bundled defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset discards every edit; pass --yes to confirm")
			}

			sess, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()

			data := sess.loadStore(cmd.Context()).ResetToDefaults(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "reset to defaults: %d projects, %d experience, %d achievements\n",
				len(data.Projects), len(data.Experience), len(data.Achievements))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newVersionCommand(opts *rootOptions) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the content schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "bundled: %s\n", content.CurrentVersion)
			if !remote {
				return nil
			}

			sess, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.close()

			stored, err := sess.storage.Get(cmd.Context(), content.KeyVersion)
			switch {
			case errors.Is(err, content.ErrKeyNotFound):
				stored = "(none)"
			case err != nil:
				return fmt.Errorf("read version marker: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored:  %s\n", stored)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "stored", false, "also read the marker from content storage")
	return cmd
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the postgres content table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.DB.DSN == "" {
				return errors.New("db.dsn (DB_DSN) is not set")
			}

			log := logger.NewNopLogger()
			if opts.verbose {
				log = logger.NewZapLogger("development")
			}
			if err := persistence.MigrateUp(dir, cfg.DB.DSN, log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory holding the SQL migrations")
	return cmd
}
