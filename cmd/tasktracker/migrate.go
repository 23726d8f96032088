package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aloks98/tasktracker/internal/config"
	"github.com/aloks98/tasktracker/internal/logutil"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the users and tasks tables if they do not exist",
		Action: func(ctx *cli.Context) error {
			cfg, err := config.Load(ctx.String("env-file"))
			if err != nil {
				return err
			}
			logger, err := logutil.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Migrate(ctx.Context); err != nil {
				return err
			}
			logger.Info().Str("database", cfg.DatabaseDriver).Msg("Schema is up to date")
			return nil
		},
	}
}
