package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aloks98/tasktracker/internal/config"
	"github.com/aloks98/tasktracker/internal/httpapi"
	"github.com/aloks98/tasktracker/internal/httpserver"
	"github.com/aloks98/tasktracker/internal/logutil"
)

func serveCmd() *cli.Command {
	var addr string
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Address to listen on (overrides TASKTRACKER_ADDR)",
				Destination: &addr,
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.Load(ctx.String("env-file"))
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			logger, err := logutil.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			svc, err := buildService(ctx.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			logger.Info().
				Str("addr", cfg.Addr).
				Str("database", cfg.DatabaseDriver).
				Str("identity_cache", cfg.IdentityCache).
				Msg("Starting server")

			return httpserver.Serve(ctx.Context, cfg.Addr, httpapi.New(svc, logger))
		},
	}
}
