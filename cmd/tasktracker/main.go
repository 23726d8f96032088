// Command tasktracker serves the task tracker HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tasktracker",
		Usage: "Multi-user task tracker with token authentication",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Dotenv file to load before reading the environment",
				EnvVars: []string{"TASKTRACKER_ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			genSecretCmd(),
		},
	}
}
