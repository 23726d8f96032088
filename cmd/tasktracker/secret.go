package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/aloks98/tasktracker/internal/crypto"
)

func genSecretCmd() *cli.Command {
	bytes := crypto.DefaultSecretBytes
	return &cli.Command{
		Name:  "gen-secret",
		Usage: "Print a random value suitable for JWT_SECRET",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "bytes",
				Usage:       "Number of random bytes to encode",
				Value:       bytes,
				Destination: &bytes,
			},
		},
		Action: func(ctx *cli.Context) error {
			secret, err := crypto.GenerateSecret(bytes)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(ctx.App.Writer, secret)
			return err
		},
	}
}
