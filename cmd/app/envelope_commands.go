package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pidseal/cmd/app/commands"
	"github.com/allisson/pidseal/internal/app"
	"github.com/allisson/pidseal/internal/config"
)

func getEnvelopeCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seal",
			Usage: "Seal a PID payload with the configured trust certificate",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "payload",
					Aliases: []string{"p"},
					Value:   "-",
					Usage:   "File holding the canonical PID bytes ('-' reads stdin)",
				},
				&cli.StringFlag{
					Name:     "timestamp",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Request timestamp, at least 16 bytes (e.g., 2023-10-27T12:00:00)",
				},
				&cli.StringFlag{
					Name:    "data-type",
					Aliases: []string{"d"},
					Value:   "",
					Usage:   "Data type attribute: 'X' or 'P' (defaults to DEFAULT_DATA_TYPE)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "json",
					Usage:   "Output format: 'json' or 'xml'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				cfg.MetricsEnabled = false
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				sealUseCase, err := container.SealUseCase()
				if err != nil {
					return err
				}

				return commands.RunSeal(
					ctx,
					sealUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("payload"),
					cmd.String("timestamp"),
					cmd.String("data-type"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "open",
			Usage: "Verify a sealed envelope with the configured verifier private key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "envelope",
					Aliases: []string{"e"},
					Value:   "-",
					Usage:   "File holding the envelope JSON ('-' reads stdin)",
				},
				&cli.StringFlag{
					Name:     "timestamp",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Timestamp the envelope was sealed with",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				cfg.MetricsEnabled = false
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				verifyUseCase, err := container.VerifyUseCase()
				if err != nil {
					return err
				}

				return commands.RunOpen(
					ctx,
					verifyUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("envelope"),
					cmd.String("timestamp"),
					cmd.String("format"),
				)
			},
		},
	}
}
