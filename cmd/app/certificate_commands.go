package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pidseal/cmd/app/commands"
	"github.com/allisson/pidseal/internal/app"
	"github.com/allisson/pidseal/internal/config"
)

func getCertificateCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "certificate-info",
			Usage: "Show the configured trust certificate and its identifier",
			Flags: []cli.Flag{
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

				certificate, err := container.TrustCertificate()
				if err != nil {
					return err
				}

				return commands.RunCertificateInfo(
					certificate,
					time.Now(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-test-certificate",
			Usage: "Generate a self-signed RSA certificate and private key for local development",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "common-name",
					Value: "pidseal-test-authority",
					Usage: "Certificate subject common name",
				},
				&cli.IntFlag{
					Name:  "bits",
					Value: 2048,
					Usage: "RSA modulus size in bits",
				},
				&cli.IntFlag{
					Name:  "validity-days",
					Value: 365,
					Usage: "Days until the certificate expires",
				},
				&cli.StringFlag{
					Name:     "cert-out",
					Required: true,
					Usage:    "Path to write the PEM certificate",
				},
				&cli.StringFlag{
					Name:     "key-out",
					Required: true,
					Usage:    "Path to write the PKCS#8 PEM private key",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "Encrypt the private key with this KMS key (e.g., base64key://, gcpkms://...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateTestCertificate(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.TestCertificateOptions{
						CommonName:   cmd.String("common-name"),
						Bits:         int(cmd.Int("bits")),
						ValidityDays: int(cmd.Int("validity-days")),
						CertOut:      cmd.String("cert-out"),
						KeyOut:       cmd.String("key-out"),
						KMSKeyURI:    cmd.String("kms-key-uri"),
					},
				)
			},
		},
	}
}
