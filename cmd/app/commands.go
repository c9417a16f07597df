package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credseal/cmd/app/commands"
	"github.com/allisson/credseal/internal/app"
	"github.com/allisson/credseal/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getCryptoCommands()...)
	cmds = append(cmds, getTokenCommands()...)
	cmds = append(cmds, getCredentialCommands()...)
	cmds = append(cmds, getWebhookCommands()...)
	return cmds
}

// withContainer loads configuration, runs fn with a fresh container and
// shuts the container down afterwards.
func withContainer(ctx context.Context, fn func(container *app.Container) error) error {
	container := app.NewContainer(config.Load())
	defer func() { _ = container.Shutdown(ctx) }()
	return fn(container)
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Value:   "text",
	Usage:   "Output format: 'text' or 'json'",
}

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				return withContainer(ctx, func(container *app.Container) error {
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				})
			},
		},
	}
}

func getCryptoCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-secret",
			Usage: "Generate a new master secret, optionally wrapped with a KMS key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "KMS key URI (e.g. base64key://..., gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					return commands.RunCreateMasterSecret(
						ctx,
						container.KMSService(),
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("kms-key-uri"),
					)
				})
			},
		},
		{
			Name:  "encrypt",
			Usage: "Seal stdin with the configured master secret and print the envelope",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					sealer, err := container.Sealer()
					if err != nil {
						return err
					}
					return commands.RunEncrypt(ctx, sealer, commands.DefaultIO())
				})
			},
		},
		{
			Name:  "decrypt",
			Usage: "Open the envelope on stdin and print the plaintext",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					sealer, err := container.Sealer()
					if err != nil {
						return err
					}
					return commands.RunDecrypt(ctx, sealer, commands.DefaultIO())
				})
			},
		},
	}
}

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-token",
			Usage: "Issue an API token for the credential endpoints",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable token name",
				},
				formatFlag,
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					tokenUseCase, err := container.TokenUseCase()
					if err != nil {
						return err
					}
					return commands.RunCreateToken(
						ctx,
						tokenUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("name"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "revoke-token",
			Usage: "Revoke an API token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Token ID (UUID)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					tokenUseCase, err := container.TokenUseCase()
					if err != nil {
						return err
					}
					return commands.RunRevokeToken(ctx, tokenUseCase, container.Logger(), cmd.String("id"))
				})
			},
		},
	}
}

func getCredentialCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "store-credential",
			Usage: "Store a credential whose value is read from stdin",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Credential name (e.g. stripe/secret, webhook/stripe)",
				},
				&cli.StringFlag{
					Name:     "kind",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "secret_key, publishable_key, restricted_key, webhook_secret or integration_token",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					credentialUseCase, err := container.CredentialUseCase()
					if err != nil {
						return err
					}
					return commands.RunStoreCredential(
						ctx,
						credentialUseCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("name"),
						cmd.String("kind"),
					)
				})
			},
		},
		{
			Name:  "reseal-credentials",
			Usage: "Re-encrypt every credential under the active master secret",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "concurrency",
					Aliases: []string{"c"},
					Value:   4,
					Usage:   "Envelopes resealed in parallel",
				},
				formatFlag,
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					credentialUseCase, err := container.CredentialUseCase()
					if err != nil {
						return err
					}
					return commands.RunResealCredentials(
						ctx,
						credentialUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						int(cmd.Int("concurrency")),
						cmd.String("format"),
					)
				})
			},
		},
	}
}

func getWebhookCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "sign-webhook",
			Usage: "Print a signature header for the payload on stdin",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "secret",
					Aliases:  []string{"s"},
					Required: true,
					Sources:  cli.EnvVars("WEBHOOK_SIGNING_SECRET"),
					Usage:    "Webhook signing secret (whsec_...)",
				},
				&cli.Int64Flag{
					Name:    "timestamp",
					Aliases: []string{"t"},
					Usage:   "Unix timestamp to sign at (default: now)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					return commands.RunSignWebhook(
						container.SignatureVerifier(),
						commands.DefaultIO(),
						cmd.String("secret"),
						cmd.Int64("timestamp"),
					)
				})
			},
		},
	}
}
