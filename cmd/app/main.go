// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/kms/cmd/app/commands"
	"github.com/allisson/kms/internal/app"
	"github.com/allisson/kms/internal/config"
	envelopeUseCase "github.com/allisson/kms/internal/envelope/usecase"
	kmsUseCase "github.com/allisson/kms/internal/kms/usecase"
)

// withKMSUseCase builds the container and runs an action with the KMS use case.
func withKMSUseCase(fn func(ctx context.Context, useCase kmsUseCase.KMSUseCase, container *app.Container) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		container := app.NewContainer(config.Load())
		useCase, err := container.KMSUseCase()
		if err != nil {
			return err
		}
		return fn(ctx, useCase, container)
	}
}

// withEnvelopeUseCase builds the container and runs an action with the envelope use case.
func withEnvelopeUseCase(fn func(ctx context.Context, useCase envelopeUseCase.EnvelopeUseCase, container *app.Container) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		container := app.NewContainer(config.Load())
		useCase, err := container.EnvelopeUseCase()
		if err != nil {
			return err
		}
		return fn(ctx, useCase, container)
	}
}

func main() {
	keyIDFlag := &cli.StringFlag{
		Name:     "key-id",
		Aliases:  []string{"k"},
		Required: true,
		Usage:    "Key identifier (lowercase hyphenated UUID)",
	}
	mnemonicFlag := &cli.StringFlag{
		Name:     "mnemonic",
		Aliases:  []string{"m"},
		Required: true,
		Usage:    "24-word recovery mnemonic",
	}
	contextFlag := &cli.StringSliceFlag{
		Name:  "context",
		Usage: "Encryption context pair as key=value (repeatable)",
	}

	var cmdRef *cli.Command
	cmdRef = &cli.Command{
		Name:    "kms",
		Usage:   "Local key management service with envelope encryption",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, cmdRef.Version)
				},
			},
			{
				Name:  "create-key",
				Usage: "Create a new encryption key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Human-readable key description",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withKMSUseCase(func(ctx context.Context, useCase kmsUseCase.KMSUseCase, container *app.Container) error {
						return commands.RunCreateKey(ctx, useCase, container.Logger(), commands.DefaultIO(), cmd.String("description"))
					})(ctx, cmd)
				},
			},
			{
				Name:  "list-keys",
				Usage: "List all keys",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withKMSUseCase(func(ctx context.Context, useCase kmsUseCase.KMSUseCase, container *app.Container) error {
						return commands.RunListKeys(ctx, useCase, commands.DefaultIO())
					})(ctx, cmd)
				},
			},
			{
				Name:  "describe-key",
				Usage: "Show the metadata of a key",
				Flags: []cli.Flag{keyIDFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withKMSUseCase(func(ctx context.Context, useCase kmsUseCase.KMSUseCase, container *app.Container) error {
						return commands.RunDescribeKey(ctx, useCase, commands.DefaultIO(), cmd.String("key-id"))
					})(ctx, cmd)
				},
			},
			{
				Name:  "enable-key",
				Usage: "Enable a key",
				Flags: []cli.Flag{keyIDFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withKMSUseCase(func(ctx context.Context, useCase kmsUseCase.KMSUseCase, container *app.Container) error {
						return commands.RunEnableKey(ctx, useCase, container.Logger(), cmd.String("key-id"))
					})(ctx, cmd)
				},
			},
			{
				Name:  "disable-key",
				Usage: "Disable a key",
				Flags: []cli.Flag{keyIDFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withKMSUseCase(func(ctx context.Context, useCase kmsUseCase.KMSUseCase, container *app.Container) error {
						return commands.RunDisableKey(ctx, useCase, container.Logger(), cmd.String("key-id"))
					})(ctx, cmd)
				},
			},
			{
				Name:  "schedule-key-deletion",
				Usage: "Schedule a key for deletion (terminal state)",
				Flags: []cli.Flag{keyIDFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withKMSUseCase(func(ctx context.Context, useCase kmsUseCase.KMSUseCase, container *app.Container) error {
						return commands.RunScheduleKeyDeletion(ctx, useCase, container.Logger(), cmd.String("key-id"))
					})(ctx, cmd)
				},
			},
			{
				Name:  "delete-key",
				Usage: "Delete a key record outright",
				Flags: []cli.Flag{keyIDFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withKMSUseCase(func(ctx context.Context, useCase kmsUseCase.KMSUseCase, container *app.Container) error {
						return commands.RunDeleteKey(ctx, useCase, container.Logger(), cmd.String("key-id"))
					})(ctx, cmd)
				},
			},
			{
				Name:  "encrypt",
				Usage: "Encrypt plaintext under a key",
				Flags: []cli.Flag{
					keyIDFlag,
					&cli.StringFlag{
						Name:     "plaintext",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "Plaintext to encrypt",
					},
					contextFlag,
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withKMSUseCase(func(ctx context.Context, useCase kmsUseCase.KMSUseCase, container *app.Container) error {
						return commands.RunEncrypt(ctx, useCase, commands.DefaultIO(), cmd.String("key-id"), cmd.String("plaintext"), cmd.StringSlice("context"))
					})(ctx, cmd)
				},
			},
			{
				Name:  "decrypt",
				Usage: "Decrypt a base64 ciphertext blob",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "key-id",
						Aliases: []string{"k"},
						Usage:   "Key identifier (omit to resolve by scanning enabled keys)",
					},
					&cli.StringFlag{
						Name:     "ciphertext-blob",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Base64-encoded ciphertext blob",
					},
					contextFlag,
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withKMSUseCase(func(ctx context.Context, useCase kmsUseCase.KMSUseCase, container *app.Container) error {
						return commands.RunDecrypt(ctx, useCase, commands.DefaultIO(), cmd.String("key-id"), cmd.String("ciphertext-blob"), cmd.StringSlice("context"))
					})(ctx, cmd)
				},
			},
			{
				Name:  "keyfile",
				Usage: "Manage the mnemonic-protected keyfile",
				Commands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Provision a new keyfile and print the recovery mnemonic",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return withEnvelopeUseCase(func(ctx context.Context, useCase envelopeUseCase.EnvelopeUseCase, container *app.Container) error {
								return commands.RunKeyfileInit(ctx, useCase, container.Logger(), commands.DefaultIO())
							})(ctx, cmd)
						},
					},
					{
						Name:  "rotate",
						Usage: "Re-wrap the data key under a fresh mnemonic",
						Flags: []cli.Flag{mnemonicFlag},
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return withEnvelopeUseCase(func(ctx context.Context, useCase envelopeUseCase.EnvelopeUseCase, container *app.Container) error {
								return commands.RunKeyfileRotate(ctx, useCase, container.Logger(), commands.DefaultIO(), cmd.String("mnemonic"))
							})(ctx, cmd)
						},
					},
					{
						Name:  "encrypt-file",
						Usage: "Encrypt a file with the keyfile's data key",
						Flags: []cli.Flag{
							mnemonicFlag,
							&cli.StringFlag{Name: "in", Required: true, Usage: "Input file path"},
							&cli.StringFlag{Name: "out", Required: true, Usage: "Output file path"},
						},
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return withEnvelopeUseCase(func(ctx context.Context, useCase envelopeUseCase.EnvelopeUseCase, container *app.Container) error {
								return commands.RunEncryptFile(ctx, useCase, container.Logger(), cmd.String("mnemonic"), cmd.String("in"), cmd.String("out"))
							})(ctx, cmd)
						},
					},
					{
						Name:  "decrypt-file",
						Usage: "Decrypt a file with the keyfile's data key",
						Flags: []cli.Flag{
							mnemonicFlag,
							&cli.StringFlag{Name: "in", Required: true, Usage: "Input file path"},
							&cli.StringFlag{Name: "out", Required: true, Usage: "Output file path"},
						},
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return withEnvelopeUseCase(func(ctx context.Context, useCase envelopeUseCase.EnvelopeUseCase, container *app.Container) error {
								return commands.RunDecryptFile(ctx, useCase, container.Logger(), cmd.String("mnemonic"), cmd.String("in"), cmd.String("out"))
							})(ctx, cmd)
						},
					},
				},
			},
			{
				Name:  "hash-token",
				Usage: "Hash an API token for the API_TOKEN_HASH setting",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "token",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Plain API token to hash",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunHashToken(commands.DefaultIO(), cmd.String("token"))
				},
			},
		},
	}

	if err := cmdRef.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
