package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	envelopeUseCase "github.com/allisson/kms/internal/envelope/usecase"
)

// RunKeyfileInit provisions a new keyfile and prints the mnemonic. The
// mnemonic is shown exactly once and never stored; losing it makes the
// wrapped data key unrecoverable.
func RunKeyfileInit(
	ctx context.Context,
	useCase envelopeUseCase.EnvelopeUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
) error {
	mnemonic, err := useCase.Provision(ctx)
	if err != nil {
		return fmt.Errorf("failed to provision keyfile: %w", err)
	}

	logger.Info("keyfile provisioned")
	fmt.Fprintln(ioTuple.Writer, "Recovery mnemonic (write it down, it will not be shown again):")
	fmt.Fprintln(ioTuple.Writer, mnemonic)
	return nil
}

// RunKeyfileRotate re-wraps the data key under a fresh mnemonic and prints
// the new mnemonic. Previously encrypted payloads stay decryptable.
func RunKeyfileRotate(
	ctx context.Context,
	useCase envelopeUseCase.EnvelopeUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
	mnemonic string,
) error {
	newMnemonic, err := useCase.Rotate(ctx, mnemonic)
	if err != nil {
		return fmt.Errorf("failed to rotate keyfile: %w", err)
	}

	logger.Info("keyfile rotated")
	fmt.Fprintln(ioTuple.Writer, "New recovery mnemonic (write it down, it will not be shown again):")
	fmt.Fprintln(ioTuple.Writer, newMnemonic)
	return nil
}

// RunEncryptFile encrypts a file with the keyfile's data key, writing
// chunked ciphertext to the output path.
func RunEncryptFile(
	ctx context.Context,
	useCase envelopeUseCase.EnvelopeUseCase,
	logger *slog.Logger,
	mnemonic string,
	inputPath string,
	outputPath string,
) error {
	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer input.Close()

	output, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := useCase.Encrypt(ctx, mnemonic, output, input); err != nil {
		output.Close()
		os.Remove(outputPath)
		return fmt.Errorf("failed to encrypt file: %w", err)
	}

	if err := output.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	logger.Info("file encrypted",
		slog.String("input", inputPath),
		slog.String("output", outputPath),
	)
	return nil
}

// RunDecryptFile decrypts a chunked ciphertext file with the keyfile's
// data key, writing plaintext to the output path.
func RunDecryptFile(
	ctx context.Context,
	useCase envelopeUseCase.EnvelopeUseCase,
	logger *slog.Logger,
	mnemonic string,
	inputPath string,
	outputPath string,
) error {
	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer input.Close()

	output, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := useCase.Decrypt(ctx, mnemonic, output, input); err != nil {
		output.Close()
		os.Remove(outputPath)
		return fmt.Errorf("failed to decrypt file: %w", err)
	}

	if err := output.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	logger.Info("file decrypted",
		slog.String("input", inputPath),
		slog.String("output", outputPath),
	)
	return nil
}
