package commands

import (
	"context"
	"fmt"
	"log/slog"

	kmsDomain "github.com/allisson/kms/internal/kms/domain"
	"github.com/allisson/kms/internal/kms/http/dto"
	kmsUseCase "github.com/allisson/kms/internal/kms/usecase"
)

// RunCreateKey creates a new key and prints its metadata as JSON.
func RunCreateKey(
	ctx context.Context,
	useCase kmsUseCase.KMSUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
	description string,
) error {
	metadata, err := useCase.CreateKey(ctx, description, kmsDomain.UsageEncryptDecrypt)
	if err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}

	logger.Info("key created", slog.String("key_id", metadata.KeyID))
	return printJSON(ioTuple.Writer, dto.MapKeyToResponse(metadata))
}

// RunListKeys prints the metadata of every key as JSON.
func RunListKeys(
	ctx context.Context,
	useCase kmsUseCase.KMSUseCase,
	ioTuple IOTuple,
) error {
	keys, err := useCase.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	return printJSON(ioTuple.Writer, dto.MapKeysToListResponse(keys))
}

// RunDescribeKey prints the metadata of a single key as JSON.
func RunDescribeKey(
	ctx context.Context,
	useCase kmsUseCase.KMSUseCase,
	ioTuple IOTuple,
	keyID string,
) error {
	metadata, err := useCase.DescribeKey(ctx, keyID)
	if err != nil {
		return fmt.Errorf("failed to describe key: %w", err)
	}

	return printJSON(ioTuple.Writer, dto.MapKeyToResponse(metadata))
}

// RunEnableKey transitions a key to the enabled state.
func RunEnableKey(
	ctx context.Context,
	useCase kmsUseCase.KMSUseCase,
	logger *slog.Logger,
	keyID string,
) error {
	if err := useCase.EnableKey(ctx, keyID); err != nil {
		return fmt.Errorf("failed to enable key: %w", err)
	}

	logger.Info("key enabled", slog.String("key_id", keyID))
	return nil
}

// RunDisableKey transitions a key to the disabled state.
func RunDisableKey(
	ctx context.Context,
	useCase kmsUseCase.KMSUseCase,
	logger *slog.Logger,
	keyID string,
) error {
	if err := useCase.DisableKey(ctx, keyID); err != nil {
		return fmt.Errorf("failed to disable key: %w", err)
	}

	logger.Info("key disabled", slog.String("key_id", keyID))
	return nil
}

// RunScheduleKeyDeletion transitions a key to the pending deletion state.
func RunScheduleKeyDeletion(
	ctx context.Context,
	useCase kmsUseCase.KMSUseCase,
	logger *slog.Logger,
	keyID string,
) error {
	if err := useCase.ScheduleKeyDeletion(ctx, keyID); err != nil {
		return fmt.Errorf("failed to schedule key deletion: %w", err)
	}

	logger.Info("key deletion scheduled", slog.String("key_id", keyID))
	return nil
}

// RunDeleteKey removes a key record outright.
func RunDeleteKey(
	ctx context.Context,
	useCase kmsUseCase.KMSUseCase,
	logger *slog.Logger,
	keyID string,
) error {
	if err := useCase.DeleteKey(ctx, keyID); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	logger.Info("key deleted", slog.String("key_id", keyID))
	return nil
}
