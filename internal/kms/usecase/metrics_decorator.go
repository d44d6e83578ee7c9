package usecase

import (
	"context"
	"time"

	kmsDomain "github.com/allisson/kms/internal/kms/domain"
	"github.com/allisson/kms/internal/metrics"
)

// kmsUseCaseWithMetrics decorates KMSUseCase with metrics instrumentation.
type kmsUseCaseWithMetrics struct {
	next    KMSUseCase
	metrics metrics.BusinessMetrics
}

// NewKMSUseCaseWithMetrics wraps a KMSUseCase with metrics recording.
func NewKMSUseCaseWithMetrics(useCase KMSUseCase, m metrics.BusinessMetrics) KMSUseCase {
	return &kmsUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record reports one operation outcome with its duration.
func (k *kmsUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	k.metrics.RecordOperation(ctx, "kms", operation, status)
	k.metrics.RecordDuration(ctx, "kms", operation, time.Since(start), status)
}

func (k *kmsUseCaseWithMetrics) CreateKey(
	ctx context.Context,
	description string,
	usage kmsDomain.KeyUsage,
) (kmsDomain.KeyMetadata, error) {
	start := time.Now()
	metadata, err := k.next.CreateKey(ctx, description, usage)
	k.record(ctx, "create_key", start, err)
	return metadata, err
}

func (k *kmsUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	plaintext []byte,
	keyID string,
	alg kmsDomain.Algorithm,
	encCtx kmsDomain.EncryptionContext,
) (kmsDomain.EncryptionResult, error) {
	start := time.Now()
	result, err := k.next.Encrypt(ctx, plaintext, keyID, alg, encCtx)
	k.record(ctx, "encrypt", start, err)
	return result, err
}

func (k *kmsUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	blob []byte,
	keyID string,
	alg kmsDomain.Algorithm,
	encCtx kmsDomain.EncryptionContext,
) (kmsDomain.DecryptionResult, error) {
	start := time.Now()
	result, err := k.next.Decrypt(ctx, blob, keyID, alg, encCtx)
	k.record(ctx, "decrypt", start, err)
	return result, err
}

func (k *kmsUseCaseWithMetrics) DescribeKey(ctx context.Context, keyID string) (kmsDomain.KeyMetadata, error) {
	start := time.Now()
	metadata, err := k.next.DescribeKey(ctx, keyID)
	k.record(ctx, "describe_key", start, err)
	return metadata, err
}

func (k *kmsUseCaseWithMetrics) ListKeys(ctx context.Context) ([]kmsDomain.KeyMetadata, error) {
	start := time.Now()
	metadata, err := k.next.ListKeys(ctx)
	k.record(ctx, "list_keys", start, err)
	return metadata, err
}

func (k *kmsUseCaseWithMetrics) EnableKey(ctx context.Context, keyID string) error {
	start := time.Now()
	err := k.next.EnableKey(ctx, keyID)
	k.record(ctx, "enable_key", start, err)
	return err
}

func (k *kmsUseCaseWithMetrics) DisableKey(ctx context.Context, keyID string) error {
	start := time.Now()
	err := k.next.DisableKey(ctx, keyID)
	k.record(ctx, "disable_key", start, err)
	return err
}

func (k *kmsUseCaseWithMetrics) ScheduleKeyDeletion(ctx context.Context, keyID string) error {
	start := time.Now()
	err := k.next.ScheduleKeyDeletion(ctx, keyID)
	k.record(ctx, "schedule_key_deletion", start, err)
	return err
}

func (k *kmsUseCaseWithMetrics) DeleteKey(ctx context.Context, keyID string) error {
	start := time.Now()
	err := k.next.DeleteKey(ctx, keyID)
	k.record(ctx, "delete_key", start, err)
	return err
}
