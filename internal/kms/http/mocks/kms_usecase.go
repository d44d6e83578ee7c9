// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	kmsDomain "github.com/allisson/kms/internal/kms/domain"
)

// MockKMSUseCase is a mock implementation of KMSUseCase for testing.
type MockKMSUseCase struct {
	mock.Mock
}

// CreateKey mocks the CreateKey method of KMSUseCase.
func (m *MockKMSUseCase) CreateKey(
	ctx context.Context,
	description string,
	usage kmsDomain.KeyUsage,
) (kmsDomain.KeyMetadata, error) {
	args := m.Called(ctx, description, usage)
	return args.Get(0).(kmsDomain.KeyMetadata), args.Error(1)
}

// Encrypt mocks the Encrypt method of KMSUseCase.
func (m *MockKMSUseCase) Encrypt(
	ctx context.Context,
	plaintext []byte,
	keyID string,
	alg kmsDomain.Algorithm,
	encCtx kmsDomain.EncryptionContext,
) (kmsDomain.EncryptionResult, error) {
	args := m.Called(ctx, plaintext, keyID, alg, encCtx)
	return args.Get(0).(kmsDomain.EncryptionResult), args.Error(1)
}

// Decrypt mocks the Decrypt method of KMSUseCase.
func (m *MockKMSUseCase) Decrypt(
	ctx context.Context,
	blob []byte,
	keyID string,
	alg kmsDomain.Algorithm,
	encCtx kmsDomain.EncryptionContext,
) (kmsDomain.DecryptionResult, error) {
	args := m.Called(ctx, blob, keyID, alg, encCtx)
	return args.Get(0).(kmsDomain.DecryptionResult), args.Error(1)
}

// DescribeKey mocks the DescribeKey method of KMSUseCase.
func (m *MockKMSUseCase) DescribeKey(ctx context.Context, keyID string) (kmsDomain.KeyMetadata, error) {
	args := m.Called(ctx, keyID)
	return args.Get(0).(kmsDomain.KeyMetadata), args.Error(1)
}

// ListKeys mocks the ListKeys method of KMSUseCase.
func (m *MockKMSUseCase) ListKeys(ctx context.Context) ([]kmsDomain.KeyMetadata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kmsDomain.KeyMetadata), args.Error(1)
}

// EnableKey mocks the EnableKey method of KMSUseCase.
func (m *MockKMSUseCase) EnableKey(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// DisableKey mocks the DisableKey method of KMSUseCase.
func (m *MockKMSUseCase) DisableKey(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// ScheduleKeyDeletion mocks the ScheduleKeyDeletion method of KMSUseCase.
func (m *MockKMSUseCase) ScheduleKeyDeletion(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// DeleteKey mocks the DeleteKey method of KMSUseCase.
func (m *MockKMSUseCase) DeleteKey(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}
