package commands

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	kmsDomain "github.com/allisson/kms/internal/kms/domain"
	"github.com/allisson/kms/internal/kms/http/mocks"
)

func TestRunEncrypt(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &mocks.MockKMSUseCase{}
		result := kmsDomain.EncryptionResult{
			CiphertextBlob: []byte("sealed-bytes"),
			KeyID:          testKeyID,
			ARN:            kmsDomain.BuildARN(testKeyID),
			Algorithm:      kmsDomain.SymmetricDefault,
		}
		mockUseCase.On("Encrypt", ctx, []byte("secret"), testKeyID, kmsDomain.SymmetricDefault, kmsDomain.EncryptionContext(nil)).
			Return(result, nil)

		ioTuple, buf := testIO()
		err := RunEncrypt(ctx, mockUseCase, ioTuple, testKeyID, "secret", nil)
		require.NoError(t, err)
		require.Contains(t, buf.String(), base64.StdEncoding.EncodeToString(result.CiphertextBlob))
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success with context pairs", func(t *testing.T) {
		mockUseCase := &mocks.MockKMSUseCase{}
		encCtx := kmsDomain.EncryptionContext{"purpose": "backup", "tenant": "acme"}
		mockUseCase.On("Encrypt", ctx, []byte("secret"), testKeyID, kmsDomain.SymmetricDefault, encCtx).
			Return(kmsDomain.EncryptionResult{KeyID: testKeyID}, nil)

		ioTuple, _ := testIO()
		err := RunEncrypt(ctx, mockUseCase, ioTuple, testKeyID, "secret", []string{"purpose=backup", "tenant=acme"})
		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("malformed context pair", func(t *testing.T) {
		mockUseCase := &mocks.MockKMSUseCase{}

		ioTuple, _ := testIO()
		err := RunEncrypt(ctx, mockUseCase, ioTuple, testKeyID, "secret", []string{"no-separator"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "expected key=value")
	})

	t.Run("error", func(t *testing.T) {
		mockUseCase := &mocks.MockKMSUseCase{}
		mockUseCase.On("Encrypt", ctx, []byte("secret"), testKeyID, kmsDomain.SymmetricDefault, kmsDomain.EncryptionContext(nil)).
			Return(kmsDomain.EncryptionResult{}, kmsDomain.NewKeyUnavailable("Key '%s' is not enabled", testKeyID))

		ioTuple, _ := testIO()
		err := RunEncrypt(ctx, mockUseCase, ioTuple, testKeyID, "secret", nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to encrypt")
	})
}

func TestRunDecrypt(t *testing.T) {
	ctx := context.Background()
	blob := []byte("sealed-bytes")
	encodedBlob := base64.StdEncoding.EncodeToString(blob)

	t.Run("success with key id", func(t *testing.T) {
		mockUseCase := &mocks.MockKMSUseCase{}
		result := kmsDomain.DecryptionResult{
			Plaintext: []byte("secret"),
			KeyID:     testKeyID,
			ARN:       kmsDomain.BuildARN(testKeyID),
			Algorithm: kmsDomain.SymmetricDefault,
		}
		mockUseCase.On("Decrypt", ctx, blob, testKeyID, kmsDomain.SymmetricDefault, kmsDomain.EncryptionContext(nil)).
			Return(result, nil)

		ioTuple, buf := testIO()
		err := RunDecrypt(ctx, mockUseCase, ioTuple, testKeyID, encodedBlob, nil)
		require.NoError(t, err)
		require.Contains(t, buf.String(), base64.StdEncoding.EncodeToString([]byte("secret")))
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success without key id", func(t *testing.T) {
		mockUseCase := &mocks.MockKMSUseCase{}
		mockUseCase.On("Decrypt", ctx, blob, "", kmsDomain.SymmetricDefault, kmsDomain.EncryptionContext(nil)).
			Return(kmsDomain.DecryptionResult{Plaintext: []byte("secret"), KeyID: testKeyID}, nil)

		ioTuple, _ := testIO()
		err := RunDecrypt(ctx, mockUseCase, ioTuple, "", encodedBlob, nil)
		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("context pairs are forwarded", func(t *testing.T) {
		mockUseCase := &mocks.MockKMSUseCase{}
		encCtx := kmsDomain.EncryptionContext{"purpose": "backup"}
		mockUseCase.On("Decrypt", ctx, blob, testKeyID, kmsDomain.SymmetricDefault, encCtx).
			Return(kmsDomain.DecryptionResult{Plaintext: []byte("secret"), KeyID: testKeyID}, nil)

		ioTuple, _ := testIO()
		err := RunDecrypt(ctx, mockUseCase, ioTuple, testKeyID, encodedBlob, []string{"purpose=backup"})
		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid base64", func(t *testing.T) {
		mockUseCase := &mocks.MockKMSUseCase{}

		ioTuple, _ := testIO()
		err := RunDecrypt(ctx, mockUseCase, ioTuple, testKeyID, "not base64!!", nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "not valid base64")
	})
}
