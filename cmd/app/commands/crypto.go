package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	kmsDomain "github.com/allisson/kms/internal/kms/domain"
	"github.com/allisson/kms/internal/kms/http/dto"
	kmsUseCase "github.com/allisson/kms/internal/kms/usecase"
)

// parseEncryptionContext converts repeated "key=value" flag values into an
// encryption context. Returns nil for an empty list.
func parseEncryptionContext(pairs []string) (kmsDomain.EncryptionContext, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	encCtx := make(kmsDomain.EncryptionContext, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid context pair %q, expected key=value", pair)
		}
		encCtx[key] = value
	}

	return encCtx, nil
}

// RunEncrypt seals plaintext under a key and prints the base64 ciphertext
// blob as JSON. Context pairs are authenticated into the blob and must be
// supplied again on decrypt.
func RunEncrypt(
	ctx context.Context,
	useCase kmsUseCase.KMSUseCase,
	ioTuple IOTuple,
	keyID string,
	plaintext string,
	contextPairs []string,
) error {
	encCtx, err := parseEncryptionContext(contextPairs)
	if err != nil {
		return err
	}

	result, err := useCase.Encrypt(ctx, []byte(plaintext), keyID, kmsDomain.SymmetricDefault, encCtx)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	return printJSON(ioTuple.Writer, dto.MapEncryptResponse(result))
}

// RunDecrypt opens a base64 ciphertext blob and prints the plaintext as
// JSON. With an empty key id the service resolves the key by scanning all
// enabled keys.
func RunDecrypt(
	ctx context.Context,
	useCase kmsUseCase.KMSUseCase,
	ioTuple IOTuple,
	keyID string,
	ciphertextBlob string,
	contextPairs []string,
) error {
	blob, err := base64.StdEncoding.DecodeString(ciphertextBlob)
	if err != nil {
		return fmt.Errorf("ciphertext blob is not valid base64: %w", err)
	}

	encCtx, err := parseEncryptionContext(contextPairs)
	if err != nil {
		return err
	}

	result, err := useCase.Decrypt(ctx, blob, keyID, kmsDomain.SymmetricDefault, encCtx)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}

	return printJSON(ioTuple.Writer, dto.MapDecryptResponse(result))
}
