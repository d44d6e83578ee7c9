package dto_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/kms/internal/kms/http/dto"
)

const testKeyID = "0192a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"

func TestCreateKeyRequestValidate(t *testing.T) {
	t.Run("valid with defaults", func(t *testing.T) {
		req := dto.CreateKeyRequest{}
		assert.NoError(t, req.Validate())
	})

	t.Run("valid with explicit usage", func(t *testing.T) {
		req := dto.CreateKeyRequest{Description: "app key", Usage: "ENCRYPT_DECRYPT"}
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects unsupported usage", func(t *testing.T) {
		req := dto.CreateKeyRequest{Usage: "SIGN_VERIFY"}
		assert.Error(t, req.Validate())
	})
}

func TestEncryptRequestValidate(t *testing.T) {
	plaintext := base64.StdEncoding.EncodeToString([]byte("data"))

	t.Run("valid request", func(t *testing.T) {
		req := dto.EncryptRequest{KeyID: testKeyID, Plaintext: plaintext}
		assert.NoError(t, req.Validate())
	})

	t.Run("requires key id", func(t *testing.T) {
		req := dto.EncryptRequest{Plaintext: plaintext}
		assert.Error(t, req.Validate())
	})

	t.Run("requires plaintext", func(t *testing.T) {
		req := dto.EncryptRequest{KeyID: testKeyID}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects non-base64 plaintext", func(t *testing.T) {
		req := dto.EncryptRequest{KeyID: testKeyID, Plaintext: "not base64!!"}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects malformed key id", func(t *testing.T) {
		req := dto.EncryptRequest{KeyID: "my-key", Plaintext: plaintext}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects unsupported algorithm", func(t *testing.T) {
		req := dto.EncryptRequest{KeyID: testKeyID, Plaintext: plaintext, Algorithm: "RSAES_OAEP_SHA_256"}
		assert.Error(t, req.Validate())
	})
}

func TestDecryptRequestValidate(t *testing.T) {
	blob := base64.StdEncoding.EncodeToString([]byte("sealed"))

	t.Run("valid with key id", func(t *testing.T) {
		req := dto.DecryptRequest{KeyID: testKeyID, CiphertextBlob: blob}
		assert.NoError(t, req.Validate())
	})

	t.Run("valid without key id", func(t *testing.T) {
		req := dto.DecryptRequest{CiphertextBlob: blob}
		assert.NoError(t, req.Validate())
	})

	t.Run("requires ciphertext blob", func(t *testing.T) {
		req := dto.DecryptRequest{KeyID: testKeyID}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects malformed key id", func(t *testing.T) {
		req := dto.DecryptRequest{KeyID: "nope", CiphertextBlob: blob}
		assert.Error(t, req.Validate())
	})
}
