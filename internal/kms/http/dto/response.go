package dto

import (
	"encoding/base64"
	"time"

	kmsDomain "github.com/allisson/kms/internal/kms/domain"
)

// KeyResponse represents key metadata in API responses.
type KeyResponse struct {
	KeyID       string    `json:"key_id"`
	ARN         string    `json:"arn"`
	Description string    `json:"description,omitempty"`
	Usage       string    `json:"usage"`
	State       string    `json:"state"`
	KeySpec     string    `json:"key_spec"`
	CreatedAt   time.Time `json:"created_at"`
	Enabled     bool      `json:"enabled"`
}

// MapKeyToResponse converts key metadata to an API response.
func MapKeyToResponse(metadata kmsDomain.KeyMetadata) KeyResponse {
	return KeyResponse{
		KeyID:       metadata.KeyID,
		ARN:         metadata.ARN,
		Description: metadata.Description,
		Usage:       string(metadata.Usage),
		State:       string(metadata.State),
		KeySpec:     metadata.KeySpec,
		CreatedAt:   metadata.CreatedAt,
		Enabled:     metadata.Enabled,
	}
}

// ListKeysResponse represents a list of keys in API responses.
type ListKeysResponse struct {
	Data []KeyResponse `json:"data"`
}

// MapKeysToListResponse converts a slice of key metadata to a list response.
func MapKeysToListResponse(keys []kmsDomain.KeyMetadata) ListKeysResponse {
	data := make([]KeyResponse, 0, len(keys))
	for _, key := range keys {
		data = append(data, MapKeyToResponse(key))
	}

	return ListKeysResponse{
		Data: data,
	}
}

// EncryptResponse represents the outcome of an encrypt operation.
type EncryptResponse struct {
	KeyID          string `json:"key_id"`
	ARN            string `json:"arn"`
	CiphertextBlob string `json:"ciphertext_blob"` // Base64-encoded ciphertext blob
	Algorithm      string `json:"algorithm"`
}

// MapEncryptResponse converts an encryption result to an API response.
func MapEncryptResponse(result kmsDomain.EncryptionResult) EncryptResponse {
	return EncryptResponse{
		KeyID:          result.KeyID,
		ARN:            result.ARN,
		CiphertextBlob: base64.StdEncoding.EncodeToString(result.CiphertextBlob),
		Algorithm:      string(result.Algorithm),
	}
}

// DecryptResponse represents the outcome of a decrypt operation. KeyID
// identifies the key that authenticated the ciphertext.
type DecryptResponse struct {
	KeyID     string `json:"key_id"`
	ARN       string `json:"arn"`
	Plaintext string `json:"plaintext"` // Base64-encoded plaintext
	Algorithm string `json:"algorithm"`
}

// MapDecryptResponse converts a decryption result to an API response.
func MapDecryptResponse(result kmsDomain.DecryptionResult) DecryptResponse {
	return DecryptResponse{
		KeyID:     result.KeyID,
		ARN:       result.ARN,
		Plaintext: base64.StdEncoding.EncodeToString(result.Plaintext),
		Algorithm: string(result.Algorithm),
	}
}
