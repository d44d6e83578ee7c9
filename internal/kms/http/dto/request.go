// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	kmsDomain "github.com/allisson/kms/internal/kms/domain"
	customValidation "github.com/allisson/kms/internal/validation"
)

// CreateKeyRequest contains the parameters for creating a new key.
type CreateKeyRequest struct {
	Description string `json:"description"`
	Usage       string `json:"usage"` // defaults to "ENCRYPT_DECRYPT"
}

// Validate checks if the create key request is valid.
func (r *CreateKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Description,
			validation.Length(0, 8192),
		),
		validation.Field(&r.Usage,
			validation.In(string(kmsDomain.UsageEncryptDecrypt)),
		),
	)
}

// EncryptRequest contains the parameters for encrypting data. Context is an
// optional set of key-value pairs authenticated into the ciphertext; the
// same pairs must be supplied on decrypt.
type EncryptRequest struct {
	KeyID     string            `json:"key_id"`
	Plaintext string            `json:"plaintext"` // Base64-encoded plaintext
	Algorithm string            `json:"algorithm"` // defaults to "SYMMETRIC_DEFAULT"
	Context   map[string]string `json:"context,omitempty"`
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.KeyID,
			validation.Required,
			customValidation.KeyID,
		),
		validation.Field(&r.Plaintext,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.Algorithm,
			validation.In(string(kmsDomain.SymmetricDefault)),
		),
	)
}

// DecryptRequest contains the parameters for decrypting data. KeyID is
// optional; when absent the service resolves the key by trying every
// enabled key.
type DecryptRequest struct {
	KeyID          string            `json:"key_id"`
	CiphertextBlob string            `json:"ciphertext_blob"` // Base64-encoded ciphertext blob
	Algorithm      string            `json:"algorithm"`       // defaults to "SYMMETRIC_DEFAULT"
	Context        map[string]string `json:"context,omitempty"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.KeyID,
			customValidation.KeyID,
		),
		validation.Field(&r.CiphertextBlob,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.Algorithm,
			validation.In(string(kmsDomain.SymmetricDefault)),
		),
	)
}
