// Package service provides the cryptographic primitives for the key-management
// service: the AES-256-GCM AEAD cipher and the ciphertext blob codec used by
// every encrypt/decrypt operation.
package service

import (
	kmsDomain "github.com/allisson/kms/internal/kms/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg kmsDomain.Algorithm) (AEAD, error)
}
