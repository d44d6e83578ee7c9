// Package usecase orchestrates envelope encryption: provisioning a
// keyfile, rotating the protecting mnemonic, and encrypting or decrypting
// payloads with the wrapped data key.
package usecase

import (
	"context"
	"io"

	"github.com/allisson/kms/internal/envelope/domain"
)

// KeyfileRepository persists the wrapped data key record.
type KeyfileRepository interface {
	// Exists reports whether a keyfile is present.
	Exists() bool

	// Load reads the persisted record.
	Load() (domain.WrappedDataKey, error)

	// Store atomically replaces the persisted record.
	Store(record domain.WrappedDataKey) error
}

// EnvelopeUseCase defines the envelope encryption operations.
type EnvelopeUseCase interface {
	// Provision generates a data key, wraps it under a fresh mnemonic, and
	// persists the keyfile. It returns the mnemonic, which is shown once
	// and never stored.
	Provision(ctx context.Context) (string, error)

	// Rotate unwraps the data key with the current mnemonic and re-wraps
	// the same key bytes under a new mnemonic and salt. On any failure the
	// existing keyfile is left untouched.
	Rotate(ctx context.Context, mnemonic string) (string, error)

	// Encrypt streams plaintext from r to w as chunked ciphertext using
	// the data key unwrapped with the mnemonic.
	Encrypt(ctx context.Context, mnemonic string, w io.Writer, r io.Reader) error

	// Decrypt streams chunked ciphertext from r to w as plaintext using
	// the data key unwrapped with the mnemonic.
	Decrypt(ctx context.Context, mnemonic string, w io.Writer, r io.Reader) error
}
