// Package usecase implements the KMS-compatible operation surface: key
// lifecycle management plus the crypto engine (encrypt/decrypt bound to key
// identity). Use cases coordinate between the key store (persistence with
// single-owner serialization) and the crypto services (AEAD computation).
package usecase

import (
	"context"

	kmsDomain "github.com/allisson/kms/internal/kms/domain"
)

// KeyRepository defines the contract for the concurrency-safe key store.
//
// Implementations must execute every read-modify-write sequence as one
// indivisible unit and persist the whole table atomically on each mutation.
type KeyRepository interface {
	// Insert adds a new record. Only fails on storage I/O errors.
	Insert(record kmsDomain.KeyRecord) error

	// Get returns a copy of the record or a NotFound error.
	Get(keyID string) (kmsDomain.KeyRecord, error)

	// List returns a snapshot of all key metadata.
	List() []kmsDomain.KeyMetadata

	// EnabledKeys returns copies of enabled records in deterministic order.
	EnabledKeys() []kmsDomain.KeyRecord

	// UpdateState transitions a record's lifecycle state atomically.
	UpdateState(keyID string, state kmsDomain.KeyState) error

	// Delete removes a record outright.
	Delete(keyID string) error
}

// KMSUseCase defines the KMS-compatible operation surface.
type KMSUseCase interface {
	// CreateKey generates a new enabled key and persists it immediately.
	CreateKey(ctx context.Context, description string, usage kmsDomain.KeyUsage) (kmsDomain.KeyMetadata, error)

	// Encrypt seals plaintext under the identified key. The optional
	// encryption context is authenticated into the blob; the same pairs must
	// be supplied on decrypt.
	Encrypt(ctx context.Context, plaintext []byte, keyID string, alg kmsDomain.Algorithm, encCtx kmsDomain.EncryptionContext) (kmsDomain.EncryptionResult, error)

	// Decrypt opens a ciphertext blob. With an empty keyID it scans all
	// enabled keys and returns on the first successful authentication.
	Decrypt(ctx context.Context, blob []byte, keyID string, alg kmsDomain.Algorithm, encCtx kmsDomain.EncryptionContext) (kmsDomain.DecryptionResult, error)

	// DescribeKey returns the metadata for a key.
	DescribeKey(ctx context.Context, keyID string) (kmsDomain.KeyMetadata, error)

	// ListKeys returns metadata for all keys.
	ListKeys(ctx context.Context) ([]kmsDomain.KeyMetadata, error)

	// EnableKey transitions a key to Enabled (idempotent).
	EnableKey(ctx context.Context, keyID string) error

	// DisableKey transitions a key to Disabled (idempotent).
	DisableKey(ctx context.Context, keyID string) error

	// ScheduleKeyDeletion transitions a key to PendingDeletion (one-way).
	ScheduleKeyDeletion(ctx context.Context, keyID string) error

	// DeleteKey removes a key record unconditionally.
	DeleteKey(ctx context.Context, keyID string) error
}
