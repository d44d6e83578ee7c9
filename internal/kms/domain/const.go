package domain

// Algorithm represents the encryption algorithm tag attached to crypto results.
//
// The service currently supports a single symmetric AEAD variant backed by
// AES-256-GCM. The tag is carried on encryption and decryption results as
// metadata so callers can verify which algorithm produced a blob.
type Algorithm string

const (
	// SymmetricDefault represents the default symmetric algorithm (AES-256-GCM).
	//
	// Properties:
	//   - 256-bit key size
	//   - 12-byte nonce (96 bits), randomly generated per operation
	//   - 16-byte authentication tag appended to the ciphertext
	SymmetricDefault Algorithm = "SYMMETRIC_DEFAULT"
)

// KeyUsage describes what a key may be used for.
type KeyUsage string

const (
	// UsageEncryptDecrypt is the only supported key usage.
	UsageEncryptDecrypt KeyUsage = "ENCRYPT_DECRYPT"
)

// KeyState represents the lifecycle state of a key record.
//
// State machine:
//
//	Enabled <-> Disabled        (enable/disable, idempotent)
//	Enabled|Disabled -> PendingDeletion (schedule-deletion, one-way)
//
// PendingDeletion is terminal for the encrypt/decrypt contract: the key is
// permanently unusable for crypto operations. The record itself is only
// removed by an explicit delete; an external reaper owns eventual purges.
// PendingImport and Unavailable are reserved and unreachable through the
// current operation surface.
type KeyState string

const (
	// StateEnabled is the initial state; the key is usable for encrypt/decrypt.
	StateEnabled KeyState = "Enabled"

	// StateDisabled marks a key temporarily unusable for crypto operations.
	StateDisabled KeyState = "Disabled"

	// StatePendingDeletion marks a key scheduled for removal. Terminal for
	// crypto operations; there is no cancel-deletion operation.
	StatePendingDeletion KeyState = "PendingDeletion"

	// StatePendingImport is reserved for key material import flows.
	StatePendingImport KeyState = "PendingImport"

	// StateUnavailable is reserved.
	StateUnavailable KeyState = "Unavailable"
)

const (
	// KeySize is the raw symmetric key size in bytes (256 bits).
	KeySize = 32

	// SpecSymmetricDefault is the key-spec tag recorded on key metadata.
	SpecSymmetricDefault = "SYMMETRIC_DEFAULT"
)
