// Package domain contains the core entities for mnemonic-based envelope
// encryption: the wrapped data key record persisted to disk and the
// parameters of the key derivation that protects it.
package domain

const (
	// DataKeySize is the size in bytes of the random data key that
	// encrypts payloads.
	DataKeySize = 32

	// SaltSize is the size in bytes of the random KDF salt generated for
	// each wrap operation.
	SaltSize = 16

	// MinKDFIterations is the lowest accepted PBKDF2 iteration count.
	// Wrapping with fewer iterations is rejected.
	MinKDFIterations = 2048

	// DefaultKDFIterations is the iteration count used when the caller
	// does not specify one.
	DefaultKDFIterations = 600000

	// MnemonicEntropyBits is the entropy size for generated mnemonics,
	// producing a 24-word phrase.
	MnemonicEntropyBits = 256
)

// WrappedDataKey is the persisted envelope record. It never contains the
// plaintext data key; only the ciphertext produced by wrapping it under a
// mnemonic-derived master key, plus the parameters needed to re-derive
// that master key.
type WrappedDataKey struct {
	WrappedDataKey []byte `json:"wrapped_data_key"`
	KDFSalt        []byte `json:"kdf_salt"`
	KDFIterations  int    `json:"kdf_iterations"`
}

// Zero overwrites a byte slice in place. Callers use it to scrub plaintext
// key material once it is no longer needed.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
