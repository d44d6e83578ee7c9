package service

import (
	"errors"
)

const (
	// NonceSize is the AES-GCM nonce length in bytes (96 bits).
	NonceSize = 12

	// TagSize is the AES-GCM authentication tag length in bytes.
	TagSize = 16

	// MinBlobSize is the smallest structurally valid ciphertext blob:
	// a nonce plus an authentication tag around an empty plaintext.
	MinBlobSize = NonceSize + TagSize
)

// ErrBlobTooShort indicates a blob too small to contain a nonce and tag.
var ErrBlobTooShort = errors.New("ciphertext blob is too short")

// SealBlob encrypts plaintext with the AEAD and returns a self-contained
// ciphertext blob laid out as nonce || ciphertext || tag. The nonce is fresh
// per call; the tag is already appended by the AEAD. The optional aad is
// authenticated but not stored; the same bytes must be supplied to OpenBlob.
func SealBlob(aead AEAD, plaintext, aad []byte) ([]byte, error) {
	ciphertext, nonce, err := aead.Encrypt(plaintext, aad)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// OpenBlob splits a blob into nonce and ciphertext+tag and opens it with the
// AEAD. Returns ErrBlobTooShort for structurally invalid blobs and the AEAD's
// authentication error for tampered, wrong-key, or wrong-aad blobs.
func OpenBlob(aead AEAD, blob, aad []byte) ([]byte, error) {
	if len(blob) < MinBlobSize {
		return nil, ErrBlobTooShort
	}

	nonce := blob[:NonceSize]
	ciphertext := blob[NonceSize:]
	return aead.Decrypt(ciphertext, nonce, aad)
}
