// Package service implements the cryptographic operations behind envelope
// encryption: mnemonic handling, master key derivation, data key wrapping,
// and chunked payload encryption.
package service

import (
	"crypto/sha256"
	"crypto/sha512"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"

	"github.com/allisson/kms/internal/envelope/domain"
	"github.com/allisson/kms/internal/errors"
)

const (
	stretchedKeySize = 64
	masterKeySize    = 32
)

// hkdfInfo binds derived keys to this scheme so the same mnemonic and salt
// cannot yield a usable key in another context.
var hkdfInfo = []byte("envelope-master-key-v1")

// NormalizeMnemonic lowercases a phrase and collapses all runs of
// whitespace to single spaces so the same word sequence always derives the
// same key.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// DeriveMasterKey stretches a normalized mnemonic with PBKDF2-HMAC-SHA512
// and then runs the result through HKDF-SHA256 to produce a 32-byte master
// key. Iteration counts below the floor are rejected rather than clamped.
func DeriveMasterKey(mnemonic string, salt []byte, iterations int) ([]byte, error) {
	if iterations < domain.MinKDFIterations {
		return nil, domain.ErrInvalidIterations
	}

	normalized := NormalizeMnemonic(mnemonic)
	stretched := pbkdf2.Key([]byte(normalized), salt, iterations, stretchedKeySize, sha512.New)
	defer domain.Zero(stretched)

	reader := hkdf.New(sha256.New, stretched, salt, hkdfInfo)
	masterKey := make([]byte, masterKeySize)
	if _, err := io.ReadFull(reader, masterKey); err != nil {
		return nil, errors.Wrap(err, "failed to derive master key")
	}

	return masterKey, nil
}
