package service

import (
	kmsDomain "github.com/allisson/kms/internal/kms/domain"
)

// AEADManagerService implements the AEADManager interface for creating AEAD
// cipher instances. SymmetricDefault is currently the only supported
// algorithm; the switch keeps the dispatch point in one place for when that
// changes.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher creates an AEAD cipher instance for the specified algorithm.
// Returns an InvalidKeyUsage error for unknown algorithms or bad key sizes.
func (am *AEADManagerService) CreateCipher(key []byte, alg kmsDomain.Algorithm) (AEAD, error) {
	if len(key) != kmsDomain.KeySize {
		return nil, kmsDomain.NewInvalidKeyUsage("key must be %d bytes, got %d", kmsDomain.KeySize, len(key))
	}

	switch alg {
	case kmsDomain.SymmetricDefault:
		return NewAESGCM(key)
	default:
		return nil, kmsDomain.NewInvalidKeyUsage("unsupported algorithm '%s'", alg)
	}
}
