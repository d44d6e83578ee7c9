package service

import (
	"crypto/rand"

	"github.com/allisson/kms/internal/envelope/domain"
	"github.com/allisson/kms/internal/errors"
	kmsService "github.com/allisson/kms/internal/kms/service"
)

// KeyWrapper wraps and unwraps random data keys under mnemonic-derived
// master keys.
type KeyWrapper struct{}

// NewKeyWrapper returns a new KeyWrapper.
func NewKeyWrapper() *KeyWrapper {
	return &KeyWrapper{}
}

// GenerateDataKey returns a fresh random 256-bit data key.
func (w *KeyWrapper) GenerateDataKey() ([]byte, error) {
	dataKey := make([]byte, domain.DataKeySize)
	if _, err := rand.Read(dataKey); err != nil {
		return nil, errors.Wrap(err, "failed to generate data key")
	}
	return dataKey, nil
}

// Wrap encrypts a data key under the master key derived from the mnemonic,
// using a fresh random salt, and returns the persistable record.
func (w *KeyWrapper) Wrap(mnemonic string, dataKey []byte, iterations int) (domain.WrappedDataKey, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return domain.WrappedDataKey{}, err
	}

	salt := make([]byte, domain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return domain.WrappedDataKey{}, errors.Wrap(err, "failed to generate kdf salt")
	}

	masterKey, err := DeriveMasterKey(mnemonic, salt, iterations)
	if err != nil {
		return domain.WrappedDataKey{}, err
	}
	defer domain.Zero(masterKey)

	cipher, err := kmsService.NewAESGCM(masterKey)
	if err != nil {
		return domain.WrappedDataKey{}, err
	}

	wrapped, err := kmsService.SealBlob(cipher, dataKey, nil)
	if err != nil {
		return domain.WrappedDataKey{}, err
	}

	return domain.WrappedDataKey{
		WrappedDataKey: wrapped,
		KDFSalt:        salt,
		KDFIterations:  iterations,
	}, nil
}

// Unwrap re-derives the master key from the mnemonic and the record's salt
// and iteration count, then opens the wrapped data key. A wrong mnemonic
// surfaces as ErrUnwrapFailed, never as a partial result.
func (w *KeyWrapper) Unwrap(mnemonic string, record domain.WrappedDataKey) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}

	masterKey, err := DeriveMasterKey(mnemonic, record.KDFSalt, record.KDFIterations)
	if err != nil {
		return nil, err
	}
	defer domain.Zero(masterKey)

	cipher, err := kmsService.NewAESGCM(masterKey)
	if err != nil {
		return nil, err
	}

	dataKey, err := kmsService.OpenBlob(cipher, record.WrappedDataKey, nil)
	if err != nil {
		return nil, domain.ErrUnwrapFailed
	}

	return dataKey, nil
}
