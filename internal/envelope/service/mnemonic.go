package service

import (
	"github.com/tyler-smith/go-bip39"

	"github.com/allisson/kms/internal/envelope/domain"
	"github.com/allisson/kms/internal/errors"
)

// GenerateMnemonic returns a fresh 24-word BIP-39 mnemonic backed by
// 256 bits of entropy.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(domain.MnemonicEntropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return mnemonic, nil
}

// ValidateMnemonic checks that a phrase is a well-formed BIP-39 mnemonic
// with a valid checksum.
func ValidateMnemonic(mnemonic string) error {
	if !bip39.IsMnemonicValid(NormalizeMnemonic(mnemonic)) {
		return domain.ErrInvalidMnemonic
	}
	return nil
}
