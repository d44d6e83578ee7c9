package domain

import (
	"github.com/allisson/kms/internal/errors"
)

var (
	// ErrInvalidMnemonic indicates the supplied phrase is not a valid
	// BIP-39 mnemonic.
	ErrInvalidMnemonic = errors.Wrap(errors.ErrInvalidInput, "invalid mnemonic phrase")

	// ErrInvalidIterations indicates an iteration count below the
	// accepted floor.
	ErrInvalidIterations = errors.Wrap(errors.ErrInvalidInput, "kdf iterations below minimum")

	// ErrUnwrapFailed indicates the wrapped data key could not be opened,
	// usually because the mnemonic is wrong for this keyfile.
	ErrUnwrapFailed = errors.Wrap(errors.ErrForbidden, "unable to unwrap data key with provided mnemonic")

	// ErrCorruptKeyfile indicates the keyfile on disk could not be parsed.
	ErrCorruptKeyfile = errors.Wrap(errors.ErrInternal, "keyfile is corrupt")

	// ErrKeyfileExists indicates provisioning was attempted over an
	// existing keyfile.
	ErrKeyfileExists = errors.Wrap(errors.ErrInvalidInput, "keyfile already exists")

	// ErrKeyfileNotFound indicates no keyfile exists at the configured path.
	ErrKeyfileNotFound = errors.Wrap(errors.ErrNotFound, "keyfile not found")
)
