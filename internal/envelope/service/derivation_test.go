package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/kms/internal/envelope/domain"
)

func TestNormalizeMnemonic(t *testing.T) {
	t.Run("collapses whitespace and lowercases", func(t *testing.T) {
		assert.Equal(t,
			"abandon ability able",
			NormalizeMnemonic("  Abandon\tABILITY \n able  "),
		)
	})

	t.Run("leaves canonical phrase unchanged", func(t *testing.T) {
		assert.Equal(t, "abandon ability able", NormalizeMnemonic("abandon ability able"))
	})
}

func TestDeriveMasterKey(t *testing.T) {
	mnemonic := "legal winner thank year wave sausage worth useful legal winner thank yellow"
	salt := []byte("0123456789abcdef")

	t.Run("deterministic for same inputs", func(t *testing.T) {
		key1, err := DeriveMasterKey(mnemonic, salt, domain.MinKDFIterations)
		require.NoError(t, err)
		key2, err := DeriveMasterKey(mnemonic, salt, domain.MinKDFIterations)
		require.NoError(t, err)

		assert.Len(t, key1, 32)
		assert.Equal(t, key1, key2)
	})

	t.Run("normalization does not change key", func(t *testing.T) {
		key1, err := DeriveMasterKey(mnemonic, salt, domain.MinKDFIterations)
		require.NoError(t, err)
		key2, err := DeriveMasterKey("  LEGAL  winner thank year wave sausage worth useful legal winner thank YELLOW ", salt, domain.MinKDFIterations)
		require.NoError(t, err)

		assert.Equal(t, key1, key2)
	})

	t.Run("changing one word yields a different key", func(t *testing.T) {
		key1, err := DeriveMasterKey(mnemonic, salt, domain.MinKDFIterations)
		require.NoError(t, err)

		oneWordOff := "legal winner thank year wave sausage worth useful legal winner thank yell"
		key2, err := DeriveMasterKey(oneWordOff, salt, domain.MinKDFIterations)
		require.NoError(t, err)

		assert.NotEqual(t, key1, key2)
	})

	t.Run("different salt yields different key", func(t *testing.T) {
		key1, err := DeriveMasterKey(mnemonic, salt, domain.MinKDFIterations)
		require.NoError(t, err)
		key2, err := DeriveMasterKey(mnemonic, []byte("fedcba9876543210"), domain.MinKDFIterations)
		require.NoError(t, err)

		assert.NotEqual(t, key1, key2)
	})

	t.Run("different iteration count yields different key", func(t *testing.T) {
		key1, err := DeriveMasterKey(mnemonic, salt, domain.MinKDFIterations)
		require.NoError(t, err)
		key2, err := DeriveMasterKey(mnemonic, salt, domain.MinKDFIterations+1)
		require.NoError(t, err)

		assert.NotEqual(t, key1, key2)
	})

	t.Run("rejects iterations below the floor", func(t *testing.T) {
		_, err := DeriveMasterKey(mnemonic, salt, domain.MinKDFIterations-1)
		assert.ErrorIs(t, err, domain.ErrInvalidIterations)
	})
}
