package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNewAESGCM(t *testing.T) {
	t.Run("creates cipher with valid key", func(t *testing.T) {
		cipher, err := NewAESGCM(newTestKey(t))
		require.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("rejects short key", func(t *testing.T) {
		_, err := NewAESGCM(make([]byte, 16))
		assert.Error(t, err)
	})

	t.Run("rejects long key", func(t *testing.T) {
		_, err := NewAESGCM(make([]byte, 64))
		assert.Error(t, err)
	})
}

func TestAESGCMCipher_EncryptDecrypt(t *testing.T) {
	cipher, err := NewAESGCM(newTestKey(t))
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		plaintext := []byte("Hello, World!")
		ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)
		assert.Equal(t, 12, len(nonce))
		assert.NotEqual(t, plaintext, ciphertext)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("fresh nonce per call", func(t *testing.T) {
		_, nonce1, err := cipher.Encrypt([]byte("data"), nil)
		require.NoError(t, err)
		_, nonce2, err := cipher.Encrypt([]byte("data"), nil)
		require.NoError(t, err)
		assert.NotEqual(t, nonce1, nonce2)
	})

	t.Run("aad mismatch fails authentication", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("data"), []byte("context-a"))
		require.NoError(t, err)

		_, err = cipher.Decrypt(ciphertext, nonce, []byte("context-b"))
		assert.Error(t, err)
	})

	t.Run("tampered ciphertext fails authentication", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("data"), nil)
		require.NoError(t, err)

		ciphertext[0] ^= 0x01
		_, err = cipher.Decrypt(ciphertext, nonce, nil)
		assert.Error(t, err)
	})
}
