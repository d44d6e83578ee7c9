package domain

import "encoding/json"

// EncryptionContext is an optional set of key-value pairs bound to a
// ciphertext as additional authenticated data. The same pairs must be
// supplied on decrypt; a mismatch fails authentication. The context is
// authenticated, not encrypted, so it must never contain secrets.
type EncryptionContext map[string]string

// AAD returns the canonical byte encoding of the context for use as
// additional authenticated data. JSON object keys are emitted in sorted
// order, so equal contexts always encode identically. An empty context
// encodes to nil, keeping blobs produced without a context openable.
func (c EncryptionContext) AAD() []byte {
	if len(c) == 0 {
		return nil
	}
	// Marshal of a map[string]string cannot fail.
	encoded, _ := json.Marshal(map[string]string(c))
	return encoded
}
