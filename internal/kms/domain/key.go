// Package domain defines the core entities for the key-management service:
// key records with lifecycle metadata, crypto operation results, and the
// closed error taxonomy shared by every surface of the service.
package domain

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ARNPrefix is the fixed prefix for every key ARN in this service's namespace.
const ARNPrefix = "arn:cyb:kms:local:000000000000:key/"

// BuildARN returns the deterministic ARN for a key id.
func BuildARN(keyID string) string {
	return ARNPrefix + keyID
}

// KeyMetadata describes a key record without exposing its key material.
//
// Enabled is derived state: it is recomputed from State on every transition
// and is true iff State == StateEnabled. It is never set independently.
type KeyMetadata struct {
	KeyID       string    `json:"key_id"`
	ARN         string    `json:"arn"`
	Description string    `json:"description,omitempty"`
	Usage       KeyUsage  `json:"usage"`
	State       KeyState  `json:"state"`
	KeySpec     string    `json:"key_spec"`
	CreatedAt   time.Time `json:"created_at"`
	Enabled     bool      `json:"enabled"`
}

// SetState transitions the metadata to a new lifecycle state and recomputes
// the derived Enabled flag.
func (m *KeyMetadata) SetState(state KeyState) {
	m.State = state
	m.Enabled = state == StateEnabled
}

// KeyRecord is a server-held key: identity, raw 256-bit key material, and
// lifecycle metadata. Key material is serialized base64-encoded as part of
// the whole-table persistence file.
type KeyRecord struct {
	KeyID    string      `json:"key_id"`
	ARN      string      `json:"arn"`
	Key      []byte      `json:"key_material"`
	Metadata KeyMetadata `json:"metadata"`
}

// NewKeyRecord creates a key record with a generated unique id, a fresh
// random 256-bit key, and default Enabled state. Key ids are lowercase
// hyphenated UUIDs, so uniqueness is enforced at creation time rather than
// accepted from callers.
func NewKeyRecord(description string, usage KeyUsage) (KeyRecord, error) {
	if usage == "" {
		usage = UsageEncryptDecrypt
	}
	if usage != UsageEncryptDecrypt {
		return KeyRecord{}, NewInvalidKeyUsage("unsupported key usage '%s'", usage)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return KeyRecord{}, fmt.Errorf("failed to generate key material: %w", err)
	}

	keyID := uuid.Must(uuid.NewV7()).String()
	record := KeyRecord{
		KeyID: keyID,
		ARN:   BuildARN(keyID),
		Key:   key,
		Metadata: KeyMetadata{
			KeyID:       keyID,
			ARN:         BuildARN(keyID),
			Description: description,
			Usage:       usage,
			KeySpec:     SpecSymmetricDefault,
			CreatedAt:   time.Now().UTC(),
		},
	}
	record.Metadata.SetState(StateEnabled)

	return record, nil
}

// Clone returns a deep copy of the record so callers can hold key material
// outside the store's critical section without aliasing the table.
func (r KeyRecord) Clone() KeyRecord {
	clone := r
	clone.Key = make([]byte, len(r.Key))
	copy(clone.Key, r.Key)
	return clone
}

// EncryptionResult is the outcome of an encrypt operation, bound to the
// identity of the key that produced the ciphertext blob.
type EncryptionResult struct {
	CiphertextBlob []byte    `json:"ciphertext_blob"`
	KeyID          string    `json:"key_id"`
	ARN            string    `json:"arn"`
	Algorithm      Algorithm `json:"algorithm"`
}

// DecryptionResult is the outcome of a decrypt operation. KeyID identifies
// the key that successfully authenticated the blob, which may differ from a
// caller's hint when no explicit key was specified.
type DecryptionResult struct {
	Plaintext []byte    `json:"plaintext"`
	KeyID     string    `json:"key_id"`
	ARN       string    `json:"arn"`
	Algorithm Algorithm `json:"algorithm"`
}
