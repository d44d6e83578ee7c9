package usecase

import (
	"context"
	"log/slog"

	kmsDomain "github.com/allisson/kms/internal/kms/domain"
	kmsService "github.com/allisson/kms/internal/kms/service"
)

// kmsUseCase implements KMSUseCase on top of the key repository and the AEAD
// services. Key lookups run under the store's serialization; the AEAD
// computation itself happens on a copied record outside any lock, so heavy
// encrypt/decrypt traffic does not starve key-management calls.
type kmsUseCase struct {
	keyRepo     KeyRepository
	aeadManager kmsService.AEADManager
	logger      *slog.Logger
}

// NewKMSUseCase creates the KMS use case with its dependencies.
func NewKMSUseCase(
	keyRepo KeyRepository,
	aeadManager kmsService.AEADManager,
	logger *slog.Logger,
) KMSUseCase {
	return &kmsUseCase{
		keyRepo:     keyRepo,
		aeadManager: aeadManager,
		logger:      logger,
	}
}

// CreateKey generates a unique id and fresh random 256-bit key material,
// defaults the state to Enabled, and persists immediately.
func (u *kmsUseCase) CreateKey(
	ctx context.Context,
	description string,
	usage kmsDomain.KeyUsage,
) (kmsDomain.KeyMetadata, error) {
	record, err := kmsDomain.NewKeyRecord(description, usage)
	if err != nil {
		return kmsDomain.KeyMetadata{}, err
	}

	if err := u.keyRepo.Insert(record); err != nil {
		return kmsDomain.KeyMetadata{}, err
	}

	u.logger.Info("key created",
		slog.String("key_id", record.KeyID),
		slog.String("arn", record.ARN),
	)

	return record.Metadata, nil
}

// Encrypt looks up the key, requires it to be Enabled, and seals the
// plaintext into a nonce || ciphertext || tag blob bound to the key's
// identity. The encryption context, when present, is authenticated as AAD.
// No key material is mutated.
func (u *kmsUseCase) Encrypt(
	ctx context.Context,
	plaintext []byte,
	keyID string,
	alg kmsDomain.Algorithm,
	encCtx kmsDomain.EncryptionContext,
) (kmsDomain.EncryptionResult, error) {
	if alg == "" {
		alg = kmsDomain.SymmetricDefault
	}

	record, err := u.keyRepo.Get(keyID)
	if err != nil {
		return kmsDomain.EncryptionResult{}, err
	}
	if !record.Metadata.Enabled {
		return kmsDomain.EncryptionResult{}, kmsDomain.NewKeyUnavailable("Key '%s' is not enabled", keyID)
	}

	aead, err := u.aeadManager.CreateCipher(record.Key, alg)
	if err != nil {
		return kmsDomain.EncryptionResult{}, err
	}

	blob, err := kmsService.SealBlob(aead, plaintext, encCtx.AAD())
	if err != nil {
		return kmsDomain.EncryptionResult{}, kmsDomain.NewInternal("encryption failed: %v", err)
	}

	u.logger.Debug("encrypted payload",
		slog.String("key_id", record.KeyID),
		slog.Int("plaintext_len", len(plaintext)),
	)

	return kmsDomain.EncryptionResult{
		CiphertextBlob: blob,
		KeyID:          record.KeyID,
		ARN:            record.ARN,
		Algorithm:      alg,
	}, nil
}

// Decrypt opens a ciphertext blob. With an explicit keyID it authenticates
// against that key only. With an empty keyID it scans every enabled key in
// deterministic order and returns on the first successful authentication —
// a deliberate O(enabled keys) walk, acceptable for small local keystores.
func (u *kmsUseCase) Decrypt(
	ctx context.Context,
	blob []byte,
	keyID string,
	alg kmsDomain.Algorithm,
	encCtx kmsDomain.EncryptionContext,
) (kmsDomain.DecryptionResult, error) {
	if alg == "" {
		alg = kmsDomain.SymmetricDefault
	}

	if len(blob) < kmsService.MinBlobSize {
		return kmsDomain.DecryptionResult{}, kmsDomain.NewInvalidCiphertext(
			"ciphertext blob is too short to contain a nonce and tag",
		)
	}

	if keyID != "" {
		return u.decryptWithKey(blob, keyID, alg, encCtx.AAD())
	}
	return u.decryptScan(blob, alg, encCtx.AAD())
}

func (u *kmsUseCase) decryptWithKey(
	blob []byte,
	keyID string,
	alg kmsDomain.Algorithm,
	aad []byte,
) (kmsDomain.DecryptionResult, error) {
	record, err := u.keyRepo.Get(keyID)
	if err != nil {
		return kmsDomain.DecryptionResult{}, err
	}
	if !record.Metadata.Enabled {
		return kmsDomain.DecryptionResult{}, kmsDomain.NewKeyUnavailable("Key '%s' is not enabled", keyID)
	}

	aead, err := u.aeadManager.CreateCipher(record.Key, alg)
	if err != nil {
		return kmsDomain.DecryptionResult{}, err
	}

	plaintext, err := kmsService.OpenBlob(aead, blob, aad)
	if err != nil {
		return kmsDomain.DecryptionResult{}, kmsDomain.NewInvalidCiphertext(
			"unable to decrypt ciphertext with key '%s'", keyID,
		)
	}

	return kmsDomain.DecryptionResult{
		Plaintext: plaintext,
		KeyID:     record.KeyID,
		ARN:       record.ARN,
		Algorithm: alg,
	}, nil
}

func (u *kmsUseCase) decryptScan(
	blob []byte,
	alg kmsDomain.Algorithm,
	aad []byte,
) (kmsDomain.DecryptionResult, error) {
	for _, record := range u.keyRepo.EnabledKeys() {
		aead, err := u.aeadManager.CreateCipher(record.Key, alg)
		if err != nil {
			continue
		}

		plaintext, err := kmsService.OpenBlob(aead, blob, aad)
		if err != nil {
			continue
		}

		u.logger.Debug("key-less decrypt resolved", slog.String("key_id", record.KeyID))

		return kmsDomain.DecryptionResult{
			Plaintext: plaintext,
			KeyID:     record.KeyID,
			ARN:       record.ARN,
			Algorithm: alg,
		}, nil
	}

	return kmsDomain.DecryptionResult{}, kmsDomain.NewInvalidCiphertext("unable to decrypt with available keys")
}

// DescribeKey returns the metadata for a key.
func (u *kmsUseCase) DescribeKey(ctx context.Context, keyID string) (kmsDomain.KeyMetadata, error) {
	record, err := u.keyRepo.Get(keyID)
	if err != nil {
		return kmsDomain.KeyMetadata{}, err
	}
	return record.Metadata, nil
}

// ListKeys returns a metadata snapshot for all keys.
func (u *kmsUseCase) ListKeys(ctx context.Context) ([]kmsDomain.KeyMetadata, error) {
	return u.keyRepo.List(), nil
}

// EnableKey transitions a key to Enabled. Re-enabling an already-enabled key
// is a no-op success.
func (u *kmsUseCase) EnableKey(ctx context.Context, keyID string) error {
	if err := u.keyRepo.UpdateState(keyID, kmsDomain.StateEnabled); err != nil {
		return err
	}
	u.logger.Info("key enabled", slog.String("key_id", keyID))
	return nil
}

// DisableKey transitions a key to Disabled.
func (u *kmsUseCase) DisableKey(ctx context.Context, keyID string) error {
	if err := u.keyRepo.UpdateState(keyID, kmsDomain.StateDisabled); err != nil {
		return err
	}
	u.logger.Info("key disabled", slog.String("key_id", keyID))
	return nil
}

// ScheduleKeyDeletion transitions a key to PendingDeletion. The record stays
// in the store; an external reaper owns eventual removal.
func (u *kmsUseCase) ScheduleKeyDeletion(ctx context.Context, keyID string) error {
	if err := u.keyRepo.UpdateState(keyID, kmsDomain.StatePendingDeletion); err != nil {
		return err
	}
	u.logger.Info("key deletion scheduled", slog.String("key_id", keyID))
	return nil
}

// DeleteKey removes a key record unconditionally.
func (u *kmsUseCase) DeleteKey(ctx context.Context, keyID string) error {
	if err := u.keyRepo.Delete(keyID); err != nil {
		return err
	}
	u.logger.Info("key deleted", slog.String("key_id", keyID))
	return nil
}
