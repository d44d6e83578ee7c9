// Package repository provides the key-store persistence layer.
//
// The store is the single owner of the key table: every read-modify-write
// sequence (create, update-state, delete) runs under one mutex for its full
// duration, so no two mutations interleave and no reader observes a
// partially-applied mutation. Persistence is a whole-table serialize-and-
// overwrite on every mutating call, replaced atomically (write to a temp
// file, then rename) so a crash mid-write never leaves a truncated table.
//
// Raw server-side key bytes are persisted without an additional at-rest
// encryption layer. This matches the reference behavior for a local,
// single-node deployment; a production deployment would wrap the table
// under a root secret. See DESIGN.md.
package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	apperrors "github.com/allisson/kms/internal/errors"
	kmsDomain "github.com/allisson/kms/internal/kms/domain"
)

const (
	filePermissions os.FileMode = 0o600
	dirPermissions  os.FileMode = 0o700
)

// ErrCorruptStore indicates the persistence file exists but cannot be
// decoded. It is distinct from runtime crypto failures so operators can tell
// store corruption apart from bad input.
var ErrCorruptStore = apperrors.New("keystore file is corrupt")

// FileKeyStore is a concurrency-safe repository of key records backed by a
// single JSON file mapping keyId to record.
type FileKeyStore struct {
	mu     sync.Mutex
	path   string
	keys   map[string]kmsDomain.KeyRecord
	logger *slog.Logger
}

// NewFileKeyStore opens (or initializes) the keystore at path. A missing
// file yields an empty store; an unreadable or undecodable file fails with
// ErrCorruptStore in the chain.
func NewFileKeyStore(path string, logger *slog.Logger) (*FileKeyStore, error) {
	store := &FileKeyStore{
		path:   path,
		keys:   make(map[string]kmsDomain.KeyRecord),
		logger: logger,
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create keystore directory: %w", err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore file: %w", err)
	}

	if err := json.Unmarshal(data, &store.keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}

	logger.Info("keystore loaded",
		slog.String("path", path),
		slog.Int("key_count", len(store.keys)),
	)

	return store, nil
}

// Insert adds a new record and persists the whole table. The only failure
// mode is storage I/O; on persist failure the in-memory table is rolled back
// so it never diverges from disk.
func (s *FileKeyStore) Insert(record kmsDomain.KeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys[record.KeyID] = record.Clone()
	if err := s.persistLocked(); err != nil {
		delete(s.keys, record.KeyID)
		return err
	}

	return nil
}

// Get returns a deep copy of the record for keyID, or a NotFound error.
func (s *FileKeyStore) Get(keyID string) (kmsDomain.KeyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.keys[keyID]
	if !ok {
		return kmsDomain.KeyRecord{}, kmsDomain.NewNotFound("Key '%s' not found", keyID)
	}

	return record.Clone(), nil
}

// List returns a snapshot of all key metadata sorted by creation time.
func (s *FileKeyStore) List() []kmsDomain.KeyMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	metadata := make([]kmsDomain.KeyMetadata, 0, len(s.keys))
	for _, record := range s.keys {
		metadata = append(metadata, record.Metadata)
	}
	sortMetadata(metadata)

	return metadata
}

// EnabledKeys returns deep copies of every enabled record in deterministic
// order (creation time, then keyId). The key-less decrypt path depends on
// this order being stable within a run.
func (s *FileKeyStore) EnabledKeys() []kmsDomain.KeyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]kmsDomain.KeyRecord, 0, len(s.keys))
	for _, record := range s.keys {
		if record.Metadata.Enabled {
			records = append(records, record.Clone())
		}
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i].Metadata, records[j].Metadata
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.KeyID < b.KeyID
	})

	return records
}

// UpdateState transitions a record to a new lifecycle state, recomputing the
// derived enabled flag, and persists the table. The read-modify-write runs
// atomically under the store lock.
func (s *FileKeyStore) UpdateState(keyID string, state kmsDomain.KeyState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.keys[keyID]
	if !ok {
		return kmsDomain.NewNotFound("Key '%s' not found", keyID)
	}

	// Scheduled deletion is one-way: the record stays until deleted outright,
	// but it never becomes usable again.
	if record.Metadata.State == kmsDomain.StatePendingDeletion && state != kmsDomain.StatePendingDeletion {
		return kmsDomain.NewKeyUnavailable("Key '%s' is pending deletion", keyID)
	}

	previous := record.Metadata
	record.Metadata.SetState(state)
	s.keys[keyID] = record

	if err := s.persistLocked(); err != nil {
		record.Metadata = previous
		s.keys[keyID] = record
		return err
	}

	return nil
}

// Delete removes a record outright and persists the table.
func (s *FileKeyStore) Delete(keyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.keys[keyID]
	if !ok {
		return kmsDomain.NewNotFound("Key '%s' not found", keyID)
	}

	delete(s.keys, keyID)
	if err := s.persistLocked(); err != nil {
		s.keys[keyID] = record
		return err
	}

	return nil
}

// persistLocked serializes the whole table and atomically replaces the
// keystore file. Callers must hold s.mu.
func (s *FileKeyStore) persistLocked() error {
	data, err := json.MarshalIndent(s.keys, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize keystore: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".keystore-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp keystore file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write keystore file: %w", err)
	}
	if err := tmp.Chmod(filePermissions); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set keystore file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close keystore file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace keystore file: %w", err)
	}

	return nil
}

// sortMetadata orders metadata by creation time, then keyId, so listings are
// stable across calls.
func sortMetadata(metadata []kmsDomain.KeyMetadata) {
	sort.Slice(metadata, func(i, j int) bool {
		if !metadata[i].CreatedAt.Equal(metadata[j].CreatedAt) {
			return metadata[i].CreatedAt.Before(metadata[j].CreatedAt)
		}
		return metadata[i].KeyID < metadata[j].KeyID
	})
}
