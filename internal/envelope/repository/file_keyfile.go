// Package repository persists the wrapped data key record as a single JSON
// keyfile, replaced atomically on every write.
package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/allisson/kms/internal/envelope/domain"
	"github.com/allisson/kms/internal/errors"
)

// FileKeyfileRepository stores a WrappedDataKey record in a JSON file.
type FileKeyfileRepository struct {
	path   string
	logger *slog.Logger
}

// NewFileKeyfileRepository returns a repository backed by the given path.
// The parent directory is created if it does not exist.
func NewFileKeyfileRepository(path string, logger *slog.Logger) (*FileKeyfileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create keyfile directory")
	}

	return &FileKeyfileRepository{path: path, logger: logger}, nil
}

// Exists reports whether a keyfile is present at the configured path.
func (r *FileKeyfileRepository) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// Load reads and parses the keyfile. A missing file returns
// ErrKeyfileNotFound; an unparsable file returns ErrCorruptKeyfile.
func (r *FileKeyfileRepository) Load() (domain.WrappedDataKey, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.WrappedDataKey{}, domain.ErrKeyfileNotFound
		}
		return domain.WrappedDataKey{}, errors.Wrap(err, "failed to read keyfile")
	}

	var record domain.WrappedDataKey
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.WrappedDataKey{}, fmt.Errorf("%w: %v", domain.ErrCorruptKeyfile, err)
	}

	return record, nil
}

// Store writes the record to disk via a temporary file and rename, so a
// crash mid-write never leaves a partially written keyfile behind.
func (r *FileKeyfileRepository) Store(record domain.WrappedDataKey) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode keyfile")
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".keyfile-*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary keyfile")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to write temporary keyfile")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to set keyfile permissions")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to close temporary keyfile")
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to replace keyfile")
	}

	r.logger.Debug("keyfile persisted", slog.String("path", r.path))
	return nil
}
