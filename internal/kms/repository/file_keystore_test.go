package repository

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/kms/internal/errors"
	kmsDomain "github.com/allisson/kms/internal/kms/domain"
)

func newTestStore(t *testing.T) (*FileKeyStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keystore.json")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewFileKeyStore(path, logger)
	require.NoError(t, err)
	return store, path
}

func newRecord(t *testing.T, description string) kmsDomain.KeyRecord {
	t.Helper()
	record, err := kmsDomain.NewKeyRecord(description, kmsDomain.UsageEncryptDecrypt)
	require.NoError(t, err)
	return record
}

func TestFileKeyStore_InsertGet(t *testing.T) {
	store, _ := newTestStore(t)
	record := newRecord(t, "first")

	require.NoError(t, store.Insert(record))

	got, err := store.Get(record.KeyID)
	require.NoError(t, err)
	assert.Equal(t, record.KeyID, got.KeyID)
	assert.Equal(t, record.Key, got.Key)
	assert.Equal(t, "first", got.Metadata.Description)

	t.Run("get returns a copy", func(t *testing.T) {
		got.Key[0] ^= 0xff
		again, err := store.Get(record.KeyID)
		require.NoError(t, err)
		assert.Equal(t, record.Key, again.Key)
	})

	t.Run("missing key fails not found with exact message", func(t *testing.T) {
		_, err := store.Get("non-existent")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
		assert.Equal(t, "Key 'non-existent' not found", err.Error())
	})
}

func TestFileKeyStore_List(t *testing.T) {
	store, _ := newTestStore(t)

	before := len(store.List())
	const n = 5
	for range n {
		require.NoError(t, store.Insert(newRecord(t, "listed")))
	}

	listed := store.List()
	assert.Equal(t, before+n, len(listed))
}

func TestFileKeyStore_UpdateState(t *testing.T) {
	store, _ := newTestStore(t)
	record := newRecord(t, "")
	require.NoError(t, store.Insert(record))

	require.NoError(t, store.UpdateState(record.KeyID, kmsDomain.StateDisabled))

	got, err := store.Get(record.KeyID)
	require.NoError(t, err)
	assert.Equal(t, kmsDomain.StateDisabled, got.Metadata.State)
	assert.False(t, got.Metadata.Enabled)

	t.Run("re-enable recomputes enabled", func(t *testing.T) {
		require.NoError(t, store.UpdateState(record.KeyID, kmsDomain.StateEnabled))
		got, err := store.Get(record.KeyID)
		require.NoError(t, err)
		assert.True(t, got.Metadata.Enabled)
	})

	t.Run("missing key fails not found", func(t *testing.T) {
		err := store.UpdateState("nope", kmsDomain.StateDisabled)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("pending deletion is one-way", func(t *testing.T) {
		require.NoError(t, store.UpdateState(record.KeyID, kmsDomain.StatePendingDeletion))

		err := store.UpdateState(record.KeyID, kmsDomain.StateEnabled)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnavailable))

		got, err := store.Get(record.KeyID)
		require.NoError(t, err)
		assert.Equal(t, kmsDomain.StatePendingDeletion, got.Metadata.State)
	})
}

func TestFileKeyStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	record := newRecord(t, "")
	require.NoError(t, store.Insert(record))

	require.NoError(t, store.Delete(record.KeyID))

	_, err := store.Get(record.KeyID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	for _, meta := range store.List() {
		assert.NotEqual(t, record.KeyID, meta.KeyID)
	}

	t.Run("double delete fails not found", func(t *testing.T) {
		err := store.Delete(record.KeyID)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestFileKeyStore_EnabledKeys(t *testing.T) {
	store, _ := newTestStore(t)

	a := newRecord(t, "a")
	b := newRecord(t, "b")
	c := newRecord(t, "c")
	for _, record := range []kmsDomain.KeyRecord{a, b, c} {
		require.NoError(t, store.Insert(record))
	}
	require.NoError(t, store.UpdateState(b.KeyID, kmsDomain.StateDisabled))

	enabled := store.EnabledKeys()
	require.Equal(t, 2, len(enabled))
	for _, record := range enabled {
		assert.NotEqual(t, b.KeyID, record.KeyID)
		assert.True(t, record.Metadata.Enabled)
	}

	t.Run("order is deterministic", func(t *testing.T) {
		first := store.EnabledKeys()
		second := store.EnabledKeys()
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].KeyID, second[i].KeyID)
		}
	})
}

func TestFileKeyStore_Persistence(t *testing.T) {
	store, path := newTestStore(t)
	record := newRecord(t, "survives restart")
	require.NoError(t, store.Insert(record))
	require.NoError(t, store.UpdateState(record.KeyID, kmsDomain.StateDisabled))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reloaded, err := NewFileKeyStore(path, logger)
	require.NoError(t, err)

	got, err := reloaded.Get(record.KeyID)
	require.NoError(t, err)
	assert.Equal(t, record.Key, got.Key)
	assert.Equal(t, record.ARN, got.ARN)
	assert.Equal(t, kmsDomain.StateDisabled, got.Metadata.State)
	assert.Equal(t, "survives restart", got.Metadata.Description)

	t.Run("no temp files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Equal(t, 1, len(entries))
	})

	t.Run("corrupt file fails load distinctly", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		_, err := NewFileKeyStore(path, logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptStore)
	})
}

func TestFileKeyStore_ConcurrentMutations(t *testing.T) {
	store, path := newTestStore(t)

	const workers = 8
	const perWorker = 10

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				record := newRecord(t, "concurrent")
				if err := store.Insert(record); err != nil {
					t.Error(err)
					return
				}
				if err := store.UpdateState(record.KeyID, kmsDomain.StateDisabled); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	listed := store.List()
	assert.Equal(t, workers*perWorker, len(listed))
	for _, meta := range listed {
		// No partially-applied mutation: state and derived flag always agree.
		assert.Equal(t, kmsDomain.StateDisabled, meta.State)
		assert.False(t, meta.Enabled)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reloaded, err := NewFileKeyStore(path, logger)
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, len(reloaded.List()))
}
