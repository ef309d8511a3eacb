package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, s Store, name string) []byte {
	t.Helper()
	rc, err := s.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a.csv"), []byte("x\n1\n"), 0o600))

	s := NewLocalStore(dir)
	assert.Equal(t, []byte("x\n1\n"), readAll(t, s, "sub/a.csv"))

	_, err := s.Open(context.Background(), "missing.csv")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Open(context.Background(), "../etc/passwd")
	assert.Error(t, err)

	_, err = s.Open(context.Background(), "/etc/passwd")
	assert.Error(t, err)
}

func TestLocalStore_NoRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.csv")
	require.NoError(t, os.WriteFile(path, []byte("y\n"), 0o600))

	s := NewLocalStore("")
	assert.Equal(t, []byte("y\n"), readAll(t, s, path))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	data := []byte("hello")
	s.Put("a", data)

	// Stored data is a copy.
	data[0] = 'j'
	assert.Equal(t, []byte("hello"), readAll(t, s, "a"))

	s.Delete("a")
	_, err := s.Open(context.Background(), "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStores_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mem := NewMemoryStore()
	mem.Put("a", nil)

	for _, s := range []Store{mem, NewLocalStore(t.TempDir())} {
		_, err := s.Open(ctx, "a")
		assert.ErrorIs(t, err, context.Canceled)
	}
}
