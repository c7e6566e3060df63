package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestListSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"b.txt": "b", "a.txt": "a"})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	names, err := New(dir).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)
}

func TestListMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing")).List()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "list", se.Op)
	assert.Equal(t, KindNotFound, se.Kind)
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "Hello World"})
	s := New(dir)

	data, err := s.Read("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", string(data))

	_, err = s.Read("missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadRejectsPaths(t *testing.T) {
	s := New(t.TempDir())
	for _, name := range []string{"", ".", "..", "../etc/passwd", "sub/a.txt"} {
		_, err := s.Read(name)
		assert.ErrorIs(t, err, ErrNotFound, name)
	}
}

func TestUsage(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "1234", "b.txt": "123456"})

	u, err := New(dir).Usage()
	require.NoError(t, err)
	assert.Equal(t, Usage{Files: 2, Bytes: 10}, u)

	_, err = New(filepath.Join(dir, "missing")).Usage()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteSynthetic(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, s.WriteSynthetic("Lorem.txt", []byte("Lorem.txt\nipsum")))
	data, err := s.Read("Lorem.txt")
	require.NoError(t, err)
	assert.Equal(t, "Lorem.txt\nipsum", string(data))

	err = s.WriteSynthetic("Lorem.txt", []byte("other"))
	assert.ErrorIs(t, err, ErrExists)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs", "nested")
	s := New(dir)
	require.NoError(t, s.EnsureDir())

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Equal(t, dir, s.Dir())
}
