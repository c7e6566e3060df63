package store

import (
	"errors"
	"os"
	"path/filepath"

	mseekio "github.com/TimelordUK/mseek/internal/io"
)

// Usage summarises the directory for throughput estimates
type Usage struct {
	Files int
	Bytes int64
}

// Store gives read access to a flat directory of log files
type Store struct {
	dir string
}

// New creates a store rooted at dir
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory the store reads from
func (s *Store) Dir() string {
	return s.dir
}

// List returns the regular file names in directory order
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, newStorageError("list", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Read loads the full content of one file
func (s *Store) Read(name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := mseekio.ReadFile(path)
	if err != nil {
		return nil, newStorageError("read", path, err)
	}
	return data, nil
}

// Usage totals file count and size over the directory
func (s *Store) Usage() (Usage, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return Usage{}, newStorageError("usage", s.dir, err)
	}

	var u Usage
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between listing and stat
			continue
		}
		u.Files++
		u.Bytes += info.Size()
	}
	return u, nil
}

// WriteSynthetic creates a new file; it never overwrites.
func (s *Store) WriteSynthetic(name string, content []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return newStorageError("write", path, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return newStorageError("write", path, err)
	}
	if err := f.Close(); err != nil {
		return newStorageError("write", path, err)
	}
	return nil
}

// EnsureDir creates the directory if it does not exist
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return newStorageError("mkdir", s.dir, err)
	}
	return nil
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", &StorageError{
			Op:   "resolve",
			Path: name,
			Kind: KindNotFound,
			Err:  errors.New("invalid file name"),
		}
	}
	return filepath.Join(s.dir, name), nil
}
