package store

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind classifies a storage failure
type ErrorKind int

const (
	KindUnreadable ErrorKind = iota
	KindNotFound
	KindPermissionDenied
	KindExists
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnreadable       = errors.New("unreadable")
	ErrExists           = errors.New("already exists")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindPermissionDenied:
		return ErrPermissionDenied
	case KindExists:
		return ErrExists
	default:
		return ErrUnreadable
	}
}

// StorageError describes a failed directory or file access
type StorageError struct {
	Op   string
	Path string
	Kind ErrorKind
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind.sentinel(), e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *StorageError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func newStorageError(op, path string, err error) *StorageError {
	kind := KindUnreadable
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermissionDenied
	case errors.Is(err, fs.ErrExist):
		kind = KindExists
	}
	return &StorageError{Op: op, Path: path, Kind: kind, Err: err}
}
