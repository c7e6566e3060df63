// Package io reads log files through read-only memory maps.
package io

import (
	"fmt"

	"golang.org/x/exp/mmap"
)

// ReadFile maps path, copies its content out and unmaps it. The returned
// slice stays valid after the mapping is gone.
func ReadFile(path string) ([]byte, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return copyOut(r)
}

func copyOut(r *mmap.ReaderAt) ([]byte, error) {
	size := r.Len()
	if size == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, size)
	n, err := r.ReadAt(buf, 0)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("short read: %d of %d bytes", n, size)
	}
	return buf, nil
}
