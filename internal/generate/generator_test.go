package generate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/mseek/internal/store"
)

func TestBatchWritesFiles(t *testing.T) {
	s := store.New(t.TempDir())
	g := New(s, WithSeed(1), WithFillerWords(20), WithParallelism(4))

	created, err := g.Batch(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, created)

	names, err := s.List()
	require.NoError(t, err)
	assert.Len(t, names, 25)

	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, ".txt"), name)
		data, err := s.Read(name)
		require.NoError(t, err)

		header, body, ok := strings.Cut(string(data), "\n")
		require.True(t, ok)
		assert.Equal(t, name, header)
		assert.Len(t, strings.Fields(body), 20)
		assert.True(t, strings.HasSuffix(body, "."))
	}
}

// collidingWriter reports the first n writes as taken
type collidingWriter struct {
	mu     sync.Mutex
	taken  int
	names  []string
	failed error
}

func (w *collidingWriter) WriteSynthetic(name string, _ []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failed != nil {
		return w.failed
	}
	if w.taken > 0 {
		w.taken--
		return &store.StorageError{Op: "write", Path: name, Kind: store.KindExists, Err: errors.New("exists")}
	}
	w.names = append(w.names, name)
	return nil
}

func TestBatchRetriesNameCollisions(t *testing.T) {
	w := &collidingWriter{taken: 3}
	created, err := New(w, WithSeed(2), WithParallelism(1)).Batch(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Len(t, w.names, 2)
}

func TestBatchStopsOnWriteError(t *testing.T) {
	w := &collidingWriter{failed: &store.StorageError{Op: "write", Kind: store.KindPermissionDenied, Err: errors.New("denied")}}
	created, err := New(w, WithSeed(3)).Batch(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrPermissionDenied)
	assert.Zero(t, created)
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &collidingWriter{}
	created, err := New(w).Batch(ctx, 10)
	assert.Zero(t, created)
	assert.Empty(t, w.names)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeedIsReproducible(t *testing.T) {
	a := New(&collidingWriter{}, WithSeed(42), WithFillerWords(8))
	b := New(&collidingWriter{}, WithSeed(42), WithFillerWords(8))

	for range 3 {
		assert.Equal(t, a.title(), b.title())
		assert.Equal(t, a.filler(), b.filler())
	}

	title := a.title()
	words := strings.Fields(title)
	assert.GreaterOrEqual(t, len(words), 2)
	assert.LessOrEqual(t, len(words), 5)
	for _, w := range words {
		assert.Equal(t, strings.ToUpper(w[:1]), w[:1], title)
	}
}
