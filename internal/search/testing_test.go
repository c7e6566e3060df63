package search

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/mseek/internal/store"
)

// memStore is an in-memory Store that records read concurrency.
type memStore struct {
	mu      sync.Mutex
	names   []string
	files   map[string]string
	listErr error
	gate    chan struct{}
	delay   time.Duration

	reads     atomic.Int32
	active    atomic.Int32
	maxActive atomic.Int32
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string]string)}
}

func (s *memStore) add(name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, name)
	s.files[name] = content
}

func (s *memStore) List() ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out, nil
}

func (s *memStore) Read(name string) ([]byte, error) {
	s.reads.Add(1)
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		m := s.maxActive.Load()
		if n <= m || s.maxActive.CompareAndSwap(m, n) {
			break
		}
	}

	if s.gate != nil {
		<-s.gate
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[name]
	if !ok {
		return nil, &store.StorageError{Op: "read", Path: name, Kind: store.KindNotFound, Err: errors.New("missing")}
	}
	return []byte(content), nil
}

func (s *memStore) Usage() (store.Usage, error) {
	if s.listErr != nil {
		return store.Usage{}, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var u store.Usage
	for _, c := range s.files {
		u.Files++
		u.Bytes += int64(len(c))
	}
	return u, nil
}

func fillStore(s *memStore, n int, content func(i int) string) {
	for i := 0; i < n; i++ {
		s.add(fmt.Sprintf("log-%03d.txt", i), content(i))
	}
}

const eventTimeout = 5 * time.Second

func nextEvent(t *testing.T, c *Coordinator) Event {
	t.Helper()
	select {
	case ev := <-c.Events():
		return ev
	case <-time.After(eventTimeout):
		t.Fatal("timed out waiting for coordinator event")
		return nil
	}
}

// waitSpeed reads events until a speed sample arrives and returns it with
// the last snapshot that preceded it. Every snapshot seen is passed to check.
func waitSpeed(t *testing.T, c *Coordinator, check func(ResultsChanged)) (ResultsChanged, SpeedMeasured) {
	t.Helper()
	var last ResultsChanged
	for {
		switch ev := nextEvent(t, c).(type) {
		case ResultsChanged:
			if check != nil {
				check(ev)
			}
			last = ev
		case SpeedMeasured:
			return last, ev
		}
	}
}

// waitIdle returns the first idle snapshot.
func waitIdle(t *testing.T, c *Coordinator) ResultsChanged {
	t.Helper()
	for {
		if ev, ok := nextEvent(t, c).(ResultsChanged); ok && ev.Phase == PhaseIdle {
			return ev
		}
	}
}

func names(entries []LogEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func startCoordinator(t *testing.T, s Store, opts ...Option) *Coordinator {
	t.Helper()
	c, err := New(s, opts...)
	require.NoError(t, err)
	c.Start(t.Context())
	t.Cleanup(c.Close)
	return c
}
