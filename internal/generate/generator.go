// Package generate populates a log directory with synthetic files for
// speed testing.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/sync/errgroup"

	"github.com/TimelordUK/mseek/internal/store"
)

const (
	DefaultBatchSize   = 100
	DefaultFillerWords = 100
	DefaultParallelism = 8

	maxNameAttempts = 5
)

// Writer creates new files in the log directory
type Writer interface {
	WriteSynthetic(name string, content []byte) error
}

// Generator writes batches of filler files
type Generator struct {
	writer      Writer
	fillerWords int
	parallelism int
	logger      *slog.Logger

	mu    sync.Mutex
	faker *gofakeit.Faker
}

// Option configures a Generator.
type Option func(*Generator)

// WithFillerWords sets the number of filler words per file.
func WithFillerWords(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.fillerWords = n
		}
	}
}

// WithParallelism bounds how many files are written at once.
func WithParallelism(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.parallelism = n
		}
	}
}

// WithSeed makes generated names and text reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.faker = gofakeit.New(seed)
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a generator writing through w
func New(w Writer, opts ...Option) *Generator {
	g := &Generator{
		writer:      w,
		fillerWords: DefaultFillerWords,
		parallelism: DefaultParallelism,
		logger:      slog.Default(),
		faker:       gofakeit.New(0),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "generator")
	return g
}

// Batch writes n files and returns how many were created. It stops at the
// first write error other than a name collision.
func (g *Generator) Batch(ctx context.Context, n int) (int, error) {
	var created atomic.Int64

	parent := ctx
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.parallelism)

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := g.writeOne(); err != nil {
				return err
			}
			created.Add(1)
			return nil
		})
	}

	err := group.Wait()
	if err == nil {
		err = parent.Err()
	}
	g.logger.Info("generated log files", "requested", n, "created", created.Load())
	return int(created.Load()), err
}

func (g *Generator) writeOne() error {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		title := g.title()
		name := title + ".txt"
		err := g.writer.WriteSynthetic(name, []byte(name+"\n"+g.filler()))
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrExists) {
			return fmt.Errorf("write %s: %w", name, err)
		}
		g.logger.Debug("name taken, regenerating", "name", name)
	}
	return fmt.Errorf("no free file name after %d attempts: %w", maxNameAttempts, store.ErrExists)
}

// title returns two to five capitalised lorem ipsum words
func (g *Generator) title() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	parts := make([]string, g.faker.IntRange(2, 5))
	for i := range parts {
		w := g.faker.LoremIpsumWord()
		parts[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(parts, " ")
}

// filler returns a lorem ipsum sentence of fillerWords words
func (g *Generator) filler() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.faker.LoremIpsumSentence(g.fillerWords)
}
