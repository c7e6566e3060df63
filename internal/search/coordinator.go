package search

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// Store is everything the coordinator needs from the log directory
type Store interface {
	Reader
	UsageSource
	List() ([]string, error)
}

// Coordinator runs multi-term searches over the store with a bounded
// number of workers.
//
// All search state is owned by a single loop goroutine. Queries and worker
// results reach it as messages, so the pending queue, in-flight counts,
// generation id and result list are never shared. Superseded workers are
// not interrupted; their results carry an old generation and are dropped
// when they arrive.
type Coordinator struct {
	store  Store
	pool   *ants.Pool
	logger *slog.Logger
	now    func() time.Time

	maxConcurrency int
	maxResults     int
	eventBuffer    int

	queries chan []string
	done    chan Result
	events  chan Event
	stopped chan struct{}

	startOnce sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	// owned by the loop goroutine
	phase      Phase
	generation uint64
	pending    []string
	live       int // every running worker, stale or not
	current    int // running workers of the current generation
	total      int
	remaining  int
	started    time.Time
	results    *Aggregator
	speed      *SpeedTracker
}

// New creates a coordinator over store. Call Start before submitting.
func New(store Store, opts ...Option) (*Coordinator, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	c := &Coordinator{
		store:          store,
		logger:         slog.Default(),
		now:            time.Now,
		maxConcurrency: DefaultMaxConcurrency,
		maxResults:     DefaultMaxResults,
		eventBuffer:    defaultEventBuffer,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(c.maxConcurrency)
	if err != nil {
		return nil, err
	}

	c.pool = pool
	c.logger = c.logger.With("component", "coordinator")
	c.queries = make(chan []string)
	// live never exceeds maxConcurrency, so workers never block on send
	c.done = make(chan Result, c.maxConcurrency)
	c.events = make(chan Event, c.eventBuffer)
	c.stopped = make(chan struct{})
	c.results = NewAggregator(c.maxResults)
	c.speed = NewSpeedTracker(store, c.now)

	return c, nil
}

// Start launches the loop goroutine. It stops when ctx is done or Close
// is called.
func (c *Coordinator) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		c.cancel = cancel
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.run(ctx)
		}()
	})
}

// Close stops the loop and releases the worker pool. Workers still running
// finish in the background and their results are discarded.
func (c *Coordinator) Close() {
	// never started: nothing will close stopped for us
	c.startOnce.Do(func() { close(c.stopped) })
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	c.pool.Release()
}

// Events streams result snapshots and speed samples.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// MaxResults returns the result list bound
func (c *Coordinator) MaxResults() int {
	return c.maxResults
}

// MaxConcurrency returns the worker cap
func (c *Coordinator) MaxConcurrency() int {
	return c.maxConcurrency
}

// Submit starts a new generation for terms. Empty terms show the
// unfiltered listing instead of searching.
func (c *Coordinator) Submit(ctx context.Context, terms []string) error {
	terms = slices.Clone(terms)
	if terms == nil {
		terms = []string{}
	}

	select {
	case c.queries <- terms:
		return nil
	case <-c.stopped:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ShowAll resets to the unfiltered listing.
func (c *Coordinator) ShowAll(ctx context.Context) error {
	return c.Submit(ctx, nil)
}

func (c *Coordinator) run(ctx context.Context) {
	defer close(c.stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case terms := <-c.queries:
			c.handleQuery(ctx, terms)
		case res := <-c.done:
			c.handleResult(ctx, res)
		}
	}
}

func (c *Coordinator) handleQuery(ctx context.Context, terms []string) {
	c.generation++
	q := Query{Generation: c.generation, Terms: NormalizeTerms(terms)}

	c.results.Reset(q)
	c.pending = nil
	c.current = 0
	c.total = 0
	c.remaining = 0

	files, err := c.store.List()
	if err != nil {
		c.logger.Warn("list log directory", "error", err)
		files = nil
	}

	c.emit(ctx, QueryStarted{Query: q, Files: len(files)})

	if q.Empty() {
		c.results.Fill(files)
		c.phase = PhaseIdle
		c.logger.Debug("showing unfiltered listing", "generation", q.Generation, "files", len(files))
		c.publish(ctx)
		return
	}

	if len(files) == 0 {
		c.phase = PhaseIdle
		c.publish(ctx)
		return
	}

	c.logger.Debug("search started",
		"generation", q.Generation,
		"terms", q.Terms,
		"files", len(files),
		"stale_in_flight", c.live)

	c.pending = files
	c.total = len(files)
	c.started = c.now()
	c.phase = PhaseSearching
	c.refill()
	c.publish(ctx)
	c.checkDrained(ctx)
}

func (c *Coordinator) handleResult(ctx context.Context, res Result) {
	c.live--
	stale := res.Generation != c.generation
	if !stale {
		c.current--
	}

	if res.Err != nil {
		c.logger.Debug("read failed, treating as no match", "file", res.Name, "error", res.Err)
	}

	accepted := c.results.Accept(res)
	if !stale && c.results.Full() && len(c.pending) > 0 {
		c.logger.Debug("result list full, dropping queue",
			"generation", c.generation, "remaining", len(c.pending))
		c.remaining += len(c.pending)
		c.pending = nil
	}

	c.refill()

	if accepted || !stale {
		c.publish(ctx)
	}
	c.checkDrained(ctx)
}

// refill dispatches queued files one-for-one while there is capacity.
func (c *Coordinator) refill() {
	for c.live < c.maxConcurrency && len(c.pending) > 0 {
		name := c.pending[0]
		c.pending = c.pending[1:]
		c.dispatch(name)
	}

	if len(c.pending) == 0 && c.phase == PhaseSearching {
		c.phase = PhaseDraining
	}
}

func (c *Coordinator) dispatch(name string) {
	q := c.results.Active()
	c.live++
	c.current++

	err := c.pool.Submit(func() {
		c.done <- Evaluate(c.store, q, name)
	})
	if err != nil {
		c.live--
		c.current--
		c.remaining++
		c.logger.Warn("dispatch search worker", "file", name, "error", err)
	}
}

// checkDrained measures speed once the current generation has no queued
// or running work left.
func (c *Coordinator) checkDrained(ctx context.Context) {
	if c.phase == PhaseIdle || len(c.pending) > 0 || c.current > 0 {
		return
	}

	c.phase = PhaseIdle
	c.publish(ctx)

	sample, err := c.speed.Compute(c.started, c.total, c.remaining)
	if err != nil {
		c.logger.Warn("speed measurement failed", "generation", c.generation, "error", err)
		return
	}

	c.logger.Info("search finished",
		"generation", c.generation,
		"results", c.results.Len(),
		"elapsed", sample.Elapsed,
		"speed", sample.String())
	c.emit(ctx, SpeedMeasured{Generation: c.generation, Sample: *sample})
}

func (c *Coordinator) publish(ctx context.Context) {
	active := c.results.Active()
	c.emit(ctx, ResultsChanged{
		Generation: active.Generation,
		Entries:    c.results.Entries(),
		Phase:      c.phase,
		Pending:    len(c.pending),
		InFlight:   c.live,
		Truncated:  c.results.Full(),
		Unfiltered: active.Empty(),
	})
}

func (c *Coordinator) emit(ctx context.Context, ev Event) {
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}
