// Package fetch manages the lifecycle of one asynchronous catalog read: status tracking,
// bounded fixed-delay retry and a re-triggerable handle to the latest result.
package fetch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/pkg/clock"
)

// Status is the lifecycle position of a controller
type Status string

// Statuses
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is a snapshot of a controller.
// Value is only meaningful when HasValue is set; Err is only set in StatusError.
type State[T any] struct {
	Status   Status
	Value    T
	HasValue bool
	Err      *errors.Shape
	Attempt  int
}

// Producer performs one idempotent read
type Producer[T any] func(ctx context.Context) (T, error)

// OverlapPolicy decides what happens when invocations overlap
type OverlapPolicy int

const (
	// OverlapLatestRequest cancels older invocations and discards their late results
	OverlapLatestRequest OverlapPolicy = iota
	// OverlapLastWrite lets every invocation finish; whichever completes last wins
	OverlapLastWrite
)

// Executor runs a producer invocation
type Executor interface {
	Go(fn func())
}

// ExecutorFunc adapts a function to Executor
type ExecutorFunc func(fn func())

// Go runs fn
func (f ExecutorFunc) Go(fn func()) {
	f(fn)
}

// Goroutine runs each invocation on a new goroutine
var Goroutine Executor = ExecutorFunc(func(fn func()) { go fn() })

// Inline runs each invocation on the calling goroutine
var Inline Executor = ExecutorFunc(func(fn func()) { fn() })

// Config configures a Controller
type Config struct {
	// Skip suppresses the automatic first invocation
	Skip bool
	// RetryLimit is how many extra attempts follow a failure
	RetryLimit int
	// RetryDelay is the fixed pause between attempts; zero retries on the next clock tick
	RetryDelay time.Duration
	Overlap    OverlapPolicy

	// Name labels log lines
	Name     string
	Context  context.Context
	Clock    clock.Clock
	Executor Executor
	Logger   *slog.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateNonNegative("RetryLimit", cfg.RetryLimit, vb)
	if cfg.RetryDelay < 0 {
		vb.Fieldf("RetryDelay", "must not be negative, got %s", cfg.RetryDelay)
	}
	if cfg.Overlap != OverlapLatestRequest && cfg.Overlap != OverlapLastWrite {
		vb.InvalidField("Overlap", "unknown policy")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Executor == nil {
		cfg.Executor = Goroutine
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return nil
}

// Controller owns the State of one read. It is safe for concurrent use; completions are
// applied one at a time.
type Controller[T any] struct {
	producer Producer[T]
	cfg      Config

	mu        sync.Mutex
	state     State[T]
	version   uint64
	seq       uint64
	inflight  map[uint64]context.CancelFunc
	timer     clock.Timer
	closed    bool
	listeners map[int]func(State[T])
	nextSub   int

	// notifyMu serializes delivery; delivered is the newest version listeners have seen
	notifyMu  sync.Mutex
	delivered uint64
}

// snapshot is one state change waiting to be delivered
type snapshot[T any] struct {
	version   uint64
	state     State[T]
	listeners []func(State[T])
}

type invocation struct {
	seq uint64
	ctx context.Context
}

// New creates a controller for producer. Unless cfg.Skip is set, the first invocation starts
// before New returns.
func New[T any](producer Producer[T], cfg *Config) (*Controller[T], error) {
	if producer == nil {
		return nil, errors.InvalidArgument("producer is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid fetch config")
	}

	c := &Controller[T]{
		producer:  producer,
		cfg:       *cfg,
		state:     State[T]{Status: StatusIdle},
		inflight:  make(map[uint64]context.CancelFunc),
		listeners: make(map[int]func(State[T])),
	}

	if !cfg.Skip {
		c.Refetch()
	}
	return c, nil
}

// State returns the current snapshot
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive state changes in the order they happened. A change that
// is superseded before it is delivered is skipped, so the last call fn sees always matches
// State. fn must not call Refetch. The returned func unsubscribes.
func (c *Controller[T]) Subscribe(fn func(State[T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Refetch resets the attempt counter and starts a new invocation whatever the current status.
func (c *Controller[T]) Refetch() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Attempt = 0
	c.stopTimerLocked()
	if c.cfg.Overlap == OverlapLatestRequest {
		c.cancelInflightLocked()
	}
	inv := c.beginLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.deliver(snap)
	c.run(inv)
}

// Wait blocks until the controller is idle, succeeded or failed for good, or ctx is done.
// Retries in progress count as still loading.
func (c *Controller[T]) Wait(ctx context.Context) (State[T], error) {
	settled := make(chan State[T], 1)
	unsubscribe := c.Subscribe(func(st State[T]) {
		if st.Status != StatusLoading {
			select {
			case settled <- st:
			default:
			}
		}
	})
	defer unsubscribe()

	if st := c.State(); st.Status != StatusLoading {
		return st, nil
	}

	select {
	case st := <-settled:
		return st, nil
	case <-ctx.Done():
		code := errors.CodeCanceled
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			code = errors.CodeDeadlineExceeded
		}
		return c.State(), errors.WrapWithCode(ctx.Err(), code, "stopped waiting for "+c.cfg.Name)
	}
}

// Close cancels in-flight invocations and any pending retry. Later completions are ignored.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.stopTimerLocked()
	c.cancelInflightLocked()
	c.listeners = make(map[int]func(State[T]))
}

func (c *Controller[T]) run(inv invocation) {
	c.cfg.Executor.Go(func() {
		value, err := c.producer(inv.ctx)
		c.complete(inv, value, err)
	})
}

func (c *Controller[T]) retry(seq uint64) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.cfg.Overlap == OverlapLatestRequest && seq != c.seq {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	inv := c.beginLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.deliver(snap)
	c.run(inv)
}

func (c *Controller[T]) complete(inv invocation, value T, err error) {
	c.mu.Lock()
	if cancel, ok := c.inflight[inv.seq]; ok {
		cancel()
		delete(c.inflight, inv.seq)
	}
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.cfg.Overlap == OverlapLatestRequest && inv.seq != c.seq {
		c.cfg.Logger.Debug("discarding stale fetch result", "fetch", c.cfg.Name, "seq", inv.seq, "latest", c.seq)
		c.mu.Unlock()
		return
	}

	switch {
	case err == nil:
		c.state = State[T]{Status: StatusSuccess, Value: value, HasValue: true}
	case c.state.Attempt < c.cfg.RetryLimit:
		c.state = State[T]{Status: StatusLoading, Attempt: c.state.Attempt + 1}
		c.cfg.Logger.Debug("fetch failed, retrying",
			"fetch", c.cfg.Name,
			"attempt", c.state.Attempt,
			"retry_limit", c.cfg.RetryLimit,
			"delay", c.cfg.RetryDelay,
			"error", err)
		seq := inv.seq
		c.stopTimerLocked()
		c.timer = c.cfg.Clock.AfterFunc(c.cfg.RetryDelay, func() { c.retry(seq) })
	default:
		shape := errors.ToShape(err, c.cfg.Clock.Now())
		c.state = State[T]{Status: StatusError, Err: shape, Attempt: c.state.Attempt}
		c.cfg.Logger.Debug("fetch failed", "fetch", c.cfg.Name, "attempt", c.state.Attempt, "error", err)
	}

	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.deliver(snap)
}

// beginLocked moves to loading and allocates the next invocation
func (c *Controller[T]) beginLocked() invocation {
	c.seq++
	ctx, cancel := context.WithCancel(c.cfg.Context)
	c.inflight[c.seq] = cancel
	c.state = State[T]{Status: StatusLoading, Attempt: c.state.Attempt}
	return invocation{seq: c.seq, ctx: ctx}
}

func (c *Controller[T]) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller[T]) cancelInflightLocked() {
	for seq, cancel := range c.inflight {
		cancel()
		delete(c.inflight, seq)
	}
}

// snapshotLocked stamps the current state with a new version
func (c *Controller[T]) snapshotLocked() snapshot[T] {
	c.version++
	listeners := make([]func(State[T]), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	return snapshot[T]{version: c.version, state: c.state, listeners: listeners}
}

func (c *Controller[T]) deliver(snap snapshot[T]) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	if snap.version <= c.delivered {
		return
	}
	c.delivered = snap.version
	for _, fn := range snap.listeners {
		fn(snap.state)
	}
}
