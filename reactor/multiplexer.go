// File: reactor/multiplexer.go
// Author: momentics <momentics@gmail.com>
//
// Single-threaded event multiplexer. Every registration owns one container
// keyed by the token the queue hands back on readiness; the container holds
// the multiplexer's share of the PollEvent until the callback retires it.

package reactor

import (
	"github.com/momentics/zukou-go/api"
	"github.com/momentics/zukou-go/control"
	"github.com/momentics/zukou-go/internal/logger"
)

// DefaultMaxEvents bounds the sources serviced per wait.
const DefaultMaxEvents = 16

// Metric keys published by the multiplexer.
const (
	MetricBatches    = "reactor.batches"
	MetricDispatched = "reactor.dispatched"
	MetricRetired    = "reactor.retired"
	MetricPanics     = "reactor.panics"
	MetricSources    = "reactor.sources"
)

// container binds a registration token to a PollEvent.
type container struct {
	token uint64
	fd    int
	ev    api.PollEvent
}

// Option configures a Multiplexer.
type Option func(*Multiplexer)

// WithMaxEvents sets the per-wait batch size. Non-positive values are ignored.
func WithMaxEvents(n int) Option {
	return func(m *Multiplexer) {
		if n > 0 {
			m.maxEvents = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(m *Multiplexer) {
		if l != nil {
			m.log = l
		}
	}
}

// WithMetrics publishes counters into mr.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(m *Multiplexer) {
		if mr != nil {
			m.metrics = mr
		}
	}
}

// Multiplexer owns one readiness queue and the registrations made on it.
// It is not safe for concurrent use.
type Multiplexer struct {
	queue     Queue
	log       *logger.Logger
	metrics   *control.MetricsRegistry
	maxEvents int

	sources   map[uint64]*container
	byFd      map[int]uint64
	nextToken uint64

	running    bool
	stopped    bool
	ran        bool
	closed     bool
	exitStatus int
}

// New wraps q.
func New(q Queue, opts ...Option) *Multiplexer {
	m := &Multiplexer{
		queue:      q,
		log:        logger.Nop(),
		maxEvents:  DefaultMaxEvents,
		sources:    make(map[uint64]*container),
		byFd:       make(map[int]uint64),
		nextToken:  1,
		exitStatus: api.ExitSuccess,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.metrics == nil {
		m.metrics = control.NewMetricsRegistry()
	}
	return m
}

// NewEpoll creates a multiplexer on a fresh epoll instance.
func NewEpoll(opts ...Option) (*Multiplexer, error) {
	q, err := NewEpollQueue()
	if err != nil {
		return nil, api.WrapError(api.ErrCodeResource, "failed to create readiness queue", err)
	}
	return New(q, opts...), nil
}

// AddPollEvent issues ev's operation on its descriptor. OpAdd creates a new
// registration, OpModify replaces the container of the descriptor's current
// registration, OpDelete drops it. A replaced container is not released: the
// descriptor it watched is still in use.
func (m *Multiplexer) AddPollEvent(ev api.PollEvent) error {
	if m.closed {
		return api.NewError(api.ErrCodeInvalidState, "multiplexer closed")
	}
	if ev == nil {
		return api.NewError(api.ErrCodeInvalidArgument, "nil poll event")
	}
	fd, op := ev.Fd(), ev.Op()

	switch op {
	case api.OpAdd, api.OpModify:
		tok := m.nextToken
		m.nextToken++
		if err := m.queue.Control(op, fd, ev.Mask(), tok); err != nil {
			return resourceError(err, op, fd)
		}
		if old, ok := m.byFd[fd]; ok {
			if c := m.sources[old]; c != nil {
				// OpModify keeps the descriptor watched. An OpAdd that
				// succeeds on a known number means the descriptor was
				// closed and reused, so the kernel already dropped the old
				// registration and the number belongs to ev now.
				m.drop(c, false, false)
			}
		}
		m.sources[tok] = &container{token: tok, fd: fd, ev: ev}
		m.byFd[fd] = tok
	case api.OpDelete:
		if err := m.queue.Control(op, fd, 0, 0); err != nil {
			return resourceError(err, op, fd)
		}
		if tok, ok := m.byFd[fd]; ok {
			if c := m.sources[tok]; c != nil {
				m.drop(c, false, true)
			}
		}
	default:
		return api.NewError(api.ErrCodeInvalidArgument, "unknown poll operation").
			WithContext("op", int(op))
	}

	m.metrics.Set(MetricSources, len(m.sources))
	m.log.Debug().Str("op", op.String()).Int("fd", fd).Msg("poll event registered")
	return nil
}

// Run services ready sources until Terminate is observed and returns the
// recorded exit status. The wait has no timeout.
func (m *Multiplexer) Run() (int, error) {
	if m.closed {
		return api.ExitFailure, api.NewError(api.ErrCodeInvalidState, "multiplexer closed")
	}
	if m.ran {
		return m.exitStatus, api.NewError(api.ErrCodeInvalidState, "multiplexer already ran")
	}
	m.ran = true
	m.running = !m.stopped

	events := make([]RawEvent, m.maxEvents)
	for m.running {
		n, err := m.queue.Wait(events, -1)
		if err != nil {
			m.log.Error().Err(err).Msg("readiness wait failed")
			m.Terminate(api.ExitFailure)
			break
		}
		for i := 0; i < n; i++ {
			m.dispatch(events[i])
		}
		m.metrics.Add(MetricBatches, 1)
		m.metrics.Add(MetricDispatched, int64(n))
	}

	m.log.Debug().Int("status", m.exitStatus).Msg("event loop stopped")
	return m.exitStatus, nil
}

// Terminate records status and stops the loop after the current batch.
func (m *Multiplexer) Terminate(status int) {
	m.exitStatus = status
	m.running = false
	m.stopped = true
}

// Running reports whether Run is looping.
func (m *Multiplexer) Running() bool { return m.running }

// Len returns the number of live registrations.
func (m *Multiplexer) Len() int { return len(m.sources) }

// Metrics returns the registry counters are published to.
func (m *Multiplexer) Metrics() *control.MetricsRegistry { return m.metrics }

// Close drops every registration and closes the queue.
func (m *Multiplexer) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	for _, c := range m.sources {
		m.drop(c, true, true)
	}
	return m.queue.Close()
}

func (m *Multiplexer) dispatch(raw RawEvent) {
	c, ok := m.sources[raw.Token]
	if !ok {
		// retired earlier in this batch
		return
	}
	// the callback may have replaced its own registration
	if m.invoke(c, raw) && m.sources[c.token] == c {
		m.drop(c, true, true)
	}
}

func (m *Multiplexer) invoke(c *container, raw RawEvent) (retire bool) {
	defer func() {
		if r := recover(); r != nil {
			m.metrics.Add(MetricPanics, 1)
			m.log.Error().Interface("panic", r).Int("fd", c.fd).Msg("poll event callback panicked")
			retire = false
		}
	}()
	return c.ev.Ready(api.ReadyEvent{Fd: c.fd, Events: raw.Events})
}

// drop removes c from the arena. unregister also deletes the descriptor from
// the queue while c is still its current registration; release hands the
// PollEvent its Release call.
func (m *Multiplexer) drop(c *container, unregister, release bool) {
	delete(m.sources, c.token)
	current := m.byFd[c.fd] == c.token
	if current {
		delete(m.byFd, c.fd)
	}
	if unregister && current {
		if err := m.queue.Control(api.OpDelete, c.fd, 0, 0); err != nil {
			m.log.Debug().Err(err).Int("fd", c.fd).Msg("unregister failed")
		}
	}
	if r, ok := c.ev.(api.Releaser); ok && release {
		r.Release()
	}
	m.metrics.Add(MetricRetired, 1)
	m.metrics.Set(MetricSources, len(m.sources))
}

func resourceError(err error, op api.PollOp, fd int) error {
	e := api.NewError(api.ErrCodeResource, "failed to register poll event").
		WithContext("op", op.String()).
		WithContext("fd", fd)
	e.Err = err
	return e
}
