// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development.
// Provides predictable, controllable behavior for the readiness queue and the
// display transport.

package fake

import (
	"errors"
	"sync"

	"github.com/momentics/zukou-go/api"
	"github.com/momentics/zukou-go/reactor"
)

// ErrExhausted is returned by Queue.Wait when no scripted batch is left and
// no idle hook is set.
var ErrExhausted = errors.New("fake queue: no more batches")

// Control records one Queue.Control call.
type Control struct {
	Op    api.PollOp
	Fd    int
	Mask  uint32
	Token uint64
}

// Ready scripts one readiness notification by descriptor.
type Ready struct {
	Fd     int
	Events uint32
}

// Queue is a scripted reactor.Queue.
type Queue struct {
	mu       sync.Mutex
	controls []Control
	batches  [][]Ready
	tokens   map[int]uint64
	failures map[int]error
	closed   bool
	waits    int

	// OnIdle runs when Wait finds no scripted batch. Tests typically call
	// Terminate from it.
	OnIdle func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		tokens:   make(map[int]uint64),
		failures: make(map[int]error),
	}
}

// Push scripts the next batch.
func (q *Queue) Push(batch ...Ready) *Queue {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.batches = append(q.batches, batch)
	return q
}

// FailControl makes every Control call on fd fail with err.
func (q *Queue) FailControl(fd int, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.failures[fd] = err
}

// Control implements reactor.Queue.Control.
func (q *Queue) Control(op api.PollOp, fd int, mask uint32, token uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.failures[fd]; err != nil {
		return err
	}
	q.controls = append(q.controls, Control{Op: op, Fd: fd, Mask: mask, Token: token})
	if op == api.OpDelete {
		delete(q.tokens, fd)
	} else {
		q.tokens[fd] = token
	}
	return nil
}

// Wait implements reactor.Queue.Wait.
func (q *Queue) Wait(events []reactor.RawEvent, timeoutMs int) (int, error) {
	q.mu.Lock()
	q.waits++
	if len(q.batches) == 0 {
		idle := q.OnIdle
		q.mu.Unlock()
		if idle == nil {
			return 0, ErrExhausted
		}
		idle()
		return 0, nil
	}
	batch := q.batches[0]
	q.batches = q.batches[1:]
	n := 0
	for _, r := range batch {
		if n == len(events) {
			break
		}
		events[n] = reactor.RawEvent{Token: q.tokens[r.Fd], Events: r.Events}
		n++
	}
	q.mu.Unlock()
	return n, nil
}

// Close implements reactor.Queue.Close.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	return nil
}

// Controls returns recorded control calls.
func (q *Queue) Controls() []Control {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Control, len(q.controls))
	copy(out, q.controls)
	return out
}

// Waits returns how many times Wait ran.
func (q *Queue) Waits() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.waits
}

// Pending returns the number of unconsumed batches.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.batches)
}

// Closed reports whether Close ran.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
