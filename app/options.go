// File: app/options.go
// Author: momentics <momentics@gmail.com>

package app

import (
	"github.com/momentics/zukou-go/api"
	"github.com/momentics/zukou-go/control"
	"github.com/momentics/zukou-go/internal/logger"
	"github.com/momentics/zukou-go/reactor"
)

// Dialer opens the display connection for an endpoint.
type Dialer func(endpoint string) (api.Display, error)

// QueueFactory creates the readiness queue backing the multiplexer.
type QueueFactory func() (reactor.Queue, error)

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the base logger. The instance id is added to it.
func WithLogger(l *logger.Logger) Option {
	return func(a *Application) {
		if l != nil {
			a.log = l
		}
	}
}

// WithMaxEvents bounds the sources serviced per wait.
func WithMaxEvents(n int) Option {
	return func(a *Application) {
		if n > 0 {
			a.maxEvents = n
		}
	}
}

// WithDialer replaces the socket transport.
func WithDialer(d Dialer) Option {
	return func(a *Application) {
		if d != nil {
			a.dial = d
		}
	}
}

// WithQueueFactory replaces the epoll queue.
func WithQueueFactory(f QueueFactory) Option {
	return func(a *Application) {
		if f != nil {
			a.newQueue = f
		}
	}
}

// WithMetrics publishes runtime counters into mr.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(a *Application) {
		if mr != nil {
			a.metrics = mr
		}
	}
}
