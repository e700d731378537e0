// File: app/app.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package app

import (
	"github.com/google/uuid"
	"github.com/momentics/zukou-go/api"
	"github.com/momentics/zukou-go/capability"
	"github.com/momentics/zukou-go/control"
	"github.com/momentics/zukou-go/internal/logger"
	"github.com/momentics/zukou-go/internal/transport"
	"github.com/momentics/zukou-go/reactor"
)

var _ api.Debug = (*Application)(nil)

// Application owns the display connection, the bound globals and the
// multiplexer. It is not safe for concurrent use; every method must run on
// the goroutine that calls Run.
type Application struct {
	id        string
	log       *logger.Logger
	dial      Dialer
	newQueue  QueueFactory
	maxEvents int
	metrics   *control.MetricsRegistry
	probes    *control.DebugProbes

	state    State
	unusable bool
	closed   bool

	display    api.Display
	registry   api.Registry
	bindings   map[string]*binding
	formats    []uint32
	ray        *capability.Ray
	dataDevice *capability.DataDevice

	mux    *reactor.Multiplexer
	source *displaySource
}

// New creates an unconnected application.
func New(opts ...Option) *Application {
	a := &Application{
		id:        uuid.NewString(),
		log:       logger.Nop(),
		newQueue:  reactor.NewEpollQueue,
		maxEvents: reactor.DefaultMaxEvents,
		bindings:  make(map[string]*binding),
		probes:    control.NewDebugProbes(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.Child("instance", a.id)
	if a.metrics == nil {
		a.metrics = control.NewMetricsRegistry()
	}
	if a.dial == nil {
		log := a.log
		a.dial = func(endpoint string) (api.Display, error) {
			return transport.Connect(endpoint, transport.WithLogger(log))
		}
	}
	a.registerProbes()
	return a
}

// ID returns the instance id carried by every log entry.
func (a *Application) ID() string { return a.id }

// State returns the lifecycle stage.
func (a *Application) State() State { return a.state }

// Connect dials endpoint, binds the advertised globals and prepares the
// multiplexer. It may be called once; on failure the instance is unusable.
func (a *Application) Connect(endpoint string) error {
	if a.state != StateUnconnected || a.unusable || a.closed {
		return api.NewError(api.ErrCodeInvalidState, "connect already called").
			WithContext("state", a.state.String())
	}
	a.state = StateBootstrapping
	a.log.Info().Str("endpoint", endpoint).Msg("connecting")

	if err := a.bootstrap(endpoint); err != nil {
		a.log.Error().Err(err).Msg("bootstrap failed")
		a.teardown()
		a.state = StateUnconnected
		a.unusable = true
		return err
	}

	a.state = StateRunning
	a.log.Info().Int("globals", len(a.bindings)).Msg("connected")
	return nil
}

func (a *Application) bootstrap(endpoint string) error {
	d, err := a.dial(endpoint)
	if err != nil {
		if api.CodeOf(err) == api.ErrCodeConnection {
			return err
		}
		return api.WrapError(api.ErrCodeConnection, "failed to connect to server", err)
	}
	a.display = d

	reg, err := d.Registry()
	if err != nil {
		return api.WrapError(api.ErrCodeConnection, "failed to get registry", err)
	}
	a.registry = reg
	reg.SetListener(registryListener{a})

	if _, err := d.Dispatch(); err != nil {
		return api.WrapError(api.ErrCodeConnection, "initial dispatch failed", err)
	}
	if err := d.Roundtrip(); err != nil {
		return api.WrapError(api.ErrCodeConnection, "initial roundtrip failed", err)
	}

	if missing := a.missingGlobals(); len(missing) > 0 {
		return api.NewError(api.ErrCodeUnsupportedServer, "unsupported server").
			WithContext("missing", missing)
	}

	dev, err := capability.NewDataDevice(
		a.bindings[capability.InterfaceDataDeviceManager].proxy,
		a.bindings[capability.InterfaceSeat].proxy,
	)
	if err != nil {
		return err
	}
	a.dataDevice = dev

	q, err := a.newQueue()
	if err != nil {
		return api.WrapError(api.ErrCodeResource, "failed to create readiness queue", err)
	}
	a.mux = reactor.New(q,
		reactor.WithMaxEvents(a.maxEvents),
		reactor.WithLogger(a.log),
		reactor.WithMetrics(a.metrics),
	)

	src, err := newDisplaySource(d, a.mux.Terminate, a.mux.AddPollEvent, a.log)
	if err != nil {
		return err
	}
	if err := a.mux.AddPollEvent(src); err != nil {
		src.Release()
		return err
	}
	a.source = src
	return nil
}

// Run flushes queued requests and services ready sources until Terminate.
// It returns the status recorded by Terminate; run-time faults surface as
// api.ExitFailure.
func (a *Application) Run() (int, error) {
	if a.state != StateRunning {
		return api.ExitFailure, api.NewError(api.ErrCodeInvalidState, "run outside the running state").
			WithContext("state", a.state.String())
	}
	if err := a.display.Flush(); err != nil {
		a.log.Error().Err(err).Msg("initial flush failed")
		a.mux.Terminate(api.ExitFailure)
	} else {
		a.source.sync()
	}

	status, err := a.mux.Run()
	a.state = StateTerminated
	a.log.Info().Int("status", status).Msg("event loop finished")
	return status, err
}

// Terminate stops Run after the current batch with status.
func (a *Application) Terminate(status int) {
	if a.mux == nil {
		a.log.Warn().Int("status", status).Msg("terminate before connect ignored")
		return
	}
	a.mux.Terminate(status)
}

// Flush writes queued requests to the server.
func (a *Application) Flush() error {
	if a.display == nil || a.closed {
		return api.NewError(api.ErrCodeInvalidState, "not connected")
	}
	if err := a.display.Flush(); err != nil {
		return err
	}
	if a.source != nil {
		a.source.sync()
	}
	return nil
}

// AddPollEvent registers ev with the multiplexer.
func (a *Application) AddPollEvent(ev api.PollEvent) error {
	if a.mux == nil || a.closed {
		return api.NewError(api.ErrCodeInvalidState, "not connected")
	}
	return a.mux.AddPollEvent(ev)
}

// SetRayLength forwards to the ray once the seat reported one.
func (a *Application) SetRayLength(length float32) {
	if a.ray != nil {
		a.ray.SetLength(length)
	}
}

// SetDataDeviceLength forwards to the data device.
func (a *Application) SetDataDeviceLength(length float32) {
	if a.dataDevice != nil {
		a.dataDevice.SetLength(length)
	}
}

// Ray returns the ray, nil until the seat reports the capability.
func (a *Application) Ray() *capability.Ray { return a.ray }

// DataDevice returns the data device created by Connect.
func (a *Application) DataDevice() *capability.DataDevice { return a.dataDevice }

// Binding returns the proxy bound for iface, nil when none.
func (a *Application) Binding(iface string) api.Proxy {
	if b := a.bindings[iface]; b != nil {
		return b.proxy
	}
	return nil
}

// Formats returns the shm formats the server announced.
func (a *Application) Formats() []uint32 {
	out := make([]uint32, len(a.formats))
	copy(out, a.formats)
	return out
}

// Metrics returns the registry runtime counters go to.
func (a *Application) Metrics() *control.MetricsRegistry { return a.metrics }

// DumpState evaluates every debug probe.
func (a *Application) DumpState() map[string]any { return a.probes.DumpState() }

// RegisterProbe adds a probe reported by DumpState.
func (a *Application) RegisterProbe(name string, fn func() any) { a.probes.RegisterProbe(name, fn) }

// Close destroys the bound objects, the multiplexer and the connection.
func (a *Application) Close() error {
	if a.closed {
		return nil
	}
	err := a.teardown()
	a.closed = true
	if a.state == StateRunning {
		a.state = StateTerminated
	}
	return err
}

func (a *Application) teardown() error {
	if a.ray != nil {
		a.ray.Destroy()
		a.ray = nil
	}
	if a.dataDevice != nil {
		a.dataDevice.Destroy()
		a.dataDevice = nil
	}
	for i := len(capability.Mandatory) - 1; i >= 0; i-- {
		if b := a.bindings[capability.Mandatory[i]]; b != nil {
			b.proxy.Destroy()
		}
	}
	a.bindings = make(map[string]*binding)

	var err error
	if a.mux != nil {
		err = a.mux.Close()
		a.source = nil
	}
	if a.display != nil {
		if cerr := a.display.Close(); cerr != nil && err == nil {
			err = cerr
		}
		a.display = nil
	}
	a.registry = nil
	return err
}

func (a *Application) registerProbes() {
	a.probes.RegisterProbe("app.instance", func() any { return a.id })
	a.probes.RegisterProbe("app.state", func() any { return a.state.String() })
	a.probes.RegisterProbe("app.globals", func() any {
		out := make(map[string]uint32, len(a.bindings))
		for iface, b := range a.bindings {
			out[iface] = b.version
		}
		return out
	})
	a.probes.RegisterProbe("app.ray", func() any { return a.ray != nil })
	a.probes.RegisterProbe("shm.formats", func() any { return a.Formats() })
	a.probes.RegisterProbe("metrics", func() any { return a.metrics.GetSnapshot() })
	control.RegisterPlatformProbes(a.probes)
}
