// File: fake/display.go
// Author: momentics <momentics@gmail.com>
//
// Scriptable in-memory display. Globals are advertised on the first Dispatch
// or Roundtrip after a registry listener is attached; events queued with
// Emit are delivered by ReadEvents followed by DispatchPending.

package fake

import (
	"os"

	"github.com/momentics/zukou-go/api"
)

// Global is one advertised global.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Request records one request sent through a fake proxy.
type Request struct {
	Sender uint32
	Iface  string
	Opcode uint16
	Args   []any

	// NewID is the id allocated by a constructor request, zero otherwise.
	NewID uint32
}

// Display is a fake api.Display. It is not safe for concurrent use.
type Display struct {
	r, w *os.File

	globals    []Global
	advertised int
	removed    []uint32
	registry   *Registry

	objects map[uint32]*Proxy
	created []*Proxy
	nextID  uint32

	wire    []*api.Message // emitted, not yet read
	pending []*api.Message // read, not yet dispatched
	reading bool

	calls    []string
	requests []Request
	closed   bool

	// Scripted failures. Slices are consumed one call at a time; once empty
	// the call succeeds.
	PrepareReadErrs []error
	FlushErrs       []error
	ReadErr         error
	DispatchErr     error
	RoundtripErr    error
	RegistryErr     error

	// Queued is reported by Backlog.
	Queued int
}

// NewDisplay creates a display advertising globals.
func NewDisplay(globals ...Global) (*Display, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &Display{
		r:       r,
		w:       w,
		globals: globals,
		objects: make(map[uint32]*Proxy),
		nextID:  2,
	}, nil
}

// Globals builds sequentially named globals at version 1.
func Globals(ifaces ...string) []Global {
	out := make([]Global, len(ifaces))
	for i, iface := range ifaces {
		out[i] = Global{Name: uint32(i + 1), Interface: iface, Version: 1}
	}
	return out
}

// AddGlobal advertises g on the next delivery.
func (d *Display) AddGlobal(g Global) { d.globals = append(d.globals, g) }

// RemoveGlobal announces the removal of name on the next delivery.
func (d *Display) RemoveGlobal(name uint32) { d.removed = append(d.removed, name) }

// Emit queues an event for target, delivered after the next read.
func (d *Display) Emit(target api.Proxy, opcode uint16, args ...any) error {
	msg, err := api.NewMessage(target.ID(), opcode, args...)
	if err != nil {
		return err
	}
	d.wire = append(d.wire, msg)
	return nil
}

// EmitPending queues an event as if already read, so PrepareRead retries.
func (d *Display) EmitPending(target api.Proxy, opcode uint16, args ...any) error {
	msg, err := api.NewMessage(target.ID(), opcode, args...)
	if err != nil {
		return err
	}
	d.pending = append(d.pending, msg)
	return nil
}

// Fd returns the read end of an internal pipe.
func (d *Display) Fd() int { return int(d.r.Fd()) }

// PrepareRead implements api.Display.
func (d *Display) PrepareRead() error {
	d.calls = append(d.calls, "prepare_read")
	if err := pop(&d.PrepareReadErrs); err != nil {
		return err
	}
	d.reading = true
	return nil
}

// CancelRead implements api.Display.
func (d *Display) CancelRead() {
	d.calls = append(d.calls, "cancel_read")
	d.reading = false
}

// ReadEvents implements api.Display.
func (d *Display) ReadEvents() error {
	d.calls = append(d.calls, "read_events")
	if !d.reading {
		return api.NewError(api.ErrCodeInvalidState, "read events without prepare read")
	}
	d.reading = false
	if d.ReadErr != nil {
		return d.ReadErr
	}
	d.pending = append(d.pending, d.wire...)
	d.wire = nil
	return nil
}

// DispatchPending implements api.Display.
func (d *Display) DispatchPending() (int, error) {
	d.calls = append(d.calls, "dispatch_pending")
	if d.DispatchErr != nil {
		return 0, d.DispatchErr
	}
	return d.deliver(), nil
}

// Dispatch implements api.Display.
func (d *Display) Dispatch() (int, error) {
	d.calls = append(d.calls, "dispatch")
	if d.DispatchErr != nil {
		return 0, d.DispatchErr
	}
	d.pending = append(d.pending, d.wire...)
	d.wire = nil
	return d.deliver(), nil
}

// Flush implements api.Display.
func (d *Display) Flush() error {
	d.calls = append(d.calls, "flush")
	return pop(&d.FlushErrs)
}

// Backlog implements api.Display. It is not recorded in Calls.
func (d *Display) Backlog() int { return d.Queued }

// Roundtrip implements api.Display.
func (d *Display) Roundtrip() error {
	d.calls = append(d.calls, "roundtrip")
	if d.RoundtripErr != nil {
		return d.RoundtripErr
	}
	d.pending = append(d.pending, d.wire...)
	d.wire = nil
	d.deliver()
	return nil
}

// Registry implements api.Display.
func (d *Display) Registry() (api.Registry, error) {
	d.calls = append(d.calls, "registry")
	if d.RegistryErr != nil {
		return nil, d.RegistryErr
	}
	if d.registry == nil {
		d.registry = &Registry{d: d, id: d.allocID()}
	}
	return d.registry, nil
}

// Close implements api.Display.
func (d *Display) Close() error {
	d.calls = append(d.calls, "close")
	if d.closed {
		return nil
	}
	d.closed = true
	_ = d.w.Close()
	return d.r.Close()
}

// Calls returns the method names invoked so far, in order.
func (d *Display) Calls() []string {
	out := make([]string, len(d.calls))
	copy(out, d.calls)
	return out
}

// ResetCalls clears the call log.
func (d *Display) ResetCalls() { d.calls = nil }

// Requests returns every request sent so far.
func (d *Display) Requests() []Request {
	out := make([]Request, len(d.requests))
	copy(out, d.requests)
	return out
}

// Proxies returns every proxy of iface ever created, in creation order.
func (d *Display) Proxies(iface string) []*Proxy {
	var out []*Proxy
	for _, p := range d.created {
		if p.iface == iface {
			out = append(out, p)
		}
	}
	return out
}

// Closed reports whether Close ran.
func (d *Display) Closed() bool { return d.closed }

// deliver advertises new globals and runs every pending event.
func (d *Display) deliver() int {
	n := 0
	if d.registry != nil && d.registry.listener != nil {
		for ; d.advertised < len(d.globals); d.advertised++ {
			g := d.globals[d.advertised]
			d.registry.listener.Global(g.Name, g.Interface, g.Version)
			n++
		}
		for _, name := range d.removed {
			d.registry.listener.GlobalRemove(name)
			n++
		}
		d.removed = nil
	}
	for len(d.pending) > 0 {
		msg := d.pending[0]
		d.pending = d.pending[1:]
		if p, ok := d.objects[msg.Sender]; ok && p.handler != nil {
			p.handler(msg)
		}
		n++
	}
	return n
}

func (d *Display) allocID() uint32 {
	id := d.nextID
	d.nextID++
	return id
}

func (d *Display) newProxy(iface string, version uint32) *Proxy {
	p := &Proxy{d: d, id: d.allocID(), iface: iface, version: version}
	d.objects[p.id] = p
	d.created = append(d.created, p)
	return p
}

func pop(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}

// Registry is the fake api.Registry of a Display.
type Registry struct {
	d        *Display
	id       uint32
	listener api.RegistryListener

	// BindErr fails every Bind.
	BindErr error
}

// SetListener implements api.Registry.
func (r *Registry) SetListener(l api.RegistryListener) { r.listener = l }

// Bind implements api.Registry.
func (r *Registry) Bind(name uint32, iface string, version uint32) (api.Proxy, error) {
	if r.BindErr != nil {
		return nil, r.BindErr
	}
	p := r.d.newProxy(iface, version)
	r.d.requests = append(r.d.requests, Request{
		Sender: r.id,
		Iface:  "wl_registry",
		Opcode: 0,
		Args:   []any{name, iface, version},
		NewID:  p.id,
	})
	return p, nil
}

// Proxy is a fake api.Proxy.
type Proxy struct {
	d         *Display
	id        uint32
	iface     string
	version   uint32
	handler   api.EventHandler
	destroyed bool
}

func (p *Proxy) ID() uint32        { return p.id }
func (p *Proxy) Interface() string { return p.iface }
func (p *Proxy) Version() uint32   { return p.version }

// SetHandler implements api.Proxy.
func (p *Proxy) SetHandler(h api.EventHandler) { p.handler = h }

// Handler returns the installed handler.
func (p *Proxy) Handler() api.EventHandler { return p.handler }

// Request implements api.Proxy.
func (p *Proxy) Request(opcode uint16, args ...any) error {
	if _, _, err := api.AppendArgs(nil, args...); err != nil {
		return err
	}
	p.d.requests = append(p.d.requests, Request{Sender: p.id, Iface: p.iface, Opcode: opcode, Args: args})
	return nil
}

// Constructor implements api.Proxy.
func (p *Proxy) Constructor(opcode uint16, iface string, args ...any) (api.Proxy, error) {
	at := -1
	for i, a := range args {
		if _, ok := a.(api.NewID); ok {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "constructor without new id").
			WithContext("interface", iface)
	}
	child := p.d.newProxy(iface, p.version)
	rest := make([]any, 0, len(args)-1)
	rest = append(rest, args[:at]...)
	rest = append(rest, args[at+1:]...)
	p.d.requests = append(p.d.requests, Request{
		Sender: p.id,
		Iface:  p.iface,
		Opcode: opcode,
		Args:   rest,
		NewID:  child.id,
	})
	return child, nil
}

// Destroy implements api.Proxy.
func (p *Proxy) Destroy() {
	p.destroyed = true
	delete(p.d.objects, p.id)
}

// Destroyed reports whether Destroy ran.
func (p *Proxy) Destroyed() bool { return p.destroyed }
