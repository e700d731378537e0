// internal/transport/display.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/eapache/queue"
	"github.com/momentics/zukou-go/api"
	"github.com/momentics/zukou-go/internal/logger"
)

const displayID uint32 = 1

// wl_display, wl_registry and wl_callback opcodes.
const (
	opDisplaySync        uint16 = 0
	opDisplayGetRegistry uint16 = 1
	evDisplayError       uint16 = 0
	evDisplayDeleteID    uint16 = 1

	opRegistryBind         uint16 = 0
	evRegistryGlobal       uint16 = 0
	evRegistryGlobalRemove uint16 = 1

	evCallbackDone uint16 = 0
)

// Requests are flushed eagerly once this many bytes are queued.
const flushThreshold = 4 * api.MaxMessageSize

// maxBacklog bounds the bytes held back while the socket does not accept
// more. Going past it fails the connection.
const maxBacklog = 64 * api.MaxMessageSize

const maxFDsPerMessage = 28

// errWouldBlock is returned by the socket layer instead of EAGAIN.
var errWouldBlock = errors.New("operation would block")

// Option configures a Display.
type Option func(*Display)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(d *Display) {
		if l != nil {
			d.log = l
		}
	}
}

// Display is a client connection to a Wayland-protocol server.
// It is not safe for concurrent use.
type Display struct {
	fd      int
	log     *logger.Logger
	objects map[uint32]*proxy
	nextID  uint32
	self    *proxy

	out    []byte
	outFDs []int
	in     []byte
	rbuf   []byte

	pending *queue.Queue // *api.Message read but not dispatched
	fds     *queue.Queue // descriptors received with events

	registry *registry
	reading  bool
	closed   bool
	err      error
}

// DefaultDisplay is the socket name used when none is given.
const DefaultDisplay = "zigen-0"

// ResolveEndpoint resolves name against XDG_RUNTIME_DIR (see
// ResolveEndpointIn).
func ResolveEndpoint(name string) (string, error) {
	return ResolveEndpointIn(name, os.Getenv("XDG_RUNTIME_DIR"))
}

// ResolveEndpointIn maps a display name to a socket path. An empty name means
// DefaultDisplay, absolute paths are kept and relative names are joined to
// runtimeDir.
func ResolveEndpointIn(name, runtimeDir string) (string, error) {
	if name == "" {
		name = DefaultDisplay
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	if runtimeDir == "" {
		return "", api.NewError(api.ErrCodeConnection, "XDG_RUNTIME_DIR not set").
			WithContext("display", name)
	}
	return filepath.Join(runtimeDir, name), nil
}

// Connect opens a connection to endpoint (see ResolveEndpoint).
func Connect(endpoint string, opts ...Option) (*Display, error) {
	path, err := ResolveEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	fd, err := dial(path)
	if err != nil {
		e := api.NewError(api.ErrCodeConnection, "failed to connect to server").
			WithContext("path", path)
		e.Err = err
		return nil, e
	}
	return NewFromFd(fd, opts...), nil
}

// NewFromFd wraps an already connected non-blocking stream socket.
// The Display takes ownership of fd.
func NewFromFd(fd int, opts ...Option) *Display {
	d := &Display{
		fd:      fd,
		log:     logger.Nop(),
		objects: make(map[uint32]*proxy),
		nextID:  displayID + 1,
		rbuf:    make([]byte, api.MaxMessageSize),
		pending: queue.New(),
		fds:     queue.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.self = &proxy{d: d, id: displayID, iface: "wl_display", version: 1}
	d.self.handler = d.handleDisplayEvent
	d.objects[displayID] = d.self
	return d
}

// Fd returns the connection socket.
func (d *Display) Fd() int { return d.fd }

// PrepareRead implements api.Display.
func (d *Display) PrepareRead() error {
	if d.err != nil {
		return d.err
	}
	if d.pending.Length() > 0 {
		return api.ErrRetry
	}
	d.reading = true
	return nil
}

// CancelRead implements api.Display.
func (d *Display) CancelRead() { d.reading = false }

// ReadEvents implements api.Display. It never blocks; a wakeup with nothing
// to read is not an error.
func (d *Display) ReadEvents() error {
	if !d.reading {
		return api.NewError(api.ErrCodeInvalidState, "read events without prepare read")
	}
	d.reading = false
	if d.err != nil {
		return d.err
	}

	for {
		n, fds, err := recv(d.fd, d.rbuf)
		for _, fd := range fds {
			d.fds.Add(fd)
		}
		if errors.Is(err, errWouldBlock) {
			break
		}
		if err != nil {
			return d.fail(api.WrapError(api.ErrCodeIOFault, "failed to read events", err))
		}
		if n == 0 && len(fds) == 0 {
			return d.fail(api.NewError(api.ErrCodeIOFault, "server closed the connection"))
		}
		d.in = append(d.in, d.rbuf[:n]...)
		if n < len(d.rbuf) {
			break
		}
	}
	return d.split()
}

// split moves every complete message from the input buffer to the pending
// queue.
func (d *Display) split() error {
	off := 0
	for len(d.in)-off >= api.HeaderSize {
		sender, opcode, size := api.ParseHeader(d.in[off:])
		if size < api.HeaderSize || size > api.MaxMessageSize || size%4 != 0 {
			return d.fail(api.NewError(api.ErrCodeProtocol, "malformed message header").
				WithContext("sender", sender).
				WithContext("size", size))
		}
		if len(d.in)-off < size {
			break
		}
		body := make([]byte, size-api.HeaderSize)
		copy(body, d.in[off+api.HeaderSize:off+size])
		d.pending.Add(api.NewMessageFrom(sender, opcode, body, d))
		off += size
	}
	d.in = append(d.in[:0], d.in[off:]...)
	return nil
}

// NextFD implements api.FDSource.
func (d *Display) NextFD() (int, bool) {
	if d.fds.Length() == 0 {
		return -1, false
	}
	return d.fds.Remove().(int), true
}

// DispatchPending implements api.Display.
func (d *Display) DispatchPending() (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	n := 0
	for d.pending.Length() > 0 {
		msg := d.pending.Remove().(*api.Message)
		d.dispatch(msg)
		n++
		if d.err != nil {
			return n, d.err
		}
	}
	return n, nil
}

func (d *Display) dispatch(msg *api.Message) {
	p, ok := d.objects[msg.Sender]
	if !ok {
		d.log.Debug().Uint32("sender", msg.Sender).Uint16("opcode", msg.Opcode).Msg("event for unknown object dropped")
		return
	}
	if p.handler != nil {
		p.handler(msg)
	}
}

func (d *Display) handleDisplayEvent(msg *api.Message) {
	switch msg.Opcode {
	case evDisplayError:
		obj, code, text := msg.Uint32(), msg.Uint32(), msg.String()
		d.log.Error().Uint32("object", obj).Uint32("code", code).Str("message", text).Msg("display error")
		d.fail(api.NewError(api.ErrCodeProtocol, "display error").
			WithContext("object", obj).
			WithContext("code", code).
			WithContext("message", text))
	case evDisplayDeleteID:
		id := msg.Uint32()
		if p, ok := d.objects[id]; ok {
			p.handler = nil
			delete(d.objects, id)
		}
	}
}

// Dispatch implements api.Display. It blocks until events were read unless
// events are already pending.
func (d *Display) Dispatch() (int, error) {
	if err := d.PrepareRead(); err != nil {
		if errors.Is(err, api.ErrRetry) {
			return d.DispatchPending()
		}
		return 0, err
	}
	for {
		if err := d.Flush(); err != nil {
			d.CancelRead()
			return 0, err
		}
		readable, err := wait(d.fd, len(d.out) > 0)
		if err != nil {
			d.CancelRead()
			return 0, d.fail(api.WrapError(api.ErrCodeIOFault, "failed to wait for events", err))
		}
		if readable {
			break
		}
	}
	if err := d.ReadEvents(); err != nil {
		return 0, err
	}
	return d.DispatchPending()
}

// Flush implements api.Display. Data the socket cannot take right now stays
// queued for the next call and is reported by Backlog.
func (d *Display) Flush() error {
	if d.err != nil {
		return d.err
	}
	for len(d.out) > 0 {
		n, err := send(d.fd, d.out, d.outFDs)
		if errors.Is(err, errWouldBlock) {
			return nil
		}
		if err != nil {
			return d.fail(api.WrapError(api.ErrCodeIOFault, "failed to flush requests", err))
		}
		for _, fd := range d.outFDs {
			_ = closeFd(fd)
		}
		d.outFDs = d.outFDs[:0]
		d.out = append(d.out[:0], d.out[n:]...)
	}
	return nil
}

// Backlog implements api.Display.
func (d *Display) Backlog() int { return len(d.out) }

// Roundtrip implements api.Display.
func (d *Display) Roundtrip() error {
	done := false
	cb, err := d.self.Constructor(opDisplaySync, "wl_callback", api.NewID{})
	if err != nil {
		return err
	}
	cb.SetHandler(func(msg *api.Message) {
		if msg.Opcode == evCallbackDone {
			done = true
		}
	})
	for !done {
		if _, err := d.Dispatch(); err != nil {
			return err
		}
	}
	return nil
}

// Registry implements api.Display. The registry is created once.
func (d *Display) Registry() (api.Registry, error) {
	if d.registry != nil {
		return d.registry, nil
	}
	p, err := d.self.Constructor(opDisplayGetRegistry, "wl_registry", api.NewID{})
	if err != nil {
		return nil, err
	}
	r := &registry{d: d, proxy: p.(*proxy)}
	p.SetHandler(r.handle)
	d.registry = r
	return r, nil
}

// Close implements api.Display.
func (d *Display) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	for fd, ok := d.NextFD(); ok; fd, ok = d.NextFD() {
		_ = closeFd(fd)
	}
	for _, fd := range d.outFDs {
		_ = closeFd(fd)
	}
	d.outFDs = nil
	d.objects = make(map[uint32]*proxy)
	if d.err == nil {
		d.err = api.NewError(api.ErrCodeInvalidState, "display closed")
	}
	return closeFd(d.fd)
}

// Err returns the error that made the connection unusable, if any.
func (d *Display) Err() error { return d.err }

func (d *Display) fail(err error) error {
	if d.err == nil {
		d.err = err
	}
	return d.err
}

func (d *Display) newProxy(iface string, version uint32) *proxy {
	p := &proxy{d: d, id: d.nextID, iface: iface, version: version}
	d.nextID++
	d.objects[p.id] = p
	return p
}

func (d *Display) marshal(sender uint32, opcode uint16, args []any) error {
	if d.err != nil {
		return d.err
	}
	body, fds, err := api.AppendArgs(nil, args...)
	if err != nil {
		return err
	}
	size := api.HeaderSize + len(body)
	if size > api.MaxMessageSize || len(fds) > maxFDsPerMessage {
		return api.NewError(api.ErrCodeInvalidArgument, "request too large").
			WithContext("size", size).
			WithContext("fds", len(fds))
	}
	for _, fd := range fds {
		nfd, err := dupFd(fd)
		if err != nil {
			return api.WrapError(api.ErrCodeResource, "failed to duplicate request descriptor", err)
		}
		d.outFDs = append(d.outFDs, nfd)
	}
	d.out = api.AppendHeader(d.out, sender, opcode, size)
	d.out = append(d.out, body...)
	if len(d.out) < flushThreshold {
		return nil
	}
	if err := d.Flush(); err != nil {
		return err
	}
	if len(d.out) > maxBacklog {
		return d.fail(api.NewError(api.ErrCodeIOFault, "request backlog exceeded").
			WithContext("queued", len(d.out)))
	}
	return nil
}
