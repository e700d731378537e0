// File: api/display.go
// Author: momentics <momentics@gmail.com>
//
// Transport contract between the client runtime and the display connection.
// The runtime only needs connect/fd/prepare-read/read/dispatch/flush; how
// requests and events are encoded is the transport's business.

package api

//go:generate mockgen -source=display.go -destination=../mock/display_mock.go -package=mock

// Display is one client connection to a display server.
// All methods must be called from the goroutine that owns the connection.
type Display interface {
	// Fd is the connection socket, suitable for readiness polling.
	Fd() int

	// PrepareRead announces the intention to read from the socket.
	// It returns ErrRetry while read events are still queued for dispatch.
	PrepareRead() error

	// CancelRead drops a successful PrepareRead without reading.
	CancelRead()

	// ReadEvents reads available bytes without blocking and queues complete
	// events. Must follow a successful PrepareRead.
	ReadEvents() error

	// DispatchPending runs handlers for queued events without reading.
	DispatchPending() (int, error)

	// Dispatch blocks until at least one event was read, then dispatches.
	Dispatch() (int, error)

	// Flush writes queued requests. A socket that cannot take everything is
	// not an error; the rest stays queued.
	Flush() error

	// Backlog is the number of queued request bytes not yet written.
	Backlog() int

	// Roundtrip blocks until the server processed every request sent so far.
	Roundtrip() error

	// Registry returns the global registry of this connection.
	Registry() (Registry, error)

	// Close disconnects and releases the socket.
	Close() error
}

// RegistryListener receives global advertisements.
type RegistryListener interface {
	Global(name uint32, iface string, version uint32)
	GlobalRemove(name uint32)
}

// Registry binds advertised globals.
type Registry interface {
	SetListener(l RegistryListener)
	Bind(name uint32, iface string, version uint32) (Proxy, error)
}

// EventHandler receives events addressed to a proxy.
type EventHandler func(msg *Message)

// Proxy is the client side of a protocol object.
type Proxy interface {
	ID() uint32
	Interface() string
	Version() uint32

	// SetHandler installs the event handler, replacing any previous one.
	SetHandler(h EventHandler)

	// Request queues a request. Arguments are uint32, int32, string, []byte,
	// Fixed, FD, Proxy or nil (null object).
	Request(opcode uint16, args ...any) error

	// Constructor queues a request creating a new object of iface. A NewID
	// value in args marks the position of the new object's id.
	Constructor(opcode uint16, iface string, args ...any) (Proxy, error)

	// Destroy forgets the proxy client side.
	Destroy()
}

// NewID marks the new_id argument position in Proxy.Constructor.
type NewID struct{}

// FD is a file descriptor argument passed out of band.
type FD int

// Fixed is a signed 24.8 fixed-point wire number.
type Fixed int32

// Float64 converts the fixed-point value.
func (f Fixed) Float64() float64 { return float64(f) / 256.0 }

// FixedFrom converts v to fixed point.
func FixedFrom(v float64) Fixed { return Fixed(v * 256.0) }
