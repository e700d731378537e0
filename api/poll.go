// Package api
// Author: momentics
//
// Readiness sources registered with the event multiplexer.

package api

// PollOp selects the control operation issued for a PollEvent.
type PollOp int

const (
	OpAdd PollOp = iota + 1
	OpModify
	OpDelete
)

func (op PollOp) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpModify:
		return "modify"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Readiness mask bits. Values follow epoll(7) so backends can pass them through.
const (
	EventIn    uint32 = 0x001
	EventPri   uint32 = 0x002
	EventOut   uint32 = 0x004
	EventErr   uint32 = 0x008
	EventHup   uint32 = 0x010
	EventRDHup uint32 = 0x2000
	EventEdge  uint32 = 1 << 31
)

// Process exit statuses reported by Run.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ReadyEvent is the raw readiness notification handed to a PollEvent.
type ReadyEvent struct {
	Fd     int
	Events uint32
}

// Readable reports whether input is pending.
func (ev ReadyEvent) Readable() bool { return ev.Events&EventIn != 0 }

// Writable reports whether output can be written.
func (ev ReadyEvent) Writable() bool { return ev.Events&EventOut != 0 }

// Hangup reports an error or hang-up condition on the descriptor.
func (ev ReadyEvent) Hangup() bool { return ev.Events&(EventErr|EventHup) != 0 }

// PollEvent is anything that can be registered with the multiplexer.
type PollEvent interface {
	// Op is the control operation to issue on registration.
	Op() PollOp

	// Fd is the watched descriptor.
	Fd() int

	// Mask is the readiness interest set.
	Mask() uint32

	// Ready runs to completion on readiness. Returning true retires the
	// registration.
	Ready(ev ReadyEvent) bool
}

// Releaser is implemented by PollEvents owning resources that must be freed
// once the multiplexer drops its registration.
type Releaser interface {
	Release()
}
