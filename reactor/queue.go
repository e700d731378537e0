// File: reactor/queue.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral readiness queue interface.

package reactor

import "github.com/momentics/zukou-go/api"

// RawEvent is one readiness notification as reported by a Queue.
type RawEvent struct {
	Token  uint64 // registration token given to Control
	Events uint32 // api.Event* bits
}

// Queue is an OS readiness queue that can carry one opaque token per
// registration.
type Queue interface {
	// Control adds, modifies or deletes the registration of fd.
	Control(op api.PollOp, fd int, mask uint32, token uint64) error

	// Wait blocks up to timeoutMs (negative: forever) and fills events.
	// An interrupted wait returns 0 and no error.
	Wait(events []RawEvent, timeoutMs int) (int, error)

	// Close releases the queue.
	Close() error
}
