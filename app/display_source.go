// File: app/display_source.go
// Author: momentics <momentics@gmail.com>
//
// Display socket readiness. The source watches a close-on-exec duplicate of
// the connection descriptor so the registration outlives nothing it does not
// own.

package app

import (
	"errors"

	"github.com/momentics/zukou-go/api"
	"github.com/momentics/zukou-go/internal/logger"
	"github.com/momentics/zukou-go/reactor"
)

type displaySource struct {
	fd        int
	display   api.Display
	terminate func(status int)
	register  func(api.PollEvent) error
	log       *logger.Logger

	op      api.PollOp
	writing bool
}

func newDisplaySource(d api.Display, terminate func(int), register func(api.PollEvent) error, log *logger.Logger) (*displaySource, error) {
	fd, err := reactor.DupCloexec(d.Fd())
	if err != nil {
		return nil, api.WrapError(api.ErrCodeResource, "failed to duplicate display descriptor", err)
	}
	return &displaySource{
		fd:        fd,
		display:   d,
		terminate: terminate,
		register:  register,
		log:       log,
		op:        api.OpAdd,
	}, nil
}

func (s *displaySource) Op() api.PollOp { return s.op }
func (s *displaySource) Fd() int        { return s.fd }

// Mask adds EventOut while requests wait for the socket.
func (s *displaySource) Mask() uint32 {
	if s.writing {
		return api.EventIn | api.EventOut
	}
	return api.EventIn
}

// Ready services the connection. The registration is never retired.
func (s *displaySource) Ready(ev api.ReadyEvent) bool {
	if ev.Writable() && !ev.Readable() && !ev.Hangup() {
		if err := s.display.Flush(); err != nil {
			s.fail("flush", err)
			return false
		}
		s.sync()
		return false
	}
	if s.poll() {
		s.sync()
	}
	return false
}

// poll reads and dispatches what the server sent. Events already read are
// dispatched before the socket is touched, and requests queued by handlers
// are flushed afterwards. Any failure stops the loop with ExitFailure.
func (s *displaySource) poll() bool {
	for {
		err := s.display.PrepareRead()
		if err == nil {
			break
		}
		if !errors.Is(err, api.ErrRetry) {
			s.fail("prepare read", err)
			return false
		}
		if _, err := s.display.DispatchPending(); err != nil {
			s.fail("dispatch pending", err)
			return false
		}
	}

	if err := s.display.Flush(); err != nil {
		s.display.CancelRead()
		s.fail("flush", err)
		return false
	}
	if err := s.display.ReadEvents(); err != nil {
		s.fail("read events", err)
		return false
	}
	if _, err := s.display.DispatchPending(); err != nil {
		s.fail("dispatch pending", err)
		return false
	}
	if err := s.display.Flush(); err != nil {
		s.fail("flush", err)
		return false
	}
	return true
}

// sync watches for writability exactly while the display holds unsent
// requests.
func (s *displaySource) sync() {
	want := s.display.Backlog() > 0
	if want == s.writing {
		return
	}
	s.writing = want
	s.op = api.OpModify
	if err := s.register(s); err != nil {
		s.fail("update interest", err)
		return
	}
	s.log.Debug().Bool("writing", want).Msg("display interest updated")
}

func (s *displaySource) fail(step string, err error) {
	s.log.Error().Err(err).Str("step", step).Msg("display connection failed")
	s.terminate(api.ExitFailure)
}

// Release closes the duplicated descriptor.
func (s *displaySource) Release() {
	if s.fd >= 0 {
		_ = reactor.CloseFd(s.fd)
		s.fd = -1
	}
}
