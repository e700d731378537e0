// File: reactor/source.go
// Author: momentics <momentics@gmail.com>
//
// Generic descriptor source.

package reactor

import "github.com/momentics/zukou-go/api"

// FDSource watches an arbitrary descriptor and forwards readiness to fn.
type FDSource struct {
	op    api.PollOp
	fd    int
	mask  uint32
	fn    func(ev api.ReadyEvent) bool
	owned bool
}

// NewFDSource registers fd for mask. fn returns true to retire the source.
func NewFDSource(fd int, mask uint32, fn func(ev api.ReadyEvent) bool) *FDSource {
	return &FDSource{op: api.OpAdd, fd: fd, mask: mask, fn: fn}
}

// Owned makes the source close fd once the multiplexer releases it.
func (s *FDSource) Owned() *FDSource {
	s.owned = true
	return s
}

// WithOp returns a copy issuing op on registration, e.g. to change the mask
// of a live registration. Ownership of the descriptor moves to the copy.
func (s *FDSource) WithOp(op api.PollOp, mask uint32) *FDSource {
	cp := *s
	cp.op = op
	cp.mask = mask
	s.owned = false
	return &cp
}

func (s *FDSource) Op() api.PollOp { return s.op }
func (s *FDSource) Fd() int        { return s.fd }
func (s *FDSource) Mask() uint32   { return s.mask }

func (s *FDSource) Ready(ev api.ReadyEvent) bool {
	if s.fn == nil {
		return true
	}
	return s.fn(ev)
}

// Release closes an owned descriptor.
func (s *FDSource) Release() {
	if s.owned && s.fd >= 0 {
		_ = CloseFd(s.fd)
		s.fd = -1
	}
}
