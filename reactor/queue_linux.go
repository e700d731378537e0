//go:build linux
// +build linux

// File: reactor/queue_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based readiness queue.

package reactor

import (
	"fmt"

	"github.com/momentics/zukou-go/api"
	"golang.org/x/sys/unix"
)

var maskBits = [...][2]uint32{
	{api.EventIn, unix.EPOLLIN},
	{api.EventPri, unix.EPOLLPRI},
	{api.EventOut, unix.EPOLLOUT},
	{api.EventErr, unix.EPOLLERR},
	{api.EventHup, unix.EPOLLHUP},
	{api.EventRDHup, unix.EPOLLRDHUP},
	{api.EventEdge, unix.EPOLLET},
}

// epollQueue is an epoll instance. The registration token is split across
// the Fd and Pad words, which together form the kernel's epoll_data union.
type epollQueue struct {
	epfd int
	raw  []unix.EpollEvent
}

// NewEpollQueue creates a close-on-exec epoll instance.
func NewEpollQueue() (Queue, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &epollQueue{epfd: epfd}, nil
}

func (q *epollQueue) Control(op api.PollOp, fd int, mask uint32, token uint64) error {
	var ctl int
	switch op {
	case api.OpAdd:
		ctl = unix.EPOLL_CTL_ADD
	case api.OpModify:
		ctl = unix.EPOLL_CTL_MOD
	case api.OpDelete:
		if err := unix.EpollCtl(q.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
			return fmt.Errorf("epoll ctl del: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("epoll ctl: unknown op %d", op)
	}
	ev := unix.EpollEvent{
		Events: toEpoll(mask),
		Fd:     int32(uint32(token)),
		Pad:    int32(uint32(token >> 32)),
	}
	if err := unix.EpollCtl(q.epfd, ctl, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl %s: %w", op, err)
	}
	return nil
}

func (q *epollQueue) Wait(events []RawEvent, timeoutMs int) (int, error) {
	if cap(q.raw) < len(events) {
		q.raw = make([]unix.EpollEvent, len(events))
	}
	raw := q.raw[:len(events)]
	if timeoutMs < 0 {
		timeoutMs = -1
	}
	n, err := unix.EpollWait(q.epfd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("epoll wait: %w", err)
	}
	for i := 0; i < n; i++ {
		events[i] = RawEvent{
			Token:  uint64(uint32(raw[i].Fd)) | uint64(uint32(raw[i].Pad))<<32,
			Events: fromEpoll(raw[i].Events),
		}
	}
	return n, nil
}

func (q *epollQueue) Close() error {
	return unix.Close(q.epfd)
}

func toEpoll(mask uint32) uint32 {
	var out uint32
	for _, b := range maskBits {
		if mask&b[0] != 0 {
			out |= b[1]
		}
	}
	return out
}

func fromEpoll(events uint32) uint32 {
	var out uint32
	for _, b := range maskBits {
		if events&b[1] != 0 {
			out |= b[0]
		}
	}
	return out
}

// DupCloexec duplicates fd with close-on-exec set.
func DupCloexec(fd int) (int, error) {
	nfd, err := unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return -1, fmt.Errorf("dup fd %d: %w", fd, err)
	}
	return nfd, nil
}

// CloseFd closes a descriptor owned by a source.
func CloseFd(fd int) error {
	return unix.Close(fd)
}
