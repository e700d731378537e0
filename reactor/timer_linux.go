//go:build linux
// +build linux

// File: reactor/timer_linux.go
// Author: momentics <momentics@gmail.com>
//
// timerfd(2) backed source.

package reactor

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/momentics/zukou-go/api"
	"golang.org/x/sys/unix"
)

// TimerSource fires after an initial delay and then every interval; a zero
// interval makes it one-shot. The callback receives the number of
// expirations since the previous call.
type TimerSource struct {
	fd int
	fn func(expirations uint64) bool
}

// NewTimerSource creates an armed monotonic timer.
func NewTimerSource(initial, interval time.Duration, fn func(expirations uint64) bool) (*TimerSource, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_NONBLOCK|unix.TFD_CLOEXEC)
	if err != nil {
		return nil, api.WrapError(api.ErrCodeResource, "failed to create timer", err)
	}
	t := &TimerSource{fd: fd, fn: fn}
	if err := t.Reset(initial, interval); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	return t, nil
}

// Reset re-arms the timer.
func (t *TimerSource) Reset(initial, interval time.Duration) error {
	if initial <= 0 {
		// a zero value would disarm the timer
		initial = time.Nanosecond
	}
	spec := unix.ItimerSpec{
		Value:    unix.NsecToTimespec(initial.Nanoseconds()),
		Interval: unix.NsecToTimespec(interval.Nanoseconds()),
	}
	if err := unix.TimerfdSettime(t.fd, 0, &spec, nil); err != nil {
		return api.WrapError(api.ErrCodeResource, fmt.Sprintf("failed to arm timer fd %d", t.fd), err)
	}
	return nil
}

func (t *TimerSource) Op() api.PollOp { return api.OpAdd }
func (t *TimerSource) Fd() int        { return t.fd }
func (t *TimerSource) Mask() uint32   { return api.EventIn }

func (t *TimerSource) Ready(ev api.ReadyEvent) bool {
	var buf [8]byte
	n, err := unix.Read(t.fd, buf[:])
	if err != nil || n != len(buf) {
		// spurious wakeup
		return false
	}
	return t.fn(binary.NativeEndian.Uint64(buf[:]))
}

// Release closes the timer descriptor.
func (t *TimerSource) Release() {
	if t.fd >= 0 {
		_ = unix.Close(t.fd)
		t.fd = -1
	}
}
