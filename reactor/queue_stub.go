//go:build !linux
// +build !linux

// File: reactor/queue_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import (
	"errors"
	"os"
)

var errUnsupported = errors.New("reactor: this platform is not supported")

// NewEpollQueue returns an error for unsupported platforms.
func NewEpollQueue() (Queue, error) {
	return nil, errUnsupported
}

// DupCloexec returns an error for unsupported platforms.
func DupCloexec(fd int) (int, error) {
	return -1, errUnsupported
}

// CloseFd closes a descriptor owned by a source.
func CloseFd(fd int) error {
	return os.NewFile(uintptr(fd), "fd").Close()
}
