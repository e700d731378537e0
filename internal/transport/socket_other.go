//go:build !linux
// +build !linux

// internal/transport/socket_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"errors"
	"os"
)

var errUnsupported = errors.New("transport: this platform is not supported")

func dial(path string) (int, error)                    { return -1, errUnsupported }
func recv(fd int, buf []byte) (int, []int, error)      { return 0, nil, errUnsupported }
func send(fd int, data []byte, fds []int) (int, error) { return 0, errUnsupported }
func wait(fd int, writable bool) (bool, error)         { return false, errUnsupported }
func dupFd(fd int) (int, error)                        { return -1, errUnsupported }
func closeFd(fd int) error                             { return os.NewFile(uintptr(fd), "fd").Close() }
