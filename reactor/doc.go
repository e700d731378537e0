// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the event multiplexer of the client runtime: one
// OS readiness queue (epoll on Linux), an arena of registered PollEvents keyed
// by the token carried in each readiness notification, and a single-threaded
// run loop that stops cooperatively on Terminate.
package reactor
