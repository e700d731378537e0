// File: internal/transport/doc.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wayland-wire display connection implementing api.Display. Requests are
// buffered until Flush; incoming bytes are read only between PrepareRead and
// ReadEvents and split into events queued for DispatchPending. Socket syscalls
// are strictly separated by build tags.

package transport
