// Package api
// Author: momentics
//
// Runtime introspection.

package api

// Debug evaluates named probes on demand. Probes may be read from any
// goroutine.
type Debug interface {
	// DumpState returns the current value of every probe.
	DumpState() map[string]any

	// RegisterProbe inserts or replaces a probe.
	RegisterProbe(name string, fn func() any)
}
