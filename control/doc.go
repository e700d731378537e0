// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and debug introspection for the zukou client runtime.
//
// Provides concurrent-safe state handling primitives including:
//   - Counters and gauges published by the event multiplexer
//   - Named debug probes reporting application state on demand
//
// The event loop itself is single-threaded; these registries are the only
// state that may be read from other goroutines.
package control
