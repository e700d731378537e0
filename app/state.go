// File: app/state.go
// Author: momentics <momentics@gmail.com>

package app

// State is the application lifecycle stage.
type State int

const (
	StateUnconnected State = iota
	StateBootstrapping
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateBootstrapping:
		return "bootstrapping"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
