// File: capability/seat.go
// Author: momentics <momentics@gmail.com>

package capability

import "strings"

// Interface names of the globals the runtime binds.
const (
	InterfaceCompositor        = "zgn_compositor"
	InterfaceSeat              = "zgn_seat"
	InterfaceShm               = "wl_shm"
	InterfaceOpenGL            = "zgn_opengl"
	InterfaceShell             = "zgn_shell"
	InterfaceDataDeviceManager = "zgn_data_device_manager"
)

// Mandatory lists the globals a server must advertise, in report order.
var Mandatory = []string{
	InterfaceCompositor,
	InterfaceSeat,
	InterfaceShm,
	InterfaceOpenGL,
	InterfaceShell,
	InterfaceDataDeviceManager,
}

// Known reports whether iface is bound by the runtime.
func Known(iface string) bool {
	for _, name := range Mandatory {
		if name == iface {
			return true
		}
	}
	return false
}

// Event and request opcodes.
const (
	EvSeatCapabilities uint16 = 0
	OpSeatGetRay       uint16 = 0
	EvShmFormat        uint16 = 0

	OpDataDeviceManagerGetDataDevice uint16 = 0
)

// SeatCapability is the bitmask carried by zgn_seat.capabilities.
type SeatCapability uint32

const (
	SeatCapabilityRay      SeatCapability = 1 << 0
	SeatCapabilityKeyboard SeatCapability = 1 << 1
)

// Has reports whether every bit of c is set.
func (s SeatCapability) Has(c SeatCapability) bool { return s&c == c }

func (s SeatCapability) String() string {
	var parts []string
	if s.Has(SeatCapabilityRay) {
		parts = append(parts, "ray")
	}
	if s.Has(SeatCapabilityKeyboard) {
		parts = append(parts, "keyboard")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
