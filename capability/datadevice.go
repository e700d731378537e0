// File: capability/datadevice.go
// Author: momentics <momentics@gmail.com>

package capability

import "github.com/momentics/zukou-go/api"

// InterfaceDataDevice is the interface name of data device objects.
const InterfaceDataDevice = "zgn_data_device"

// DataDevice carries drag-and-drop transfers for one seat.
type DataDevice struct {
	proxy  api.Proxy
	length float32
}

// NewDataDevice creates the data device of seat through manager.
func NewDataDevice(manager, seat api.Proxy) (*DataDevice, error) {
	if manager == nil || seat == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "data device needs a manager and a seat")
	}
	p, err := manager.Constructor(OpDataDeviceManagerGetDataDevice, InterfaceDataDevice, api.NewID{}, seat)
	if err != nil {
		return nil, api.WrapError(api.ErrCodeResource, "failed to create data device", err)
	}
	return &DataDevice{proxy: p}, nil
}

// Proxy returns the underlying protocol object.
func (d *DataDevice) Proxy() api.Proxy { return d.proxy }

// SetLength sets the length of the ray used while dragging.
func (d *DataDevice) SetLength(length float32) { d.length = length }

// Length returns the last length set.
func (d *DataDevice) Length() float32 { return d.length }

// Destroy forgets the data device.
func (d *DataDevice) Destroy() {
	if d.proxy != nil {
		d.proxy.Destroy()
		d.proxy = nil
	}
}
